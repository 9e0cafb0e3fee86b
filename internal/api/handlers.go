package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wordtint/internal/config"
	"wordtint/internal/render"
	"wordtint/internal/stt"
	"wordtint/internal/utils"
)

// Extensions the transcribe endpoint accepts.
var allowedExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".ogg": true,
	".flac": true, ".aac": true, ".mp4": true,
}

// Handler wires the STT provider and renderer behind the HTTP surface.
type Handler struct {
	cfg      *config.Config
	provider stt.Provider
	log      *logrus.Logger
}

func NewHandler(cfg *config.Config, provider stt.Provider, log *logrus.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		provider: provider,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", h.healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/transcriptions", h.transcribe)
	}
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":   "ok",
		"service":  "wordtint",
		"provider": h.provider.Name(),
	})
}

// transcribe handles POST /api/v1/transcriptions. It accepts a multipart form
// with the audio file and the user's provider API key, performs one
// transcription call, and answers with the confidence-colored rendering plus
// both text exports. format=plain|detailed instead returns the corresponding
// downloadable text file.
func (h *Handler) transcribe(c *gin.Context) {
	apiKey := strings.TrimSpace(c.PostForm("api_key"))
	if apiKey == "" {
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidArgument,
			"api_key is required", "")
		return
	}

	file, err := c.FormFile("audio_file")
	if err != nil {
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidArgument,
			"audio_file is required", "")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidArgument,
			"unsupported audio format. Supported: wav, mp3, m4a, ogg, flac, aac, mp4", "")
		return
	}

	if file.Size > h.cfg.MaxUploadMB*1024*1024 {
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidArgument,
			"file size exceeds upload limit", "")
		return
	}

	showConfidence := parseBoolField(c.PostForm("show_confidence"))

	format := c.DefaultPostForm("format", "json")
	switch format {
	case "json", "plain", "detailed":
	default:
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidArgument,
			"format must be one of: json, plain, detailed", "")
		return
	}

	// Spool the upload to a temp file scoped to this request. The deferred
	// remove runs on every exit path, including provider failures.
	tmpPath, err := spoolUpload(file, ext)
	if err != nil {
		h.log.WithError(err).Error("failed to spool upload")
		utils.ErrorWithCode(c, http.StatusInternalServerError, utils.CodeInternal,
			"failed to store uploaded file", "")
		return
	}
	defer os.Remove(tmpPath)

	audio, err := os.ReadFile(tmpPath)
	if err != nil {
		h.log.WithError(err).Error("failed to read spooled upload")
		utils.ErrorWithCode(c, http.StatusInternalServerError, utils.CodeInternal,
			"failed to read uploaded file", "")
		return
	}

	result, err := h.provider.Transcribe(c.Request.Context(), stt.Request{
		Audio:      audio,
		Credential: apiKey,
		Filename:   file.Filename,
		Diarize:    true,
	})
	if err != nil {
		raw := ""
		if result != nil {
			raw = result.RawResponse
		}
		h.log.WithFields(logrus.Fields{
			"provider": h.provider.Name(),
			"code":     utils.ErrCode(err),
		}).WithError(err).Warn("transcription failed")
		utils.ErrorWithCode(c, utils.HTTPStatus(err), utils.ErrCode(err), safeMessage(err), raw)
		return
	}

	switch format {
	case "plain":
		sendAttachment(c, "transcript.txt", render.PlainText(result.Words))
	case "detailed":
		sendAttachment(c, "detailed_transcript.txt", render.DetailedText(result.Words))
	default:
		utils.Success(c, gin.H{
			"provider":      result.Provider,
			"transcript":    result.Transcript,
			"words":         result.Words,
			"fragments":     render.Fragments(result.Words, showConfidence),
			"html":          render.HTML(result.Words, showConfidence),
			"plain_text":    render.PlainText(result.Words),
			"detailed_text": render.DetailedText(result.Words),
			"raw_response":  rawPayload(result.RawResponse),
		})
	}
}

// spoolUpload writes the multipart file to a temp file carrying the original
// extension and returns its path. The caller owns removal.
func spoolUpload(file *multipart.FileHeader, ext string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "wordtint-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func sendAttachment(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// parseBoolField accepts the usual form encodings of a checked checkbox.
func parseBoolField(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "on", "yes":
		return true
	}
	return false
}

// rawPayload keeps valid JSON inspectable as JSON; anything else is passed
// through as a string.
func rawPayload(raw string) interface{} {
	if raw == "" {
		return nil
	}
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	return raw
}

func safeMessage(err error) string {
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return "transcription failed"
}
