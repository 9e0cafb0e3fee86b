package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DeepgramProvider implements STT using Deepgram's pre-recorded listen API
// over plain HTTP. The API key travels with each request, never with the
// provider itself.
type DeepgramProvider struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewDeepgramProvider creates a new Deepgram STT provider. baseURL is the
// scheme+host part, e.g. "https://api.deepgram.com".
func NewDeepgramProvider(baseURL string, log *logrus.Logger) *DeepgramProvider {
	return &DeepgramProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		log:        log,
	}
}

// Name returns the provider name
func (p *DeepgramProvider) Name() string {
	return "deepgram"
}

// deepgramResponse represents the Deepgram listen API response. Only the
// nested word list is modeled; everything else stays in RawResponse.
type deepgramResponse struct {
	Results *struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
				Words      []struct {
					Word       string  `json:"word"`
					Start      float64 `json:"start"`
					End        float64 `json:"end"`
					Confidence float64 `json:"confidence"`
					Speaker    *int    `json:"speaker"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
	ErrCode string `json:"err_code,omitempty"`
	ErrMsg  string `json:"err_msg,omitempty"`
}

// Transcribe sends the audio bytes to Deepgram and returns the per-word result
func (p *DeepgramProvider) Transcribe(ctx context.Context, in Request) (*Result, error) {
	const op = "DeepgramProvider.Transcribe"
	startTime := time.Now()

	if err := validateRequest(op, in); err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"provider": p.Name(),
		"filename": in.Filename,
		"size":     len(in.Audio),
	}).Debug("sending audio to deepgram")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/listen", bytes.NewReader(in.Audio))
	if err != nil {
		return nil, appErr(CodeInternal, op, "failed to create request", err)
	}

	req.Header.Set("Authorization", "Token "+in.Credential)
	req.Header.Set("Content-Type", "audio/*")
	if in.Diarize {
		req.Header.Set("Diarize", "True")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, appErr(CodeUnavailable, op, "failed to reach Deepgram", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErr(CodeUnavailable, op, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		p.log.WithFields(logrus.Fields{
			"provider": p.Name(),
			"status":   resp.StatusCode,
		}).Warn("deepgram returned non-success status")
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			appErr(CodeUpstream, op, fmt.Sprintf("Deepgram returned status %d", resp.StatusCode), nil)
	}

	var dgResp deepgramResponse
	if err := json.Unmarshal(body, &dgResp); err != nil {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			appErr(CodeMalformed, op, "failed to parse Deepgram response", err)
	}

	if dgResp.Results == nil || len(dgResp.Results.Channels) == 0 ||
		len(dgResp.Results.Channels[0].Alternatives) == 0 {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			appErr(CodeMalformed, op, "response is missing results.channels[0].alternatives[0]", nil)
	}

	alt := dgResp.Results.Channels[0].Alternatives[0]
	words := make([]Word, 0, len(alt.Words))
	for _, w := range alt.Words {
		words = append(words, Word{
			Text:       w.Word,
			Confidence: w.Confidence,
			Start:      w.Start,
			End:        w.End,
			Speaker:    w.Speaker,
		})
	}

	p.log.WithFields(logrus.Fields{
		"provider":   p.Name(),
		"words":      len(words),
		"confidence": alt.Confidence,
		"duration":   time.Since(startTime).String(),
	}).Info("transcription successful")

	return &Result{
		Transcript:  alt.Transcript,
		Words:       words,
		Provider:    p.Name(),
		RawResponse: string(body),
	}, nil
}
