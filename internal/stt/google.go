package stt

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"
)

// GoogleProvider implements STT using the Google Cloud Speech-to-Text client
// library. The user-supplied credential can be either:
//   - An API key (39 characters, typically starts with "AIzaSy")
//   - A JSON string containing service account credentials
type GoogleProvider struct {
	language string
	log      *logrus.Logger
}

// NewGoogleProvider creates a new Google STT provider
func NewGoogleProvider(language string, log *logrus.Logger) *GoogleProvider {
	return &GoogleProvider{
		language: language,
		log:      log,
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Transcribe transcribes the audio bytes using the Speech-to-Text client library
func (p *GoogleProvider) Transcribe(ctx context.Context, in Request) (*Result, error) {
	const op = "GoogleProvider.Transcribe"
	startTime := time.Now()

	if err := validateRequest(op, in); err != nil {
		return nil, err
	}

	cred := strings.TrimSpace(in.Credential)
	var opts []option.ClientOption
	if len(cred) == 39 && strings.HasPrefix(cred, "AIzaSy") {
		opts = append(opts, option.WithAPIKey(cred))
	} else {
		opts = append(opts, option.WithCredentialsJSON([]byte(cred)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, appErr(CodeInvalidArgument, op, "failed to build Speech client from credential", err)
	}
	defer client.Close()

	encoding, sampleRate := googleAudioConfig(filepath.Ext(in.Filename))

	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		SampleRateHertz:            sampleRate,
		LanguageCode:               p.language,
		EnableAutomaticPunctuation: true,
		EnableWordConfidence:       true,
		EnableWordTimeOffsets:      true,
	}
	if in.Diarize {
		cfg.DiarizationConfig = &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
		}
	}

	p.log.WithFields(logrus.Fields{
		"provider": p.Name(),
		"filename": in.Filename,
		"size":     len(in.Audio),
		"encoding": encoding.String(),
	}).Debug("calling Speech-to-Text")

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: in.Audio},
		},
	})
	if err != nil {
		return nil, appErr(CodeUpstream, op, "Speech-to-Text request failed", err)
	}

	raw := protojson.Format(resp)

	var transcript strings.Builder
	var words []Word
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		if transcript.Len() > 0 && alt.Transcript != "" {
			transcript.WriteString(" ")
		}
		transcript.WriteString(alt.Transcript)
		for _, w := range alt.Words {
			word := Word{
				Text:       w.Word,
				Confidence: float64(w.Confidence),
				Start:      w.StartTime.AsDuration().Seconds(),
				End:        w.EndTime.AsDuration().Seconds(),
			}
			if tag := int(w.SpeakerTag); tag > 0 {
				word.Speaker = &tag
			}
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return &Result{Provider: p.Name(), RawResponse: raw},
			appErr(CodeMalformed, op, "response contains no word-level results", nil)
	}

	p.log.WithFields(logrus.Fields{
		"provider": p.Name(),
		"words":    len(words),
		"duration": time.Since(startTime).String(),
	}).Info("transcription successful")

	return &Result{
		Transcript:  transcript.String(),
		Words:       words,
		Provider:    p.Name(),
		RawResponse: raw,
	}, nil
}

// googleAudioConfig determines encoding and sample rate based on file extension
func googleAudioConfig(fileExt string) (speechpb.RecognitionConfig_AudioEncoding, int32) {
	switch strings.ToLower(fileExt) {
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16, 16000
	case ".mp3":
		return speechpb.RecognitionConfig_MP3, 44100
	case ".ogg":
		return speechpb.RecognitionConfig_OGG_OPUS, 48000
	case ".flac":
		return speechpb.RecognitionConfig_FLAC, 44100
	default:
		// m4a/aac/mp4 have no dedicated encoding; let the service sniff the header
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, 0
	}
}
