package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// WhisperProvider implements STT using the OpenAI audio transcription client
// library. Whisper does not report per-word confidence, so each word inherits
// exp(avg_logprob) of its containing segment, clamped to [0,1].
type WhisperProvider struct {
	model string
	log   *logrus.Logger
}

// NewWhisperProvider creates a new Whisper STT provider
func NewWhisperProvider(model string, log *logrus.Logger) *WhisperProvider {
	return &WhisperProvider{
		model: model,
		log:   log,
	}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe transcribes the audio bytes using the OpenAI client library
func (p *WhisperProvider) Transcribe(ctx context.Context, in Request) (*Result, error) {
	const op = "WhisperProvider.Transcribe"
	startTime := time.Now()

	if err := validateRequest(op, in); err != nil {
		return nil, err
	}

	client := openai.NewClient(in.Credential)

	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: in.Filename,
		Reader:   bytes.NewReader(in.Audio),
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
			openai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, appErr(CodeUpstream, op, "OpenAI transcription failed", err)
		}
		return nil, appErr(CodeUnavailable, op, "failed to reach OpenAI", err)
	}

	raw, _ := json.Marshal(resp)

	if len(resp.Words) == 0 {
		return &Result{Provider: p.Name(), RawResponse: string(raw)},
			appErr(CodeMalformed, op, "response contains no word timestamps", nil)
	}

	words := make([]Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, Word{
			Text:       w.Word,
			Confidence: segmentConfidence(resp, w.Start),
			Start:      w.Start,
			End:        w.End,
		})
	}

	p.log.WithFields(logrus.Fields{
		"provider": p.Name(),
		"words":    len(words),
		"duration": time.Since(startTime).String(),
	}).Info("transcription successful")

	return &Result{
		Transcript:  resp.Text,
		Words:       words,
		Provider:    p.Name(),
		RawResponse: string(raw),
	}, nil
}

// segmentConfidence finds the segment containing start and converts its
// average log-probability into a [0,1] confidence.
func segmentConfidence(resp openai.AudioResponse, start float64) float64 {
	for _, s := range resp.Segments {
		if start >= s.Start && start < s.End {
			return clamp01(math.Exp(s.AvgLogprob))
		}
	}
	return 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
