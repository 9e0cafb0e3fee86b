package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe sends the audio in req to the provider and returns the
	// word-level result. Exactly one outbound call, no retries.
	Transcribe(ctx context.Context, req Request) (*Result, error)

	// Name returns the name of the provider (e.g., "deepgram", "google")
	Name() string
}
