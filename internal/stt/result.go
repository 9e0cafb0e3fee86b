package stt

// Request carries one transcription call's input. It is built per user
// action and discarded after the call returns; providers must not retain
// the audio bytes or the credential.
type Request struct {
	Audio      []byte // raw audio file content
	Credential string // user-supplied provider API key
	Filename   string // original filename, used to derive the audio format
	Diarize    bool   // ask the provider for speaker labels
}

// Word is a single recognized word. Slice order is the provider's temporal
// order and is the only ordering used downstream.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0-1.0
	Start      float64 `json:"start,omitempty"` // seconds
	End        float64 `json:"end,omitempty"`   // seconds
	Speaker    *int    `json:"speaker,omitempty"`
}

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript  string // the full transcribed text
	Words       []Word // per-word confidence, in temporal order
	Provider    string // the provider used (e.g., "deepgram", "google")
	RawResponse string // raw response from the provider (for debugging/display)
}
