package stt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"wordtint/internal/utils"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const deepgramFixture = `{
  "metadata": {"request_id": "abc"},
  "results": {
    "channels": [
      {
        "alternatives": [
          {
            "transcript": "hello world",
            "confidence": 0.87,
            "words": [
              {"word": "hello", "start": 0.08, "end": 0.32, "confidence": 0.92, "speaker": 0},
              {"word": "world", "start": 0.4, "end": 0.72, "confidence": 0.31, "speaker": 1}
            ]
          }
        ]
      }
    ]
  }
}`

func TestDeepgramTranscribe(t *testing.T) {
	var gotAuth, gotContentType, gotDiarize, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotDiarize = r.Header.Get("Diarize")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, deepgramFixture)
	}))
	defer srv.Close()

	p := NewDeepgramProvider(srv.URL, testLogger())
	res, err := p.Transcribe(context.Background(), Request{
		Audio:      []byte("fake-audio-bytes"),
		Credential: "test-key",
		Filename:   "clip.wav",
		Diarize:    true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotPath != "/v1/listen" {
		t.Errorf("path = %q, want /v1/listen", gotPath)
	}
	if gotAuth != "Token test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Token test-key")
	}
	if gotContentType != "audio/*" {
		t.Errorf("Content-Type = %q, want audio/*", gotContentType)
	}
	if gotDiarize != "True" {
		t.Errorf("Diarize header = %q, want True", gotDiarize)
	}
	if gotBody != "fake-audio-bytes" {
		t.Errorf("body = %q, want raw audio bytes", gotBody)
	}

	if res.Transcript != "hello world" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if len(res.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(res.Words))
	}
	if res.Words[0].Text != "hello" || res.Words[0].Confidence != 0.92 {
		t.Errorf("word 0 = %+v", res.Words[0])
	}
	if res.Words[1].Text != "world" || res.Words[1].Confidence != 0.31 {
		t.Errorf("word 1 = %+v", res.Words[1])
	}
	if res.Words[1].Speaker == nil || *res.Words[1].Speaker != 1 {
		t.Errorf("word 1 speaker = %v, want 1", res.Words[1].Speaker)
	}
	if res.RawResponse == "" || !strings.Contains(res.RawResponse, `"request_id"`) {
		t.Errorf("raw response not retained: %q", res.RawResponse)
	}
}

func TestDeepgramNoDiarizeHeader(t *testing.T) {
	headerSet := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, headerSet = r.Header[http.CanonicalHeaderKey("Diarize")]
		io.WriteString(w, deepgramFixture)
	}))
	defer srv.Close()

	p := NewDeepgramProvider(srv.URL, testLogger())
	if _, err := p.Transcribe(context.Background(), Request{
		Audio:      []byte("x"),
		Credential: "k",
	}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if headerSet {
		t.Error("Diarize header sent even though diarization was not requested")
	}
}

func TestDeepgramUpstreamError(t *testing.T) {
	const body = `{"err_code":"INVALID_AUTH","err_msg":"invalid credentials"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	p := NewDeepgramProvider(srv.URL, testLogger())
	res, err := p.Transcribe(context.Background(), Request{Audio: []byte("x"), Credential: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !utils.IsCode(err, utils.CodeUpstream) {
		t.Errorf("code = %v, want UPSTREAM", utils.ErrCode(err))
	}
	if res == nil || res.RawResponse != body {
		t.Errorf("raw response not retained on upstream error: %+v", res)
	}
}

func TestDeepgramMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "this is not json"},
		{"missing results", `{"metadata":{}}`},
		{"empty channels", `{"results":{"channels":[]}}`},
		{"empty alternatives", `{"results":{"channels":[{"alternatives":[]}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			p := NewDeepgramProvider(srv.URL, testLogger())
			res, err := p.Transcribe(context.Background(), Request{Audio: []byte("x"), Credential: "k"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !utils.IsCode(err, utils.CodeMalformed) {
				t.Errorf("code = %v, want MALFORMED", utils.ErrCode(err))
			}
			if res == nil || res.RawResponse != tt.body {
				t.Errorf("raw response not retained: %+v", res)
			}
		})
	}
}

func TestDeepgramEmptyWordList(t *testing.T) {
	// A valid alternative with zero words is a success, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":{"channels":[{"alternatives":[{"transcript":"","confidence":0,"words":[]}]}]}}`)
	}))
	defer srv.Close()

	p := NewDeepgramProvider(srv.URL, testLogger())
	res, err := p.Transcribe(context.Background(), Request{Audio: []byte("x"), Credential: "k"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(res.Words) != 0 {
		t.Errorf("got %d words, want 0", len(res.Words))
	}
}

func TestDeepgramTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	p := NewDeepgramProvider(srv.URL, testLogger())
	_, err := p.Transcribe(context.Background(), Request{Audio: []byte("x"), Credential: "k"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !utils.IsCode(err, utils.CodeUnavailable) {
		t.Errorf("code = %v, want UNAVAILABLE", utils.ErrCode(err))
	}
}

func TestDeepgramInputValidation(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	p := NewDeepgramProvider(srv.URL, testLogger())

	if _, err := p.Transcribe(context.Background(), Request{Audio: []byte("x")}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("missing credential: code = %v, want INVALID_ARGUMENT", utils.ErrCode(err))
	}
	if _, err := p.Transcribe(context.Background(), Request{Credential: "k"}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("missing audio: code = %v, want INVALID_ARGUMENT", utils.ErrCode(err))
	}
	if calls != 0 {
		t.Errorf("network calls = %d, want 0", calls)
	}
}
