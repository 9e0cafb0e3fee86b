package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	Provider       string // deepgram, google, whisper
	DeepgramURL    string
	WhisperModel   string
	GoogleLanguage string
	MaxUploadMB    int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Provider:       getEnv("STT_PROVIDER", "deepgram"),
		DeepgramURL:    getEnv("DEEPGRAM_URL", "https://api.deepgram.com"),
		WhisperModel:   getEnv("WHISPER_MODEL", "whisper-1"),
		GoogleLanguage: getEnv("GOOGLE_STT_LANGUAGE", "en-US"),
		MaxUploadMB:    25,
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb < 1 {
			return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer, got %q", v)
		}
		cfg.MaxUploadMB = mb
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
