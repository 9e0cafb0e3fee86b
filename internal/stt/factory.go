package stt

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"wordtint/internal/config"
)

// CreateProvider creates an STT provider based on configuration
func CreateProvider(cfg *config.Config, log *logrus.Logger) (Provider, error) {
	providerName := strings.ToLower(strings.TrimSpace(cfg.Provider))

	// Default to Deepgram if not specified
	if providerName == "" {
		providerName = "deepgram"
		log.Debug("STT_PROVIDER not set, defaulting to 'deepgram'")
	}

	switch providerName {
	case "deepgram":
		log.WithField("base_url", cfg.DeepgramURL).Info("creating Deepgram STT provider")
		return NewDeepgramProvider(cfg.DeepgramURL, log), nil
	case "google":
		log.WithField("language", cfg.GoogleLanguage).Info("creating Google STT provider")
		return NewGoogleProvider(cfg.GoogleLanguage, log), nil
	case "whisper":
		log.WithField("model", cfg.WhisperModel).Info("creating Whisper STT provider")
		return NewWhisperProvider(cfg.WhisperModel, log), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: deepgram, google, whisper", providerName)
	}
}
