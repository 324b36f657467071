package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// Transcriber turns normalized media into text.
// Implementations return ErrNoSpeech when the upstream found nothing to transcribe.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, media []byte, contentType string) (string, error)
}

// NewTranscriber builds the transcriber selected by TRANSCRIPTION_PROVIDER
func NewTranscriber(cfg *config.TranscriptionConfig, logger *zap.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case config.ProviderDeepgram:
		return NewDeepgramClient(cfg, logger), nil
	case config.ProviderAssemblyAI:
		return NewAssemblyAIClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider %q", cfg.Provider)
	}
}
