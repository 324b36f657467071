package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// Generator sends a prompt to a hosted generative-text model and returns its reply
type Generator interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator builds the generator selected by GENERATION_PROVIDER
func NewGenerator(ctx context.Context, cfg *config.GenerationConfig, logger *zap.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, logger)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider %q", cfg.Provider)
	}
}
