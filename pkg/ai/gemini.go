package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// GeminiClient generates coaching replies with the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
	retry  RetryPolicy
	logger *zap.Logger
}

// NewGeminiClient creates a Gemini client from generation config
func NewGeminiClient(ctx context.Context, cfg *config.GenerationConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.GeminiModel,
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}, nil
}

func (g *GeminiClient) Name() string  { return config.ProviderGemini }
func (g *GeminiClient) Model() string { return g.model }

// Generate sends the prompt as a single user turn and joins the text parts of the first candidate
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := withRetry(ctx, g.retry, func() (*genai.GenerateContentResponse, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, geminiError(err)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty reply")
	}

	if g.logger != nil {
		g.logger.Info("gemini.generate.done",
			zap.String("model", g.model),
			zap.Int("chars", len(text)),
		)
	}
	return text, nil
}

// geminiError normalizes API errors so retry and status mapping see the HTTP code
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Service: "gemini", StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{Service: "gemini", StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return err
}
