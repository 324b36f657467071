package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// AssemblyAIClient transcribes through the official AssemblyAI SDK.
// The SDK call blocks until the transcript is completed or errored.
type AssemblyAIClient struct {
	sdk    *aai.Client
	retry  RetryPolicy
	logger *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client from transcription config
func NewAssemblyAIClient(cfg *config.TranscriptionConfig, logger *zap.Logger) *AssemblyAIClient {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.AssemblyAIAPIKey)}
	if cfg.AssemblyAIURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.AssemblyAIURL))
	}

	return &AssemblyAIClient{
		sdk:    aai.NewClientWithOptions(opts...),
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}
}

func (c *AssemblyAIClient) Name() string { return config.ProviderAssemblyAI }

// Transcribe uploads the media and waits for the transcript
func (c *AssemblyAIClient) Transcribe(ctx context.Context, media []byte, _ string) (string, error) {
	uploadURL, err := withRetry(ctx, c.retry, func() (string, error) {
		return c.sdk.Upload(ctx, bytes.NewReader(media))
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to assemblyai: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	if c.logger != nil {
		id := ""
		if transcript.ID != nil {
			id = *transcript.ID
		}
		c.logger.Info("assemblyai.transcribe.done", zap.String("transcript_id", id))
	}

	if transcript.Text == nil || strings.TrimSpace(*transcript.Text) == "" {
		return "", ErrNoSpeech
	}
	return *transcript.Text, nil
}
