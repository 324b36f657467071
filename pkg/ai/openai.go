package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// OpenAIClient generates replies through any OpenAI-compatible chat endpoint (Groq by default)
type OpenAIClient struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
	logger *zap.Logger
}

// NewOpenAIClient creates a chat-completions client from generation config
func NewOpenAIClient(cfg *config.GenerationConfig, logger *zap.Logger) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.OpenAIModel,
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}
}

func (o *OpenAIClient) Name() string  { return config.ProviderOpenAI }
func (o *OpenAIClient) Model() string { return o.model }

// Generate sends the prompt as a single user message
func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := withRetry(ctx, o.retry, func() (openai.ChatCompletionResponse, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return resp, openAIError(err)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", o.model)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s returned an empty reply", o.model)
	}

	if o.logger != nil {
		o.logger.Info("openai.generate.done",
			zap.String("model", o.model),
			zap.Int("total_tokens", resp.Usage.TotalTokens),
		)
	}
	return text, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Service: "openai", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &StatusError{Service: "openai", StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return err
}
