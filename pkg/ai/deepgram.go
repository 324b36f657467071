package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

const deepgramDefaultURL = "https://api.deepgram.com/v1/listen"

// DeepgramClient is a minimal client for Deepgram pre-recorded transcription
type DeepgramClient struct {
	apiKey      string
	endpoint    string
	model       string
	smartFormat bool
	client      *http.Client
	retry       RetryPolicy
	logger      *zap.Logger
}

// NewDeepgramClient creates a Deepgram client from transcription config
func NewDeepgramClient(cfg *config.TranscriptionConfig, logger *zap.Logger) *DeepgramClient {
	endpoint := cfg.DeepgramURL
	if endpoint == "" {
		endpoint = deepgramDefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &DeepgramClient{
		apiKey:      cfg.DeepgramAPIKey,
		endpoint:    endpoint,
		model:       cfg.Model,
		smartFormat: cfg.SmartFormat,
		client:      &http.Client{Timeout: timeout},
		retry:       DefaultRetryPolicy(),
		logger:      logger,
	}
}

// DeepgramResponse is the subset of the listen response we read
type DeepgramResponse struct {
	Metadata struct {
		RequestID string  `json:"request_id"`
		Duration  float64 `json:"duration"`
		Channels  int     `json:"channels"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// TopTranscript returns the first alternative of the first channel
func (r *DeepgramResponse) TopTranscript() (string, bool) {
	if len(r.Results.Channels) == 0 || len(r.Results.Channels[0].Alternatives) == 0 {
		return "", false
	}
	return r.Results.Channels[0].Alternatives[0].Transcript, true
}

func (c *DeepgramClient) Name() string { return config.ProviderDeepgram }

// Transcribe posts the media bytes to Deepgram and returns the top transcript
func (c *DeepgramClient) Transcribe(ctx context.Context, media []byte, contentType string) (string, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid deepgram url: %w", err)
	}
	query := reqURL.Query()
	if c.model != "" {
		query.Set("model", c.model)
	}
	query.Set("smart_format", strconv.FormatBool(c.smartFormat))
	reqURL.RawQuery = query.Encode()

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	start := time.Now()
	dg, err := withRetry(ctx, c.retry, func() (*DeepgramResponse, error) {
		return c.listen(ctx, reqURL.String(), media, contentType)
	})
	if err != nil {
		return "", err
	}

	transcript, ok := dg.TopTranscript()
	if c.logger != nil {
		c.logger.Info("deepgram.transcribe.done",
			zap.String("deepgram_request_id", dg.Metadata.RequestID),
			zap.Float64("audio_seconds", dg.Metadata.Duration),
			zap.Duration("latency", time.Since(start)),
		)
	}
	if !ok || strings.TrimSpace(transcript) == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

func (c *DeepgramClient) listen(ctx context.Context, endpoint string, media []byte, contentType string) (*DeepgramResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(media))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newStatusError("deepgram", resp)
	}

	var dg DeepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dg); err != nil {
		return nil, fmt.Errorf("failed to decode deepgram response: %w", err)
	}
	return &dg, nil
}
