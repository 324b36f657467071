package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// ClassifierClient calls the fine-tuned sentiment model behind a TF-Serving style predict endpoint
type ClassifierClient struct {
	endpoint string
	client   *http.Client
	retry    RetryPolicy
	logger   *zap.Logger
}

// NewClassifierClient creates a classifier client from config
func NewClassifierClient(cfg *config.ClassifierConfig, logger *zap.Logger) *ClassifierClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClassifierClient{
		endpoint: cfg.URL,
		client:   &http.Client{Timeout: timeout},
		retry:    DefaultRetryPolicy(),
		logger:   logger,
	}
}

// PredictRequest is the payload for the predict endpoint
type PredictRequest struct {
	Instances []string `json:"instances"`
}

// PredictResponse holds one score vector per instance
type PredictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

// Classify returns the raw output scores for a single input text
func (c *ClassifierClient) Classify(ctx context.Context, text string) ([]float64, error) {
	b, err := json.Marshal(PredictRequest{Instances: []string{text}})
	if err != nil {
		return nil, err
	}

	pr, err := withRetry(ctx, c.retry, func() (*PredictResponse, error) {
		return c.predict(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	if len(pr.Predictions) == 0 || len(pr.Predictions[0]) == 0 {
		return nil, fmt.Errorf("classifier returned no predictions")
	}
	return pr.Predictions[0], nil
}

func (c *ClassifierClient) predict(ctx context.Context, payload []byte) (*PredictResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("classifier", resp)
	}

	var pr PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("classifier decode: %w", err)
	}
	return &pr, nil
}
