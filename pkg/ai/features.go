package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// FeaturesClient talks to the extraction sidecar wrapping opensmile (audio) and the
// facial action-unit detector (video).
type FeaturesClient struct {
	baseURL     string
	frameStride int
	client      *http.Client
	logger      *zap.Logger
}

// NewFeaturesClient creates a sidecar client from config
func NewFeaturesClient(cfg *config.FeaturesConfig, logger *zap.Logger) *FeaturesClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &FeaturesClient{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		frameStride: cfg.FrameStride,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// AudioFeaturesResponse carries the opensmile functionals by column name
type AudioFeaturesResponse struct {
	Features map[string]float64 `json:"features"`
}

// VideoFeaturesResponse carries per-frame action unit activations
type VideoFeaturesResponse struct {
	Frames [][]float64 `json:"aus"`
}

// AudioFeatures extracts acoustic functionals from the media file at path
func (c *FeaturesClient) AudioFeatures(ctx context.Context, path string) (map[string]float64, error) {
	var out AudioFeaturesResponse
	if err := c.upload(ctx, c.baseURL+"/audio", path, &out); err != nil {
		return nil, err
	}
	if len(out.Features) == 0 {
		return nil, fmt.Errorf("features: empty audio feature set")
	}
	return out.Features, nil
}

// ActionUnits extracts per-frame action unit activations, sampling every frameStride-th frame
func (c *FeaturesClient) ActionUnits(ctx context.Context, path string) ([][]float64, error) {
	endpoint := c.baseURL + "/video?skip_frames=" + strconv.Itoa(c.frameStride)

	var out VideoFeaturesResponse
	if err := c.upload(ctx, endpoint, path, &out); err != nil {
		return nil, err
	}
	if len(out.Frames) == 0 {
		return nil, fmt.Errorf("features: no face detected")
	}
	return out.Frames, nil
}

func (c *FeaturesClient) upload(ctx context.Context, endpoint, path string, out interface{}) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	if c.logger != nil {
		c.logger.Debug("features.upload",
			zap.String("endpoint", endpoint),
			zap.Int("bytes", b.Len()),
		)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("features request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError("features", resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("features decode: %w", err)
	}
	return nil
}
