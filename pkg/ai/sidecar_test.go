package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

func TestClassifierClassify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(req.Instances) != 1 || req.Instances[0] != "audio: facial: <|endoftext|>" {
			t.Fatalf("unexpected instances %v", req.Instances)
		}
		json.NewEncoder(w).Encode(PredictResponse{Predictions: [][]float64{{0.1, 0, 0, 0.7, 0.1, 0.05, 0.05}}})
	}))
	defer ts.Close()

	c := NewClassifierClient(&config.ClassifierConfig{URL: ts.URL}, nil)
	c.retry = fastRetry()

	scores, err := c.Classify(context.Background(), "audio: facial: <|endoftext|>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 7 || scores[3] != 0.7 {
		t.Fatalf("unexpected scores %v", scores)
	}
}

func TestClassifierClassify_EmptyPredictions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predictions": []}`))
	}))
	defer ts.Close()

	c := NewClassifierClient(&config.ClassifierConfig{URL: ts.URL}, nil)
	c.retry = fastRetry()

	if _, err := c.Classify(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty predictions")
	}
}

func writeTempMedia(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normalized.mp4")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write media: %v", err)
	}
	return path
}

func TestFeaturesClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if string(body) != "video" || header.Filename != "normalized.mp4" {
			t.Fatalf("unexpected upload %q %q", header.Filename, body)
		}

		switch r.URL.Path {
		case "/audio":
			w.Write([]byte(`{"features": {"equivalentSoundLevel_dBp": -25.5}}`))
		case "/video":
			if got := r.URL.Query().Get("skip_frames"); got != "30" {
				t.Fatalf("expected skip_frames=30, got %q", got)
			}
			w.Write([]byte(`{"aus": [[0.1, 0.9], [0.3, 0.7]]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := NewFeaturesClient(&config.FeaturesConfig{URL: ts.URL + "/", FrameStride: 30}, nil)
	path := writeTempMedia(t, "video")

	features, err := c.AudioFeatures(context.Background(), path)
	if err != nil {
		t.Fatalf("audio features: %v", err)
	}
	if features["equivalentSoundLevel_dBp"] != -25.5 {
		t.Fatalf("unexpected features %v", features)
	}

	frames, err := c.ActionUnits(context.Background(), path)
	if err != nil {
		t.Fatalf("action units: %v", err)
	}
	if len(frames) != 2 || frames[1][1] != 0.7 {
		t.Fatalf("unexpected frames %v", frames)
	}
}

func TestFeaturesClient_NoFace(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"aus": []}`))
	}))
	defer ts.Close()

	c := NewFeaturesClient(&config.FeaturesConfig{URL: ts.URL, FrameStride: 30}, nil)
	if _, err := c.ActionUnits(context.Background(), writeTempMedia(t, "video")); err == nil {
		t.Fatal("expected error when no frames are returned")
	}
}
