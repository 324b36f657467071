package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// fakeAssemblyAI answers upload, submit and poll with a finished transcript carrying text
func fakeAssemblyAI(t *testing.T, text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/upload"):
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example.com/upload-1"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/transcript"):
			var payload map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("invalid payload: %v", err)
			}
			if payload["audio_url"] != "https://cdn.example.com/upload-1" {
				t.Errorf("unexpected audio_url %v", payload["audio_url"])
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "transcript-123", "status": "queued"})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/transcript-123"):
			json.NewEncoder(w).Encode(map[string]string{"id": "transcript-123", "status": "completed", "text": text})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestAssemblyAITranscribe_Success(t *testing.T) {
	ts := fakeAssemblyAI(t, "We shipped it.")
	defer ts.Close()

	c := NewAssemblyAIClient(&config.TranscriptionConfig{AssemblyAIAPIKey: "test-key", AssemblyAIURL: ts.URL}, nil)
	c.retry = fastRetry()

	text, err := c.Transcribe(context.Background(), []byte("media"), "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "We shipped it." {
		t.Fatalf("unexpected transcript %q", text)
	}
}

func TestAssemblyAITranscribe_NoSpeech(t *testing.T) {
	ts := fakeAssemblyAI(t, "")
	defer ts.Close()

	c := NewAssemblyAIClient(&config.TranscriptionConfig{AssemblyAIAPIKey: "test-key", AssemblyAIURL: ts.URL}, nil)
	c.retry = fastRetry()

	if _, err := c.Transcribe(context.Background(), []byte("media"), ""); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech, got %v", err)
	}
}
