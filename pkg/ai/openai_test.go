package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

func TestOpenAIGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization %q", got)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if req["model"] != "llama-3.1-8b-instant" {
			t.Fatalf("unexpected model %v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "llama-3.1-8b-instant",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "**Great** job"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
		}`))
	}))
	defer ts.Close()

	g := NewOpenAIClient(&config.GenerationConfig{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: ts.URL,
		OpenAIModel:   "llama-3.1-8b-instant",
	}, nil)
	g.retry = fastRetry()

	text, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "**Great** job" {
		t.Fatalf("unexpected reply %q", text)
	}
	if g.Model() != "llama-3.1-8b-instant" || g.Name() != config.ProviderOpenAI {
		t.Fatalf("unexpected identity %s/%s", g.Name(), g.Model())
	}
}

func TestOpenAIGenerate_QuotaExceeded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit reached", "type": "rate_limit"}}`))
	}))
	defer ts.Close()

	g := NewOpenAIClient(&config.GenerationConfig{OpenAIAPIKey: "k", OpenAIBaseURL: ts.URL, OpenAIModel: "m"}, nil)
	g.retry = fastRetry()

	_, err := g.Generate(context.Background(), "prompt")
	if !IsQuotaExceeded(err) {
		t.Fatalf("expected quota error, got %v", err)
	}
}
