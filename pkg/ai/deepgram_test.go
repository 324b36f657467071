package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

func fastRetry() RetryPolicy {
	return RetryPolicy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxRetries: 2}
}

func newTestDeepgram(url string) *DeepgramClient {
	c := NewDeepgramClient(&config.TranscriptionConfig{
		DeepgramAPIKey: "test-key",
		DeepgramURL:    url,
		Model:          "nova-2",
		SmartFormat:    true,
	}, nil)
	c.retry = fastRetry()
	return c
}

func deepgramBody(transcript string) map[string]interface{} {
	return map[string]interface{}{
		"metadata": map[string]interface{}{"request_id": "dg-1", "duration": 1.5},
		"results": map[string]interface{}{
			"channels": []interface{}{
				map[string]interface{}{
					"alternatives": []interface{}{
						map[string]interface{}{"transcript": transcript, "confidence": 0.9},
					},
				},
			},
		},
	}
}

func TestDeepgramTranscribe_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		if got := r.URL.Query().Get("model"); got != "nova-2" {
			t.Fatalf("expected model nova-2, got %q", got)
		}
		if got := r.URL.Query().Get("smart_format"); got != "true" {
			t.Fatalf("expected smart_format=true, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "video/mp4" {
			t.Fatalf("unexpected content type %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "media-bytes" {
			t.Fatalf("unexpected body %q", body)
		}
		json.NewEncoder(w).Encode(deepgramBody("Hello there."))
	}))
	defer ts.Close()

	text, err := newTestDeepgram(ts.URL).Transcribe(context.Background(), []byte("media-bytes"), "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello there." {
		t.Fatalf("unexpected transcript %q", text)
	}
}

func TestDeepgramTranscribe_NoSpeech(t *testing.T) {
	cases := map[string]interface{}{
		"blank transcript": deepgramBody("   "),
		"no channels":      map[string]interface{}{"results": map[string]interface{}{"channels": []interface{}{}}},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(body)
			}))
			defer ts.Close()

			_, err := newTestDeepgram(ts.URL).Transcribe(context.Background(), []byte("x"), "")
			if !errors.Is(err, ErrNoSpeech) {
				t.Fatalf("expected ErrNoSpeech, got %v", err)
			}
		})
	}
}

func TestDeepgramTranscribe_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestDeepgram(ts.URL).Transcribe(context.Background(), []byte("x"), "")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
	if errors.Is(err, ErrNoSpeech) {
		t.Fatal("hard failure must not look like no speech")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single call, got %d", n)
	}
}

func TestDeepgramTranscribe_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(deepgramBody("second time lucky"))
	}))
	defer ts.Close()

	text, err := newTestDeepgram(ts.URL).Transcribe(context.Background(), []byte("x"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "second time lucky" {
		t.Fatalf("unexpected transcript %q", text)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 calls, got %d", n)
	}
}

func TestNewTranscriber(t *testing.T) {
	tr, err := NewTranscriber(&config.TranscriptionConfig{Provider: config.ProviderDeepgram}, nil)
	if err != nil || tr.Name() != config.ProviderDeepgram {
		t.Fatalf("expected deepgram transcriber, got %v, %v", tr, err)
	}

	tr, err = NewTranscriber(&config.TranscriptionConfig{Provider: config.ProviderAssemblyAI, AssemblyAIAPIKey: "k"}, nil)
	if err != nil || tr.Name() != config.ProviderAssemblyAI {
		t.Fatalf("expected assemblyai transcriber, got %v, %v", tr, err)
	}

	if _, err := NewTranscriber(&config.TranscriptionConfig{Provider: "whisper"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
