package config

import (
	"testing"
	"time"
)

func TestLoadCoach_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "")

	cfg, err := LoadCoach()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8001" {
		t.Fatalf("expected default port 8001, got %q", cfg.Server.Port)
	}
	if cfg.Generation.Provider != ProviderGemini || cfg.Generation.Timeout != time.Minute {
		t.Fatalf("unexpected generation config %+v", cfg.Generation)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Cache.TTL != 10*time.Minute || cfg.Cache.RedisEnabled {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
}

func TestLoadCoach_MissingKey(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", ProviderOpenAI)
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := LoadCoach(); err == nil {
		t.Fatal("expected an error when OPENAI_API_KEY is missing")
	}
}

func TestLoadEmotion(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg")
	t.Setenv("PORT", "")
	t.Setenv("MEDIA_MAX_UPLOAD_MB", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://app.example.com")

	cfg, err := LoadEmotion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.Server.Port)
	}
	if cfg.Media.MaxUploadBytes() != 5<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.Media.MaxUploadBytes())
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Features.FrameStride != 30 || cfg.Features.AUThreshold != 0.5 {
		t.Fatalf("unexpected feature defaults %+v", cfg.Features)
	}
	if cfg.Transcription.Model != "nova-2" || !cfg.Transcription.SmartFormat {
		t.Fatalf("unexpected transcription defaults %+v", cfg.Transcription)
	}
	if cfg.Media.WorkDir == "" {
		t.Fatal("work dir should default to the temp dir")
	}
}

func TestLoadEmotion_Validation(t *testing.T) {
	t.Setenv("TRANSCRIPTION_PROVIDER", ProviderAssemblyAI)
	t.Setenv("ASSEMBLYAI_API_KEY", "")
	if _, err := LoadEmotion(); err == nil {
		t.Fatal("expected an error when ASSEMBLYAI_API_KEY is missing")
	}

	t.Setenv("ASSEMBLYAI_API_KEY", "aai")
	t.Setenv("STORAGE_ENABLED", "true")
	t.Setenv("STORAGE_ACCESS_KEY", "")
	if _, err := LoadEmotion(); err == nil {
		t.Fatal("expected an error when storage credentials are missing")
	}
}
