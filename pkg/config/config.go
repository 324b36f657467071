package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcription providers
const (
	ProviderDeepgram   = "deepgram"
	ProviderAssemblyAI = "assemblyai"
)

// Generation providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ServerConfig holds HTTP server configuration shared by both services
type ServerConfig struct {
	Port            string        `envconfig:"PORT"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5m"`
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// MediaConfig holds the transcoding step configuration
type MediaConfig struct {
	FFmpegPath  string        `envconfig:"MEDIA_FFMPEG_PATH" default:"ffmpeg"`
	VideoCodec  string        `envconfig:"MEDIA_VIDEO_CODEC" default:"libx264"`
	AudioCodec  string        `envconfig:"MEDIA_AUDIO_CODEC" default:"aac"`
	WorkDir     string        `envconfig:"MEDIA_WORK_DIR"`
	MaxUploadMB int64         `envconfig:"MEDIA_MAX_UPLOAD_MB" default:"50"`
	Timeout     time.Duration `envconfig:"MEDIA_TIMEOUT" default:"2m"`
}

// MaxUploadBytes returns the upload limit in bytes
func (m MediaConfig) MaxUploadBytes() int64 {
	return m.MaxUploadMB << 20
}

// FeaturesConfig points at the acoustic/facial feature extraction sidecar
type FeaturesConfig struct {
	URL         string        `envconfig:"FEATURES_URL" default:"http://localhost:5005"`
	FrameStride int           `envconfig:"FEATURES_FRAME_STRIDE" default:"30"`
	AUThreshold float64       `envconfig:"FEATURES_AU_THRESHOLD" default:"0.5"`
	Timeout     time.Duration `envconfig:"FEATURES_TIMEOUT" default:"3m"`
}

// ClassifierConfig points at the sentiment model server
type ClassifierConfig struct {
	URL     string        `envconfig:"CLASSIFIER_URL" default:"http://localhost:8501/v1/models/sentiment:predict"`
	Timeout time.Duration `envconfig:"CLASSIFIER_TIMEOUT" default:"30s"`
}

// TranscriptionConfig holds hosted speech-to-text configuration
type TranscriptionConfig struct {
	Provider         string        `envconfig:"TRANSCRIPTION_PROVIDER" default:"deepgram"`
	Model            string        `envconfig:"TRANSCRIPTION_MODEL" default:"nova-2"`
	SmartFormat      bool          `envconfig:"TRANSCRIPTION_SMART_FORMAT" default:"true"`
	DeepgramAPIKey   string        `envconfig:"DEEPGRAM_API_KEY"`
	DeepgramURL      string        `envconfig:"TRANSCRIPTION_DEEPGRAM_URL" default:"https://api.deepgram.com/v1/listen"`
	AssemblyAIAPIKey string        `envconfig:"ASSEMBLYAI_API_KEY"`
	AssemblyAIURL    string        `envconfig:"TRANSCRIPTION_ASSEMBLYAI_URL"`
	Timeout          time.Duration `envconfig:"TRANSCRIPTION_TIMEOUT" default:"2m"`
}

// GenerationConfig holds hosted generative-text configuration
type GenerationConfig struct {
	Provider      string        `envconfig:"GENERATION_PROVIDER" default:"gemini"`
	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GENERATION_GEMINI_MODEL" default:"gemini-1.5-flash"`
	OpenAIAPIKey  string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `envconfig:"GENERATION_OPENAI_BASE_URL" default:"https://api.groq.com/openai/v1"`
	OpenAIModel   string        `envconfig:"GENERATION_OPENAI_MODEL" default:"llama-3.1-8b-instant"`
	Timeout       time.Duration `envconfig:"GENERATION_TIMEOUT" default:"60s"`
}

// CacheConfig holds reply cache configuration
type CacheConfig struct {
	RedisEnabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string        `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// RedisAddr returns the Redis address
func (c CacheConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// StorageConfig holds object storage configuration for upload archiving
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"emotion-coach"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"24h"`
}

// DatabaseConfig holds history store configuration
type DatabaseConfig struct {
	Enabled       bool   `envconfig:"DB_ENABLED" default:"false"`
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD"`
	Name          string `envconfig:"DB_NAME" default:"emotion_coach"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"2"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// DSN returns the database connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// EmotionConfig is the configuration of the emotion inference service
type EmotionConfig struct {
	Server        ServerConfig
	Media         MediaConfig
	Features      FeaturesConfig
	Classifier    ClassifierConfig
	Transcription TranscriptionConfig
	Storage       StorageConfig
	Database      DatabaseConfig
}

// CoachConfig is the configuration of the coaching response service
type CoachConfig struct {
	Server        ServerConfig
	Generation    GenerationConfig
	Cache         CacheConfig
	Database      DatabaseConfig
	TemplatesFile string
}

// LoadEmotion loads the emotion service configuration from the environment
func LoadEmotion() (*EmotionConfig, error) {
	loadDotEnv()

	cfg := &EmotionConfig{}
	for _, section := range []interface{}{
		&cfg.Server,
		&cfg.Media,
		&cfg.Features,
		&cfg.Classifier,
		&cfg.Transcription,
		&cfg.Storage,
		&cfg.Database,
	} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Media.WorkDir == "" {
		cfg.Media.WorkDir = os.TempDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCoach loads the coaching service configuration from the environment
func LoadCoach() (*CoachConfig, error) {
	loadDotEnv()

	cfg := &CoachConfig{}
	for _, section := range []interface{}{
		&cfg.Server,
		&cfg.Generation,
		&cfg.Cache,
		&cfg.Database,
	} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8001"
	}
	cfg.TemplatesFile = os.Getenv("COACH_TEMPLATES_FILE")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase loads only the history store configuration, for the migration tool
func LoadDatabase() (*DatabaseConfig, error) {
	loadDotEnv()

	cfg := &DatabaseConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *EmotionConfig) Validate() error {
	switch c.Transcription.Provider {
	case ProviderDeepgram:
		if c.Transcription.DeepgramAPIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY is required")
		}
	case ProviderAssemblyAI:
		if c.Transcription.AssemblyAIAPIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unsupported TRANSCRIPTION_PROVIDER %q", c.Transcription.Provider)
	}
	if c.Features.URL == "" {
		return fmt.Errorf("FEATURES_URL is required")
	}
	if c.Classifier.URL == "" {
		return fmt.Errorf("CLASSIFIER_URL is required")
	}
	if c.Features.FrameStride <= 0 {
		return fmt.Errorf("FEATURES_FRAME_STRIDE must be positive")
	}
	if c.Media.MaxUploadMB <= 0 {
		return fmt.Errorf("MEDIA_MAX_UPLOAD_MB must be positive")
	}
	if c.Storage.Enabled && (c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "") {
		return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when storage is enabled")
	}
	return nil
}

// Validate validates the configuration
func (c *CoachConfig) Validate() error {
	switch c.Generation.Provider {
	case ProviderGemini:
		if c.Generation.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if c.Generation.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unsupported GENERATION_PROVIDER %q", c.Generation.Provider)
	}
	return nil
}

func loadDotEnv() {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}
}
