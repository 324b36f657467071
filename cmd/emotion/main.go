package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	_ "github.com/emotioncoach/emotion-coach/docs/emotion"
	"github.com/emotioncoach/emotion-coach/internal/adapter/handler"
	"github.com/emotioncoach/emotion-coach/internal/adapter/repository"
	"github.com/emotioncoach/emotion-coach/internal/domain/repositories"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/database"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/http/server"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/media"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/storage"
	"github.com/emotioncoach/emotion-coach/internal/usecase/emotion"
	pkgai "github.com/emotioncoach/emotion-coach/pkg/ai"
	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// @title           Emotion Inference API
// @version         1.0
// @description     Classifies the sentiment of a short recording from voice, face and speech
// @BasePath        /

func main() {
	cfg, err := config.LoadEmotion()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	e := server.New(&cfg.Server, logger)

	log.Println("🔧 Initializing dependencies...")

	var predictions repositories.PredictionRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(&cfg.Database, cfg.Server.IsProduction())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if cfg.Server.IsProduction() {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
			}
			if _, err := database.Migrate(db, cfg.Database.MigrationsDir); err != nil {
				log.Fatalf("Failed to migrate: %v", err)
			}
		}
		predictions = repository.NewPredictionRepository(db)
	} else {
		log.Println("📦 History store disabled")
	}

	var archiver emotion.Archiver
	var minioClient *storage.MinIOClient
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err = storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = minioClient
	}

	log.Println("🤖 Initializing AI components...")
	transcriber, err := pkgai.NewTranscriber(&cfg.Transcription, logger)
	if err != nil {
		log.Fatalf("Failed to initialize transcriber: %v", err)
	}
	log.Printf("🎙️  Transcription provider: %s", transcriber.Name())

	svc := emotion.NewService(
		media.NewTranscoder(&cfg.Media, logger),
		pkgai.NewFeaturesClient(&cfg.Features, logger),
		pkgai.NewClassifierClient(&cfg.Classifier, logger),
		transcriber,
		archiver,
		predictions,
		emotion.Options{
			WorkDir:           cfg.Media.WorkDir,
			AUThreshold:       cfg.Features.AUThreshold,
			TranscodeTimeout:  cfg.Media.Timeout,
			FeaturesTimeout:   cfg.Features.Timeout,
			ClassifyTimeout:   cfg.Classifier.Timeout,
			TranscribeTimeout: cfg.Transcription.Timeout,
		},
		logger,
	)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewEmotionRouter(&cfg.Server, handler.NewEmotionHandler(svc, cfg.Media.MaxUploadBytes(), logger))
	if minioClient != nil {
		router.AddCheck("storage", minioClient.Ping)
	}
	router.Setup(e)

	if err := server.Run(e, &cfg.Server); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
