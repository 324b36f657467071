package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	_ "github.com/emotioncoach/emotion-coach/docs/coach"
	"github.com/emotioncoach/emotion-coach/internal/adapter/handler"
	"github.com/emotioncoach/emotion-coach/internal/adapter/repository"
	"github.com/emotioncoach/emotion-coach/internal/domain/repositories"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/cache"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/database"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/http/server"
	"github.com/emotioncoach/emotion-coach/internal/usecase/coach"
	pkgai "github.com/emotioncoach/emotion-coach/pkg/ai"
	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// @title           Coaching Response API
// @version         1.0
// @description     Turns a transcript and its detected sentiment into short communication coaching
// @BasePath        /

func main() {
	cfg, err := config.LoadCoach()
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

	var replies repositories.CoachingReplyRepository
	checks := map[string]handler.HealthCheck{}
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
		replies = repository.NewCoachingReplyRepository(db)
	}

	var replyCache coach.ReplyCache
	if cfg.Cache.RedisEnabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, &cfg.Cache)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store := cache.NewRedisStore(redisClient, "emotion-coach:")
		defer store.Close()
		replyCache = store
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		log.Println("📦 Using in-memory reply cache")
		store := cache.NewMemoryStore(time.Minute)
		defer store.Close()
		replyCache = store
	}

	templates, err := coach.LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		log.Fatalf("Failed to load prompt templates: %v", err)
	}

	log.Println("🤖 Initializing AI components...")
	generator, err := pkgai.NewGenerator(ctx, &cfg.Generation, logger)
	if err != nil {
		log.Fatalf("Failed to initialize generator: %v", err)
	}
	log.Printf("✨ Generation provider: %s (%s)", generator.Name(), generator.Model())

	svc := coach.NewService(templates, generator, replyCache, replies, coach.Options{
		CacheTTL:          cfg.Cache.TTL,
		GenerationTimeout: cfg.Generation.Timeout,
	}, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewCoachRouter(&cfg.Server, handler.NewCoachHandler(svc, logger))
	for name, check := range checks {
		router.AddCheck(name, check)
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
