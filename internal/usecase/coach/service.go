package coach

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
	"github.com/emotioncoach/emotion-coach/internal/domain/repositories"
	ucerrors "github.com/emotioncoach/emotion-coach/internal/usecase/errors"
	"github.com/emotioncoach/emotion-coach/pkg/ai"
	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

const cacheKeyPrefix = "coach:reply:"

// ReplyCache stores raw model replies keyed by prompt hash
type ReplyCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}

// Options tunes reply generation
type Options struct {
	CacheTTL          time.Duration
	GenerationTimeout time.Duration
}

// Request is a structured coaching request
type Request struct {
	Context   string
	Sentiment string
}

// Reply is the formatted coaching answer
type Reply struct {
	Message string
	HTML    string
	Model   string
	Cached  bool
}

// Service builds coaching prompts and formats the model's answers
type Service interface {
	Generate(ctx context.Context, req Request) (*Reply, error)
	GenerateFromWire(ctx context.Context, body string) (*Reply, error)
	History(ctx context.Context, limit int) ([]*entities.CoachingReply, error)
}

type coachService struct {
	templates *Templates
	generator ai.Generator
	formatter *Formatter
	cache     ReplyCache
	replies   repositories.CoachingReplyRepository
	opts      Options
	logger    *zap.Logger
}

// NewService wires the coaching flow. cache and replies may be nil.
func NewService(
	templates *Templates,
	generator ai.Generator,
	cache ReplyCache,
	replies repositories.CoachingReplyRepository,
	opts Options,
	logger *zap.Logger,
) Service {
	if templates == nil {
		templates = DefaultTemplates()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &coachService{
		templates: templates,
		generator: generator,
		formatter: NewFormatter(),
		cache:     cache,
		replies:   replies,
		opts:      opts,
		logger:    logger,
	}
}

// GenerateFromWire accepts the legacy "<q>context (label).<q>" body
func (s *coachService) GenerateFromWire(ctx context.Context, body string) (*Reply, error) {
	text, label, err := ParseWire(body)
	if err != nil {
		return nil, apperrors.ErrMalformedSentiment(body)
	}
	return s.Generate(ctx, Request{Context: text, Sentiment: label})
}

func (s *coachService) Generate(ctx context.Context, req Request) (*Reply, error) {
	log := s.logger.With(
		zap.String("request_id", reqcontext.RequestID(ctx)),
		zap.String("sentiment", req.Sentiment),
	)

	prompt := s.templates.Build(req.Sentiment, req.Context)
	key := cacheKey(prompt)

	raw, cached := s.cached(ctx, key, log)
	if !cached {
		var err error
		raw, err = s.generate(ctx, prompt)
		if err != nil {
			log.Error("coach.generate.failed", zap.Error(err))
			return nil, err
		}
		s.store(ctx, key, raw, log)
	}

	message, rendered, err := s.formatter.Format(raw)
	if err != nil {
		return nil, apperrors.ErrFormatFailed(err)
	}

	reply := &Reply{
		Message: message,
		HTML:    rendered,
		Model:   s.generator.Model(),
		Cached:  cached,
	}
	s.persist(ctx, req, prompt, reply, log)

	log.Info("coach.generate.done",
		zap.String("provider", s.generator.Name()),
		zap.Bool("cached", cached),
		zap.Int("message_len", len(message)),
		zap.Duration("elapsed", reqcontext.Elapsed(ctx)),
	)
	return reply, nil
}

func (s *coachService) generate(ctx context.Context, prompt string) (string, error) {
	gctx, cancel := reqcontext.WithStage(ctx, "generate", s.opts.GenerationTimeout)
	defer cancel()

	text, err := s.generator.Generate(gctx, prompt)
	if err != nil {
		if errors.Is(gctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.ErrUpstreamTimeout("generate", err)
		}
		return "", ucerrors.FromUpstream("generate", err, apperrors.ErrGenerationFailed)
	}
	return text, nil
}

// cached treats a broken cache as a miss
func (s *coachService) cached(ctx context.Context, key string, log *zap.Logger) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("coach.cache.get_failed", zap.Error(err))
		return "", false
	}
	if ok {
		log.Debug("coach.generate.cache_hit")
	}
	return v, ok
}

func (s *coachService) store(ctx context.Context, key, raw string, log *zap.Logger) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.opts.CacheTTL); err != nil {
		log.Warn("coach.cache.set_failed", zap.Error(err))
	}
}

func (s *coachService) persist(ctx context.Context, req Request, prompt string, reply *Reply, log *zap.Logger) {
	if s.replies == nil {
		return
	}
	r := entities.NewCoachingReply(req.Sentiment, req.Context, prompt)
	r.Message = reply.Message
	r.HTML = reply.HTML
	r.Model = reply.Model
	r.Cached = reply.Cached
	if err := s.replies.Create(ctx, r); err != nil {
		log.Warn("coach.history.save_failed", zap.Error(err))
	}
}

// History lists the most recent replies
func (s *coachService) History(ctx context.Context, limit int) ([]*entities.CoachingReply, error) {
	if s.replies == nil {
		return nil, apperrors.ErrNotConfigured("Reply history")
	}
	items, err := s.replies.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list coaching replies", err)
	}
	return items, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
