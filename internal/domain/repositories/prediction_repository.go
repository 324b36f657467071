package repositories

import (
	"context"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// PredictionRepository persists emotion predictions
type PredictionRepository interface {
	Create(ctx context.Context, p *entities.Prediction) error
	ListRecent(ctx context.Context, limit int) ([]*entities.Prediction, error)
}

// CoachingReplyRepository persists generated coaching replies
type CoachingReplyRepository interface {
	Create(ctx context.Context, r *entities.CoachingReply) error
	ListRecent(ctx context.Context, limit int) ([]*entities.CoachingReply, error)
}
