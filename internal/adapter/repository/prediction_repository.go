package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// PredictionRepository handles prediction history
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create stores a prediction
func (r *PredictionRepository) Create(ctx context.Context, p *entities.Prediction) error {
	if p == nil {
		return errors.New("prediction cannot be nil")
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// ListRecent returns the newest predictions first
func (r *PredictionRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Prediction, error) {
	var out []*entities.Prediction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
