package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// CoachingReplyRepository handles coaching reply history
type CoachingReplyRepository struct {
	db *gorm.DB
}

// NewCoachingReplyRepository creates a new coaching reply repository
func NewCoachingReplyRepository(db *gorm.DB) *CoachingReplyRepository {
	return &CoachingReplyRepository{db: db}
}

// Create stores a reply
func (r *CoachingReplyRepository) Create(ctx context.Context, reply *entities.CoachingReply) error {
	if reply == nil {
		return errors.New("reply cannot be nil")
	}
	return r.db.WithContext(ctx).Create(reply).Error
}

// ListRecent returns the newest replies first
func (r *CoachingReplyRepository) ListRecent(ctx context.Context, limit int) ([]*entities.CoachingReply, error) {
	var out []*entities.CoachingReply
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
