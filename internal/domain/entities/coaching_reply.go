package entities

import (
	"time"

	"github.com/google/uuid"
)

// CoachingReply is a generated coaching answer kept for history
type CoachingReply struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Sentiment string    `json:"sentiment" gorm:"type:varchar(64)"`
	Context   string    `json:"context" gorm:"type:text"`
	Prompt    string    `json:"prompt" gorm:"type:text"`
	Message   string    `json:"message" gorm:"type:text"`
	HTML      string    `json:"html" gorm:"type:text"`
	Model     string    `json:"model" gorm:"type:varchar(100)"`
	Cached    bool      `json:"cached" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (CoachingReply) TableName() string {
	return "coaching_replies"
}

// NewCoachingReply creates an empty reply record
func NewCoachingReply(sentiment, context, prompt string) *CoachingReply {
	return &CoachingReply{
		ID:        uuid.New(),
		Sentiment: sentiment,
		Context:   context,
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
}
