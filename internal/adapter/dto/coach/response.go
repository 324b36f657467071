package coach

import (
	"time"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// GenerateResponse carries the reply in plain text and HTML
type GenerateResponse struct {
	Message string `json:"message"`
	HTML    string `json:"html"`
}

// ReplyItem is one entry of GET /replies
type ReplyItem struct {
	ID        string    `json:"id"`
	Sentiment string    `json:"sentiment"`
	Context   string    `json:"context"`
	Message   string    `json:"message"`
	HTML      string    `json:"html"`
	Model     string    `json:"model"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReplyItem(r *entities.CoachingReply) ReplyItem {
	return ReplyItem{
		ID:        r.ID.String(),
		Sentiment: r.Sentiment,
		Context:   r.Context,
		Message:   r.Message,
		HTML:      r.HTML,
		Model:     r.Model,
		Cached:    r.Cached,
		CreatedAt: r.CreatedAt,
	}
}
