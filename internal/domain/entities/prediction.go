package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prediction is the stored outcome of one /predict call
type Prediction struct {
	ID            uuid.UUID                             `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequestID     string                                `json:"request_id" gorm:"type:varchar(64);index"`
	Sentiment     Sentiment                             `json:"sentiment" gorm:"type:varchar(20);not null"`
	Transcription string                                `json:"transcription" gorm:"type:text"`
	NoSpeech      bool                                  `json:"no_speech" gorm:"default:false"`
	Narrative     string                                `json:"narrative" gorm:"type:text"`
	Acoustics     datatypes.JSONType[*AcousticFeatures] `json:"acoustics,omitempty" gorm:"type:jsonb"`
	ActionUnits   datatypes.JSONSlice[int]              `json:"action_units,omitempty" gorm:"type:jsonb"`
	MediaURL      string                                `json:"media_url,omitempty" gorm:"type:text"`
	CreatedAt     time.Time                             `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

// NewPrediction creates a prediction for the given request
func NewPrediction(requestID string, sentiment Sentiment) *Prediction {
	return &Prediction{
		ID:        uuid.New(),
		RequestID: requestID,
		Sentiment: sentiment,
		CreatedAt: time.Now(),
	}
}
