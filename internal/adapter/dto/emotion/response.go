package emotion

import (
	"time"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// NoTextFound is the text reported when the transcriber hears no speech
const NoTextFound = "No text found"

// PredictResponse is the success body of POST /predict
type PredictResponse struct {
	Sentiment     string `json:"sentiment"`
	Transcription string `json:"transcription"`
	InputText     string `json:"input text"`
	VideoURL      string `json:"video_url,omitempty"`
}

// NoSpeechResponse is returned instead of PredictResponse when nothing was said
type NoSpeechResponse struct {
	Sentiment string `json:"sentiment"`
	Text      string `json:"text"`
	VideoURL  string `json:"video_url,omitempty"`
}

// PredictionItem is one entry of GET /predictions
type PredictionItem struct {
	ID            string                     `json:"id"`
	RequestID     string                     `json:"request_id"`
	Sentiment     string                     `json:"sentiment"`
	Transcription string                     `json:"transcription"`
	NoSpeech      bool                       `json:"no_speech"`
	InputText     string                     `json:"input text"`
	Acoustics     *entities.AcousticFeatures `json:"acoustics,omitempty"`
	ActionUnits   []int                      `json:"action_units,omitempty"`
	VideoURL      string                     `json:"video_url,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
}

// NewPredictionItem maps a stored prediction
func NewPredictionItem(p *entities.Prediction) PredictionItem {
	return PredictionItem{
		ID:            p.ID.String(),
		RequestID:     p.RequestID,
		Sentiment:     p.Sentiment.String(),
		Transcription: p.Transcription,
		NoSpeech:      p.NoSpeech,
		InputText:     p.Narrative,
		Acoustics:     p.Acoustics.Data(),
		ActionUnits:   []int(p.ActionUnits),
		VideoURL:      p.MediaURL,
		CreatedAt:     p.CreatedAt,
	}
}
