package entities

import "strings"

// Sentiment is one of the seven labels the classifier can emit
type Sentiment string

const (
	SentimentAnger    Sentiment = "Anger"
	SentimentDisgust  Sentiment = "Disgust"
	SentimentFear     Sentiment = "Fear"
	SentimentJoy      Sentiment = "Joy"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentSadness  Sentiment = "Sadness"
	SentimentSurprise Sentiment = "Surprise"
)

// Sentiments lists the labels in classifier output order
var Sentiments = []Sentiment{
	SentimentAnger,
	SentimentDisgust,
	SentimentFear,
	SentimentJoy,
	SentimentNeutral,
	SentimentSadness,
	SentimentSurprise,
}

// ParseSentiment matches s against the known labels ignoring case and surrounding space
func ParseSentiment(s string) (Sentiment, bool) {
	s = strings.TrimSpace(s)
	for _, label := range Sentiments {
		if strings.EqualFold(s, string(label)) {
			return label, true
		}
	}
	return "", false
}

// SentimentFromScores maps the highest-scoring output index to its label.
// Ties resolve to the lowest index.
func SentimentFromScores(scores []float64) (Sentiment, error) {
	if len(scores) != len(Sentiments) {
		return "", ErrUnexpectedScores
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Sentiments[best], nil
}

func (s Sentiment) String() string { return string(s) }
