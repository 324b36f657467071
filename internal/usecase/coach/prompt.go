package coach

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

const (
	defaultPreamble = "Assume yourself as a professional communication coach and reply to the question in accordance to the context. "
	defaultQuestion = "Just give me 3 suggestions in 100 words to improve the situation in the conversation within the context in a professional context."
)

// Templates holds the coaching instructions. Questions is keyed by lower-case sentiment label.
type Templates struct {
	Preamble  string            `yaml:"preamble"`
	Default   string            `yaml:"default"`
	Questions map[string]string `yaml:"questions"`
}

// DefaultTemplates returns the built-in instruction set
func DefaultTemplates() *Templates {
	improveMood := "Just give me 3 suggestions in 100 words relating to the context to improve the mood of the speaker in a professional context."
	return &Templates{
		Preamble: defaultPreamble,
		Default:  defaultQuestion,
		Questions: map[string]string{
			"joy":      "Praise me in 100 words relating to the context that I'm doing good in that professional conversation.",
			"surprise": "Just give me 3 general suggestions in 100 words to retain the interest of the speaker created with reference to the professional context.",
			"fear":     "Just give me 3 suggestions in 100 words relating to the context to ease the situation of the speaker in a professional context.",
			"anger":    "Just give me 3 suggestions in 100 words relating to the context to defuse the situation in a professional context.",
			"disgust":  improveMood,
			"sadness":  improveMood,
		},
	}
}

// LoadTemplates overlays the YAML file at path on the built-in templates.
// An empty path returns the defaults; empty entries in the file keep the default text.
func LoadTemplates(path string) (*Templates, error) {
	t := DefaultTemplates()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse templates file: %w", err)
	}

	if override.Preamble != "" {
		t.Preamble = override.Preamble
	}
	if override.Default != "" {
		t.Default = override.Default
	}
	for label, question := range override.Questions {
		sentiment, ok := entities.ParseSentiment(label)
		if !ok {
			return nil, fmt.Errorf("templates file: unknown sentiment %q", label)
		}
		if question != "" {
			t.Questions[strings.ToLower(sentiment.String())] = question
		}
	}
	return t, nil
}

// Question selects the instruction for a sentiment; unknown labels, including "", get the default
func (t *Templates) Question(sentiment string) string {
	if q, ok := t.Questions[strings.ToLower(strings.TrimSpace(sentiment))]; ok {
		return q
	}
	return t.Default
}

// Build interpolates the context into the instruction selected by sentiment
func (t *Templates) Build(sentiment, context string) string {
	return t.Preamble + "Context: " + context + "Question: " + t.Question(sentiment) + " Answer:"
}

// ParseWire splits the legacy "<q>context (label)<q>" body into context and label.
// The outer characters are stripped, the label runs from the last "(" to the final character,
// and the context is the whole stripped value.
func ParseWire(body string) (context, label string, err error) {
	if len(body) < 2 {
		return "", "", entities.ErrMalformedWire
	}
	stripped := body[1 : len(body)-1]

	open := strings.LastIndex(stripped, "(")
	if open < 0 || len(stripped) == 0 {
		return "", "", entities.ErrMalformedWire
	}

	label = ""
	if open+1 < len(stripped)-1 {
		label = stripped[open+1 : len(stripped)-1]
	}
	label = strings.TrimRight(strings.TrimSpace(label), ").")
	return stripped, label, nil
}
