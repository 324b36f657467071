package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Inference errors
	ErrUnexpectedScores = errors.New("classifier returned an unexpected number of scores")
	ErrNoFrames         = errors.New("no analyzed video frames")

	// Coaching errors
	ErrMalformedWire = errors.New("malformed sentiment wire string")
)

// MissingFeatureError reports a functional column absent from the extractor output
type MissingFeatureError struct {
	Name string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("acoustic feature %q missing from extractor output", e.Name)
}
