package ai

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNoSpeech is returned by a Transcriber when the API answered successfully
// but found nothing to transcribe.
var ErrNoSpeech = errors.New("no speech detected")

// StatusError is a non-2xx answer from a hosted API or model server
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Body)
}

// IsQuotaExceeded reports whether err is a rate-limit answer
func IsQuotaExceeded(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// IsUnavailable reports whether err is a 502/503 answer from the upstream
func IsUnavailable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusServiceUnavailable || se.StatusCode == http.StatusBadGateway
}

// newStatusError drains at most 2KB of the body for the error message
func newStatusError(service string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &StatusError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
