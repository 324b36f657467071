package errors

import (
	stdErrors "errors"

	apperrors "github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/pkg/ai"
	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

// ErrEmptyUpload is wrapped into ErrInvalidMedia for zero-byte uploads
var ErrEmptyUpload = stdErrors.New("uploaded file is empty")

// FromUpstream maps a failed call to a hosted API or sidecar onto an AppError.
// Timeouts, quota and availability answers get their own codes; anything else goes through fallback.
func FromUpstream(stage string, err error, fallback func(error) apperrors.AppError) error {
	if err == nil {
		return nil
	}

	var appErr apperrors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case reqcontext.IsTimeout(err):
		return apperrors.ErrUpstreamTimeout(stage, err)
	case ai.IsQuotaExceeded(err):
		e := apperrors.ErrAIQuotaExceeded(stage)
		e.Raw = err
		return e
	case ai.IsUnavailable(err):
		e := apperrors.ErrAIServiceUnavailable(stage)
		e.Raw = err
		return e
	default:
		return fallback(err)
	}
}
