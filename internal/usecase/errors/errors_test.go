package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/pkg/ai"
)

func TestFromUpstream(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode apperrors.ErrorCode
	}{
		{"timeout", fmt.Errorf("call: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, apperrors.ErrorCode_TIMEOUT},
		{"quota", &ai.StatusError{Service: "gemini", StatusCode: 429}, http.StatusTooManyRequests, apperrors.ErrorCode_AI_QUOTA_EXCEEDED},
		{"unavailable", &ai.StatusError{Service: "gemini", StatusCode: 503}, http.StatusServiceUnavailable, apperrors.ErrorCode_AI_SERVICE_UNAVAILABLE},
		{"other", stdErrors.New("boom"), http.StatusBadGateway, apperrors.ErrorCode_AI_GENERATION_FAILED},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromUpstream("generate", tc.err, apperrors.ErrGenerationFailed)

			var appErr apperrors.AppError
			if !stdErrors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.HTTPCode != tc.wantHTTP || appErr.Code != tc.wantCode {
				t.Fatalf("got %d/%s, want %d/%s", appErr.HTTPCode, appErr.Code, tc.wantHTTP, tc.wantCode)
			}
		})
	}

	if FromUpstream("x", nil, apperrors.ErrGenerationFailed) != nil {
		t.Fatal("nil error must stay nil")
	}
}
