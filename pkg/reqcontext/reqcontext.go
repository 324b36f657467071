package reqcontext

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRequestID KeyContext = "request_id"
	keyStage     KeyContext = "stage"
	keyStartTime KeyContext = "start_time"
)

// Metadata holds what is known about the request a context belongs to
type Metadata struct {
	RequestID string
	Stage     string
	StartTime time.Time
}

// Begin derives a request context carrying an ID and start time.
// An empty requestID gets a freshly generated one; a non-positive timeout means no deadline.
func Begin(parent context.Context, requestID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// WithStage bounds one pipeline stage (transcode, classify, transcribe, generate, ...) by its own timeout
func WithStage(ctx context.Context, stage string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithValue(ctx, keyStage, stage)
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// RequestID extracts the request ID from context
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// Stage extracts the current stage name from context
func Stage(ctx context.Context) string {
	stage, _ := ctx.Value(keyStage).(string)
	return stage
}

// Elapsed returns the time since Begin, or zero when unknown
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetMetadata extracts all request metadata from context
func GetMetadata(ctx context.Context) *Metadata {
	start, _ := ctx.Value(keyStartTime).(time.Time)
	return &Metadata{
		RequestID: RequestID(ctx),
		Stage:     Stage(ctx),
		StartTime: start,
	}
}

// IsTimeout reports whether err was caused by an expired deadline
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "context deadline exceeded")
}

// IsRetryableError checks if an error from a hosted API should trigger a retry.
// Cancellation and expired deadlines are final: the caller has given up.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "unexpected eof") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "status 429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
