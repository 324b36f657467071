package ai

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

// RetryPolicy configures exponential backoff around hosted API calls
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	// MaxRetries caps the number of retries; zero means bounded by MaxElapsedTime only
	MaxRetries uint64
}

// DefaultRetryPolicy mirrors the submit policy used for transcription jobs
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 2 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxElapsedTime:  30 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		bo.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		bo.MaxInterval = p.MaxInterval
	}
	bo.MaxElapsedTime = p.MaxElapsedTime

	var b backoff.BackOff = bo
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.MaxRetries)
	}
	return backoff.WithContext(b, ctx)
}

// withRetry runs op until it succeeds, fails with a non-retryable error, or the policy gives up
func withRetry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		v, err := op()
		if err != nil && !reqcontext.IsRetryableError(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, policy.backOff(ctx))
}
