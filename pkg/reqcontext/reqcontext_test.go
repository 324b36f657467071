package reqcontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestBegin_GeneratesRequestID(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "", 0)
	defer cancel()

	if RequestID(ctx) == "" {
		t.Fatal("expected a generated request id")
	}
	if _, ok := ctx.Deadline(); ok {
		t.Fatal("expected no deadline when timeout is zero")
	}
}

func TestBegin_KeepsGivenRequestID(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "req-1", time.Minute)
	defer cancel()

	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline")
	}
	if md := GetMetadata(ctx); md.StartTime.IsZero() {
		t.Fatal("expected start time to be recorded")
	}
}

func TestWithStage(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "req-2", 0)
	defer cancel()

	stageCtx, stageCancel := WithStage(ctx, "transcode", time.Millisecond)
	defer stageCancel()

	if got := Stage(stageCtx); got != "transcode" {
		t.Fatalf("expected stage transcode, got %q", got)
	}
	if got := RequestID(stageCtx); got != "req-2" {
		t.Fatalf("stage context lost request id: %q", got)
	}

	<-stageCtx.Done()
	if !IsTimeout(stageCtx.Err()) {
		t.Fatalf("expected deadline exceeded, got %v", stageCtx.Err())
	}
	if ctx.Err() != nil {
		t.Fatal("stage timeout must not cancel the parent")
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("deepgram: status 503: unavailable"), true},
		{errors.New("deepgram: status 429: slow down"), true},
		{errors.New("deepgram: status 400: bad audio"), false},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{context.Canceled, false},
	}

	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
