package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// TranscodeError carries the exit status and the tail of ffmpeg's stderr
type TranscodeError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d: %s", e.ExitCode, e.Stderr)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// Transcoder normalizes browser recordings into a fixed codec pair
type Transcoder struct {
	binary     string
	videoCodec string
	audioCodec string
	logger     *zap.Logger
}

// NewTranscoder creates a transcoder from media config
func NewTranscoder(cfg *config.MediaConfig, logger *zap.Logger) *Transcoder {
	binary := cfg.FFmpegPath
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Transcoder{
		binary:     binary,
		videoCodec: cfg.VideoCodec,
		audioCodec: cfg.AudioCodec,
		logger:     logger,
	}
}

// Args returns the ffmpeg argument list for in -> out
func (t *Transcoder) Args(in, out string) []string {
	args := []string{"-y", "-i", in}
	if t.videoCodec != "" {
		args = append(args, "-c:v", t.videoCodec)
	}
	if t.audioCodec != "" {
		args = append(args, "-c:a", t.audioCodec)
	}
	return append(args, out)
}

// Transcode runs ffmpeg as a blocking subprocess; a non-zero exit is a *TranscodeError
func (t *Transcoder) Transcode(ctx context.Context, in, out string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, t.Args(in, out)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &TranscodeError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   tail(stderr.String(), 512),
				Err:      err,
			}
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("media.transcode.done", zap.String("output", out))
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
