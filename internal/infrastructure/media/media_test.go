package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// fakeFFmpeg writes a shell script standing in for the transcoder binary
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}

const copyInputToOutput = `in=""; prev=""; last=""
for a in "$@"; do
  if [ "$prev" = "-i" ]; then in="$a"; fi
  prev="$a"; last="$a"
done
cat "$in" > "$last"`

func TestTranscoderArgs(t *testing.T) {
	tr := NewTranscoder(&config.MediaConfig{VideoCodec: "libx264", AudioCodec: "aac"}, nil)
	got := tr.Args("in.webm", "out.mp4")
	want := []string{"-y", "-i", "in.webm", "-c:v", "libx264", "-c:a", "aac", "out.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
}

func TestTranscode_Success(t *testing.T) {
	bin := fakeFFmpeg(t, copyInputToOutput)
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	defer ws.Cleanup()

	in, _, err := ws.SaveUpload(strings.NewReader("recording"), "clip.WEBM")
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}
	if filepath.Base(in) != "input.webm" {
		t.Fatalf("unexpected input name %s", in)
	}

	out := ws.Path("normalized.mp4")
	tr := NewTranscoder(&config.MediaConfig{FFmpegPath: bin, VideoCodec: "libx264", AudioCodec: "aac"}, nil)
	if err := tr.Transcode(context.Background(), in, out); err != nil {
		t.Fatalf("transcode: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "recording" {
		t.Fatalf("unexpected output %q (%v)", data, err)
	}
}

func TestTranscode_NonZeroExit(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "Invalid data found when processing input" >&2; exit 3`)
	tr := NewTranscoder(&config.MediaConfig{FFmpegPath: bin}, nil)

	err := tr.Transcode(context.Background(), "in.webm", filepath.Join(t.TempDir(), "out.mp4"))
	var te *TranscodeError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranscodeError, got %v", err)
	}
	if te.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", te.ExitCode)
	}
	if !strings.Contains(te.Stderr, "Invalid data") {
		t.Fatalf("stderr not captured: %q", te.Stderr)
	}
}

func TestWorkspacesAreIsolated(t *testing.T) {
	root := t.TempDir()
	a, err := NewWorkspace(root)
	if err != nil {
		t.Fatalf("workspace a: %v", err)
	}
	b, err := NewWorkspace(root)
	if err != nil {
		t.Fatalf("workspace b: %v", err)
	}

	if a.Dir == b.Dir || a.Path("input.webm") == b.Path("input.webm") {
		t.Fatal("workspaces must not share paths")
	}

	if err := a.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(a.Dir); !os.IsNotExist(err) {
		t.Fatal("workspace directory should be removed")
	}
	if _, err := os.Stat(b.Dir); err != nil {
		t.Fatal("cleanup of one workspace must not touch another")
	}
}
