package coach

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	f := NewFormatter()

	cases := []struct {
		in       string
		wantText string
		wantHTML string
	}{
		{"**bold** text", "bold text", "<strong>bold</strong>"},
		{"1. Listen\n2. Pause", "Listen\nPause", "<ol>"},
		{"Tom & Jerry", "Tom & Jerry", "&amp;"},
		{"\n\n  plain  \n", "plain", "<p>plain</p>"},
	}

	for _, tc := range cases {
		text, html, err := f.Format(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if text != tc.wantText {
			t.Errorf("%q: text %q, want %q", tc.in, text, tc.wantText)
		}
		if !strings.Contains(html, tc.wantHTML) {
			t.Errorf("%q: html %q missing %q", tc.in, html, tc.wantHTML)
		}
	}
}

func TestFormat_Empty(t *testing.T) {
	text, html, err := NewFormatter().Format("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" || html != "" {
		t.Fatalf("expected empty output, got %q / %q", text, html)
	}
}
