package coach

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

func TestBuild_Joy(t *testing.T) {
	got := DefaultTemplates().Build("Joy", "The meeting went well")
	want := "Assume yourself as a professional communication coach and reply to the question in accordance to the context. " +
		"Context: The meeting went well" +
		"Question: Praise me in 100 words relating to the context that I'm doing good in that professional conversation." +
		" Answer:"
	if got != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestQuestion_Selection(t *testing.T) {
	tpl := DefaultTemplates()
	cases := []struct {
		label string
		want  string
	}{
		{"joy", "Praise me in 100 words"},
		{"SURPRISE", "retain the interest of the speaker"},
		{" Fear ", "ease the situation of the speaker"},
		{"Anger", "defuse the situation"},
		{"Disgust", "improve the mood of the speaker"},
		{"sadness", "improve the mood of the speaker"},
		{"Neutral", "improve the situation in the conversation"},
		{"bored", "improve the situation in the conversation"},
		{"", "improve the situation in the conversation"},
	}

	for _, tc := range cases {
		if got := tpl.Question(tc.label); !strings.Contains(got, tc.want) {
			t.Errorf("label %q: got %q, want it to contain %q", tc.label, got, tc.want)
		}
	}
}

func TestParseWire(t *testing.T) {
	cases := []struct {
		body    string
		context string
		label   string
	}{
		{`"The meeting went well (Joy)."`, "The meeting went well (Joy).", "Joy"},
		{`"I was late (Sadness)"`, "I was late (Sadness)", "Sadness"},
		{`"a (b) then (anger)."`, "a (b) then (anger).", "anger"},
		{`"nothing said ()."`, "nothing said ().", ""},
	}

	for _, tc := range cases {
		ctx, label, err := ParseWire(tc.body)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.body, err)
		}
		if ctx != tc.context || label != tc.label {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tc.body, ctx, label, tc.context, tc.label)
		}
	}
}

func TestParseWire_Malformed(t *testing.T) {
	for _, body := range []string{"", "x", `""`, `"no label here"`} {
		if _, _, err := ParseWire(body); !errors.Is(err, entities.ErrMalformedWire) {
			t.Errorf("%q: expected ErrMalformedWire, got %v", body, err)
		}
	}
}

func TestLoadTemplates_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := "preamble: \"Be brief. \"\nquestions:\n  Joy: \"Cheer me on.\"\n  anger: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tpl, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Preamble != "Be brief. " {
		t.Fatalf("preamble not overridden: %q", tpl.Preamble)
	}
	if tpl.Question("joy") != "Cheer me on." {
		t.Fatalf("joy not overridden: %q", tpl.Question("joy"))
	}
	if !strings.Contains(tpl.Question("anger"), "defuse the situation") {
		t.Fatalf("empty override should keep the default, got %q", tpl.Question("anger"))
	}
	if !strings.Contains(tpl.Default, "improve the situation") {
		t.Fatalf("default question changed: %q", tpl.Default)
	}
}

func TestLoadTemplates_UnknownSentiment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("questions:\n  bored: \"x\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTemplates(path); err == nil {
		t.Fatal("expected error for unknown sentiment")
	}
}

func TestLoadTemplates_EmptyPath(t *testing.T) {
	tpl, err := LoadTemplates("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Preamble != defaultPreamble {
		t.Fatalf("unexpected preamble %q", tpl.Preamble)
	}
}
