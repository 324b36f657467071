package coach

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Formatter turns model markdown into an HTML rendering and a plain-text rendering
type Formatter struct {
	md goldmark.Markdown
}

func NewFormatter() *Formatter {
	return &Formatter{md: goldmark.New()}
}

// Format returns (plain text, html). The plain text is the concatenated text nodes of the
// rendered HTML with surrounding whitespace trimmed.
func (f *Formatter) Format(markdown string) (string, string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(markdown), &buf); err != nil {
		return "", "", fmt.Errorf("failed to render markdown: %w", err)
	}
	rendered := buf.String()

	text, err := htmlText(rendered)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(text), rendered, nil
}

func htmlText(doc string) (string, error) {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("failed to read rendered html: %w", err)
			}
			return sb.String(), nil
		case html.TextToken:
			sb.WriteString(z.Token().Data)
		}
	}
}
