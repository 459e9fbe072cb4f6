package tui

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/aretw0/techseo/pkg/crosspost"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour,
// wrapped at width columns (0 keeps glamour's default).
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Preview writes a cross-post rendering for a terminal. Long-form platforms
// are rendered as markdown; short-form ones are printed as is with a usage
// line against their limit.
func Preview(w io.Writer, platform crosspost.Platform, content string, limit int, render func(string) (string, error)) error {
	if platform.Long() {
		out, err := render(content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	fmt.Fprintln(w, content)
	fmt.Fprintln(w)
	fmt.Fprintln(w, Usage(w, utf8.RuneCountInString(content), limit))
	return nil
}

// Usage formats "n/limit characters", colored when n reaches the limit.
func Usage(w io.Writer, n, limit int) string {
	out := termenv.NewOutput(w)
	text := fmt.Sprintf("%d/%d characters", n, limit)
	if limit > 0 && n >= limit {
		return out.String(text).Foreground(out.Color("#fb7185")).String()
	}
	return out.String(text).Faint().String()
}
