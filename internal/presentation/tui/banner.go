package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the techseo ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Subtle gradient-like color scheme (Teal/Sky)
	lines := []struct{ text, color string }{
		{" _            _                  ", "#2dd4bf"},
		{"| |_ ___  ___| |__  ___  ___  ___ ", "#22d3ee"},
		{"| __/ _ \\/ __| '_ \\/ __|/ _ \\/ _ \\", "#38bdf8"},
		{"| ||  __/ (__| | | \\__ \\  __/ (_) |", "#60a5fa"},
		{" \\__\\___|\\___|_| |_|___/\\___|\\___/ ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
