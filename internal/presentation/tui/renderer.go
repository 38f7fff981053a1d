package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/acceptor/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

var verdictColors = map[domain.Verdict]string{
	domain.VerdictAccepted:       "#22c55e",
	domain.VerdictRejected:       "#ef4444",
	domain.VerdictMalformedInput: "#eab308",
	domain.VerdictCancelled:      "#d946ef",
}

// Colorize paints text in the color of verdict v, when the terminal supports it.
func Colorize(v domain.Verdict, text string) string {
	color, ok := verdictColors[v]
	if !ok {
		return text
	}
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
