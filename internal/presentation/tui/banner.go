package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the acceptor banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _  ___ ___ ___ _ __ | |_ ___  _ __", "#34d399"},
		{"  / _` |/ __/ __/ _ \\ '_ \\| __/ _ \\| '__|", "#2dd4bf"},
		{" | (_| | (_| (_|  __/ |_) | || (_) | |", "#22d3ee"},
		{"  \\__,_|\\___\\___\\___| .__/ \\__\\___/|_|", "#38bdf8"},
		{"                    |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+version).Faint())
}
