// Package trace renders search traces in the layouts used by the command line tools.
package trace

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// Format renders a trace for the given machine kind.
//
//	ε-NFA: (state, remaining) ⊢
//	PDA:   (state, remaining, stack) ⊢
//	DTM:   state | head | tape
//
// Columns other than the state are padded to a common width. Empty input and
// empty stacks print as ɛ.
func Format(kind automaton.Kind, t domain.Trace) string {
	if len(t) == 0 {
		return ""
	}
	if kind == automaton.KindDTM {
		return formatTape(t)
	}

	rows := make([][]string, len(t))
	for i, c := range t {
		row := []string{string(c.State), orEpsilon(c.Remaining)}
		if kind == automaton.KindPDA {
			stack := ""
			if c.Stack != nil {
				stack = c.Stack.String()
			}
			row = append(row, orEpsilon(stack))
		}
		rows[i] = row
	}
	widths := columnWidths(rows)

	lines := make([]string, len(rows))
	for i, row := range rows {
		cols := []string{row[0]}
		for j := 1; j < len(row); j++ {
			cols = append(cols, padLeft(row[j], widths[j]))
		}
		lines[i] = "(" + strings.Join(cols, ", ") + ")"
	}
	return strings.Join(lines, " ⊢\n")
}

func formatTape(t domain.Trace) string {
	rows := make([][]string, len(t))
	for i, c := range t {
		tape := ""
		if c.Tape != nil {
			tape = c.Tape.String()
		}
		rows[i] = []string{string(c.State), strconv.Itoa(c.Position), tape}
	}
	widths := columnWidths(rows)

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.TrimRight(fmt.Sprintf("%s | %s | %s",
			row[0], padRight(row[1], widths[1]), padRight(row[2], widths[2])), " ")
	}
	return strings.Join(lines, "\n")
}

// Markdown renders one check as a small markdown section, for terminals that
// render markdown.
func Markdown(machine string, kind automaton.Kind, out domain.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s `%s`\n\n", machine, kind)
	fmt.Fprintf(&sb, "**%s** in %d steps", out.Verdict, out.Steps)
	if out.Reason != "" {
		fmt.Fprintf(&sb, " (%s)", out.Reason)
	}
	sb.WriteString("\n")
	if body := Format(kind, out.Trace); body != "" {
		sb.WriteString("\n```\n" + body + "\n```\n")
	}
	return sb.String()
}

func orEpsilon(s string) string {
	if s == "" {
		return domain.EpsilonGlyph
	}
	return s
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for j, col := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], utf8.RuneCountInString(col))
		}
	}
	return widths
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", width-utf8.RuneCountInString(s)) + s
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}
