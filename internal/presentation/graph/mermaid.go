package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// Overlay contains the path of one check to highlight on the diagram.
type Overlay struct {
	Visited []domain.State
	Current domain.State
}

// OverlayFromTrace highlights every state of a trace, the last one as current.
func OverlayFromTrace(trace domain.Trace) *Overlay {
	last, ok := trace.Last()
	if !ok {
		return nil
	}
	return &Overlay{Visited: trace.States(), Current: last.State}
}

// GenerateMermaid produces a Mermaid state diagram of a machine.
// Parallel edges between the same two states share one arrow, their labels
// joined. The start state gets an entry arrow and final states an exit arrow.
func GenerateMermaid(a automaton.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction LR\n")

	for _, s := range a.States() {
		fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escapeLabel(string(s)), sanitizeMermaidID(s))
	}
	fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(a.Start()))

	type pair struct{ from, to domain.State }
	var order []pair
	labels := make(map[pair][]string)
	for _, e := range a.Edges() {
		p := pair{e.From, e.To}
		if _, seen := labels[p]; !seen {
			order = append(order, p)
		}
		labels[p] = append(labels[p], escapeLabel(e.Label))
	}
	for _, p := range order {
		fmt.Fprintf(&sb, "    %s --> %s : %s\n", sanitizeMermaidID(p.from), sanitizeMermaidID(p.to), strings.Join(labels[p], " | "))
	}

	for _, s := range a.States() {
		if a.IsFinal(s) {
			fmt.Fprintf(&sb, "    %s --> [*]\n", sanitizeMermaidID(s))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Visited {
			id := sanitizeMermaidID(s)
			if s == overlay.Current || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited\n", id)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// sanitizeMermaidID keeps letters, digits and underscores. A leading digit
// gets a prefix since Mermaid ids cannot start with one.
func sanitizeMermaidID(s domain.State) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, string(s))
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "s_" + id
	}
	return id
}

// escapeLabel replaces the characters that end a Mermaid label with entity codes.
func escapeLabel(s string) string {
	return strings.NewReplacer(`"`, "#quot;", ":", "#58;", ";", "#59;").Replace(s)
}
