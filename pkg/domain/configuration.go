package domain

import "encoding/json"

// StackSnapshot is a read-only view of a pushdown stack at one step.
type StackSnapshot interface {
	// Symbols returns the stack contents, top first.
	Symbols() []Symbol
	Len() int
	String() string
}

// TapeSnapshot is a read-only view of a Turing machine tape at one step.
type TapeSnapshot interface {
	// Cells returns the written region of the tape and the position of cells[0].
	Cells() (cells []Symbol, origin int)
	// Content returns the tape with the surrounding blanks trimmed.
	Content() string
	String() string
}

// Configuration captures the progress of one search branch.
type Configuration struct {
	State State `json:"state"`

	// Remaining is the unread input (ε-NFA and PDA).
	Remaining string `json:"remaining"`

	// Position is the number of input symbols read so far (ε-NFA and PDA)
	// or the head position (DTM).
	Position int `json:"position"`

	// Stack is set for PDA configurations.
	Stack StackSnapshot `json:"-"`

	// Tape is set for DTM configurations.
	Tape TapeSnapshot `json:"-"`
}

// MarshalJSON flattens the stack and tape snapshots into strings.
func (c Configuration) MarshalJSON() ([]byte, error) {
	type plain Configuration
	aux := struct {
		plain
		Stack *string `json:"stack,omitempty"`
		Tape  *string `json:"tape,omitempty"`
	}{plain: plain(c)}
	if c.Stack != nil {
		s := c.Stack.String()
		aux.Stack = &s
	}
	if c.Tape != nil {
		s := c.Tape.String()
		aux.Tape = &s
	}
	return json.Marshal(aux)
}

// Trace is the ordered list of configurations on the reported path.
// It is diagnostic only and never influences a verdict.
type Trace []Configuration

// Last returns the final configuration of the trace.
func (t Trace) Last() (Configuration, bool) {
	if len(t) == 0 {
		return Configuration{}, false
	}
	return t[len(t)-1], true
}

// States returns the state of every configuration in order.
func (t Trace) States() []State {
	out := make([]State, len(t))
	for i, c := range t {
		out[i] = c.State
	}
	return out
}
