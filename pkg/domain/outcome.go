package domain

import (
	"encoding/json"
	"time"
)

// Verdict is the result class of a single check.
type Verdict string

const (
	VerdictAccepted       Verdict = "accepted"
	VerdictRejected       Verdict = "rejected"
	VerdictMalformedInput Verdict = "malformed_input"
	VerdictCancelled      Verdict = "cancelled"
)

// Outcome is what every engine returns for one check.
type Outcome struct {
	Verdict Verdict `json:"verdict"`

	// Trace is the accepting path, or the deepest path explored on rejection.
	Trace Trace `json:"trace,omitempty"`

	// Omitted counts configurations dropped from the front of a Cancelled trace.
	Omitted int `json:"omitted,omitempty"`

	// Steps counts the configurations explored, across all branches.
	Steps int `json:"steps"`

	// Reason says why a rejected or cancelled check stopped.
	Reason string `json:"reason,omitempty"`

	// Symbol and Offset locate the offending input symbol (MalformedInput only).
	Symbol Symbol `json:"-"`
	Offset int    `json:"offset,omitempty"`

	Duration time.Duration `json:"duration"`

	err error
}

// Accepted reports whether the input was accepted.
func (o Outcome) Accepted() bool {
	return o.Verdict == VerdictAccepted
}

// Err returns a non-nil error for MalformedInput and Cancelled outcomes, and
// for a rejection caused by an unsupported automaton. An ordinary rejection is
// not an error.
func (o Outcome) Err() error {
	return o.err
}

// WithErr attaches the error describing a MalformedInput or Cancelled verdict.
func (o Outcome) WithErr(err error) Outcome {
	o.err = err
	return o
}

// MarshalJSON adds the offending symbol and the error text to the encoded outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	aux := struct {
		plain
		Symbol string `json:"symbol,omitempty"`
		Error  string `json:"error,omitempty"`
	}{plain: plain(o)}
	if o.Verdict == VerdictMalformedInput {
		aux.Symbol = o.Symbol.String()
	}
	if o.err != nil {
		aux.Error = o.err.Error()
	}
	return json.Marshal(aux)
}
