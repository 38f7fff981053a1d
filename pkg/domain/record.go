package domain

import "time"

// Record is one entry of the check history.
type Record struct {
	ID        string        `json:"id"`
	Machine   string        `json:"machine"`
	Kind      string        `json:"kind"`
	Input     string        `json:"input"`
	Verdict   Verdict       `json:"verdict"`
	Steps     int           `json:"steps"`
	Reason    string        `json:"reason,omitempty"`
	Duration  time.Duration `json:"duration"`
	CheckedAt time.Time     `json:"checked_at"`
}

// NewRecord summarizes an outcome for the history.
func NewRecord(id, machine, kind, input string, out Outcome) Record {
	return Record{
		ID:        id,
		Machine:   machine,
		Kind:      kind,
		Input:     input,
		Verdict:   out.Verdict,
		Steps:     out.Steps,
		Reason:    out.Reason,
		Duration:  out.Duration,
		CheckedAt: time.Now().UTC(),
	}
}
