package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/domain"
)

// JSONHandler implements IOHandler with JSON-Lines: one input per line, as a
// JSON string or raw text, and one object per machine result.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// Event is one line written by JSONHandler.
type Event struct {
	Type    string          `json:"type"`
	Input   string          `json:"input,omitempty"`
	Machine string          `json:"machine,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Outcome *domain.Outcome `json:"outcome,omitempty"`
	Message string          `json:"message,omitempty"`
}

const (
	EventResult = "result"
	EventSystem = "system"
)

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: enc,
	}
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimRight(text, "\r\n")

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

func (h *JSONHandler) Output(ctx context.Context, input string, results []acceptor.Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, res := range results {
		out := res.Outcome
		ev := Event{
			Type:    EventResult,
			Input:   input,
			Machine: res.Machine,
			Kind:    string(res.Kind),
			Outcome: &out,
		}
		if err := h.Encoder.Encode(ev); err != nil {
			return err
		}
	}
	return nil
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(Event{Type: EventSystem, Message: msg})
}
