package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/presentation/trace"
	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/domain"
)

// TextHandler implements the interactive terminal interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Color    bool
	Prompt   string
	MaxInput int

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer renders each result as markdown through renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerColor paints verdicts in color.
func WithTextHandlerColor(color bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Color = color
	}
}

// WithTextHandlerPrompt replaces the "> " prompt. An empty prompt disables it.
func WithTextHandlerPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithTextHandlerMaxInput bounds the size of one input line.
func WithTextHandlerMaxInput(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInput = n
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honor ctx while the read blocks.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			if h.Prompt != "" {
				fmt.Fprint(h.Writer, h.Prompt)
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			// Spaces can be input symbols; only the line ending is dropped.
			text := strings.TrimRight(res.text, "\r\n")

			clean, err := SanitizeInput(text, h.MaxInput)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, input string, results []acceptor.Result) error {
	for _, res := range results {
		if h.Renderer != nil {
			if rendered, err := h.Renderer(trace.Markdown(res.Machine, res.Kind, res.Outcome)); err == nil {
				fmt.Fprintln(h.Writer, strings.TrimRight(rendered, "\n"))
				continue
			}
		}
		fmt.Fprintf(h.Writer, "%s:\n%s\n", res.Machine, h.describe(res))
	}
	return nil
}

// describe renders one result in the classic wording:
// ACCEPTED or REJECTED followed by the trace, SYMBOL x REJECTED, or TIMEDOUT.
func (h *TextHandler) describe(res acceptor.Result) string {
	out := res.Outcome
	var head, body string
	switch out.Verdict {
	case domain.VerdictAccepted:
		head, body = "ACCEPTED:", trace.Format(res.Kind, out.Trace)
	case domain.VerdictRejected:
		head, body = "REJECTED!", trace.Format(res.Kind, out.Trace)
	case domain.VerdictMalformedInput:
		head = fmt.Sprintf("SYMBOL %s REJECTED", out.Symbol)
	case domain.VerdictCancelled:
		head = "TIMEDOUT!"
	default:
		head = strings.ToUpper(string(out.Verdict))
	}
	if h.Color {
		head = tui.Colorize(out.Verdict, head)
	}
	if body == "" {
		return head
	}
	return head + "\n" + body
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, ">>> %s\n", msg)
	return err
}
