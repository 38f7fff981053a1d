package runtime

import (
	"errors"
	"strings"
	"sync"

	"github.com/aretw0/acceptor/pkg/domain"
)

var errBoundary = errors.New("head moved off the left end of a one-sided tape")

// tape is a blank filled, integer indexed tape. Reading outside the written
// region returns blank without growing it; writing grows it with blanks.
type tape struct {
	blank    domain.Symbol
	twoSided bool
	right    []domain.Symbol // positions 0, 1, 2, ...
	left     []domain.Symbol // positions -1, -2, ...
}

func newTape(blank domain.Symbol, twoSided bool, initial []domain.Symbol) *tape {
	return &tape{
		blank:    blank,
		twoSided: twoSided,
		right:    append([]domain.Symbol(nil), initial...),
	}
}

func (t *tape) read(pos int) domain.Symbol {
	if pos < 0 {
		i := -pos - 1
		if i >= len(t.left) {
			return t.blank
		}
		return t.left[i]
	}
	if pos >= len(t.right) {
		return t.blank
	}
	return t.right[pos]
}

func (t *tape) write(pos int, s domain.Symbol) error {
	if pos < 0 {
		if !t.twoSided {
			return errBoundary
		}
		t.left = grow(t.left, -pos-1, t.blank)
		t.left[-pos-1] = s
		return nil
	}
	t.right = grow(t.right, pos, t.blank)
	t.right[pos] = s
	return nil
}

func grow(cells []domain.Symbol, idx int, blank domain.Symbol) []domain.Symbol {
	for len(cells) <= idx {
		cells = append(cells, blank)
	}
	return cells
}

// cells returns the written region leftmost first, and the position of cells[0].
func (t *tape) cells() ([]domain.Symbol, int) {
	out := make([]domain.Symbol, 0, len(t.left)+len(t.right))
	for i := len(t.left) - 1; i >= 0; i-- {
		out = append(out, t.left[i])
	}
	out = append(out, t.right...)
	return out, -len(t.left)
}

// clone returns an independent copy of t.
func (t *tape) clone() *tape {
	return &tape{
		blank:    t.blank,
		twoSided: t.twoSided,
		right:    append([]domain.Symbol(nil), t.right...),
		left:     append([]domain.Symbol(nil), t.left...),
	}
}

// tapeWrite is one entry of a walk's write log.
type tapeWrite struct {
	pos    int
	symbol domain.Symbol
}

// tapeLog records the tape a walk starts from and every write it makes, so
// that a snapshot per step costs O(1) and is only materialized when rendered.
//
// Materialization goes through one shared cursor. Views rendered in trace
// order advance it, so rendering a whole trace replays the log once; asking
// for an earlier view restarts the cursor from base. The walker must finish
// recording before any view is rendered.
type tapeLog struct {
	base   *tape
	writes []tapeWrite

	mu     sync.Mutex
	cursor *tape
	at     int
}

func newTapeLog(base *tape) *tapeLog {
	return &tapeLog{base: base.clone()}
}

func (l *tapeLog) record(pos int, s domain.Symbol) {
	l.writes = append(l.writes, tapeWrite{pos: pos, symbol: s})
}

func (l *tapeLog) view() tapeView {
	return tapeView{log: l, n: len(l.writes)}
}

// seek moves the cursor to the tape after the first n writes. l.mu must be held.
func (l *tapeLog) seek(n int) *tape {
	if l.cursor == nil || l.at > n {
		l.cursor, l.at = l.base.clone(), 0
	}
	for ; l.at < n; l.at++ {
		w := l.writes[l.at]
		_ = l.cursor.write(w.pos, w.symbol)
	}
	return l.cursor
}

func (l *tapeLog) cells(n int) ([]domain.Symbol, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seek(n).cells()
}

// since returns a log that starts from the tape after the first n writes and
// holds only the writes that follow, so the earlier ones can be released.
func (l *tapeLog) since(n int) *tapeLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &tapeLog{
		base:   l.seek(n).clone(),
		writes: append([]tapeWrite(nil), l.writes[n:]...),
	}
}

// tapeView is the tape as it was after the first n writes of a walk.
type tapeView struct {
	log *tapeLog
	n   int
}

var _ domain.TapeSnapshot = tapeView{}

func (v tapeView) Cells() ([]domain.Symbol, int) {
	return v.log.cells(v.n)
}

func (v tapeView) Content() string {
	cells, _ := v.Cells()
	blank := v.log.base.blank.String()
	return strings.TrimRight(strings.TrimLeft(domain.Word(cells), blank), blank)
}

func (v tapeView) String() string {
	cells, _ := v.Cells()
	return domain.Word(cells)
}

// rebase points the tape views of a trace suffix at a log that starts from
// the first of them, releasing the writes made before it.
func rebase(t domain.Trace) {
	if len(t) == 0 {
		return
	}
	first, ok := t[0].Tape.(tapeView)
	if !ok {
		return
	}
	log := first.log.since(first.n)
	for i := range t {
		if v, ok := t[i].Tape.(tapeView); ok {
			t[i].Tape = tapeView{log: log, n: v.n - first.n}
		}
	}
}
