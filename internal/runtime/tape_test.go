package runtime

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/acceptor/internal/presentation/trace"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTape_GrowthIsLossless(t *testing.T) {
	tp := newTape('_', false, domain.Symbols("ab"))

	require.NoError(t, tp.write(5, 'c'))

	cells, origin := tp.cells()
	assert.Equal(t, "ab___c", domain.Word(cells))
	assert.Equal(t, 0, origin)
	assert.Equal(t, domain.Symbol('a'), tp.read(0))
	assert.Equal(t, domain.Symbol('b'), tp.read(1))
}

func TestTape_ReadBeyondBoundsDoesNotGrow(t *testing.T) {
	tp := newTape('_', true, domain.Symbols("ab"))

	assert.Equal(t, domain.Symbol('_'), tp.read(10))
	assert.Equal(t, domain.Symbol('_'), tp.read(-4))

	cells, _ := tp.cells()
	assert.Len(t, cells, 2)
}

func TestTape_TwoSided(t *testing.T) {
	tp := newTape('_', true, domain.Symbols("ab"))

	require.NoError(t, tp.write(-3, 'x'))
	require.NoError(t, tp.write(-1, 'y'))

	cells, origin := tp.cells()
	assert.Equal(t, "x_yab", domain.Word(cells))
	assert.Equal(t, -3, origin)
	assert.Equal(t, domain.Symbol('y'), tp.read(-1))
}

func TestTape_OneSidedBoundary(t *testing.T) {
	tp := newTape('_', false, nil)

	assert.ErrorIs(t, tp.write(-1, 'x'), errBoundary)
}

func TestTapeView_Replay(t *testing.T) {
	log := newTapeLog(newTape('_', false, domain.Symbols("01")))
	before := log.view()
	log.record(3, '1')
	after := log.view()

	assert.Equal(t, "01", before.String())
	assert.Equal(t, "01_1", after.String())
	assert.Equal(t, "01_1", after.Content())
}

func TestStack_ReplaceTopIsPersistent(t *testing.T) {
	base := newStack('Z')
	pushed := base.replaceTop(domain.Symbols("AZ"))
	popped := pushed.replaceTop(nil)

	assert.Equal(t, "Z", base.String())
	assert.Equal(t, "AZ", pushed.String())
	assert.Equal(t, "Z", popped.String())

	top, ok := pushed.top()
	require.True(t, ok)
	assert.Equal(t, domain.Symbol('A'), top)

	_, ok = base.replaceTop(nil).top()
	assert.False(t, ok)
}

func TestGuard_BranchesDoNotShare(t *testing.T) {
	var root guard
	left := root.with("a")
	right := root.with("b")

	assert.True(t, left.has("a"))
	assert.False(t, left.has("b"))
	assert.True(t, right.has("b"))
	assert.False(t, root.has("a"))
	assert.Equal(t, 0, root.len())
}

// bounce records a walk that alternates between two cells, flipping the
// symbol it writes every other step.
func bounce(steps int) (*tapeLog, domain.Trace) {
	log := newTapeLog(newTape('_', false, domain.Symbols("01")))
	tr := make(domain.Trace, 0, steps)
	for i := range steps {
		tr = append(tr, domain.Configuration{State: "q", Position: i % 2, Tape: log.view()})
		log.record(i%2, domain.Symbol('0'+rune(i/2%2)))
	}
	return log, tr
}

func TestTapeView_LongTraceRendersInLinearTime(t *testing.T) {
	const steps = 100_000
	_, tr := bounce(steps)

	started := time.Now()
	data, err := json.Marshal(tr)
	require.NoError(t, err)
	text := trace.Format(automaton.KindDTM, tr)
	elapsed := time.Since(started)

	assert.Less(t, elapsed, 5*time.Second)
	assert.Equal(t, steps, strings.Count(text, "\n")+1)
	assert.Equal(t, steps, strings.Count(string(data), `"tape":`))
	assert.Equal(t, "01", tr[0].Tape.String())
	assert.Equal(t, "10", tr[steps-1].Tape.String())
	assert.Equal(t, "01", tr[0].Tape.String(), "rendering out of order restarts the replay")
}

func TestRebase_KeepsSnapshotsAndReleasesEarlierWrites(t *testing.T) {
	_, tr := bounce(10)
	want := make([]string, 0, 4)
	for _, c := range tr[6:] {
		want = append(want, c.Tape.String())
	}

	tail := append(domain.Trace(nil), tr[6:]...)
	rebase(tail)

	got := make([]string, 0, 4)
	for _, c := range tail {
		got = append(got, c.Tape.String())
	}
	assert.Equal(t, want, got)
	v := tail[0].Tape.(tapeView)
	assert.Equal(t, 0, v.n)
	assert.Len(t, v.log.writes, 4)
}
