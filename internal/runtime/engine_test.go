package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/acceptor/internal/runtime"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheck_NilAutomaton(t *testing.T) {
	var out domain.Outcome
	assert.NotPanics(t, func() { out = runtime.Check(context.Background(), nil, "a") })

	assert.Equal(t, domain.VerdictRejected, out.Verdict)
	assert.Equal(t, runtime.ReasonUnsupported, out.Reason)
	assert.ErrorIs(t, out.Err(), domain.ErrUnsupportedAutomaton)
	assert.Empty(t, out.Trace)
}
