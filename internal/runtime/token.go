package runtime

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
)

// token is the cancellation token of one check. Engines call tick once per
// configuration they explore.
type token struct {
	ctx   context.Context
	done  <-chan struct{}
	steps int
}

func newToken(ctx context.Context) *token {
	return &token{ctx: ctx, done: ctx.Done()}
}

func (t *token) tick() error {
	t.steps++
	select {
	case <-t.done:
		return &domain.CancelledError{Cause: t.ctx.Err()}
	default:
		return nil
	}
}
