package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/acceptor/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every check at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCheckStart: func(ctx context.Context, ev *domain.CheckEvent) {
			logger.DebugContext(ctx, "check started", "machine", ev.Machine, "kind", ev.Kind, "input", ev.Input)
		},
		OnCheckEnd: func(ctx context.Context, ev *domain.CheckEvent) {
			if ev.Outcome == nil {
				return
			}
			attrs := []any{
				"machine", ev.Machine,
				"verdict", ev.Outcome.Verdict,
				"steps", ev.Outcome.Steps,
				"duration", ev.Outcome.Duration,
			}
			if err := ev.Outcome.Err(); err != nil {
				attrs = append(attrs, "err", err)
			}
			logger.DebugContext(ctx, "check ended", attrs...)
		},
	}
}

// Combine merges hook sets; each callback runs in the order given.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, ends []func(context.Context, *domain.CheckEvent)
	for _, s := range sets {
		if s.OnCheckStart != nil {
			starts = append(starts, s.OnCheckStart)
		}
		if s.OnCheckEnd != nil {
			ends = append(ends, s.OnCheckEnd)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnCheckStart = func(ctx context.Context, ev *domain.CheckEvent) {
			for _, f := range starts {
				f(ctx, ev)
			}
		}
	}
	if len(ends) > 0 {
		out.OnCheckEnd = func(ctx context.Context, ev *domain.CheckEvent) {
			for _, f := range ends {
				f(ctx, ev)
			}
		}
	}
	return out
}
