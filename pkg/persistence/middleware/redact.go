package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
)

// Mask replaces every redacted part of a stored input.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ResultStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the parts of each
// input matching any of the patterns before the record is stored.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ResultStore) ports.ResultStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, rec domain.Record) error {
	for _, p := range m.patterns {
		rec.Input = p.ReplaceAllLiteralString(rec.Input, Mask)
	}
	return m.next.Save(ctx, rec)
}

func (m *redactMiddleware) List(ctx context.Context, machine string, limit int) ([]domain.Record, error) {
	return m.next.List(ctx, machine, limit)
}

func (m *redactMiddleware) Delete(ctx context.Context, machine string) error {
	return m.next.Delete(ctx, machine)
}
