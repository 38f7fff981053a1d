package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/adapters/redis"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/observability"
	"github.com/aretw0/acceptor/pkg/persistence/middleware"
	"github.com/aretw0/acceptor/pkg/ports"
)

// engineParams collects what createEngine needs beyond the descriptor path.
type engineParams struct {
	cfg    Config
	logger *slog.Logger
	hooks  []domain.LifecycleHooks
	// memoryHistory keeps results in memory when Redis is not configured.
	memoryHistory bool
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(ctx context.Context, path string, p engineParams) (*acceptor.Engine, error) {
	opts := []acceptor.Option{
		acceptor.WithLogger(p.logger),
		acceptor.WithCheckTimeout(p.cfg.Timeout),
		acceptor.WithLifecycleHooks(observability.Combine(
			append([]domain.LifecycleHooks{observability.LogHooks(p.logger)}, p.hooks...)...,
		)),
	}
	if symbols, ok := p.cfg.IgnoredSymbols(); ok {
		opts = append(opts, acceptor.WithIgnorable(symbols...))
	}

	store, err := createStore(ctx, p.cfg, p.memoryHistory)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, acceptor.WithResultStore(store))
	}

	engine, err := acceptor.New(path, opts...)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// createStore returns the Redis store when configured, a memory store when
// inMemory is set, and nil otherwise. The history middlewares wrap it.
func createStore(ctx context.Context, cfg Config, inMemory bool) (ports.ResultStore, error) {
	store, err := baseStore(ctx, cfg, inMemory)
	if err != nil || store == nil {
		return store, err
	}
	mws, err := cfg.History.Middlewares()
	if err != nil {
		closeStore(store)
		return nil, err
	}
	return storeCloser{ResultStore: middleware.Chain(store, mws...), base: store}, nil
}

// storeCloser keeps the base store reachable for Close once middlewares wrap it.
type storeCloser struct {
	ports.ResultStore
	base ports.ResultStore
}

func (s storeCloser) Close() error {
	if c, ok := s.base.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func closeStore(store ports.ResultStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}

func baseStore(ctx context.Context, cfg Config, inMemory bool) (ports.ResultStore, error) {
	if cfg.Redis.Addr != "" {
		opts := []redis.Option{redis.WithLimit(cfg.History.Limit)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
		}
		return store, nil
	}
	if inMemory {
		return memory.NewStore(memory.WithLimit(cfg.History.Limit)), nil
	}
	return nil, nil
}
