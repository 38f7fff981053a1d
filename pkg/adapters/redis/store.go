package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/acceptor/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ResultStore using Redis.
// Each machine's history is a list, newest record at the head.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	limit  int
}

type Option func(*Store)

// WithTTL sets the expiration of a machine's history, refreshed on every save.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLimit caps the records kept per machine.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "acceptor:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(machine string) string {
	return s.prefix + "history:" + machine
}

func (s *Store) indexKey() string {
	return s.prefix + "machines"
}

// Save pushes the record onto its machine's history.
func (s *Store) Save(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := s.key(rec.Machine)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	if s.limit > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.limit-1))
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	pipe.SAdd(ctx, s.indexKey(), rec.Machine)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, machine string, limit int) ([]domain.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	vals, err := s.client.LRange(ctx, s.key(machine), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}

	records := make([]domain.Record, 0, len(vals))
	for _, v := range vals {
		var rec domain.Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the history of a machine.
func (s *Store) Delete(ctx context.Context, machine string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(machine))
	pipe.SRem(ctx, s.indexKey(), machine)

	_, err := pipe.Exec(ctx)
	return err
}

// Machines returns the machines that have a history.
func (s *Store) Machines(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return names, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
