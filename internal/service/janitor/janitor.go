package service_janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type OrphanSet interface {
	Add(ctx context.Context, keys ...string) error
	Pop(ctx context.Context, n int64) ([]string, error)
}

type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Janitor retries deletion of blob keys left behind by rolled back writes.
type Janitor struct {
	orphans   OrphanSet
	storage   Deleter
	batchSize int64
	timeout   time.Duration
	logger    *slog.Logger
}

type Option func(*Janitor)

func WithLogger(logger *slog.Logger) Option {
	return func(j *Janitor) {
		j.logger = logger
	}
}

func WithTimeout(d time.Duration) Option {
	return func(j *Janitor) {
		j.timeout = d
	}
}

func New(orphans OrphanSet, storage Deleter, batchSize int64, opts ...Option) *Janitor {
	if batchSize <= 0 {
		batchSize = 50
	}
	j := &Janitor{
		orphans:   orphans,
		storage:   storage,
		batchSize: batchSize,
		timeout:   time.Minute,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Sweep deletes one batch of orphan keys. Keys that still fail are put back.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	keys, err := j.orphans.Pop(ctx, j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to pop orphan keys: %w", err)
	}

	deleted := 0
	var failed []string
	for _, k := range keys {
		if err := j.storage.Delete(ctx, k); err != nil {
			j.logger.Warn("orphan delete failed", slog.String("key", k), slog.String("error", err.Error()))
			failed = append(failed, k)
			continue
		}
		deleted++
	}

	if len(failed) > 0 {
		if err := j.orphans.Add(ctx, failed...); err != nil {
			return deleted, fmt.Errorf("failed to requeue %d orphan keys: %w", len(failed), err)
		}
	}
	return deleted, nil
}

// Schedule registers the sweep on a seconds-aware cron and starts it.
func (j *Janitor) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		n, err := j.Sweep(ctx)
		if err != nil {
			j.logger.Error("janitor sweep failed", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			j.logger.Info("janitor removed orphan assets", slog.Int("count", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
