package queue_encoder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/humanbelnik/catalog/internal/model"
	usecase_video "github.com/humanbelnik/catalog/internal/usecase/video"
)

const (
	defaultRetryDelay  = time.Second
	defaultMaxAttempts = 5
)

// ResultSource delivers encoder results. Requeue puts a result back for a
// later attempt; Park moves it aside once attempts run out.
type ResultSource interface {
	Next(ctx context.Context) (*model.EncodeResult, error)
	Requeue(ctx context.Context, res model.EncodeResult) error
	Park(ctx context.Context, res model.EncodeResult) error
}

type Usecase interface {
	UpdateMediaStatus(ctx context.Context, in usecase_video.MediaStatusInput) (*usecase_video.Output, error)
}

// Consumer applies encoder results to videos.
type Consumer struct {
	source      ResultSource
	uc          Usecase
	logger      *slog.Logger
	retryDelay  time.Duration
	maxAttempts int
}

type Option func(*Consumer)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Consumer) {
		c.logger = logger
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(c *Consumer) {
		c.retryDelay = d
	}
}

func WithMaxAttempts(n int) Option {
	return func(c *Consumer) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func New(source ResultSource, uc Usecase, opts ...Option) *Consumer {
	c := &Consumer{
		source:      source,
		uc:          uc,
		logger:      slog.Default(),
		retryDelay:  defaultRetryDelay,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run blocks until ctx is cancelled. Results the catalog rejects are
// logged and dropped. Results that failed for any other reason, or lost a
// version race, are requeued until maxAttempts and then parked.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("encoder consumer started")
	defer c.logger.Info("encoder consumer stopped")

	for ctx.Err() == nil {
		res, err := c.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to read encoder result", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryDelay):
			}
			continue
		}
		if res == nil {
			continue
		}
		if c.handle(ctx, res) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryDelay):
			}
		}
	}
}

// handle applies one result and reports whether it was handed back for
// another attempt.
func (c *Consumer) handle(ctx context.Context, res *model.EncodeResult) bool {
	res.Attempts++
	_, err := c.uc.UpdateMediaStatus(ctx, usecase_video.MediaStatusInput{
		VideoID:      res.VideoID,
		Kind:         res.Kind,
		Status:       res.Status,
		EncodedPath:  res.EncodedPath,
		ErrorMessage: res.ErrorMessage,
	})
	switch {
	case err == nil:
		c.logger.Debug("encoder result applied",
			slog.String("video_id", res.VideoID.String()),
			slog.String("status", string(res.Status)))
		return false
	case model.IsDomain(err) && !errors.Is(err, model.ErrConflict):
		c.logger.Warn("encoder result rejected",
			slog.String("video_id", res.VideoID.String()),
			slog.String("status", string(res.Status)),
			slog.String("error", err.Error()))
		return false
	}

	c.logger.Error("failed to apply encoder result",
		slog.String("video_id", res.VideoID.String()),
		slog.Int("attempts", res.Attempts),
		slog.String("error", err.Error()))
	c.retry(context.WithoutCancel(ctx), *res)
	return true
}

func (c *Consumer) retry(ctx context.Context, res model.EncodeResult) {
	if res.Attempts < c.maxAttempts {
		err := c.source.Requeue(ctx, res)
		if err == nil {
			return
		}
		c.logger.Error("failed to requeue encoder result",
			slog.String("video_id", res.VideoID.String()),
			slog.String("error", err.Error()))
	}

	if err := c.source.Park(ctx, res); err != nil {
		c.logger.Error("encoder result lost",
			slog.String("video_id", res.VideoID.String()),
			slog.String("status", string(res.Status)),
			slog.String("error", err.Error()))
		return
	}
	c.logger.Warn("encoder result parked",
		slog.String("video_id", res.VideoID.String()),
		slog.Int("attempts", res.Attempts))
}
