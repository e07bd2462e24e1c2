package infra_redis_encoder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/catalog/internal/model"
)

// Queue exchanges work with the external encoder through Redis lists:
// requests are LPUSHed, results are BRPOPed. Results that keep failing end
// up in the dead list.
type Queue struct {
	client      *redis.Client
	requestKey  string
	resultKey   string
	deadKey     string
	pollTimeout time.Duration
}

func New(client *redis.Client, requestKey, resultKey, deadKey string, pollTimeout time.Duration) *Queue {
	return &Queue{
		client:      client,
		requestKey:  requestKey,
		resultKey:   resultKey,
		deadKey:     deadKey,
		pollTimeout: pollTimeout,
	}
}

func (q *Queue) Publish(ctx context.Context, req model.EncodeRequest) error {
	if err := q.push(ctx, q.requestKey, req); err != nil {
		return fmt.Errorf("failed to publish encode request: %w", err)
	}
	return nil
}

// Next blocks up to the poll timeout for an encoder result. It returns
// (nil, nil) when nothing arrived in time.
func (q *Queue) Next(ctx context.Context) (*model.EncodeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vals, err := q.client.WithContext(ctx).BRPop(q.pollTimeout, q.resultKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop encode result: %w", err)
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of %d elements", len(vals))
	}

	var res model.EncodeResult
	if err := json.Unmarshal([]byte(vals[1]), &res); err != nil {
		return nil, fmt.Errorf("failed to decode encode result %q: %w", vals[1], err)
	}
	return &res, nil
}

// Requeue puts the result at the far end of the result list, behind the ones
// already waiting.
func (q *Queue) Requeue(ctx context.Context, res model.EncodeResult) error {
	if err := q.push(ctx, q.resultKey, res); err != nil {
		return fmt.Errorf("failed to requeue encode result: %w", err)
	}
	return nil
}

func (q *Queue) Park(ctx context.Context, res model.EncodeResult) error {
	if err := q.push(ctx, q.deadKey, res); err != nil {
		return fmt.Errorf("failed to park encode result: %w", err)
	}
	return nil
}

func (q *Queue) push(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return q.client.WithContext(ctx).LPush(key, payload).Err()
}
