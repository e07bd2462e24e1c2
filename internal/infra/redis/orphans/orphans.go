package infra_redis_orphans

import (
	"context"

	"github.com/go-redis/redis"
)

// Driver is a Redis set of blob keys whose deletion failed and must be retried.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Add(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]interface{}, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	return d.client.WithContext(ctx).SAdd(d.key, members...).Err()
}

// Pop removes and returns up to n keys.
func (d *Driver) Pop(ctx context.Context, n int64) ([]string, error) {
	keys, err := d.client.WithContext(ctx).SPopN(d.key, n).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return keys, nil
}
