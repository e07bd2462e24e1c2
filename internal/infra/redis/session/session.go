package infra_session_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver stores admin sessions as namespaced keys with a TTL.
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

func (d *Driver) Set(token string, value string, ttl time.Duration) error {
	return d.client.Set(d.getFullKey(token), value, ttl).Err()
}

// Get returns "" for unknown or expired tokens.
func (d *Driver) Get(token string) (string, error) {
	val, err := d.client.Get(d.getFullKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (d *Driver) Delete(token string) error {
	return d.client.Del(d.getFullKey(token)).Err()
}

func (d *Driver) getFullKey(token string) string {
	if d.key != "" {
		return d.key + ":" + token
	}
	return token
}
