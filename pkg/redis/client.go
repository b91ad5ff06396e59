// Package redis holds the process-wide client backing the idempotency replay
// cache. main initializes it once at startup; the middleware reaches it
// through the package-level helpers.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the reachability check at startup
const pingTimeout = 5 * time.Second

var client *redis.Client

// Init connects using a redis:// URL and verifies the server is reachable
// before publishing the client. A non-empty password overrides whatever the
// URL carries.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the underlying client; tests point it at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// Set stores a value under key for the given retention period.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value stored under key.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del drops a key; used to release replay slots after failed requests.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX stores the value only when the key is absent and reports whether this
// caller won; backs the in-flight request lock.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
