package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option adjusts the client settings parsed from the connection URL.
type Option func(*config)

type config struct {
	client        *redis.Options
	retryAttempts int
	retryInterval time.Duration
}

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) Option {
	return func(c *config) {
		c.client.PoolSize = n
	}
}

// WithTimeouts sets dial, read and write timeouts. Zero values keep the defaults.
func WithTimeouts(dial, read, write time.Duration) Option {
	return func(c *config) {
		if dial > 0 {
			c.client.DialTimeout = dial
		}
		if read > 0 {
			c.client.ReadTimeout = read
		}
		if write > 0 {
			c.client.WriteTimeout = write
		}
	}
}

// WithRetry sets how many times the initial ping is attempted and the base
// delay between attempts. The delay grows linearly.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(c *config) {
		c.retryAttempts = attempts
		c.retryInterval = interval
	}
}

// Open parses a redis:// or rediss:// URL and returns a client that has
// answered a PING.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	cfg := &config{
		client:        parsed,
		retryAttempts: 3,
		retryInterval: time.Second,
	}
	cfg.client.PoolSize = 10
	cfg.client.ConnMaxIdleTime = 10 * time.Minute
	for _, opt := range opts {
		opt(cfg)
	}

	attempts := max(cfg.retryAttempts, 1)
	for i := range attempts {
		client := redis.NewClient(cfg.client)
		pingErr := client.Ping(ctx).Err()
		if pingErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			return nil, errors.Join(ErrConnectionFailed, pingErr)
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.retryInterval):
		}
	}

	return nil, ErrConnectionFailed
}

// CloseHook adapts client.Close to a shutdown hook signature.
func CloseHook(client redis.UniversalClient) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
