package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/redis"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := redis.Open(ctx, "")
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	for _, url := range []string{
		"http://localhost:6379",
		"localhost:6379",
		"postgres://localhost:6379",
	} {
		t.Run("rejects "+url, func(t *testing.T) {
			t.Parallel()

			client, err := redis.Open(ctx, url)
			require.ErrorIs(t, err, redis.ErrFailedToParseURL)
			require.Nil(t, client)
		})
	}

	t.Run("malformed redis URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(ctx, "redis://localhost:6379/notadb")
		require.ErrorIs(t, err, redis.ErrFailedToParseURL)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
		redis.WithRetry(2, 10*time.Millisecond),
		redis.WithTimeouts(100*time.Millisecond, 0, 0),
	)
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
	require.Nil(t, client)
}
