// Package redis opens the go-redis client backing the Redis session store.
//
// [Open] validates the URL scheme, applies pool and timeout options and
// retries the initial PING before handing the client back:
//
//	client, err := redis.Open(ctx, cfg.String("session.redis_url", ""),
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, time.Second),
//	)
//
// [CloseHook] plugs the client into the server runtime's shutdown hooks.
package redis
