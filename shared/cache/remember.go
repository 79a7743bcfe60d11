package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Remember returns the value cached under key or loads it. Loaded values are written
// back in the background so a slow redis never delays the caller. Failed loads are not cached.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("key", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	go func() {
		if err := c.Save(context.WithoutCancel(ctx), key, value, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to write back cache value")
		}
	}()

	return value, nil
}
