package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/infras/otel/mocks"
	"shareit/shared/cache"
)

type cachedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRedisCache_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	t.Run("hit decodes json", func(t *testing.T) {
		mock.ExpectGet("item:get:1").SetVal(`{"id":"1","name":"drill"}`)

		var item cachedItem
		err := redisCache.Get(ctx, "item:get:1", &item)

		require.NoError(t, err)
		assert.Equal(t, cachedItem{ID: "1", Name: "drill"}, item)
	})

	t.Run("hit into string", func(t *testing.T) {
		mock.ExpectGet("raw").SetVal("plain")

		var value string
		err := redisCache.Get(ctx, "raw", &value)

		require.NoError(t, err)
		assert.Equal(t, "plain", value)
	})

	t.Run("miss wraps redis nil", func(t *testing.T) {
		mock.ExpectGet("item:get:2").RedisNil()

		var item cachedItem
		err := redisCache.Get(ctx, "item:get:2", &item)

		assert.True(t, errors.Is(err, cache.Nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Save(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectSet("item:get:1", []byte(`{"id":"1","name":"drill"}`), time.Minute).SetVal("OK")
	err := redisCache.Save(ctx, "item:get:1", cachedItem{ID: "1", Name: "drill"}, time.Minute)
	require.NoError(t, err)

	mock.ExpectSet("raw", []byte("plain"), 10*time.Second).SetErr(errors.New("connection refused"))
	err = redisCache.Save(ctx, "raw", "plain", 10*time.Second)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Incr(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	t.Run("first hit opens the window", func(t *testing.T) {
		mock.ExpectIncr("limiter:10.0.0.1:curl").SetVal(1)
		mock.ExpectExpire("limiter:10.0.0.1:curl", time.Minute).SetVal(true)

		count, err := redisCache.Incr(ctx, "limiter:10.0.0.1:curl", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("later hits keep the window", func(t *testing.T) {
		mock.ExpectIncr("limiter:10.0.0.1:curl").SetVal(2)

		count, err := redisCache.Incr(ctx, "limiter:10.0.0.1:curl", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("redis down", func(t *testing.T) {
		mock.ExpectIncr("limiter:10.0.0.1:curl").SetErr(errors.New("connection refused"))

		_, err := redisCache.Incr(ctx, "limiter:10.0.0.1:curl", time.Minute)

		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
