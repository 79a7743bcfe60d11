package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/config"
	otelMocks "shareit/infras/otel/mocks"
	"shareit/shared"
	cacheMocks "shareit/shared/cache/mocks"
	"shareit/shared/constant"
	"shareit/transport/http/middleware"
)

func limiterConfig(maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func serve(handler http.Handler) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
	request.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 10.0.0.2")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(gomock.NewController(t)))

		assert.Equal(t, http.StatusOK, serve(appMiddleware.RateLimit()(ok)).Code)
	})

	t.Run("first request in window", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		key := shared.BuildCacheKey("limiter", "10.0.0.1", "unknown")

		redisCache.EXPECT().Incr(gomock.Any(), key, time.Minute).Return(int64(1), nil)

		appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(3), redisCache)
		recorder := serve(appMiddleware.RateLimit()(ok))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "3", recorder.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "2", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", recorder.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("last request in window", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(3), nil)

		appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(3), redisCache)
		recorder := serve(appMiddleware.RateLimit()(ok))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("limit exceeded", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(4), nil)

		appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(3), redisCache)

		assert.Equal(t, http.StatusTooManyRequests, serve(appMiddleware.RateLimit()(ok)).Code)
	})

	t.Run("falls back to local limiter", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused")).Times(2)

		appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(1), redisCache)
		handler := appMiddleware.RateLimit()(ok)

		assert.Equal(t, http.StatusOK, serve(handler).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(handler).Code)
	})
}

func TestIdentity(t *testing.T) {
	identity := middleware.NewIdentityMiddleware(otelMocks.NewOtel())

	var seen string

	handler := identity.RequestID(identity.UserID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = shared.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("caller id in context", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		request.Header.Set(constant.RequestHeaderUserID, "u1")
		request.Header.Set(constant.RequestHeaderRequestID, "req-1")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "u1", seen)
		assert.Equal(t, "req-1", recorder.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("missing caller id", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderRequestID))
	})
}

func TestTracing(t *testing.T) {
	t.Run("records the status", func(t *testing.T) {
		otel := otelMocks.NewOtel()
		appMiddleware := middleware.NewAppMiddleware(otel, &config.Config{}, nil)

		handler := appMiddleware.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		assert.Equal(t, http.StatusTeapot, serve(handler).Code)

		scope := otel.Scope("GET /v1/items")
		require.NotNil(t, scope)
		assert.True(t, scope.Ended())
		assert.Equal(t, http.StatusTeapot, scope.Attribute("http.status_code"))
		assert.Empty(t, scope.Errors())
	})

	t.Run("server errors are traced", func(t *testing.T) {
		otel := otelMocks.NewOtel()
		appMiddleware := middleware.NewAppMiddleware(otel, &config.Config{}, nil)

		handler := appMiddleware.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		serve(handler)

		assert.Len(t, otel.Scope("GET /v1/items").Errors(), 1)
	})
}
