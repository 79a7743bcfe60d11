package middleware

import (
	"fmt"
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/shared/cache"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	otelGlobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/time/rate"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel     otel.Otel
	config   *config.Config
	cache    cache.RedisCache
	fallback *rate.Limiter
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:     otel,
		config:   config,
		cache:    cache,
		fallback: newFallbackLimiter(config),
	}
}

// newFallbackLimiter guards the process while redis cannot count requests.
// The configured window budget is spread evenly and allowed to burst once.
func newFallbackLimiter(config *config.Config) *rate.Limiter {
	limiter := config.App.RateLimiter
	if limiter.MaxRequests <= 0 || limiter.WindowSeconds <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	window := limiter.Window()

	return rate.NewLimiter(rate.Every(window/time.Duration(limiter.MaxRequests)), limiter.MaxRequests)
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		// Continue the caller's trace when it sent a traceparent header.
		ctx := otelGlobal.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, scope := a.otel.NewScope(ctx, otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			scope.SetAttribute("http.route", routeContext.RoutePattern())
		}

		scope.SetAttribute("http.status_code", ww.Status())

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s responded %d", spanName, ww.Status()))
		}
	})
}
