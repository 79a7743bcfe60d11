package middleware

import (
	"context"
	"net/http"
	"shareit/infras/otel"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"strings"

	"github.com/google/uuid"
)

// Identity resolves who is calling. Users are identified by the X-Sharer-User-Id header;
// account management lives outside this service.
type Identity interface {
	UserID(next http.Handler) http.Handler
	RequestID(next http.Handler) http.Handler
}

type identityImpl struct {
	otel otel.Otel
}

func NewIdentityMiddleware(otel otel.Otel) Identity {
	return &identityImpl{
		otel: otel,
	}
}

// UserID rejects requests without a caller id and stores it in the request context.
func (m *identityImpl) UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "identity.middleware")

		userID := strings.TrimSpace(request.Header.Get(constant.RequestHeaderUserID))
		if userID == "" {
			err := failure.Unauthorized("Missing " + constant.RequestHeaderUserID + " header")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("user.id", userID)
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func (m *identityImpl) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get(constant.RequestHeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		writer.Header().Set(constant.RequestHeaderRequestID, requestID)

		ctx := context.WithValue(request.Context(), constant.ContextKeyRequestID, requestID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
