// Package requestid assigns each request a UUID, echoes it in the
// X-Request-ID response header, and makes a request-scoped zap logger
// carrying the ID available through the request context.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header is the request/response header carrying the request ID.
const Header = "X-Request-ID"

type ctxKey struct{}

// Middleware tags every request with an ID. An inbound X-Request-ID is
// honored so IDs survive a reverse proxy; otherwise a new UUID is minted.
func Middleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)

			log := base.With(zap.String("request_id", id))
			ctx := context.WithValue(r.Context(), ctxKey{}, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logger returns the request-scoped logger, or the fallback when the
// middleware did not run (tests calling handlers directly).
func Logger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	if log, ok := r.Context().Value(ctxKey{}).(*zap.Logger); ok {
		return log
	}
	return fallback
}
