package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestMiddleware_MintsID(t *testing.T) {
	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Logger(r, nil) != nil {
			sawLogger = true
		}
	})
	h := Middleware(zap.NewNop())(inner)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users", nil))

	if rec.Header().Get(Header) == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if !sawLogger {
		t.Error("expected request-scoped logger in context")
	}
}

func TestMiddleware_HonorsInboundID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := Middleware(zap.NewNop())(inner)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set(Header, "proxy-assigned-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(Header); got != "proxy-assigned-id" {
		t.Errorf("X-Request-ID = %q, want proxy-assigned-id", got)
	}
}

func TestLogger_Fallback(t *testing.T) {
	fallback := zap.NewNop()
	r := httptest.NewRequest("GET", "/api/users", nil)
	if Logger(r, fallback) != fallback {
		t.Error("expected fallback logger when middleware did not run")
	}
}
