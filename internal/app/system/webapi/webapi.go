// Package webapi renders the JSON response envelope shared by every
// endpoint and decodes JSON request bodies.
//
// Envelope shape:
//
//	{ "success": bool, "message": "...", "data": ..., "errors": [...],
//	  "pagination": {...} }
//
// Internal errors are rendered with an opaque message; the underlying
// error goes to the zap logger only.
package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/teacherhub/internal/app/system/paging"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. Teacher payloads with a full
// degrees list are a few KB; 1 MB leaves generous headroom.
const maxBodyBytes = 1 << 20

// Envelope is the wire format for all responses.
type Envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Errors     []string     `json:"errors,omitempty"`
	Pagination *paging.Meta `json:"pagination,omitempty"`
}

// JSON writes an envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 envelope carrying only a message.
func OKMessage(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// OKList writes a 200 envelope carrying data plus pagination metadata.
func OKList(w http.ResponseWriter, data any, meta paging.Meta) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &meta})
}

// Created writes a 201 envelope carrying a message and the created record.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status and message.
// Optional errs populate the errors array (field-level detail).
func Fail(w http.ResponseWriter, status int, message string, errs ...string) {
	JSON(w, status, Envelope{Success: false, Message: message, Errors: errs})
}

// BadRequest writes a 400 validation failure.
func BadRequest(w http.ResponseWriter, message string, errs ...string) {
	Fail(w, http.StatusBadRequest, message, errs...)
}

// NotFound writes a 404 failure.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// Internal writes an opaque 500 and logs the real error. Clients never
// see internal error strings.
func Internal(w http.ResponseWriter, log *zap.Logger, context string, err error) {
	if log != nil {
		log.Error(context, zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, "internal server error")
}

// Decode reads a JSON request body into dst, enforcing the body size cap.
// A decode failure is a client error; render it with BadRequest.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// ParseDate parses a wire date accepting RFC 3339 or plain YYYY-MM-DD,
// the two formats the browser client sends.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// NotFoundHandler is the router's catch-all for unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "endpoint not found")
}

// Recoverer converts handler panics into opaque 500 envelopes, logging
// the panic value and request path.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if log != nil {
						log.Error("handler panic",
							zap.Any("panic", rec),
							zap.String("path", r.URL.Path))
					}
					Fail(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
