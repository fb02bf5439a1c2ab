package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewJSONRequest builds a request with a JSON-encoded body and the
// content type set.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// EnvelopeBody mirrors the response envelope for decoding in tests.
// Data is left raw so callers can unmarshal it into the expected shape.
type EnvelopeBody struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
	Pagination *PaginationBody `json:"pagination"`
}

// PaginationBody mirrors the pagination block of list responses.
type PaginationBody struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// DecodeEnvelope unmarshals the recorded response body into an envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) EnvelopeBody {
	t.Helper()

	var env EnvelopeBody
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

// DecodeData unmarshals the envelope's data field into dst.
func DecodeData(t *testing.T, env EnvelopeBody, dst any) {
	t.Helper()

	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode envelope data: %v (data: %s)", err, string(env.Data))
	}
}
