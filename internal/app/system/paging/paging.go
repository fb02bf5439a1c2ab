// Package paging implements offset pagination for the list endpoints.
//
// Clients pass 1-based "page" and "limit" query parameters; responses carry
// a Meta block (currentPage, totalPages, totalItems, itemsPerPage). Limit is
// clamped to [1, MaxLimit] so a single request can never pull an unbounded
// result set.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

const (
	// DefaultLimit is the page size used when the client omits "limit".
	DefaultLimit = 10

	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// Parse extracts "page" and "limit" from the request query.
// Invalid or missing values fall back to page 1 / DefaultLimit; limit is
// clamped to [1, MaxLimit].
func Parse(r *http.Request) (page, limit int) {
	page = 1
	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 1 {
			page = n
		}
	}

	limit = DefaultLimit
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Skip returns the number of documents to skip for a page, as int64 for
// Mongo's Find/aggregate options.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}

// Meta is the pagination metadata block included in list responses.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewMeta builds the metadata block for a page. TotalPages is
// ceil(total/limit); zero rows yield zero pages.
func NewMeta(page, limit int, total int64) Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
