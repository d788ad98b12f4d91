package utils

import (
	"net/http"
	"strconv"
)

// Page size bounds for list endpoints
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is the parsed page/page_size pair plus the derived
// SQL offset
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// PaginatedResponse wraps one page of results with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalItems int64       `json:"total_items"`
	TotalPages int         `json:"total_pages"`
}

// ParsePaginationParams reads page and page_size from the query string,
// clamping page_size to MaxPageSize. Malformed values fall back to the
// defaults rather than erroring.
func ParsePaginationParams(r *http.Request) PaginationParams {
	q := r.URL.Query()

	page := atoiDefault(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	size := atoiDefault(q.Get("page_size"), DefaultPageSize)
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return PaginationParams{Page: page, PageSize: size, Offset: (page - 1) * size}
}

// NewPaginatedResponse computes the page count for a result window
func NewPaginatedResponse(data interface{}, page, pageSize int, totalItems int64) PaginatedResponse {
	pages := int(totalItems) / pageSize
	if int(totalItems)%pageSize != 0 {
		pages++
	}
	return PaginatedResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: pages,
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
