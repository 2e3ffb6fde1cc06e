package helpers

import (
	"net/http"
	"strconv"

	"whenandwhere/internal/domain"
)

// Page size limits. Admin listings embed attendees and responses per event, so they
// page smaller than the public event list.
const (
	DefaultPageSize  = 20
	MaxEventPageSize = 100
	MaxAdminPageSize = 50
)

// ParsePagination reads page and page_size from the query string. Missing values take
// defaults and page_size above maxPageSize is capped. A value that is present but not a
// positive integer is an invalid-input error, so callers can answer 400 via WriteServiceError.
func ParsePagination(r *http.Request, maxPageSize int) (domain.PaginationParams, error) {
	q := r.URL.Query()
	page, err := positiveQueryInt(q.Get("page"), "page", 1)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	pageSize, err := positiveQueryInt(q.Get("page_size"), "page_size", DefaultPageSize)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}, nil
}

func positiveQueryInt(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, domain.InvalidInputf("%s must be a positive integer, got %q", name, raw)
	}
	return v, nil
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta for params and the total item count.
// TotalPages is 0 when there are no items.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
