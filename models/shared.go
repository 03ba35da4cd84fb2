package models

// DealerID is the tenant key. Every document carries one and every repository
// method requires one, so a query that forgets its tenant does not compile.
type DealerID string

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination derives the page count from a total.
func NewPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
