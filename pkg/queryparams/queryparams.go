package queryparams

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListParams liste uç noktalarının sorgu parametreleri.
type ListParams struct {
	Page      int    `query:"page" json:"page"`
	PerPage   int    `query:"limit" json:"limit"`
	SortBy    string `query:"sortBy" json:"sortBy"`
	SortOrder string `query:"sortOrder" json:"sortOrder"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// DefaultListParams varsayılan sıralama alanıyla, en yeni önce.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{Page: DefaultPage, PerPage: DefaultPerPage, SortBy: sortBy, SortOrder: "desc"}
}

// Validate eksik veya sınır dışı değerleri düzeltir. SortBy izinli alanlardan biri değilse
// defaultSort kullanılır.
func (p *ListParams) Validate(defaultSort string, allowedSort ...string) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	allowed := false
	for _, s := range allowedSort {
		if p.SortBy == s {
			allowed = true
			break
		}
	}
	if !allowed {
		p.SortBy = defaultSort
	}
}

func (p ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(perPage)))
}
