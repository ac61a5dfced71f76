package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Validate(t *testing.T) {
	p := ListParams{Page: 0, PerPage: 500, SortBy: "password", SortOrder: "ASC"}
	p.Validate("created_at", "created_at", "view_count")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, "asc", p.SortOrder)

	p = ListParams{Page: 3, PerPage: 5, SortBy: "view_count", SortOrder: "sideways"}
	p.Validate("created_at", "created_at", "view_count")
	assert.Equal(t, "view_count", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, 10, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestDefaultListParams(t *testing.T) {
	p := DefaultListParams("created_at")
	assert.Equal(t, ListParams{Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc"}, p)
}
