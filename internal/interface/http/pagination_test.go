package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageToLimitOffset(t *testing.T) {
	tests := []struct {
		page, pageSize int
		limit, offset  int
	}{
		{1, 20, 20, 0},
		{2, 20, 20, 20},
		{3, 7, 7, 14},
		{1, 1, 1, 0},
	}
	for _, tt := range tests {
		limit, offset := pageToLimitOffset(tt.page, tt.pageSize)
		assert.Equal(t, tt.limit, limit)
		assert.Equal(t, tt.offset, offset)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		p := newPaginatedResponse([]int{1, 2, 3}, 1, 20, 41)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 41, p.Total)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
	})

	t.Run("exact division", func(t *testing.T) {
		p := newPaginatedResponse([]int{}, 2, 20, 40)
		assert.Equal(t, 2, p.TotalPages)
	})

	t.Run("empty collection", func(t *testing.T) {
		p := newPaginatedResponse([]int{}, 1, 20, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.NotNil(t, p.Items)
	})
}
