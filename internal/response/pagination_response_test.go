package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		total            int64
		wantPages        int64
		wantMore         bool
		wantFrom, wantTo int
	}{
		{"first of three", 1, 10, 25, 3, true, 1, 10},
		{"last partial page", 3, 10, 25, 3, false, 21, 25},
		{"past the end", 4, 10, 25, 3, false, 0, 0},
		{"empty", 1, 20, 0, 0, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantMore, p.HasMore)
			assert.Equal(t, tt.wantFrom, p.From)
			assert.Equal(t, tt.wantTo, p.To)
			assert.Equal(t, tt.total, p.TotalItems)
		})
	}
}
