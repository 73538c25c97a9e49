package pagination_test

import (
	"testing"

	"github.com/julianojcs/ibs/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name          string
		page, limit   int
		expectedPage  int
		expectedLimit int
	}{
		{"defaults when unset", 0, 0, 1, 20},
		{"negative page clamps to first", -3, 10, 1, 10},
		{"oversized limit capped", 2, 500, 2, 100},
		{"in-range values pass through", 4, 50, 4, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := pagination.Normalize(tc.page, tc.limit, 20, 100)
			assert.Equal(t, tc.expectedPage, page)
			assert.Equal(t, tc.expectedLimit, limit)
		})
	}
}

func TestNewMeta(t *testing.T) {
	testCases := []struct {
		name               string
		page, limit        int
		total              int64
		expectedTotalPages int
	}{
		{"empty result set", 1, 12, 0, 0},
		{"partial last page rounds up", 1, 12, 25, 3},
		{"exact multiple does not round", 2, 12, 24, 2},
		{"single item", 1, 20, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta := pagination.NewMeta(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.page, meta.Page)
			assert.Equal(t, tc.limit, meta.Limit)
			assert.Equal(t, tc.total, meta.Total)
			assert.Equal(t, tc.expectedTotalPages, meta.TotalPages)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 12))
	assert.Equal(t, 12, pagination.Offset(2, 12))
	assert.Equal(t, 90, pagination.Offset(10, 10))
}
