package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageRequest(t *testing.T) {
	testCases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"both absent", "", "", 1, 12},
		{"valid values", "3", "20", 3, 20},
		{"non-numeric page", "abc", "20", 1, 20},
		{"non-numeric limit", "3", "abc", 3, 12},
		{"zero page", "0", "12", 1, 12},
		{"negative page", "-5", "12", 1, 12},
		{"zero limit", "2", "0", 2, 12},
		{"negative limit", "2", "-1", 2, 12},
		{"float page", "1.5", "12", 1, 12},
		{"garbage both", "?", "!", 1, 12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := ParsePageRequest(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, req.Page)
			assert.Equal(t, tc.wantLimit, req.Limit)
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 12}.Offset())
	assert.Equal(t, 12, PageRequest{Page: 2, Limit: 12}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 5, Limit: 10}.Offset())
}

func TestPageRequestOffsetHugePageClamped(t *testing.T) {
	// (page-1)*limit would wrap negative; a negative offset is silently
	// ignored by the query layer, turning a far-out page into page one
	req := ParsePageRequest("922337203685477580", "12")
	off := req.Offset()
	assert.GreaterOrEqual(t, off, 0)
	assert.Equal(t, math.MaxInt, off)

	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Limit: math.MaxInt}.Offset())
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"empty set", 0, 12, 0},
		{"less than one page", 5, 12, 1},
		{"exactly one page", 12, 12, 1},
		{"one over", 13, 12, 2},
		{"many pages", 120, 12, 10},
		{"limit one", 3, 1, 3},
		{"zero limit", 10, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit))
		})
	}
}
