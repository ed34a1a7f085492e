package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{name: "empty collection", ids: nil, want: 1},
		{name: "single record", ids: []int{1}, want: 2},
		{name: "gapped ids", ids: []int{1, 2, 5}, want: 6},
		{name: "unordered ids", ids: []int{5, 1, 2}, want: 6},
		{name: "gap from deletion is not reused", ids: []int{2, 3}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NextID(tt.ids))
		})
	}
}

func TestNextID_StrictlyIncreasing(t *testing.T) {
	ids := []int{}
	prev := 0
	for i := 0; i < 10; i++ {
		next := NextID(ids)
		require.Greater(t, next, prev)
		ids = append(ids, next)
		prev = next
	}
}
