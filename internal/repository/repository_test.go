package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want int64
	}{
		{name: "empty collection", ids: nil, want: 1},
		{name: "single", ids: []int64{1}, want: 2},
		{name: "gap after delete", ids: []int64{1, 4}, want: 5},
		{name: "unordered", ids: []int64{7, 2, 5}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.ids))
		})
	}
}
