package seating

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillPatternKnownWidths(t *testing.T) {
	tests := []struct {
		name string
		w    int
		want []int
	}{
		{"single seat", 1, []int{0}},
		{"two seats", 2, []int{0, 1}},
		{"three seats", 3, []int{1, 0, 2}},
		{"four seats", 4, []int{1, 2, 0, 3}},
		{"five seats", 5, []int{2, 1, 3, 0, 4}},
		{"ten seats", 10, []int{4, 5, 3, 6, 2, 7, 1, 8, 0, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FillPattern(tt.w)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillPatternIsPermutation(t *testing.T) {
	for w := 1; w <= 64; w++ {
		got, err := FillPattern(w)
		require.NoError(t, err)
		require.Len(t, got, w)
		sorted := append([]int(nil), got...)
		sort.Ints(sorted)
		for i, v := range sorted {
			require.Equal(t, i, v, "width %d is not a permutation: %v", w, got)
		}
	}
}

func TestFillPatternRejectsNonPositiveWidth(t *testing.T) {
	for _, w := range []int{0, -3} {
		_, err := FillPattern(w)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}
