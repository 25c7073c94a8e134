package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagInsertKeepsOrder(t *testing.T) {
	b := NewBag(8)
	assert.True(t, b.IsEmpty())
	_, ok := b.Max()
	assert.False(t, ok)

	for _, x := range []int{5, 2, 7, 1, 6} {
		b.Insert(x)
	}
	assert.Equal(t, []int{1, 2, 5, 6, 7}, b.Items())
	assert.Equal(t, 5, b.Len())
	hi, ok := b.Max()
	require.True(t, ok)
	assert.Equal(t, 7, hi)

	b.InsertAll([]int{4, 3})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, b.Items())
}

func TestBagPopLeastAbove(t *testing.T) {
	type testcase struct {
		name      string
		items     []int
		threshold int
		want      int
		found     bool
		remaining []int
	}
	tcs := []testcase{
		{
			name:      "empty bag",
			items:     nil,
			threshold: 0,
			found:     false,
			remaining: []int{},
		},
		{
			name:      "all below",
			items:     []int{1, 2, 3},
			threshold: 4,
			found:     false,
			remaining: []int{1, 2, 3},
		},
		{
			name:      "max equal to threshold",
			items:     []int{1, 4},
			threshold: 4,
			found:     false,
			remaining: []int{1, 4},
		},
		{
			name:      "least candidate is taken",
			items:     []int{2, 5, 6, 9},
			threshold: 4,
			want:      5,
			found:     true,
			remaining: []int{2, 6, 9},
		},
		{
			name:      "below everything",
			items:     []int{3, 4},
			threshold: 1,
			want:      3,
			found:     true,
			remaining: []int{4},
		},
		{
			name:      "largest element",
			items:     []int{1, 2, 8},
			threshold: 7,
			want:      8,
			found:     true,
			remaining: []int{1, 2},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBag(len(tc.items))
			b.InsertAll(tc.items)
			got, found := b.PopLeastAbove(tc.threshold)
			require.Equal(t, tc.found, found)
			if found {
				assert.Equal(t, tc.want, got)
			}
			assert.Equal(t, tc.remaining, b.Items())
		})
	}
}

func TestBagClear(t *testing.T) {
	b := NewBag(3)
	b.InsertAll([]int{3, 1, 2})
	b.Clear()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())
	b.Insert(9)
	assert.Equal(t, []int{9}, b.Items())
}

func TestSortTail(t *testing.T) {
	items := []int{1, 4, 6, 5, 2}
	sortTail(items, 3)
	assert.Equal(t, []int{1, 2, 4, 5, 6}, items)

	sorted := []int{1, 2, 3}
	sortTail(sorted, 3)
	assert.Equal(t, []int{1, 2, 3}, sorted)
}
