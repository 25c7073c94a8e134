// Package partition enumerates the set partitions of {1,…,n}.
// This file defines the Bag, the sorted pool of elements that are
// temporarily not assigned to any block while the successor engine moves
// from one partition to the next.
package partition

// Bag is a sorted set of elements that currently belong to no block.
//
// Elements are always distinct and the backing slice is kept in ascending
// order after every mutation. The bag is sized for n elements up front and
// never grows beyond that, so it does not allocate once constructed.
type Bag struct {
	items []int
}

// NewBag creates an empty bag with room for capacity elements.
//
// Parameters:
//   - capacity: The maximum number of elements the bag is expected to hold.
//
// Returns:
//   - *Bag: An empty bag.
func NewBag(capacity int) *Bag {
	return &Bag{items: make([]int, 0, capacity)}
}

// IsEmpty reports whether the bag holds no elements.
func (b *Bag) IsEmpty() bool { return len(b.items) == 0 }

// Len returns the number of elements held.
func (b *Bag) Len() int { return len(b.items) }

// Max returns the largest element, or false if the bag is empty.
func (b *Bag) Max() (int, bool) {
	if len(b.items) == 0 {
		return 0, false
	}
	return b.items[len(b.items)-1], true
}

// Items returns the held elements in ascending order. The slice aliases the
// bag's storage and must not be modified or retained across mutations.
func (b *Bag) Items() []int { return b.items }

// Insert adds x to the bag. The caller guarantees x is not already present.
func (b *Bag) Insert(x int) {
	sorted := len(b.items)
	b.items = append(b.items, x)
	sortTail(b.items, sorted)
}

// InsertAll inserts every element of xs, one at a time.
func (b *Bag) InsertAll(xs []int) {
	for _, x := range xs {
		b.Insert(x)
	}
}

// PopLeastAbove removes and returns the smallest element strictly greater
// than threshold.
//
// The threshold itself is never held by the bag, so the scan for the first
// element not less than threshold finds the same element.
//
// Parameters:
//   - threshold: The exclusive lower bound.
//
// Returns:
//   - int: The removed element.
//   - bool: false if no element exceeds threshold; the bag is then unchanged.
func (b *Bag) PopLeastAbove(threshold int) (int, bool) {
	if hi, ok := b.Max(); !ok || hi <= threshold {
		return 0, false
	}
	for i, x := range b.items {
		if x >= threshold {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return x, true
		}
	}
	// Unreachable: max > threshold guarantees a candidate.
	return 0, false
}

// Clear empties the bag, keeping its capacity.
func (b *Bag) Clear() {
	b.items = b.items[:0]
}

// sortTail restores ascending order of items given that items[:sorted] is
// already sorted, by insertion of each tail element into place.
func sortTail(items []int, sorted int) {
	for j := sorted; j < len(items); j++ {
		for i := j; i > 0 && items[i-1] > items[i]; i-- {
			items[i-1], items[i] = items[i], items[i-1]
		}
	}
}
