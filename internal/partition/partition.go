package partition

import (
	"fmt"
	"slices"
	"strconv"
)

// Partition is an ordered list of blocks. Each block is a non-empty,
// strictly ascending list of elements of {1,…,n}.
//
// Partitions handed out by a Sequence or a Generator are views into a shared
// buffer: they are valid until the next element is requested and must not
// be modified. Use Clone to keep one.
type Partition [][]int

// Len returns the number of blocks.
func (p Partition) Len() int { return len(p) }

// Size returns the total number of elements across all blocks.
func (p Partition) Size() int {
	size := 0
	for _, block := range p {
		size += len(block)
	}
	return size
}

// Clone returns a deep copy of p that is safe to retain.
func (p Partition) Clone() Partition {
	out := make(Partition, len(p))
	for i, block := range p {
		out[i] = slices.Clone(block)
	}
	return out
}

// CopyTo copies p into dst, reusing dst's storage, and returns the copy.
// It lets callers keep a partition across iterations without allocating on
// every step.
func (p Partition) CopyTo(dst Partition) Partition {
	dst = dst[:0]
	for i, block := range p {
		if i < cap(dst) {
			dst = dst[:i+1]
			dst[i] = append(dst[i][:0], block...)
			continue
		}
		dst = append(dst, slices.Clone(block))
	}
	return dst
}

// IsCanonical reports whether the blocks are listed by ascending minimum.
func (p Partition) IsCanonical() bool {
	for i := 1; i < len(p); i++ {
		if p[i-1][0] > p[i][0] {
			return false
		}
	}
	return true
}

// Canonical returns p with its blocks listed by ascending minimum. When p is
// already canonical it is returned as is, without copying.
func (p Partition) Canonical() Partition {
	if p.IsCanonical() {
		return p
	}
	out := p.Clone()
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

// Compare orders two partitions lexicographically, block by block, with
// blocks themselves compared as integer sequences. It returns -1, 0 or +1.
func Compare(a, b Partition) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := slices.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Equal reports whether a and b contain the same blocks in the same order.
func Equal(a, b Partition) bool { return Compare(a, b) == 0 }

// InvalidPartitionError describes a partition that breaks one of the
// structural rules: non-empty ascending blocks that are pairwise disjoint
// and cover {1,…,n}.
type InvalidPartitionError struct {
	// Partition is the rendered offending partition.
	Partition string
	// Reason explains which rule was broken.
	Reason string
}

// Error implements the error interface.
func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf("invalid partition %s: %s", e.Partition, e.Reason)
}

// Validate checks that p is a partition of {1,…,n}.
//
// Parameters:
//   - n: The size of the ground set.
//
// Returns:
//   - error: An *InvalidPartitionError describing the first violation, or nil.
func (p Partition) Validate(n int) error {
	invalid := func(format string, a ...any) error {
		return &InvalidPartitionError{Partition: p.String(), Reason: fmt.Sprintf(format, a...)}
	}
	seen := make([]bool, n+1)
	count := 0
	for i, block := range p {
		if len(block) == 0 {
			return invalid("block %d is empty", i)
		}
		for j, x := range block {
			if x < 1 || x > n {
				return invalid("element %d outside 1..%d", x, n)
			}
			if j > 0 && block[j-1] >= x {
				return invalid("block %d is not strictly ascending", i)
			}
			if seen[x] {
				return invalid("element %d appears twice", x)
			}
			seen[x] = true
			count++
		}
	}
	if count != n {
		return invalid("covers %d of %d elements", count, n)
	}
	return nil
}

// String renders p in brace notation, e.g. {{1,3},{2}}.
func (p Partition) String() string {
	return string(p.AppendBraces(nil))
}

// AppendBraces appends the brace rendering of p to dst.
func (p Partition) AppendBraces(dst []byte) []byte {
	return p.appendNested(dst, '{', '}')
}

// AppendJSON appends p as a JSON array of arrays, e.g. [[1,3],[2]].
func (p Partition) AppendJSON(dst []byte) []byte {
	return p.appendNested(dst, '[', ']')
}

func (p Partition) appendNested(dst []byte, open, shut byte) []byte {
	dst = append(dst, open)
	for i, block := range p {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, open)
		for j, x := range block {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst = strconv.AppendInt(dst, int64(x), 10)
		}
		dst = append(dst, shut)
	}
	return append(dst, shut)
}
