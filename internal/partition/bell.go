package partition

import (
	"fmt"
	"math/big"
)

// bellImpl computes Bell numbers. Builds with the "gmp" tag replace it with
// a GMP-backed version.
var bellImpl = bellTriangle

// Bell returns the n-th Bell number, the number of partitions of an n-element
// set. It panics if n is negative.
//
// Example: Bell(0..6) = 1, 1, 2, 5, 15, 52, 203.
func Bell(n int) *big.Int {
	if n < 0 {
		panic(fmt.Sprintf("partition: negative set size %d", n))
	}
	return bellImpl(n)
}

// BellUint64 returns the n-th Bell number if it fits in a uint64.
//
// Returns:
//   - uint64: The Bell number, or 0 if it overflows.
//   - bool: false when the value does not fit (n > MaxUint64BellIndex).
func BellUint64(n int) (uint64, bool) {
	b := Bell(n)
	if !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

// MaxUint64BellIndex is the largest n whose Bell number fits in a uint64.
const MaxUint64BellIndex = 25

// bellTriangle builds the Bell (Aitken) triangle row by row. Each row starts
// with the last entry of the previous row, and every next entry is the sum
// of its left neighbour and the entry above that neighbour. B(n) is the first
// entry of row n.
func bellTriangle(n int) *big.Int {
	row := []*big.Int{big.NewInt(1)}
	for i := 1; i <= n; i++ {
		next := make([]*big.Int, i+1)
		next[0] = new(big.Int).Set(row[i-1])
		for j := 1; j <= i; j++ {
			next[j] = new(big.Int).Add(next[j-1], row[j-1])
		}
		row = next
	}
	return row[0]
}
