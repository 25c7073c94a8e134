//go:build gmp

// This file provides a GMP-backed Bell number computation, compiled only
// with the "gmp" build tag (go build -tags=gmp) and libgmp installed.

package partition

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	bellImpl = bellGMP
}

// bellGMP runs the same Bell triangle recurrence as bellTriangle on GMP
// integers. It reuses two rows of gmp.Int values instead of allocating a new
// row per step.
func bellGMP(n int) *big.Int {
	row := make([]*gmp.Int, n+1)
	next := make([]*gmp.Int, n+1)
	for i := range row {
		row[i] = gmp.NewInt(0)
		next[i] = gmp.NewInt(0)
	}
	row[0].SetInt64(1)
	for i := 1; i <= n; i++ {
		next[0].Set(row[i-1])
		for j := 1; j <= i; j++ {
			next[j].Add(next[j-1], row[j-1])
		}
		row, next = next, row
	}
	return gmpToStdBigInt(row[0])
}

// gmpToStdBigInt converts a gmp.Int to a standard library big.Int.
func gmpToStdBigInt(g *gmp.Int) *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}
