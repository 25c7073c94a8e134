package partition

import "iter"

// RGSGenerator enumerates partitions through restricted growth strings
// (Knuth, TAOCP 4A, Algorithm H). Element i+1 is placed in block a[i], where
// a[0] = 0 and a[i] <= 1 + max(a[0..i-1]). The string is advanced in
// lexicographic order and converted to blocks on every step, so it yields
// the same set of partitions as the successor engine in a different order.
//
// It exists as an independent cross-check for the successor engine.
type RGSGenerator struct{}

// Name returns the registry name of the generator.
func (g *RGSGenerator) Name() string { return "rgs" }

// Partitions implements Generator.
func (g *RGSGenerator) Partitions(n int) iter.Seq[Partition] {
	if n < 0 {
		panic("partition: negative set size")
	}
	return func(yield func(Partition) bool) {
		w := newRGSWriter(n)
		a := make([]int, n)
		if n <= 1 {
			yield(w.render(a, n))
			return
		}

		// b[j] is one more than the largest value in a[0..j-1]; m is the
		// number of blocks used by a[0..n-2].
		b := make([]int, n-1)
		for i := range b {
			b[i] = 1
		}
		m := 1
		for {
			lastMaxed := a[n-1] == m
			parts := m
			if lastMaxed {
				parts++
			}
			if !yield(w.render(a, parts)) {
				return
			}
			if !lastMaxed {
				a[n-1]++
				continue
			}
			j := n - 2
			for a[j] == b[j] {
				j--
			}
			if j == 0 {
				return
			}
			a[j]++
			m = b[j]
			if a[j] == b[j] {
				m++
			}
			for j++; j < n-1; j++ {
				a[j] = 0
				b[j] = m
			}
			a[n-1] = 0
		}
	}
}

// rgsWriter converts restricted growth strings to block form into a reused
// buffer.
type rgsWriter struct {
	blocks [][]int
}

func newRGSWriter(n int) *rgsWriter {
	blocks := make([][]int, n)
	for i := range blocks {
		blocks[i] = make([]int, 0, n-i)
	}
	return &rgsWriter{blocks: blocks}
}

func (w *rgsWriter) render(a []int, parts int) Partition {
	out := w.blocks[:parts]
	for i := range out {
		out[i] = out[i][:0]
	}
	for i, part := range a {
		out[part] = append(out[part], i+1)
	}
	return Partition(out)
}
