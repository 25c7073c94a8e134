package partition

import (
	"fmt"
	"iter"
)

// Sequence is the lazy, finite, non-restartable stream of all partitions of
// {1,…,n} produced by the successor engine.
//
// Example usage:
//
//	seq := partition.New(4)
//	for p, ok := seq.Next(); ok; p, ok = seq.Next() {
//	    fmt.Println(p)
//	}
type Sequence struct {
	engine  *Engine
	started bool
	done    bool
}

// New creates a sequence over the partitions of {1,…,n}. It panics if n is
// negative.
func New(n int) *Sequence {
	if n < 0 {
		panic(fmt.Sprintf("partition: negative set size %d", n))
	}
	return &Sequence{engine: newEngine(n)}
}

// Next returns the next partition.
//
// The first call returns the all-singletons partition. The returned value
// aliases the engine buffer and is only valid until the following call.
// Once the sequence is exhausted, Next keeps returning (nil, false).
//
// Returns:
//   - Partition: A read-only view of the current partition.
//   - bool: false when the sequence has ended.
func (s *Sequence) Next() (Partition, bool) {
	if s.done {
		return nil, false
	}
	if !s.started {
		s.started = true
		return s.engine.Partition(), true
	}
	if !s.engine.Advance() {
		s.done = true
		return nil, false
	}
	return s.engine.Partition(), true
}

// All returns the partitions of {1,…,n} as a range-over-func iterator. Each
// call of the returned function runs a fresh sequence.
func All(n int) iter.Seq[Partition] {
	return func(yield func(Partition) bool) {
		seq := New(n)
		for p, ok := seq.Next(); ok; p, ok = seq.Next() {
			if !yield(p) {
				return
			}
		}
	}
}
