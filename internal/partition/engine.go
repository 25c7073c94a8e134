package partition

// Engine is the successor engine, an in-place state machine that turns the
// current partition into the next one. It owns the working partition buffer
// and the bag of unassigned elements. Between calls to Advance the bag is
// empty and the buffer holds a complete partition whose blocks are ascending
// and listed by ascending minimum.
//
// The buffer is allocated once. Slot i of the outer slice can never hold
// more than n-i elements (its minimum is at least i+1), so each slot is
// created with exactly that capacity and block slices popped off the end are
// reused when trailing blocks are pushed again. Enumeration therefore runs
// without allocating after construction.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	blocks [][]int
	bag    *Bag
}

// newEngine builds an engine positioned on the all-singletons partition of
// {1,…,n}.
func newEngine(n int) *Engine {
	blocks := make([][]int, n)
	for i := range blocks {
		blocks[i] = append(make([]int, 0, n-i), i+1)
	}
	return &Engine{
		blocks: blocks,
		bag:    NewBag(n),
	}
}

// Partition returns a view of the current buffer. It is only valid until
// the next call to Advance.
func (e *Engine) Partition() Partition {
	return Partition(e.blocks)
}

// Advance mutates the buffer into the next partition of the sequence.
//
// The search works like incrementing a positional counter: the last block is
// the lowest digit, and whenever it cannot be bumped its elements are carried
// into the bag and the search moves one block to the left.
//
// Returns:
//   - bool: false if the current partition was the last one. The buffer is
//     then empty and Advance must not be called again.
func (e *Engine) Advance() bool {
	if len(e.blocks) == 0 {
		return false
	}
	for {
		k := len(e.blocks) - 1
		last := e.blocks[k]

		if e.bag.IsEmpty() {
			if len(last) < 3 {
				if k == 0 {
					e.exhaust()
					return false
				}
				// Carry: release the whole block and retry one block left.
				e.bag.InsertAll(last)
				e.blocks = e.blocks[:k]
				continue
			}
			// Split the tail: the penultimate element goes to the bag and
			// the final element takes its place.
			e.bag.Insert(last[len(last)-2])
			last[len(last)-2] = last[len(last)-1]
			e.blocks[k] = last[:len(last)-1]
			e.appendMinimumSuffix()
			return true
		}

		if x, ok := e.bag.PopLeastAbove(last[len(last)-1]); ok {
			e.blocks[k] = append(last, x)
			e.appendMinimumSuffix()
			return true
		}

		e.bag.Insert(last[len(last)-1])
		last = last[:len(last)-1]

		// The first element of a block is the least element not used by the
		// blocks before it, so it is never replaced here.
		for len(last) > 1 {
			old := last[len(last)-1]
			last = last[:len(last)-1]
			replacement, ok := e.bag.PopLeastAbove(old)
			e.bag.Insert(old)
			if ok {
				e.blocks[k] = append(last, replacement)
				e.appendMinimumSuffix()
				return true
			}
		}
		if len(last) > 0 {
			e.bag.Insert(last[0])
		}
		if k == 0 {
			e.exhaust()
			return false
		}
		e.blocks = e.blocks[:k]
	}
}

// appendMinimumSuffix drains the bag into the buffer, one trailing
// singleton block per element in ascending order.
func (e *Engine) appendMinimumSuffix() {
	for _, x := range e.bag.Items() {
		e.pushBlock(x)
	}
	e.bag.Clear()
}

// pushBlock appends the singleton block {x}, reusing the slot's storage.
func (e *Engine) pushBlock(x int) {
	k := len(e.blocks)
	if k < cap(e.blocks) {
		e.blocks = e.blocks[:k+1]
		e.blocks[k] = append(e.blocks[k][:0], x)
		return
	}
	e.blocks = append(e.blocks, []int{x})
}

func (e *Engine) exhaust() {
	e.blocks = e.blocks[:0]
	e.bag.Clear()
}
