package partition

import (
	"github.com/google/btree"
)

// Verifier checks a stream of partitions of {1,…,n}: every partition must be
// structurally valid and must not repeat an earlier one.
//
// Seen partitions are kept in an ordered B-tree keyed by their canonical
// rendering, so memory grows with the number of partitions checked. Use it
// for small n or bounded runs.
type Verifier struct {
	n    int
	seen *btree.BTreeG[string]
}

// NewVerifier creates a verifier for partitions of {1,…,n}.
func NewVerifier(n int) *Verifier {
	return &Verifier{
		n:    n,
		seen: btree.NewG[string](16, func(a, b string) bool { return a < b }),
	}
}

// Check validates p and records it.
//
// Returns:
//   - error: An *InvalidPartitionError if p is malformed or a duplicate.
func (v *Verifier) Check(p Partition) error {
	if err := p.Validate(v.n); err != nil {
		return err
	}
	key := p.Canonical().String()
	if _, found := v.seen.ReplaceOrInsert(key); found {
		return &InvalidPartitionError{Partition: key, Reason: "duplicate partition"}
	}
	return nil
}

// Len returns the number of distinct partitions recorded.
func (v *Verifier) Len() int { return v.seen.Len() }
