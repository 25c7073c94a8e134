package partition

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprinter accumulates an order-independent digest of a stream of
// partitions. Each partition is hashed in canonical form and the hashes are
// summed modulo 2^64, so two generators that yield the same set of
// partitions in different orders produce the same Sum.
type Fingerprinter struct {
	digest *xxhash.Digest
	buf    []byte
	sum    uint64
}

// NewFingerprinter returns an empty fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{digest: xxhash.New()}
}

// Add folds p into the fingerprint.
func (f *Fingerprinter) Add(p Partition) {
	p = p.Canonical()
	f.buf = f.buf[:0]
	for _, block := range p {
		for _, x := range block {
			f.buf = binary.AppendUvarint(f.buf, uint64(x))
		}
		// 0 never occurs as an element, so it separates blocks.
		f.buf = append(f.buf, 0)
	}
	f.digest.Reset()
	_, _ = f.digest.Write(f.buf)
	f.sum += f.digest.Sum64()
}

// Sum returns the current fingerprint.
func (f *Fingerprinter) Sum() uint64 { return f.sum }
