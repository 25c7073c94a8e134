package partition

import (
	"context"
	"errors"
	"math/big"
)

// CancelCheckInterval is the number of partitions produced between two
// context checks and progress reports.
const CancelCheckInterval = 1 << 12

// ErrNegativeSize is returned when an enumeration is requested for n < 0.
var ErrNegativeSize = errors.New("set size must not be negative")

// Options tunes an enumeration run.
type Options struct {
	// Limit stops the run after this many partitions. Zero means no limit.
	Limit uint64
	// Verify checks every partition for validity and uniqueness. It keeps
	// every partition seen in memory.
	Verify bool
	// Reporter, if set, receives the completed fraction of the run.
	Reporter ProgressReporter
}

// Summary describes a finished enumeration run.
type Summary struct {
	// Generator is the name of the generator used.
	Generator string
	// N is the size of the ground set.
	N int
	// Count is the number of partitions produced.
	Count uint64
	// Fingerprint is the order-independent digest of all partitions produced.
	Fingerprint uint64
	// First and Last are copies of the first and last partitions produced.
	First Partition
	Last  Partition
	// Complete is true when every partition of {1,…,n} was produced.
	Complete bool
}

// Enumerate drives gen over the partitions of {1,…,n}, calling visit for
// each one.
//
// The partition passed to visit is only valid during the call. The run stops
// early on the first visit error, when opts.Limit is reached, or when ctx is
// done; ctx is polled every CancelCheckInterval partitions.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - gen: The generator to drive.
//   - n: The size of the ground set.
//   - opts: Limit, verification and progress options.
//   - visit: Called for every partition. May be nil.
//
// Returns:
//   - Summary: Counters and digest for the partitions produced so far.
//   - error: A context error, a visit error, or an *InvalidPartitionError
//     from verification.
func Enumerate(ctx context.Context, gen Generator, n int, opts Options, visit func(Partition) error) (Summary, error) {
	summary := Summary{Generator: gen.Name(), N: n}
	if n < 0 {
		return summary, ErrNegativeSize
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	total := Bell(n)
	totalFloat, _ := new(big.Float).SetInt(total).Float64()
	report := opts.Reporter
	if report == nil {
		report = func(float64) {}
	}

	var verifier *Verifier
	if opts.Verify {
		verifier = NewVerifier(n)
	}
	fp := NewFingerprinter()
	var (
		err     error
		stopped bool
		last    Partition
	)

	for p := range gen.Partitions(n) {
		summary.Count++
		if summary.Count == 1 {
			summary.First = p.Clone()
		}
		last = p.CopyTo(last)
		fp.Add(p)
		if verifier != nil {
			if err = verifier.Check(p); err != nil {
				break
			}
		}
		if visit != nil {
			if err = visit(p); err != nil {
				break
			}
		}
		if opts.Limit > 0 && summary.Count >= opts.Limit {
			stopped = true
			break
		}
		if summary.Count%CancelCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
			report(float64(summary.Count) / totalFloat)
		}
	}

	summary.Fingerprint = fp.Sum()
	summary.Last = last
	partitionsEnumerated.WithLabelValues(gen.Name()).Add(float64(summary.Count))
	if err != nil {
		return summary, err
	}
	summary.Complete = !stopped || new(big.Int).SetUint64(summary.Count).Cmp(total) == 0
	report(1.0)
	return summary, nil
}
