// Package service implements the partition operations behind the HTTP API,
// independently of the transport.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/partition"
)

var (
	// ErrMaxValueExceeded is returned when n is above the service limit.
	ErrMaxValueExceeded = errors.New("requested set size exceeds the maximum allowed")
	// ErrUnknownAlgorithm is returned for a generator name that is not
	// registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Default limits.
const (
	// DefaultMaxN bounds the set size for listing requests.
	DefaultMaxN = 16
	// DefaultMaxPartitions bounds the number of partitions in one response.
	DefaultMaxPartitions = 10_000
	// MaxCountN bounds the set size for counting requests.
	MaxCountN = 1000
)

// Result is the response of an Enumerate call.
type Result struct {
	Algorithm   string
	N           int
	Bell        *big.Int
	Partitions  []partition.Partition
	Fingerprint uint64
	Complete    bool
}

// Service lists and counts set partitions.
type Service interface {
	// Enumerate returns up to limit partitions of {1,…,n} in generation
	// order. A zero limit means the service maximum.
	Enumerate(ctx context.Context, algo string, n int, limit uint64) (Result, error)
	// Count returns the Bell number B(n).
	Count(n int) (*big.Int, error)
	// Algorithms lists the registered generator names.
	Algorithms() []string
}

// PartitionService implements Service with a generator factory.
type PartitionService struct {
	factory       partition.GeneratorFactory
	maxN          int
	maxPartitions uint64
}

// NewPartitionService creates a service. Non-positive limits select the
// defaults.
//
// Parameters:
//   - factory: Source of generators.
//   - maxN: Largest n accepted by Enumerate.
//   - maxPartitions: Largest number of partitions returned by Enumerate.
//
// Returns:
//   - *PartitionService: The service.
func NewPartitionService(factory partition.GeneratorFactory, maxN int, maxPartitions uint64) *PartitionService {
	if maxN <= 0 {
		maxN = DefaultMaxN
	}
	if maxPartitions == 0 {
		maxPartitions = DefaultMaxPartitions
	}
	return &PartitionService{factory: factory, maxN: maxN, maxPartitions: maxPartitions}
}

// MaxN returns the largest n accepted by Enumerate.
func (s *PartitionService) MaxN() int { return s.maxN }

// MaxPartitions returns the response size cap.
func (s *PartitionService) MaxPartitions() uint64 { return s.maxPartitions }

// Enumerate implements Service.
func (s *PartitionService) Enumerate(ctx context.Context, algo string, n int, limit uint64) (Result, error) {
	if n < 0 {
		return Result{}, apperrors.NewValidationError("n", "must be a non-negative integer", n)
	}
	if n > s.maxN {
		return Result{}, fmt.Errorf("%w: n=%d, maximum %d", ErrMaxValueExceeded, n, s.maxN)
	}
	gen, err := s.factory.Get(algo)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	if limit == 0 || limit > s.maxPartitions {
		limit = s.maxPartitions
	}

	bell := partition.Bell(n)
	capacity := limit
	if bell.IsUint64() && bell.Uint64() < capacity {
		capacity = bell.Uint64()
	}
	parts := make([]partition.Partition, 0, capacity)
	summary, err := partition.Enumerate(ctx, gen, n, partition.Options{Limit: limit}, func(p partition.Partition) error {
		parts = append(parts, p.Clone())
		return nil
	})
	if err != nil {
		return Result{}, apperrors.NewEnumerationError(gen.Name(), n, err)
	}
	return Result{
		Algorithm:   gen.Name(),
		N:           n,
		Bell:        bell,
		Partitions:  parts,
		Fingerprint: summary.Fingerprint,
		Complete:    summary.Complete,
	}, nil
}

// Count implements Service.
func (s *PartitionService) Count(n int) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError("n", "must be a non-negative integer", n)
	}
	if n > MaxCountN {
		return nil, fmt.Errorf("%w: n=%d, maximum %d", ErrMaxValueExceeded, n, MaxCountN)
	}
	return partition.Bell(n), nil
}

// Algorithms implements Service.
func (s *PartitionService) Algorithms() []string {
	return s.factory.List()
}
