package service

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/partition"
)

func TestNewPartitionService(t *testing.T) {
	t.Parallel()
	svc := NewPartitionService(partition.NewDefaultFactory(), 0, 0)
	if svc.MaxN() != DefaultMaxN || svc.MaxPartitions() != DefaultMaxPartitions {
		t.Errorf("defaults not applied: maxN=%d maxPartitions=%d", svc.MaxN(), svc.MaxPartitions())
	}
	svc = NewPartitionService(partition.NewDefaultFactory(), 8, 100)
	if svc.MaxN() != 8 || svc.MaxPartitions() != 100 {
		t.Errorf("limits not kept: maxN=%d maxPartitions=%d", svc.MaxN(), svc.MaxPartitions())
	}
}

func TestEnumerate(t *testing.T) {
	t.Parallel()
	svc := NewPartitionService(partition.NewDefaultFactory(), 10, 50)
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Enumerate(ctx, "successor", 3, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Partitions) != 5 || !res.Complete || res.Bell.Int64() != 5 {
			t.Errorf("unexpected result %+v", res)
		}
		want := []string{"{{1},{2},{3}}", "{{1},{2,3}}", "{{1,2},{3}}", "{{1,2,3}}", "{{1,3},{2}}"}
		for i, p := range res.Partitions {
			if p.String() != want[i] {
				t.Errorf("partition %d = %s, want %s", i, p, want[i])
			}
		}
	})

	t.Run("Limited", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Enumerate(ctx, "rgs", 4, 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Partitions) != 3 || res.Complete {
			t.Errorf("expected 3 partitions, incomplete; got %d, %v", len(res.Partitions), res.Complete)
		}
	})

	t.Run("CappedByService", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Enumerate(ctx, "successor", 6, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Partitions) != 50 {
			t.Errorf("expected the service cap of 50, got %d", len(res.Partitions))
		}
	})

	t.Run("Errors", func(t *testing.T) {
		t.Parallel()
		var validation apperrors.ValidationError
		if _, err := svc.Enumerate(ctx, "successor", -1, 0); !errors.As(err, &validation) {
			t.Errorf("expected ValidationError, got %v", err)
		}
		if _, err := svc.Enumerate(ctx, "successor", 11, 0); !errors.Is(err, ErrMaxValueExceeded) {
			t.Errorf("expected ErrMaxValueExceeded, got %v", err)
		}
		if _, err := svc.Enumerate(ctx, "nope", 3, 0); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
		}
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.Enumerate(cancelled, "successor", 3, 0); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestCount(t *testing.T) {
	t.Parallel()
	svc := NewPartitionService(partition.NewDefaultFactory(), 0, 0)
	got, err := svc.Count(30)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "846749014511809332450147" {
		t.Errorf("Count(30) = %s", got)
	}
	if _, err := svc.Count(-2); err == nil {
		t.Error("expected an error for negative n")
	}
	if _, err := svc.Count(MaxCountN + 1); !errors.Is(err, ErrMaxValueExceeded) {
		t.Errorf("expected ErrMaxValueExceeded, got %v", err)
	}
}

func TestAlgorithms(t *testing.T) {
	t.Parallel()
	svc := NewPartitionService(partition.NewDefaultFactory(), 0, 0)
	got := svc.Algorithms()
	if len(got) != 2 || got[0] != "rgs" || got[1] != "successor" {
		t.Errorf("Algorithms() = %v", got)
	}
}
