package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/setpart/internal/config"
	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/testutil"
)

// MockGenerator yields a fixed list of partitions, or runs PartitionsFunc.
type MockGenerator struct {
	name           string
	partitions     []partition.Partition
	PartitionsFunc func(n int) iter.Seq[partition.Partition]
}

func (m *MockGenerator) Name() string { return m.name }

func (m *MockGenerator) Partitions(n int) iter.Seq[partition.Partition] {
	if m.PartitionsFunc != nil {
		return m.PartitionsFunc(n)
	}
	return func(yield func(partition.Partition) bool) {
		for _, p := range m.partitions {
			if !yield(p) {
				return
			}
		}
	}
}

type countingObserver struct {
	mu      sync.Mutex
	updates int
}

func (c *countingObserver) Update(int, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates++
}

func TestExecuteEnumerations(t *testing.T) {
	t.Parallel()
	gens := []partition.Generator{&partition.SuccessorGenerator{}, &partition.RGSGenerator{}}
	obs := &countingObserver{}
	cfg := config.AppConfig{N: 6, Verify: true}

	results := ExecuteEnumerations(context.Background(), gens, cfg, io.Discard, obs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Name, res.Err)
		}
		if res.Name != gens[i].Name() {
			t.Errorf("result %d is %s, want %s", i, res.Name, gens[i].Name())
		}
		if res.Summary.Count != 203 || !res.Summary.Complete {
			t.Errorf("%s: count=%d complete=%v", res.Name, res.Summary.Count, res.Summary.Complete)
		}
	}
	if results[0].Summary.Fingerprint != results[1].Summary.Fingerprint {
		t.Error("fingerprints should agree")
	}
	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.updates < 2 {
		t.Errorf("extra observer got %d updates, want at least one per generator", obs.updates)
	}
}

func TestExecuteEnumerationsCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ExecuteEnumerations(ctx, []partition.Generator{&partition.SuccessorGenerator{}}, config.AppConfig{N: 8}, io.Discard)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", results[0].Err)
	}
	var enumErr apperrors.EnumerationError
	if !errors.As(results[0].Err, &enumErr) || enumErr.Generator != "successor" || enumErr.N != 8 {
		t.Errorf("expected an EnumerationError for successor n=8, got %v", results[0].Err)
	}
}

func TestCompareResults(t *testing.T) {
	t.Parallel()
	ok := func(name string, count, fp uint64, complete bool) EnumerationResult {
		return EnumerationResult{Name: name, Summary: partition.Summary{Count: count, Fingerprint: fp, Complete: complete}}
	}
	tests := []struct {
		name    string
		results []EnumerationResult
		wantErr bool
	}{
		{"Agree", []EnumerationResult{ok("a", 15, 7, true), ok("b", 15, 7, true)}, false},
		{"Wrong Bell", []EnumerationResult{ok("a", 14, 7, true)}, true},
		{"Count differs", []EnumerationResult{ok("a", 15, 7, true), ok("b", 14, 7, false)}, true},
		{"Fingerprint differs", []EnumerationResult{ok("a", 15, 7, true), ok("b", 15, 8, true)}, true},
		{"Truncated runs ignore fingerprints", []EnumerationResult{ok("a", 3, 7, false), ok("b", 3, 8, false)}, false},
		{"Failures ignored", []EnumerationResult{{Name: "x", Err: errors.New("boom")}, ok("a", 15, 7, true)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CompareResults(tt.results, 4)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CompareResults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var mismatch apperrors.MismatchError
				if !errors.As(err, &mismatch) || len(mismatch.Details) == 0 {
					t.Errorf("expected a MismatchError with details, got %v", err)
				}
			}
		})
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{N: 3}
	good := func(name string, d time.Duration) EnumerationResult {
		return EnumerationResult{Name: name, Duration: d, Summary: partition.Summary{Count: 5, Fingerprint: 42, Complete: true}}
	}

	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		results := []EnumerationResult{good("slow", 2*time.Millisecond), good("fast", time.Millisecond)}
		code := AnalyzeComparisonResults(results, cfg, &out)
		if code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
		}
		got := testutil.StripAnsiCodes(out.String())
		if !strings.Contains(got, "B(3) = 5") {
			t.Errorf("missing success line:\n%s", got)
		}
		if strings.Index(got, "fast") > strings.Index(got, "slow") {
			t.Errorf("results should be sorted by duration:\n%s", got)
		}
	})

	t.Run("Mismatch", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		bad := good("bad", time.Millisecond)
		bad.Summary.Count = 4
		code := AnalyzeComparisonResults([]EnumerationResult{good("a", time.Millisecond), bad}, cfg, &out)
		if code != apperrors.ExitErrorMismatch {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
		}
		if !strings.Contains(out.String(), "CRITICAL ERROR") {
			t.Errorf("missing mismatch report:\n%s", out.String())
		}
	})

	t.Run("AllFailed", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		results := []EnumerationResult{{Name: "a", Err: context.DeadlineExceeded}}
		code := AnalyzeComparisonResults(results, cfg, &out)
		if code != apperrors.ExitErrorTimeout {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
		}
		if !strings.Contains(out.String(), "No generator could complete") {
			t.Errorf("missing failure report:\n%s", out.String())
		}
	})
}

func TestExecuteEnumerationsWithMock(t *testing.T) {
	t.Parallel()
	mock := &MockGenerator{name: "mock", partitions: []partition.Partition{{{1, 2}}, {{1}, {2}}}}
	results := ExecuteEnumerations(context.Background(), []partition.Generator{mock}, config.AppConfig{N: 2, Limit: 1}, io.Discard)
	if results[0].Err != nil {
		t.Fatal(results[0].Err)
	}
	if results[0].Summary.Count != 1 || results[0].Summary.Complete {
		t.Errorf("limit not applied: %+v", results[0].Summary)
	}
}
