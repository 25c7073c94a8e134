// Package orchestration runs one or more partition generators concurrently
// and reconciles their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/setpart/internal/cli"
	"github.com/agbru/setpart/internal/config"
	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/ui"
)

// EnumerationResult is the outcome of one generator's run.
type EnumerationResult struct {
	// Name is the generator's registry name.
	Name string
	// Summary holds the count, fingerprint and boundary partitions.
	Summary partition.Summary
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is non-nil if the run failed or was cancelled.
	Err error
}

// ProgressBufferMultiplier sizes the progress channel per generator so that
// a slow display rarely causes updates to be dropped.
const ProgressBufferMultiplier = 5

// ExecuteEnumerations runs every generator in gens over the partitions of
// {1,…,cfg.N}, concurrently, while a progress display draws on out.
//
// Parameters:
//   - ctx: Cancels all runs.
//   - gens: The generators to run.
//   - cfg: Supplies N, Limit and Verify.
//   - out: Destination of the progress display.
//   - observers: Additional progress observers (metrics, logging).
//
// Returns:
//   - []EnumerationResult: One result per generator, in the order of gens.
func ExecuteEnumerations(ctx context.Context, gens []partition.Generator, cfg config.AppConfig, out io.Writer, observers ...partition.ProgressObserver) []EnumerationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EnumerationResult, len(gens))
	progressChan := make(chan partition.ProgressUpdate, len(gens)*ProgressBufferMultiplier)

	subject := partition.NewProgressSubject()
	subject.Register(partition.NewChannelObserver(progressChan))
	for _, o := range observers {
		subject.Register(o)
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(gens), out)

	for i, gen := range gens {
		g.Go(func() error {
			start := time.Now()
			opts := partition.Options{
				Limit:    cfg.Limit,
				Verify:   cfg.Verify,
				Reporter: subject.AsReporter(i),
			}
			summary, err := partition.Enumerate(ctx, gen, cfg.N, opts, nil)
			results[i] = EnumerationResult{
				Name:     gen.Name(),
				Summary:  summary,
				Duration: time.Since(start),
				Err:      apperrors.NewEnumerationError(gen.Name(), cfg.N, err),
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// CompareResults checks that all successful results describe the same set
// of partitions. Counts must agree with each other and, for complete runs,
// with Bell(n); fingerprints are compared only between complete runs, since
// truncated runs of different generators cover different prefixes.
//
// Returns:
//   - error: A MismatchError listing the disagreements, or nil.
func CompareResults(results []EnumerationResult, n int) error {
	bell := partition.Bell(n)
	var details []string
	var ref *EnumerationResult
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		if res.Summary.Complete && new(big.Int).SetUint64(res.Summary.Count).Cmp(bell) != 0 {
			details = append(details, fmt.Sprintf("%s: %d partitions, expected B(%d) = %s", res.Name, res.Summary.Count, n, bell))
		}
		if ref == nil {
			ref = res
			continue
		}
		if res.Summary.Count != ref.Summary.Count {
			details = append(details, fmt.Sprintf("%s: %d partitions, %s: %d", res.Name, res.Summary.Count, ref.Name, ref.Summary.Count))
		}
		if res.Summary.Complete && ref.Summary.Complete && res.Summary.Fingerprint != ref.Summary.Fingerprint {
			details = append(details, fmt.Sprintf("%s: fingerprint %016x, %s: %016x", res.Name, res.Summary.Fingerprint, ref.Name, ref.Summary.Fingerprint))
		}
	}
	if len(details) > 0 {
		return apperrors.MismatchError{N: n, Details: details}
	}
	return nil
}

// AnalyzeComparisonResults prints a table of the results, sorted with
// successes first and by duration, and reports whether they agree.
//
// Parameters:
//   - results: The results to analyse. Sorted in place.
//   - cfg: The configuration the runs used.
//   - out: Destination of the report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the exit code of the first
//     failure when no generator succeeded.
func AnalyzeComparisonResults(results []EnumerationResult, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sGenerator%s\t%sPartitions%s\t%sFingerprint%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			successCount++
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%d\t%016x\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			res.Summary.Count, res.Summary.Fingerprint,
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No generator could complete the enumeration.\n")
		return apperrors.HandleEnumerationError(firstError, 0, out, ui.ErrorColors{})
	}

	if err := CompareResults(results, cfg.N); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The generators disagree.\n")
		return apperrors.HandleEnumerationError(err, 0, out, ui.ErrorColors{})
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent: B(%d) = %s.\n", cfg.N, partition.Bell(cfg.N))
	return apperrors.ExitSuccess
}
