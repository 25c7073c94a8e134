// Package cli renders the setpart command-line output: the progress
// spinner, streamed partitions, run summaries and shell completions.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/ui"
	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate is how often the spinner line is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
)

// FormatExecutionDuration renders short durations in µs or ms and longer
// ones with time.Duration's own format.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner is the subset of a terminal spinner used by DisplayProgress.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                  { rs.s.Start() }
func (rs *realSpinner) Stop()                   { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(sfx string) { rs.s.Suffix = sfx }

// newSpinner is replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// ProgressState tracks the completed fraction of several concurrent
// enumerations.
type ProgressState struct {
	progresses []float64
}

// NewProgressState tracks numGenerators enumerations, all at zero.
func NewProgressState(numGenerators int) *ProgressState {
	return &ProgressState{progresses: make([]float64, numGenerators)}
}

// Update records value for the enumeration at index, clamped to [0,1].
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = min(max(value, 0), 1)
}

// CalculateAverage returns the mean progress over all enumerations.
func (ps *ProgressState) CalculateAverage() float64 {
	if len(ps.progresses) == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(len(ps.progresses))
}

// progressBar draws a bar of the given length filled to progress.
func progressBar(progress float64, length int) string {
	filled := int(min(max(progress, 0), 1) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// DisplayProgress shows a spinner with the average progress and ETA of
// numGenerators enumerations until progressChan is closed. It is meant to
// run in its own goroutine and calls wg.Done on return.
//
// Parameters:
//   - wg: Signalled when the display has finished.
//   - progressChan: Progress updates; closing it ends the display.
//   - numGenerators: The number of enumerations reporting.
//   - out: Where the spinner is drawn.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan partition.ProgressUpdate, numGenerators int, out io.Writer) {
	defer wg.Done()
	if numGenerators <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numGenerators > 1 {
		label = "Avg progress"
	}
	state := NewProgressWithETA(numGenerators)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, 0, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.GeneratorIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label, FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// DisplaySummary prints the outcome of one enumeration run.
//
// Parameters:
//   - summary: The run summary.
//   - duration: Wall time of the run.
//   - out: The destination.
func DisplaySummary(summary partition.Summary, duration time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Run summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Generator    : %s%s%s\n", ui.ColorBlue(), summary.Generator, ui.ColorReset())
	fmt.Fprintf(out, "Set size     : %s%d%s\n", ui.ColorMagenta(), summary.N, ui.ColorReset())
	fmt.Fprintf(out, "Partitions   : %s%s%s of %s\n",
		ui.ColorCyan(), formatNumberString(strconv.FormatUint(summary.Count, 10)), ui.ColorReset(),
		formatNumberString(partition.Bell(summary.N).String()))
	fmt.Fprintf(out, "Fingerprint  : %s%016x%s\n", ui.ColorMagenta(), summary.Fingerprint, ui.ColorReset())
	if summary.Count > 0 {
		fmt.Fprintf(out, "First        : %s\n", summary.First)
		fmt.Fprintf(out, "Last         : %s\n", summary.Last)
	}
	fmt.Fprintf(out, "Duration     : %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())
	if summary.Complete {
		fmt.Fprintf(out, "Status       : %sComplete%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Status       : %sStopped at limit%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplayCount prints the number of partitions of an n-set.
func DisplayCount(n int, out io.Writer) {
	fmt.Fprintf(out, "B(%s%d%s) = %s%s%s\n",
		ui.ColorMagenta(), n, ui.ColorReset(),
		ui.ColorGreen(), formatNumberString(partition.Bell(n).String()), ui.ColorReset())
}

// formatNumberString inserts thousands separators into a decimal string.
func formatNumberString(s string) string {
	prefix := ""
	if strings.HasPrefix(s, "-") {
		prefix, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return prefix + s
	}
	var b strings.Builder
	b.Grow(len(prefix) + len(s) + (len(s)-1)/3)
	b.WriteString(prefix)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
