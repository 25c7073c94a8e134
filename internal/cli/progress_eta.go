package cli

import (
	"fmt"
	"time"
)

// maxETA caps the displayed estimate.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with an estimate of the remaining
// time, derived from the observed rate of progress since the start.
type ProgressWithETA struct {
	*ProgressState
	numGenerators int
	startTime     time.Time
	// progressRate is the average progress per second.
	progressRate float64
}

// NewProgressWithETA starts the clock for numGenerators enumerations.
func NewProgressWithETA(numGenerators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numGenerators),
		numGenerators: numGenerators,
		startTime:     time.Now(),
	}
}

// UpdateWithETA records an update and returns the new average progress and
// remaining-time estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	progress := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		p.progressRate = progress / elapsed
	}
	return progress, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate compactly: "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h, m := int(eta.Hours()), int(eta.Minutes())%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatProgressBarWithETA renders "  42.00% [████░░░░] ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	etaStr := FormatETA(eta)
	if progress >= 1 {
		etaStr = "< 1s"
	}
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", min(max(progress, 0), 1)*100, progressBar(progress, width), etaStr)
}
