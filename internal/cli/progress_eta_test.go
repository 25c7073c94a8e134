package cli

import (
	"strings"
	"testing"
	"time"
)

func TestNewProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(3)
	if p.ProgressState == nil {
		t.Fatal("ProgressState should not be nil")
	}
	if p.numGenerators != 3 {
		t.Errorf("numGenerators = %d, want 3", p.numGenerators)
	}
	if p.progressRate != 0 || p.GetETA() != 0 {
		t.Error("a fresh tracker has no rate and no ETA")
	}
	if p.startTime.IsZero() {
		t.Error("startTime should be set")
	}
}

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta < 0 {
		t.Errorf("ETA should not be negative, got %v", eta)
	}
	progress, _ = p.UpdateWithETA(1, 0.5)
	if progress != 0.375 {
		t.Errorf("progress = %f, want 0.375", progress)
	}
	p.UpdateWithETA(5, 0.9)
	p.UpdateWithETA(-1, 0.9)
	if got := p.CalculateAverage(); got != 0.375 {
		t.Errorf("out-of-range updates changed progress to %f", got)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.5)
	p.progressRate = 0.1
	if eta := p.GetETA(); eta < 4*time.Second || eta > 6*time.Second {
		t.Errorf("ETA = %v, want about 5s", eta)
	}

	p.Update(0, 0.001)
	p.progressRate = 1e-7
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want it capped at %v", eta, maxETA)
	}

	p.Update(0, 1)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA at completion = %v, want 0", eta)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{2 * time.Hour, "2h"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.expected {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	if got != " 50.00% [█████░░░░░] ETA: 30s" {
		t.Errorf("got %q", got)
	}
	got = FormatProgressBarWithETA(1, 0, 4)
	if !strings.HasSuffix(got, "ETA: < 1s") || !strings.Contains(got, "100.00%") {
		t.Errorf("got %q", got)
	}
}
