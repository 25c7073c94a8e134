package cli

import (
	"bytes"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/agbru/setpart/internal/config"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/testutil"
)

type stubGenerator struct{ name string }

func (s stubGenerator) Name() string { return s.name }

func (s stubGenerator) Partitions(int) iter.Seq[partition.Partition] {
	return func(func(partition.Partition) bool) {}
}

func TestGetGeneratorsToRun(t *testing.T) {
	t.Parallel()
	factory := partition.NewTestFactory(map[string]partition.Generator{
		"b": stubGenerator{"b"},
		"a": stubGenerator{"a"},
	})

	all := GetGeneratorsToRun(config.AppConfig{Algo: config.AlgoAll}, factory)
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("expected [a b], got %v", all)
	}
	one := GetGeneratorsToRun(config.AppConfig{Algo: "b"}, factory)
	if len(one) != 1 || one[0].Name() != "b" {
		t.Errorf("expected [b], got %v", one)
	}
	if got := GetGeneratorsToRun(config.AppConfig{Algo: "zzz"}, factory); got != nil {
		t.Errorf("expected nil for an unknown name, got %v", got)
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintExecutionConfig(config.AppConfig{N: 6, Timeout: time.Minute, Limit: 10, Verify: true}, &out)
	got := testutil.StripAnsiCodes(out.String())
	for _, want := range []string{"{1,…,6}", "(203 in total)", "timeout of 1m0s", "Stopping after 10", "Verification"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintExecutionMode([]partition.Generator{stubGenerator{"successor"}}, &out)
	if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Single run with the successor generator") {
		t.Errorf("unexpected output %q", out.String())
	}
	out.Reset()
	PrintExecutionMode([]partition.Generator{stubGenerator{"a"}, stubGenerator{"b"}}, &out)
	if !strings.Contains(out.String(), "Concurrent comparison") {
		t.Errorf("unexpected output %q", out.String())
	}
}
