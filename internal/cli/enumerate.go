package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/setpart/internal/config"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/ui"
)

// GetGeneratorsToRun resolves cfg.Algo against factory: every registered
// generator, in name order, for config.AlgoAll, otherwise the named one.
// It returns nil when the name is unknown.
func GetGeneratorsToRun(cfg config.AppConfig, factory partition.GeneratorFactory) []partition.Generator {
	if cfg.Algo != config.AlgoAll {
		gen, err := factory.Get(cfg.Algo)
		if err != nil {
			return nil
		}
		return []partition.Generator{gen}
	}
	names := factory.List()
	gens := make([]partition.Generator, 0, len(names))
	for _, name := range names {
		if gen, err := factory.Get(name); err == nil {
			gens = append(gens, gen)
		}
	}
	return gens
}

// PrintExecutionConfig prints the run parameters.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Enumerating the partitions of %s{1,…,%d}%s (%s%s%s in total) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(),
		ui.ColorCyan(), formatNumberString(partition.Bell(cfg.N).String()), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	if cfg.Limit > 0 {
		writeOut(out, "Stopping after %s%d%s partitions.\n", ui.ColorYellow(), cfg.Limit, ui.ColorReset())
	}
	if cfg.Verify {
		writeOut(out, "Verification: every partition is checked for validity and uniqueness.\n")
	}
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(gens []partition.Generator, out io.Writer) {
	mode := "Concurrent comparison of all generators"
	if len(gens) == 1 {
		mode = fmt.Sprintf("Single run with the %s%s%s generator", ui.ColorGreen(), gens[0].Name(), ui.ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", mode)
	writeOut(out, "\n--- Starting Execution ---\n")
}

func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
