package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/setpart/internal/cli"
	"github.com/agbru/setpart/internal/config"
	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/logging"
	"github.com/agbru/setpart/internal/orchestration"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/server"
	"github.com/agbru/setpart/internal/ui"
)

// progressLogThreshold is the progress step between two log lines when the
// status output is not a terminal.
const progressLogThreshold = 0.1

// Application is one setpart invocation: the parsed configuration and the
// generators it can run.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the partition generators.
	Factory partition.GeneratorFactory
	// ErrWriter receives diagnostics. When partitions stream to standard
	// output, banners, progress and summaries go here too.
	ErrWriter io.Writer
}

// New parses args (program name first) into an Application backed by the
// global generator registry.
//
// Returns:
//   - *Application: The application.
//   - error: flag.ErrHelp, a parse error, or a ConfigError.
func New(args []string, errWriter io.Writer) (*Application, error) {
	return NewWithFactory(args, errWriter, partition.GlobalFactory())
}

// NewWithFactory is New with an explicit generator factory.
func NewWithFactory(args []string, errWriter io.Writer, factory partition.GeneratorFactory) (*Application, error) {
	programName := "setpart"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}
	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.ShowVersion:
		PrintVersion(out)
		return apperrors.ExitSuccess
	case a.Config.Completion != "":
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor, a.statusWriter(out))

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.CountOnly:
		return a.runCount(out)
	case a.Config.Algo == config.AlgoAll:
		return a.runComparison(ctx, out)
	}
	return a.runEnumerate(ctx, out)
}

// statusWriter is where banners, progress and summaries go: out when the
// partitions are written to a file, ErrWriter when they stream to out.
func (a *Application) statusWriter(out io.Writer) io.Writer {
	if a.Config.OutputFile != "" || a.Config.CountOnly || a.Config.Algo == config.AlgoAll {
		return out
	}
	return a.ErrWriter
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer(ctx context.Context) int {
	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

type countJSON struct {
	N    int    `json:"n"`
	Bell string `json:"bell"`
}

func (a *Application) runCount(out io.Writer) int {
	if a.Config.JSONOutput {
		return encodeJSON(out, countJSON{N: a.Config.N, Bell: partition.Bell(a.Config.N).String()})
	}
	cli.DisplayCount(a.Config.N, out)
	return apperrors.ExitSuccess
}

// runComparison runs every generator concurrently and checks that they
// agree. Partitions are not printed in this mode.
func (a *Application) runComparison(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	gens := cli.GetGeneratorsToRun(a.Config, a.Factory)
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(gens, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}
	results := orchestration.ExecuteEnumerations(ctx, gens, a.Config, progressOut, partition.NewMetricsObserver())

	if a.Config.JSONOutput {
		code := encodeJSON(out, comparisonJSON(results))
		if code != apperrors.ExitSuccess {
			return code
		}
		if err := orchestration.CompareResults(results, a.Config.N); err != nil {
			return apperrors.HandleEnumerationError(err, 0, io.Discard, nil)
		}
		for _, res := range results {
			if res.Err != nil {
				return apperrors.HandleEnumerationError(res.Err, 0, io.Discard, nil)
			}
		}
		return apperrors.ExitSuccess
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config, out)
}

// runEnumerate streams the partitions of one generator to standard output
// or to the output file.
func (a *Application) runEnumerate(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	gen, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		return apperrors.HandleEnumerationError(apperrors.NewConfigError("%v", err), 0, a.ErrWriter, ui.ErrorColors{})
	}

	dest := out
	if a.Config.OutputFile != "" {
		f, err := cli.OpenOutput(a.Config.OutputFile)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error opening output file: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		defer f.Close()
		dest = f
	}
	status := a.statusWriter(out)
	verbose := !a.Config.Quiet && !a.Config.JSONOutput

	if verbose {
		cli.PrintExecutionConfig(a.Config, status)
		cli.PrintExecutionMode([]partition.Generator{gen}, status)
	}

	subject := partition.NewProgressSubject()
	subject.Register(partition.NewMetricsObserver())
	var progressChan chan partition.ProgressUpdate
	var displayWg sync.WaitGroup
	if verbose {
		if ui.IsTerminal(status) {
			progressChan = make(chan partition.ProgressUpdate, orchestration.ProgressBufferMultiplier)
			subject.Register(partition.NewChannelObserver(progressChan))
			displayWg.Add(1)
			go cli.DisplayProgress(&displayWg, progressChan, 1, status)
		} else {
			logger := logging.NewConsoleLogger(status, "enumerate", true)
			subject.Register(partition.NewLoggingObserver(logger.Zerolog(), progressLogThreshold))
		}
	}

	pw := cli.NewPartitionWriter(dest, a.Config.Format)
	opts := partition.Options{
		Limit:    a.Config.Limit,
		Verify:   a.Config.Verify,
		Reporter: subject.AsReporter(0),
	}
	start := time.Now()
	summary, err := partition.Enumerate(ctx, gen, a.Config.N, opts, pw.Write)
	duration := time.Since(start)

	if progressChan != nil {
		close(progressChan)
		displayWg.Wait()
	}
	if flushErr := pw.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		return apperrors.HandleEnumerationError(apperrors.NewEnumerationError(gen.Name(), a.Config.N, err), duration, status, ui.ErrorColors{})
	}

	switch {
	case a.Config.JSONOutput:
		return encodeJSON(status, newSummaryJSON(summary, duration))
	case verbose && a.Config.Details:
		cli.DisplaySummary(summary, duration, status)
	}
	if verbose && a.Config.OutputFile != "" {
		fmt.Fprintf(status, "\n%s✓ %d partitions saved to: %s%s%s\n",
			ui.ColorGreen(), pw.Lines(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err means -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// summaryJSON is the JSON rendering of a run summary.
type summaryJSON struct {
	Algorithm   string  `json:"algorithm"`
	N           int     `json:"n"`
	Count       uint64  `json:"count"`
	Bell        string  `json:"bell"`
	Fingerprint string  `json:"fingerprint"`
	First       [][]int `json:"first,omitempty"`
	Last        [][]int `json:"last,omitempty"`
	Complete    bool    `json:"complete"`
	Duration    string  `json:"duration"`
	Error       string  `json:"error,omitempty"`
}

func newSummaryJSON(s partition.Summary, duration time.Duration) summaryJSON {
	return summaryJSON{
		Algorithm:   s.Generator,
		N:           s.N,
		Count:       s.Count,
		Bell:        partition.Bell(s.N).String(),
		Fingerprint: fmt.Sprintf("%016x", s.Fingerprint),
		First:       s.First,
		Last:        s.Last,
		Complete:    s.Complete,
		Duration:    duration.String(),
	}
}

func comparisonJSON(results []orchestration.EnumerationResult) []summaryJSON {
	out := make([]summaryJSON, len(results))
	for i, res := range results {
		out[i] = newSummaryJSON(res.Summary, res.Duration)
		out[i].Algorithm = res.Name
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	return out
}

func encodeJSON(out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
