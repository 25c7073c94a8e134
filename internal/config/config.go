// Package config turns command-line flags and SETPART_* environment
// variables into a validated AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/setpart/internal/errors"
)

// EnvPrefix prefixes every environment variable read by setpart.
const EnvPrefix = "SETPART_"

// Default configuration values.
const (
	// DefaultN is the default size of the ground set.
	DefaultN = 5
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the server listening port.
	DefaultPort = "8080"
	// DefaultAlgo is the default generator selection.
	DefaultAlgo = "successor"
	// DefaultFormat is the default line format for streamed partitions.
	DefaultFormat = FormatBraces
)

// MaxN is the largest accepted set size. Counting is exact for any n up to
// it; listing every partition is only practical far below.
const MaxN = 64

// Line formats for streamed partitions.
const (
	FormatBraces = "braces"
	FormatJSON   = "json"
)

// AlgoAll selects every registered generator and compares their results.
const AlgoAll = "all"

// AppConfig holds the settings of one setpart invocation.
type AppConfig struct {
	// N is the size of the ground set {1,…,n}.
	N int
	// Algo is a generator name, or AlgoAll.
	Algo string
	// Limit stops enumeration after this many partitions. Zero means all.
	Limit uint64
	// CountOnly prints only the number of partitions (the Bell number).
	CountOnly bool
	// Format is the line format of streamed partitions.
	Format string
	// Timeout bounds the run.
	Timeout time.Duration
	// JSONOutput prints summaries as JSON.
	JSONOutput bool
	// Quiet suppresses banners, progress and summaries.
	Quiet bool
	// Details prints the summary table after streaming.
	Details bool
	// OutputFile, if set, receives the streamed partitions.
	OutputFile string
	// Verify checks every partition for validity and uniqueness.
	Verify bool
	// ServerMode starts the HTTP API instead of enumerating.
	ServerMode bool
	// Port is the listening port in server mode.
	Port string
	// NoColor disables ANSI colours. NO_COLOR is honoured as well.
	NoColor bool
	// ShowVersion prints version information and exits.
	ShowVersion bool
	// Completion names a shell (bash, zsh, fish) to print a completion
	// script for.
	Completion string
}

// CompletionShells lists the shells a completion script can be generated
// for.
var CompletionShells = []string{"bash", "zsh", "fish"}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: The registered generator names.
//
// Returns:
//   - error: A ConfigError describing the first problem, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.N < 0 {
		return apperrors.NewConfigError("set size must not be negative: %d", c.N)
	}
	if c.N > MaxN {
		return apperrors.NewConfigError("set size %d exceeds the maximum of %d", c.N, MaxN)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Format != FormatBraces && c.Format != FormatJSON {
		return apperrors.NewConfigError("unrecognized format: '%s'. Valid formats are: %s, %s", c.Format, FormatBraces, FormatJSON)
	}
	if c.Algo != AlgoAll && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: '%s' or [%s]", c.Algo, AlgoAll, strings.Join(availableAlgos, ", "))
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell: '%s'. Valid shells are: %s", c.Completion, strings.Join(CompletionShells, ", "))
	}
	if c.ServerMode && c.Port == "" {
		return apperrors.NewConfigError("server mode requires a port")
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags not given on the command line, and validates the result.
//
// Parameters:
//   - programName: Used in the usage message.
//   - args: The arguments without the program name.
//   - errorWriter: Receives parse errors and usage text.
//   - availableAlgos: The registered generator names.
//
// Returns:
//   - AppConfig: The configuration.
//   - error: flag.ErrHelp, a flag parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.N, "n", DefaultN, "Size n of the ground set {1,…,n}.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, fmt.Sprintf("Generator: '%s' to compare all, or one of [%s].", AlgoAll, strings.Join(availableAlgos, ", ")))
	fs.Uint64Var(&config.Limit, "limit", 0, "Stop after this many partitions (0 for all).")
	fs.BoolVar(&config.CountOnly, "count", false, "Only print the number of partitions (Bell number).")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Line format for partitions: braces or json.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Print summaries in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: partitions only, no banners or progress.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Details, "d", false, "Print a run summary after the partitions.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.StringVar(&config.OutputFile, "output", "", "Write partitions to this file instead of stdout.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Verify, "verify", false, "Check every partition for validity and uniqueness.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Print version information (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}

	config.Algo = strings.ToLower(config.Algo)
	config.Format = strings.ToLower(config.Format)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// setCustomUsage replaces the default usage text with one that groups the
// flags under a short synopsis.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", fs.Name())
		fmt.Fprintln(out, "Enumerates the set partitions of {1,…,n} in lexicographic order.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Every flag can also be set through an environment variable named %s<FLAG>,\n", EnvPrefix)
		fmt.Fprintf(out, "e.g. %sN=8 or %sNO_COLOR=true. Command-line flags take precedence.\n", EnvPrefix, EnvPrefix)
	}
}
