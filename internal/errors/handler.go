package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal escape codes used in error messages.
// It keeps this package free of any dependency on the ui package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider emits no escape codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleEnumerationError prints a status line for a failed enumeration and
// returns the exit code matching the kind of failure.
//
// Parameters:
//   - err: The error that ended the run. nil yields ExitSuccess.
//   - duration: How long the run lasted. Omitted from the message when zero.
//   - out: Destination of the status line.
//   - colors: Escape codes; nil means none.
//
// Returns:
//   - int: The exit code.
func HandleEnumerationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var mismatch MismatchError
	var config ConfigError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &mismatch):
		fmt.Fprintf(out, "%sStatus: Mismatch. %v%s\n", colors.Red(), err, colors.Reset())
		for _, d := range mismatch.Details {
			fmt.Fprintf(out, "  %s\n", d)
		}
		return ExitErrorMismatch
	case errors.As(err, &config):
		fmt.Fprintf(out, "Configuration error: %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
