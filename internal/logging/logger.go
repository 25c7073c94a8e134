// Package logging provides the structured logger shared by the server and
// the progress observers. It is backed by zerolog and exposes a small
// printf-style interface for call sites that predate structured logging.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging surface used across setpart.
type Logger interface {
	// Printf logs a formatted message at info level.
	Printf(format string, v ...any)
	// Println logs its operands, separated by spaces, at info level.
	Println(v ...any)
	// Debug, Info and Error start a structured event at that level.
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Error() *zerolog.Event
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewLogger returns a JSON logger writing to w with a timestamp and a
// "component" field.
//
// Parameters:
//   - w: Destination of the log lines.
//   - component: Value of the component field, e.g. "server".
//
// Returns:
//   - *ZerologAdapter: The logger.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewConsoleLogger returns a human-readable logger for terminals.
func NewConsoleLogger(w io.Writer, component string, noColor bool) *ZerologAdapter {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	zl := zerolog.New(cw).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (a *ZerologAdapter) Debug() *zerolog.Event { return a.logger.Debug() }
func (a *ZerologAdapter) Info() *zerolog.Event  { return a.logger.Info() }
func (a *ZerologAdapter) Error() *zerolog.Event { return a.logger.Error() }

// Zerolog returns the underlying logger.
func (a *ZerologAdapter) Zerolog() zerolog.Logger { return a.logger }

// StdLoggerAdapter implements Logger for a standard library *log.Logger.
// Structured events are rendered as JSON to the same writer.
type StdLoggerAdapter struct {
	std *log.Logger
	zl  zerolog.Logger
}

// NewStdLoggerAdapter wraps l.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{std: l, zl: zerolog.New(l.Writer())}
}

func (a *StdLoggerAdapter) Printf(format string, v ...any) { a.std.Printf(format, v...) }
func (a *StdLoggerAdapter) Println(v ...any)               { a.std.Println(v...) }
func (a *StdLoggerAdapter) Debug() *zerolog.Event          { return a.zl.Debug() }
func (a *StdLoggerAdapter) Info() *zerolog.Event           { return a.zl.Info() }
func (a *StdLoggerAdapter) Error() *zerolog.Event          { return a.zl.Error() }
