// Package ui holds the colour themes shared by the CLI and error reporting,
// and decides whether colour should be used at all.
package ui

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Theme maps each kind of message to an ANSI escape sequence. Empty fields
// print nothing.
type Theme struct {
	Name string
	// Primary highlights headings and generator names.
	Primary string
	// Secondary is used for labels and separators.
	Secondary string
	// Success marks completed runs and matching results.
	Success string
	// Warning marks timeouts, limits and cancellations.
	Warning string
	// Error marks failures and mismatches.
	Error string
	// Info highlights values such as counts and fingerprints.
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme prints no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// the previous state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name ("dark", "light" or
// "none"). Unknown names select the dark theme.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// InitTheme picks the theme for a run that writes to out. Colour is
// disabled when noColor is set, when the NO_COLOR environment variable
// exists (https://no-color.org/), or when out is not a terminal.
//
// Returns:
//   - bool: true if colours are enabled.
func InitTheme(noColor bool, out io.Writer) bool {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	if noColor || noColorEnv || !IsTerminal(out) {
		SetCurrentTheme(NoColorTheme)
		return false
	}
	SetCurrentTheme(DarkTheme)
	return true
}
