package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/setpart/internal/errors"
)

// lookupEnv returns the value of EnvPrefix+key, and whether it is set and
// non-empty.
func lookupEnv(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

func getEnvString(key, defaultVal string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt parses EnvPrefix+key as an int. A malformed value is a
// ConfigError rather than silently ignored.
func getEnvInt(key string, defaultVal int) (int, error) {
	val, ok := lookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, apperrors.NewConfigError("invalid %s%s=%q: not an integer", EnvPrefix, key, val)
	}
	return parsed, nil
}

func getEnvUint64(key string, defaultVal uint64) (uint64, error) {
	val, ok := lookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return defaultVal, apperrors.NewConfigError("invalid %s%s=%q: not a non-negative integer", EnvPrefix, key, val)
	}
	return parsed, nil
}

// getEnvBool accepts true/1/yes and false/0/no, case-insensitively.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val, ok := lookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return defaultVal, apperrors.NewConfigError("invalid %s%s=%q: not a boolean", EnvPrefix, key, val)
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := lookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal, apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, key, val, err)
	}
	return parsed, nil
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills every setting whose flag was not given from its
// environment variable. Precedence: flags, then environment, then defaults.
//
// Recognised variables: SETPART_N, SETPART_ALGO, SETPART_LIMIT,
// SETPART_COUNT, SETPART_FORMAT, SETPART_TIMEOUT, SETPART_JSON,
// SETPART_QUIET, SETPART_DETAILS, SETPART_OUTPUT, SETPART_VERIFY,
// SETPART_SERVER, SETPART_PORT and SETPART_NO_COLOR.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, apply := range []func(*AppConfig, *flag.FlagSet) error{
		applyNumericOverrides,
		applyDurationOverrides,
		applyStringOverrides,
		applyBooleanOverrides,
	} {
		if err := apply(config, fs); err != nil {
			return err
		}
	}
	return nil
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) (err error) {
	if !isFlagSet(fs, "n") {
		if config.N, err = getEnvInt("N", config.N); err != nil {
			return err
		}
	}
	if !isFlagSet(fs, "limit") {
		if config.Limit, err = getEnvUint64("LIMIT", config.Limit); err != nil {
			return err
		}
	}
	return nil
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) (err error) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout, err = getEnvDuration("TIMEOUT", config.Timeout)
	}
	return err
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) error {
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "format") {
		config.Format = getEnvString("FORMAT", config.Format)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	return nil
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) error {
	overrides := []struct {
		key   string
		flags []string
		dst   *bool
	}{
		{"COUNT", []string{"count"}, &config.CountOnly},
		{"JSON", []string{"json"}, &config.JSONOutput},
		{"QUIET", []string{"quiet", "q"}, &config.Quiet},
		{"DETAILS", []string{"d", "details"}, &config.Details},
		{"VERIFY", []string{"verify"}, &config.Verify},
		{"SERVER", []string{"server"}, &config.ServerMode},
		{"NO_COLOR", []string{"no-color"}, &config.NoColor},
	}
	for _, o := range overrides {
		if isFlagSet(fs, o.flags...) {
			continue
		}
		val, err := getEnvBool(o.key, *o.dst)
		if err != nil {
			return err
		}
		*o.dst = val
	}
	return nil
}
