// Package envconfig reads mytorch settings from the environment.
//
// Every getter re-reads its variable on each call, so tests can change the
// environment with t.Setenv.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of leading and trailing
// quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level set by MYTORCH_DEBUG.
// Values: 0/false = INFO (default), 1/true = DEBUG, 2 = TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("MYTORCH_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Int64 returns a getter for an integer variable with a default value.
// Unparsable values are logged and replaced by the default.
func Int64(key string, defaultValue int64) func() int64 {
	return func() int64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// Uint returns a getter for an unsigned integer variable with a default
// value. Unparsable values are logged and replaced by the default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// Seed seeds the random source of the demo and fit commands.
	Seed = Int64("MYTORCH_SEED", 42)
	// Steps is the default number of optimizer steps taken by fit.
	Steps = Uint("MYTORCH_FIT_STEPS", 200)
)

// EnvVar describes one environment variable for help output.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its current value and description.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"MYTORCH_DEBUG":     {"MYTORCH_DEBUG", LogLevel(), "Show additional debug information (e.g. MYTORCH_DEBUG=1)"},
		"MYTORCH_SEED":      {"MYTORCH_SEED", Seed(), "Seed for random initialization (default 42)"},
		"MYTORCH_FIT_STEPS": {"MYTORCH_FIT_STEPS", Steps(), "Default number of optimizer steps for fit (default 200)"},
	}
}

// Values returns the current value of every variable as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
