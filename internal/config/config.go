// Package config parses the replay CLI's flags: a required input file path
// followed by options in either "--flag value" or "--flag=value" form.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the fully resolved configuration for one replay run.
type Config struct {
	InputFile     string
	TradesCSV     string
	QuotesCSV     string
	LatencyCSV    string
	SnapshotDir   string
	SnapshotEvery int
	TickScale     int64
	Depth         int

	LogLevel  string
	LogFormat string
	LogFile   string
}

// exitError carries the process exit code a configuration failure should
// produce: 2 for a bad/missing flag, distinguishing it from the caller's
// own exit-1 "unreadable input" path.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitCode returns the process exit code a config error should produce, or
// 0 if err is not a config error.
func ExitCode(err error) int {
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return 0
}

func fail(format string, args ...any) error {
	return &exitError{code: 2, msg: fmt.Sprintf(format, args...)}
}

// Default returns the configuration's defaults.
func Default() Config {
	return Config{
		TradesCSV:     "data/trades.csv",
		QuotesCSV:     "data/quotes.csv",
		LatencyCSV:    "data/latency.csv",
		SnapshotDir:   "data/snapshots",
		SnapshotEvery: 0,
		TickScale:     100,
		Depth:         10,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Parse parses args (excluding the program name) into a Config. The first
// positional argument is the required input file path; options accept both
// "--flag value" and "--flag=value". Missing values and unknown flags
// return an error whose ExitCode is 2.
func Parse(args []string) (Config, error) {
	cfg := Default()

	if len(args) < 1 {
		return cfg, fail("usage: clobreplay <input_file> [flags]")
	}
	cfg.InputFile = args[0]

	i := 1
	for i < len(args) {
		arg := args[i]
		key, val, hasEq := strings.Cut(arg, "=")

		needValue := !hasEq
		if needValue {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return cfg, fail("missing value for %s", key)
			}
			val = args[i+1]
			i += 2
		} else {
			i++
		}

		switch key {
		case "--trades-csv":
			cfg.TradesCSV = val
		case "--quotes-csv":
			cfg.QuotesCSV = val
		case "--latency-csv":
			cfg.LatencyCSV = val
		case "--snap-dir":
			cfg.SnapshotDir = val
		case "--snapshot-every":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return cfg, fail("invalid number for --snapshot-every: %s", val)
			}
			cfg.SnapshotEvery = n
		case "--tick-scale":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil || n <= 0 {
				return cfg, fail("invalid number for --tick-scale: %s", val)
			}
			cfg.TickScale = n
		case "--depth":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return cfg, fail("invalid number for --depth: %s", val)
			}
			cfg.Depth = n
		case "--log-level":
			cfg.LogLevel = val
		case "--log-format":
			cfg.LogFormat = val
		case "--log-file":
			cfg.LogFile = val
		default:
			return cfg, fail("unknown option: %s", key)
		}
	}

	return cfg, nil
}
