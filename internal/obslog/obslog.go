// Package obslog is the replay tool's structured logging surface: one
// zerolog.Logger configured from explicit fields, with an optional file
// sink alongside stdout.
package obslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the logger's level, output format and optional file sink.
type Config struct {
	Level  string // "debug", "info", "warn", "error"; defaults to "info"
	Format string // "pretty" for a console writer, anything else for JSON
	File   string // optional extra sink; "" disables it
}

// Logger wraps the configured zerolog.Logger and owns the optional log
// file, released on Close.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a Logger from cfg. The returned Logger's Close must run on
// every exit path once the file sink is in use.
func New(cfg Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var file *os.File
	writers := make([]io.Writer, 0, 2)

	if cfg.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, err
		}
		file = f
		writers = append(writers, f)
	}

	logger := zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp().Logger()
	return &Logger{Logger: logger, file: file}, nil
}

// Close releases the log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	_ = l.file.Sync()
	return l.file.Close()
}
