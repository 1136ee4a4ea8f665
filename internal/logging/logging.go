// Package logging configures the process-wide slog logger. The interactive
// screen owns the terminal, so while the TUI runs everything goes to a
// rotated file; plain runs also mirror to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

var fileWriter *lumberjack.Logger

// Setup builds a logger writing to logFile. An empty logFile in TUI mode
// discards logs entirely; otherwise stderr is used.
func Setup(logFile, level string, isTUI bool) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if logFile == "" {
		if isTUI {
			return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
		}
		return slog.New(stderrHandler(lvl)), nil
	}

	if dir := filepath.Dir(logFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	fileWriter = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	var w io.Writer = fileWriter
	handler := tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
	return slog.New(handler), nil
}

func stderrHandler(lvl slog.Level) slog.Handler {
	noColor := !isatty.IsTerminal(os.Stderr.Fd()) || os.Getenv("NO_COLOR") != ""
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
}

// Close closes the log file writer, if one was opened.
func Close() error {
	if fileWriter != nil {
		return fileWriter.Close()
	}
	return nil
}
