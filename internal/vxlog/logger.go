// Package vxlog is Vexel's ambient structured-logging setup: operational
// diagnostics (currently the webcore server's route registration,
// skipped routes and per-request lines) go through log/slog with
// key/value fields, never plain
// fmt.Printf, the same contextual-field shape sambeau-basil's own
// request logger and devlog use throughout server/. It is never used
// for script output: `print` goes to the evaluator's Out writer and
// `dump` to stderr.
package vxlog

import (
	"log/slog"
	"os"
)

// Init installs a text-handler slog logger at level as the default
// logger for the whole process. verbose selects slog.LevelDebug;
// otherwise slog.LevelInfo.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
