// Package logging provides the structured logger used by both checkers.
//
// Logs are written to stderr or a rotated file, never to stdout:
// stdout carries the per-module result lines that CI jobs grep.
package logging

// Logger is a levelled key-value logger.
//
//	logger.Info("offline flag set", "name", "HF_HUB_OFFLINE", "value", "1")
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}
