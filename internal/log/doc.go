// Package log provides logging helpers built on top of the standard slog
// package.
//
// The checker logs failures reported by arbitrary remote servers, and some
// of those failures embed entire HTML error pages in their messages. The
// TruncateHandler bounds every string attribute value so one chatty server
// cannot flood the log output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
// The handler wraps any underlying slog.Handler, so it works with both the
// text and JSON handlers.
package log
