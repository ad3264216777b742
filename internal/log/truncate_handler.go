package log

import (
	"context"
	"io"
	"log/slog"
)

// MaxAttrLength is the maximum length of a logged string attribute value.
// Longer values are cut and marked with a trailing ellipsis.
const MaxAttrLength = 256

// TruncateHandler wraps an slog.Handler and bounds the length of string
// attribute values before passing records on.
//
// Design decision: We use a handler wrapper rather than truncating at each
// call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites cannot forget to do it
type TruncateHandler struct {
	// handler is the underlying slog handler that receives bounded records.
	handler slog.Handler
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewTruncateHandler(handler slog.Handler) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncateHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle bounds the record's attribute values and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	bounded := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		bounded.AddAttrs(truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, bounded)
}

// WithAttrs returns a new TruncateHandler whose underlying handler has the
// given (bounded) attributes.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bounded := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		bounded = append(bounded, truncateAttr(a))
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(bounded)}
}

// WithGroup returns a new TruncateHandler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name)}
}

// truncateAttr bounds a single attribute. Group attributes are processed
// recursively so nested values are bounded too.
func truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if len(s) > MaxAttrLength {
			a.Value = slog.StringValue(s[:MaxAttrLength] + "...")
		}
	case slog.KindGroup:
		group := a.Value.Group()
		bounded := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			bounded = append(bounded, truncateAttr(ga))
		}
		a.Value = slog.GroupValue(bounded...)
	}
	return a
}

// NewLogger creates a *slog.Logger writing text output to w through a
// TruncateHandler. Verbose selects Debug level, otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewTruncateHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a *slog.Logger writing JSON output to w through a
// TruncateHandler. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewTruncateHandler(slog.NewJSONHandler(w, opts)))
}

// NewServerLogger creates a logger for the long-running server process.
// The base level is Info so request logs stay visible; verbose selects
// Debug. jsonOutput switches from text to JSON records.
func NewServerLogger(w io.Writer, verbose, jsonOutput bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewTruncateHandler(handler))
}
