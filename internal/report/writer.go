package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/linkaudit/linkaudit/internal/model"
)

// Writer defines the interface for report output.
// Implementations write check results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteLinkCheck outputs a link check report to the configured
	// destination. Returns the number of bytes written and any error.
	WriteLinkCheck(report *model.LinkCheckReport) (int, error)

	// WriteDomainCheck outputs a domain check report to the configured
	// destination. Returns the number of bytes written and any error.
	WriteDomainCheck(report *model.DomainCheckReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteLinkCheck outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteLinkCheck(report *model.LinkCheckReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteLinkCheck(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteDomainCheck outputs the report to all configured Writers.
func (m *MultiWriter) WriteDomainCheck(report *model.DomainCheckReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteDomainCheck(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser renders status identifiers as human-readable labels.
var titleCaser = cases.Title(language.English)

// statusLabel converts a status identifier like "anchor_mismatch" into
// a display label like "Anchor Mismatch".
func statusLabel(status string) string {
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}
