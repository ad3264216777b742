package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/linkaudit/linkaudit/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showOK controls whether rows with status ok are listed
	// individually in addition to appearing in the summary.
	showOK bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowOK configures the writer to list passing rows as well as
// problem rows.
func WithShowOK(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showOK = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showOK:     false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteLinkCheck outputs the link check report in human-readable format.
func (w *SimpleWriter) WriteLinkCheck(report *model.LinkCheckReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "LINK CHECK REPORT")

	sb.WriteString(fmt.Sprintf("Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Rows Checked: %d\n", report.TotalRows()))
	sb.WriteString("\n")

	w.writeSection(&sb, "STATUS SUMMARY")
	for _, s := range []string{
		model.StatusOK,
		model.StatusAnchorMismatch,
		model.StatusLinkNotFound,
		model.StatusFetchError,
	} {
		sb.WriteString(fmt.Sprintf("  %-16s %d\n", statusLabel(s)+":", report.Counts[s]))
	}
	sb.WriteString("\n")

	w.writeSection(&sb, "RESULTS")
	listed := 0
	for _, r := range report.Results {
		if r.Status == model.StatusOK && !w.showOK {
			continue
		}
		listed++
		sb.WriteString(fmt.Sprintf("  [%s] row %d: %s\n", statusLabel(r.Status), r.RowNum, r.Site))
		sb.WriteString(fmt.Sprintf("      Expected Link: %s\n", r.ExpectedLink))
		if r.ExpectedAnchor != "" {
			sb.WriteString(fmt.Sprintf("      Expected Anchor: %s\n", r.ExpectedAnchor))
		}
		if len(r.FoundAnchors) > 0 && (w.verbose || r.Status == model.StatusAnchorMismatch) {
			sb.WriteString(fmt.Sprintf("      Found Anchors: %s\n", strings.Join(r.FoundAnchors, ", ")))
		}
		if r.Error != "" {
			sb.WriteString(fmt.Sprintf("      Error: %s\n", r.Error))
		}
	}
	if listed == 0 {
		if report.TotalRows() == 0 {
			sb.WriteString("  No rows were checked\n")
		} else {
			sb.WriteString("  All rows passed\n")
		}
	}
	sb.WriteString("\n")

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteDomainCheck outputs the domain check report in human-readable format.
func (w *SimpleWriter) WriteDomainCheck(report *model.DomainCheckReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "DOMAIN CHECK REPORT")

	sb.WriteString(fmt.Sprintf("Generated:       %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Domains Checked: %d\n", report.TotalDomains()))
	sb.WriteString("\n")

	w.writeSection(&sb, "STATUS SUMMARY")
	sb.WriteString(fmt.Sprintf("  %-7s %d\n", "Ok:", report.Counts[model.DomainStatusOK]))
	sb.WriteString(fmt.Sprintf("  %-7s %d\n", "Error:", report.Counts[model.DomainStatusError]))
	sb.WriteString("\n")

	w.writeSection(&sb, "RESULTS")
	if report.TotalDomains() == 0 {
		sb.WriteString("  No domains were checked\n")
	}
	for _, r := range report.Results {
		sb.WriteString(fmt.Sprintf("  [%s] %s (%d outbound links)\n", statusLabel(r.Status), r.Domain, r.LinksCount))
		if r.Error != "" {
			sb.WriteString(fmt.Sprintf("      Error: %s\n", r.Error))
		}
		for _, target := range sortedTargets(r) {
			match := r.Targets[target]
			if match.Found {
				sb.WriteString(fmt.Sprintf("      [+] %s via: %s\n", target, strings.Join(match.Anchors, ", ")))
			} else if w.verbose {
				sb.WriteString(fmt.Sprintf("      [-] %s not found\n", target))
			}
		}
	}
	sb.WriteString("\n")

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeBanner writes the centered report title between rules.
func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	pad := (70 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeSection writes a section header.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by linkaudit\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
