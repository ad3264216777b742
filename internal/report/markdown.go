package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/linkaudit/linkaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteLinkCheck outputs the link check report in Markdown format.
func (w *MarkdownWriter) WriteLinkCheck(report *model.LinkCheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Check Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Rows Checked", strconv.Itoa(report.TotalRows())},
		},
	})
	md.PlainText("")

	w.writeLinkSummary(md, report)
	w.writeLinkResults(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeLinkSummary writes the status summary section with a pie chart.
func (w *MarkdownWriter) writeLinkSummary(md *markdown.Markdown, report *model.LinkCheckReport) {
	md.H2("Status Summary")
	md.PlainText("")

	statuses := []string{
		model.StatusOK,
		model.StatusAnchorMismatch,
		model.StatusLinkNotFound,
		model.StatusFetchError,
	}

	rows := make([][]string, 0, len(statuses)+1)
	for _, s := range statuses {
		rows = append(rows, []string{statusLabel(s), strconv.Itoa(report.Counts[s])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.TotalRows()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.TotalRows() > 0 {
		w.writeStatusPieChart(md, "Row Status Distribution", statuses, report.Counts)
	}

	problems := report.TotalRows() - report.Counts[model.StatusOK]
	switch {
	case report.Counts[model.StatusFetchError] > 0:
		md.Warningf(
			"%d row(s) could not be verified because the hosting page failed to load.",
			report.Counts[model.StatusFetchError],
		)
	case problems > 0:
		md.Importantf("%d row(s) need attention.", problems)
	case report.TotalRows() > 0:
		md.Tip("All checked links are present with matching anchor text.")
	default:
		md.Note("No rows were checked.")
	}
	md.PlainText("")
}

// writeStatusPieChart writes a mermaid pie chart for status distribution.
func (w *MarkdownWriter) writeStatusPieChart(md *markdown.Markdown, title string, statuses []string, counts map[string]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(title),
		piechart.WithShowData(true),
	)

	for _, s := range statuses {
		if counts[s] > 0 {
			chart.LabelAndIntValue(statusLabel(s), uint64(counts[s]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeLinkResults writes the per-row results, problems first.
func (w *MarkdownWriter) writeLinkResults(md *markdown.Markdown, report *model.LinkCheckReport) {
	md.H2("Results")
	md.PlainText("")

	if report.TotalRows() == 0 {
		md.PlainText("No rows were checked.")
		md.PlainText("")
		return
	}

	problems := report.ProblemRows()
	if len(problems) > 0 {
		md.PlainText("### Rows Needing Attention")
		md.PlainText("")
		w.writeLinkRowsTable(md, problems)
	}

	md.PlainText("### All Rows")
	md.PlainText("")
	w.writeLinkRowsTable(md, report.Results)
}

// writeLinkRowsTable writes a table of per-row outcomes.
func (w *MarkdownWriter) writeLinkRowsTable(md *markdown.Markdown, results []model.LinkCheckResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		detail := r.Error
		if detail == "" && r.Status == model.StatusAnchorMismatch {
			detail = "found: " + strings.Join(r.FoundAnchors, ", ")
		}
		if detail == "" {
			detail = "-"
		}

		rows[i] = []string{
			strconv.Itoa(r.RowNum),
			truncateCell(r.Site, 40),
			truncateCell(r.ExpectedLink, 40),
			statusLabel(r.Status),
			truncateCell(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Row", "Site", "Expected Link", "Status", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteDomainCheck outputs the domain check report in Markdown format.
func (w *MarkdownWriter) WriteDomainCheck(report *model.DomainCheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Domain Check Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Domains Checked", strconv.Itoa(report.TotalDomains())},
		},
	})
	md.PlainText("")

	w.writeDomainSummary(md, report)
	w.writeDomainResults(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeDomainSummary writes the status summary for a domain check run.
func (w *MarkdownWriter) writeDomainSummary(md *markdown.Markdown, report *model.DomainCheckReport) {
	md.H2("Status Summary")
	md.PlainText("")

	statuses := []string{model.DomainStatusOK, model.DomainStatusError}
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{statusLabel(model.DomainStatusOK), strconv.Itoa(report.Counts[model.DomainStatusOK])},
			{statusLabel(model.DomainStatusError), strconv.Itoa(report.Counts[model.DomainStatusError])},
			{"**Total**", "**" + strconv.Itoa(report.TotalDomains()) + "**"},
		},
	})
	md.PlainText("")

	if report.TotalDomains() > 0 {
		w.writeStatusPieChart(md, "Domain Status Distribution", statuses, report.Counts)
	}

	switch {
	case report.Counts[model.DomainStatusError] > 0:
		md.Warningf("%d domain(s) could not be fetched.", report.Counts[model.DomainStatusError])
	case report.TotalDomains() > 0:
		md.Tip("All domains were fetched successfully.")
	default:
		md.Note("No domains were checked.")
	}
	md.PlainText("")
}

// writeDomainResults writes the per-domain results with target matches.
func (w *MarkdownWriter) writeDomainResults(md *markdown.Markdown, report *model.DomainCheckReport) {
	md.H2("Results")
	md.PlainText("")

	if report.TotalDomains() == 0 {
		md.PlainText("No domains were checked.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Results))
	for i, r := range report.Results {
		detail := r.Error
		if detail == "" {
			detail = "-"
		}
		rows[i] = []string{
			"`" + r.Domain + "`",
			statusLabel(r.Status),
			strconv.Itoa(r.LinksCount),
			targetSummary(r),
			truncateCell(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Status", "Outbound Links", "Targets Found", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, r := range report.Results {
		if !r.HasTarget() {
			continue
		}
		md.PlainTextf("### `%s`", r.Domain)
		md.PlainText("")
		for _, target := range sortedTargets(r) {
			match := r.Targets[target]
			if !match.Found {
				continue
			}
			md.PlainTextf("Links to `%s` with anchors:", target)
			md.BulletList(match.Anchors...)
			md.PlainText("")
		}
	}
}

// targetSummary lists the target domains found on a page, or "-".
func targetSummary(r model.DomainCheckResult) string {
	var found []string
	for _, target := range sortedTargets(r) {
		if r.Targets[target].Found {
			found = append(found, target)
		}
	}
	if len(found) == 0 {
		return "-"
	}
	return strings.Join(found, ", ")
}

// sortedTargets returns the target domain keys in stable order.
func sortedTargets(r model.DomainCheckResult) []string {
	targets := make([]string, 0, len(r.Targets))
	for t := range r.Targets {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by linkaudit*")
}

// truncateCell truncates a string to maxLen characters with ellipsis.
func truncateCell(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
