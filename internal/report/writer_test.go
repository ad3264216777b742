package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/linkaudit/linkaudit/internal/model"
)

// createLinkCheckReport creates a link check report with sample data.
func createLinkCheckReport() *model.LinkCheckReport {
	return model.NewLinkCheckReport([]model.LinkCheckResult{
		{
			RowNum:         1,
			Site:           "https://blog.example.com/post",
			ExpectedLink:   "https://shop.example.com/",
			ExpectedAnchor: "Example Shop",
			Status:         model.StatusOK,
			FoundAnchors:   []string{"Example Shop"},
		},
		{
			RowNum:         2,
			Site:           "https://blog.example.com/other",
			ExpectedLink:   "https://shop.example.com/",
			ExpectedAnchor: "Best Shop",
			Status:         model.StatusAnchorMismatch,
			FoundAnchors:   []string{"Example Shop"},
		},
		{
			RowNum:       3,
			Site:         "https://news.example.com/",
			ExpectedLink: "https://shop.example.com/",
			Status:       model.StatusLinkNotFound,
			FoundAnchors: []string{},
		},
		{
			RowNum:       4,
			Site:         "https://dead.example.com/",
			ExpectedLink: "https://shop.example.com/",
			Status:       model.StatusFetchError,
			Error:        "connection refused",
		},
	})
}

// createDomainCheckReport creates a domain check report with sample data.
func createDomainCheckReport() *model.DomainCheckReport {
	return model.NewDomainCheckReport([]model.DomainCheckResult{
		{
			Domain:     "blog.example.com",
			Status:     model.DomainStatusOK,
			LinksCount: 12,
			Targets: map[string]model.TargetMatch{
				"shop.example.com": {Found: true, Anchors: []string{"Example Shop", "[no anchor]"}},
				"partner.com":      {Found: false, Anchors: []string{}},
			},
		},
		{
			Domain: "dead.example.com",
			Status: model.DomainStatusError,
			Error:  "connection refused",
			Targets: map[string]model.TargetMatch{
				"shop.example.com": {Found: false, Anchors: []string{}},
				"partner.com":      {Found: false, Anchors: []string{}},
			},
		},
	})
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes link check header and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "LINK CHECK REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "STATUS SUMMARY") {
			t.Error("expected output to contain status summary")
		}
		if !strings.Contains(output, "Rows Checked: 4") {
			t.Error("expected output to contain row count")
		}
	})

	t.Run("lists only problem rows by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "row 1:") {
			t.Error("passing row should not be listed by default")
		}
		if !strings.Contains(output, "row 2:") {
			t.Error("mismatch row should be listed")
		}
		if !strings.Contains(output, "Found Anchors: Example Shop") {
			t.Error("mismatch row should show found anchors")
		}
		if !strings.Contains(output, "Error: connection refused") {
			t.Error("fetch error row should show the error")
		}
	})

	t.Run("show ok lists all rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowOK(true))

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "row 1:") {
			t.Error("passing row should be listed with WithShowOK")
		}
	})

	t.Run("all rows passing reports success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := model.NewLinkCheckReport([]model.LinkCheckResult{
			{RowNum: 1, Site: "https://a.example.com/", ExpectedLink: "https://b.example.com/", Status: model.StatusOK},
		})

		if _, err := w.WriteLinkCheck(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "All rows passed") {
			t.Error("expected success message when nothing is listed")
		}
	})

	t.Run("writes domain check results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteDomainCheck(createDomainCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "DOMAIN CHECK REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "blog.example.com (12 outbound links)") {
			t.Error("expected per-domain line with link count")
		}
		if !strings.Contains(output, "[+] shop.example.com via: Example Shop, [no anchor]") {
			t.Error("expected found target with anchors")
		}
		if strings.Contains(output, "[-] partner.com") {
			t.Error("missing targets should only be listed in verbose mode")
		}
	})

	t.Run("verbose lists missing targets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.WriteDomainCheck(createDomainCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[-] partner.com not found") {
			t.Error("verbose output should list missing targets")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid link check json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.LinkCheckReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded.Results) != 4 {
			t.Errorf("decoded %d results, want 4", len(decoded.Results))
		}
		if decoded.Counts[model.StatusOK] != 1 {
			t.Errorf("ok count = %d, want 1", decoded.Counts[model.StatusOK])
		}
	})

	t.Run("writes valid domain check json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteDomainCheck(createDomainCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.DomainCheckReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if !decoded.Results[0].HasTarget() {
			t.Error("expected first domain to have a found target")
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("compact output should be a single line plus trailing newline")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes link check markdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Link Check Report") {
			t.Error("expected H1 title")
		}
		if !strings.Contains(output, "## Status Summary") {
			t.Error("expected status summary section")
		}
		if !strings.Contains(output, "Anchor Mismatch") {
			t.Error("expected humanized status label")
		}
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid pie chart")
		}
		if !strings.Contains(output, "Rows Needing Attention") {
			t.Error("expected problem rows section")
		}
	})

	t.Run("writes domain check markdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteDomainCheck(createDomainCheckReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Domain Check Report") {
			t.Error("expected H1 title")
		}
		if !strings.Contains(output, "`blog.example.com`") {
			t.Error("expected domain in results table")
		}
		if !strings.Contains(output, "shop.example.com") {
			t.Error("expected found target listed")
		}
	})

	t.Run("empty run produces valid document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteLinkCheck(model.NewLinkCheckReport(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No rows were checked.") {
			t.Error("expected empty-run message")
		}
	})
}

// errWriter always fails on Write, for MultiWriter error propagation.
type errWriter struct{}

var errSink = errors.New("sink closed")

func (errWriter) WriteLinkCheck(*model.LinkCheckReport) (int, error)     { return 0, errSink }
func (errWriter) WriteDomainCheck(*model.DomainCheckReport) (int, error) { return 0, errSink }

// TestMultiWriter tests writing to multiple destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		w := NewMultiWriter(NewSimpleWriter(&buf1), NewJSONWriter(&buf2))

		n, err := w.WriteLinkCheck(createLinkCheckReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf1.Len() == 0 || buf2.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != buf1.Len()+buf2.Len() {
			t.Errorf("total bytes = %d, want %d", n, buf1.Len()+buf2.Len())
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMultiWriter(errWriter{}, NewSimpleWriter(&buf))

		if _, err := w.WriteLinkCheck(createLinkCheckReport()); !errors.Is(err, errSink) {
			t.Fatalf("error = %v, want errSink", err)
		}
		if buf.Len() != 0 {
			t.Error("writers after the failing one should not be reached")
		}
	})
}

// TestStatusLabel tests status identifier humanization.
func TestStatusLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   string
	}{
		{"ok", "Ok"},
		{"anchor_mismatch", "Anchor Mismatch"},
		{"link_not_found", "Link Not Found"},
		{"fetch_error", "Fetch Error"},
		{"error", "Error"},
	}

	for _, tt := range tests {
		if got := statusLabel(tt.status); got != tt.want {
			t.Errorf("statusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
