package input

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/linkaudit/linkaudit/internal/model"
)

// ParseRows reads link-check rows from CSV input.
//
// Each record is site,link[,anchor]. Records with fewer than two fields or
// an empty site or link are dropped; a site without an http(s) scheme gets
// "https://" prepended. RowNum is the 1-based record position in the input,
// counting dropped records, so results can be traced back to source lines.
func ParseRows(r io.Reader) []model.Row {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows := make([]model.Row, 0)
	rowNum := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			// Malformed CSV line: drop it, keep its row number reserved.
			continue
		}
		if len(record) < 2 {
			continue
		}

		site := strings.TrimSpace(record[0])
		link := strings.TrimSpace(record[1])
		anchor := ""
		if len(record) > 2 {
			anchor = strings.TrimSpace(record[2])
		}
		if site == "" || link == "" {
			continue
		}
		if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
			site = "https://" + site
		}

		rows = append(rows, model.Row{
			RowNum: rowNum,
			Site:   site,
			Link:   link,
			Anchor: anchor,
		})
	}

	return rows
}

// ParseDomainList extracts bare host names from a newline- or
// comma-delimited list. Entries are lowercased and stripped of scheme,
// leading "www.", and trailing slashes; empty entries and duplicates are
// dropped, keeping first-seen order.
func ParseDomainList(raw string) []string {
	domains := make([]string, 0)
	seen := make(map[string]struct{})
	for _, line := range strings.Split(strings.ReplaceAll(raw, ",", "\n"), "\n") {
		d := strings.ToLower(strings.TrimSpace(line))
		d = strings.TrimPrefix(d, "https://")
		d = strings.TrimPrefix(d, "http://")
		d = strings.TrimPrefix(d, "www.")
		d = strings.TrimRight(d, "/")
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		domains = append(domains, d)
	}
	return domains
}
