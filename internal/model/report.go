package model

import (
	"time"
)

// LinkCheckReport is the exportable outcome of a completed link check run.
// It bundles the per-row results with the status counts so writers do not
// have to recompute aggregates.
type LinkCheckReport struct {
	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Counts maps each status to the number of rows with that status.
	// All four statuses are always present, even when zero.
	Counts map[string]int `json:"counts"`

	// Results holds the per-row outcomes sorted by row number.
	Results []LinkCheckResult `json:"results"`
}

// NewLinkCheckReport builds a report from finished results.
// Counts are derived from the results so the two can never disagree.
func NewLinkCheckReport(results []LinkCheckResult) *LinkCheckReport {
	counts := map[string]int{
		StatusOK:             0,
		StatusAnchorMismatch: 0,
		StatusLinkNotFound:   0,
		StatusFetchError:     0,
	}
	for _, r := range results {
		counts[r.Status]++
	}
	return &LinkCheckReport{
		GeneratedAt: time.Now().UTC(),
		Counts:      counts,
		Results:     results,
	}
}

// TotalRows returns the number of checked rows.
func (r *LinkCheckReport) TotalRows() int {
	return len(r.Results)
}

// ProblemRows returns the results whose status is not ok.
func (r *LinkCheckReport) ProblemRows() []LinkCheckResult {
	var out []LinkCheckResult
	for _, res := range r.Results {
		if res.Status != StatusOK {
			out = append(out, res)
		}
	}
	return out
}

// DomainCheckReport is the exportable outcome of a completed domain
// check run.
type DomainCheckReport struct {
	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Counts maps ok and error to the number of domains in each state.
	Counts map[string]int `json:"counts"`

	// Results holds the per-domain outcomes sorted by domain name.
	Results []DomainCheckResult `json:"results"`
}

// NewDomainCheckReport builds a report from finished results.
func NewDomainCheckReport(results []DomainCheckResult) *DomainCheckReport {
	counts := map[string]int{
		DomainStatusOK:    0,
		DomainStatusError: 0,
	}
	for _, r := range results {
		counts[r.Status]++
	}
	return &DomainCheckReport{
		GeneratedAt: time.Now().UTC(),
		Counts:      counts,
		Results:     results,
	}
}

// TotalDomains returns the number of checked domains.
func (r *DomainCheckReport) TotalDomains() int {
	return len(r.Results)
}

// DomainsWithTargets returns the results where at least one target
// domain was found among the outbound links.
func (r *DomainCheckReport) DomainsWithTargets() []DomainCheckResult {
	var out []DomainCheckResult
	for _, res := range r.Results {
		if res.HasTarget() {
			out = append(out, res)
		}
	}
	return out
}
