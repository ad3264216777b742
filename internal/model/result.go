package model

import "time"

// Link-check row statuses. Each submitted row ends up with exactly one of
// these after a run completes.
const (
	// StatusOK means the expected link was found and the anchor text
	// matched (or no particular anchor was expected).
	StatusOK = "ok"

	// StatusAnchorMismatch means the link was found but none of its anchor
	// texts matched the expected one.
	StatusAnchorMismatch = "anchor_mismatch"

	// StatusLinkNotFound means the page was fetched but the expected link
	// does not appear on it.
	StatusLinkNotFound = "link_not_found"

	// StatusFetchError means the page itself could not be fetched; the
	// Error field carries the reason.
	StatusFetchError = "fetch_error"
)

// Domain-check result statuses.
const (
	// DomainStatusOK means the homepage was fetched and analyzed.
	DomainStatusOK = "ok"

	// DomainStatusError means the homepage could not be fetched.
	DomainStatusError = "error"
)

// MaxErrorLength bounds error messages surfaced to callers. Upstream servers
// can return arbitrarily large error pages; truncating keeps status payloads
// and logs small.
const MaxErrorLength = 200

// ClampError truncates an error message to MaxErrorLength characters.
func ClampError(msg string) string {
	if len(msg) > MaxErrorLength {
		return msg[:MaxErrorLength]
	}
	return msg
}

// Row is one expected-link row from the caller's input: "page Site should
// contain a link to Link with anchor text Anchor". RowNum is the 1-based
// position in the original input and is the sort key for published results.
type Row struct {
	RowNum int    `json:"row_num"`
	Site   string `json:"site"`
	Link   string `json:"link"`
	Anchor string `json:"anchor"`
}

// LinkCheckResult is the outcome for one input row. The full set is sorted
// by RowNum before publication, so output order is deterministic regardless
// of fetch completion order.
type LinkCheckResult struct {
	RowNum         int      `json:"row_num"`
	Site           string   `json:"site"`
	ExpectedLink   string   `json:"expected_link"`
	ExpectedAnchor string   `json:"expected_anchor"`
	Status         string   `json:"status"`
	FoundAnchors   []string `json:"found_anchors"`
	Error          string   `json:"error,omitempty"`
}

// TargetMatch records whether one target domain was linked from a referring
// domain's homepage, and with which anchor texts.
type TargetMatch struct {
	Found   bool     `json:"found"`
	Anchors []string `json:"anchors"`
}

// DomainCheckResult is the outcome for one referring domain. Targets always
// contains an entry per requested target domain, found or not. The full set
// is sorted by Domain before publication.
type DomainCheckResult struct {
	Domain     string                 `json:"domain"`
	Status     string                 `json:"status"`
	Error      string                 `json:"error,omitempty"`
	LinksCount int                    `json:"links_count"`
	Targets    map[string]TargetMatch `json:"targets"`
}

// HasTarget reports whether any requested target domain was found.
func (r DomainCheckResult) HasTarget() bool {
	for _, t := range r.Targets {
		if t.Found {
			return true
		}
	}
	return false
}

// LogEntry is one per-unit completion event appended to the running log.
// Link-check entries set Site, domain-check entries set Domain and Links.
type LogEntry struct {
	Site      string    `json:"site,omitempty"`
	Domain    string    `json:"domain,omitempty"`
	Status    string    `json:"status"`
	Links     int       `json:"links,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"ts"`
}
