// Package checker implements the two verification engines.
//
// The LinkChecker verifies that expected (site, link, anchor) rows actually
// appear on their source pages. Rows are grouped by site so each distinct
// page is fetched exactly once, the fetches fan out across a bounded worker
// pool, and each row is classified as ok, anchor_mismatch, link_not_found,
// or fetch_error.
//
// The DomainChecker crawls each referring domain's homepage, collects its
// outbound cross-domain links, and reports which of the requested target
// domains are linked to, with which anchor texts.
//
// Both engines share the same run discipline: a submission atomically claims
// the engine's status tracker (at most one run per engine), spawns one
// supervising goroutine, and returns immediately. The supervising goroutine
// owns all tracker writes; pollers read consistent snapshots at any time.
// One failing fetch never aborts the batch - every submitted unit produces
// exactly one outcome, and the final result set is sorted deterministically
// before being published in a single atomic replace.
package checker
