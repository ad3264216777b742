package checker

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/linkaudit/linkaudit/internal/fetch"
	"github.com/linkaudit/linkaudit/internal/model"
	"github.com/linkaudit/linkaudit/internal/runner"
	"github.com/linkaudit/linkaudit/internal/status"
	"github.com/linkaudit/linkaudit/internal/urlutil"
)

// LinkChecker verifies expected-link rows against their source pages.
// One LinkChecker exists per process; it runs at most one batch at a time.
type LinkChecker struct {
	tracker  *status.Tracker[model.LinkCheckResult]
	settings settings

	mu   sync.Mutex
	done chan struct{}
}

// NewLinkChecker creates an idle LinkChecker.
func NewLinkChecker(opts ...Option) *LinkChecker {
	return &LinkChecker{
		tracker:  status.New[model.LinkCheckResult](),
		settings: newSettings(opts),
	}
}

// Tracker exposes the engine's status tracker for polling.
func (c *LinkChecker) Tracker() *status.Tracker[model.LinkCheckResult] {
	return c.tracker
}

// Run submits a link-check batch and returns immediately.
//
// Rows are grouped by site so duplicate sites across rows are fetched once.
// Run fails with ErrNoRows for an empty submission and ErrAlreadyRunning
// when a batch is in flight; neither failure changes any state. On success
// a supervising goroutine owns the whole run: it fans the site fetches out
// over a pool of up to concurrency workers, records progress after every
// site, and finally publishes the sorted results.
//
// ctx bounds the lifetime of the background batch, so callers submitting
// from a request handler should pass a server-scoped context, not the
// request's.
func (c *LinkChecker) Run(ctx context.Context, rows []model.Row, concurrency int, timeout time.Duration) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	groups := groupBySite(rows)

	if !c.tracker.TryStart(len(rows), len(groups)) {
		return ErrAlreadyRunning
	}

	c.settings.logger.Info("link check started",
		"rows", len(rows),
		"sites", len(groups),
		"concurrency", concurrency,
	)

	done := make(chan struct{})
	c.mu.Lock()
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.run(ctx, groups, concurrency, timeout)
	}()
	return nil
}

// Wait blocks until the current batch finishes or ctx is cancelled.
// It returns immediately when no batch has been submitted.
func (c *LinkChecker) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// groupBySite buckets rows by their exact site string. Sites arrive
// pre-normalized with a scheme, so string identity is the grouping key.
func groupBySite(rows []model.Row) map[string][]model.Row {
	groups := make(map[string][]model.Row)
	for _, row := range rows {
		site := strings.TrimSpace(row.Site)
		groups[site] = append(groups[site], row)
	}
	return groups
}

// run is the supervising task for one batch. It is the only writer of the
// tracker for the run's duration.
func (c *LinkChecker) run(ctx context.Context, groups map[string][]model.Row, concurrency int, timeout time.Duration) {
	defer c.tracker.Finish()

	fetchOpts := append([]fetch.Option{fetch.WithTimeout(timeout)}, c.settings.fetchOpts...)
	fetcher := fetch.New(fetchOpts...)

	units := make([]runner.Unit[[]model.LinkCheckResult], 0, len(groups))
	for site, siteRows := range groups {
		site, siteRows := site, siteRows
		units = append(units, runner.Unit[[]model.LinkCheckResult]{
			ID: site,
			Do: func(ctx context.Context) ([]model.LinkCheckResult, error) {
				return checkSite(ctx, fetcher, site, siteRows)
			},
		})
	}

	var mu sync.Mutex
	all := make([]model.LinkCheckResult, 0)

	pool := runner.New(
		runner.WithConcurrency[[]model.LinkCheckResult](concurrency),
		runner.WithLogger[[]model.LinkCheckResult](c.settings.logger),
	)
	pool.Run(ctx, units, func(o runner.Outcome[[]model.LinkCheckResult]) {
		mu.Lock()
		all = append(all, o.Result...)
		mu.Unlock()

		entry := model.LogEntry{
			Site:      o.ID,
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		}
		if o.Err != nil {
			entry.Status = "error"
			entry.Error = model.ClampError(o.Err.Error())
		}
		c.tracker.RecordUnit(len(o.Result), 1, entry)
	})

	sort.Slice(all, func(i, j int) bool { return all[i].RowNum < all[j].RowNum })

	counts := map[string]int{
		model.StatusOK:             0,
		model.StatusAnchorMismatch: 0,
		model.StatusLinkNotFound:   0,
		model.StatusFetchError:     0,
	}
	for _, r := range all {
		counts[r.Status]++
	}

	c.tracker.Publish(all, counts)

	c.settings.logger.Info("link check complete",
		"rows", len(all),
		"ok", counts[model.StatusOK],
		"anchor_mismatch", counts[model.StatusAnchorMismatch],
		"link_not_found", counts[model.StatusLinkNotFound],
		"fetch_error", counts[model.StatusFetchError],
	)
}

// checkSite fetches one site and classifies every expected row belonging to
// it. A fetch failure classifies all of the site's rows as fetch_error and
// returns the error for logging; the rows still count as completed.
func checkSite(ctx context.Context, fetcher *fetch.Fetcher, site string, rows []model.Row) ([]model.LinkCheckResult, error) {
	results := make([]model.LinkCheckResult, 0, len(rows))

	links, err := fetcher.Links(ctx, site)
	if err != nil {
		msg := model.ClampError(err.Error())
		for _, row := range rows {
			results = append(results, model.LinkCheckResult{
				RowNum:         row.RowNum,
				Site:           site,
				ExpectedLink:   row.Link,
				ExpectedAnchor: strings.TrimSpace(row.Anchor),
				Status:         model.StatusFetchError,
				FoundAnchors:   []string{},
				Error:          msg,
			})
		}
		return results, err
	}

	// Several anchors may point at the same URL; keep them all, in page order.
	anchorsByKey := make(map[string][]string, len(links))
	for _, link := range links {
		anchorsByKey[link.Key] = append(anchorsByKey[link.Key], link.Anchor)
	}

	for _, row := range rows {
		results = append(results, classifyRow(row, site, anchorsByKey))
	}
	return results, nil
}

// classifyRow matches one expected row against the anchors extracted from
// its site.
func classifyRow(row model.Row, site string, anchorsByKey map[string][]string) model.LinkCheckResult {
	expectedAnchor := strings.TrimSpace(row.Anchor)

	result := model.LinkCheckResult{
		RowNum:         row.RowNum,
		Site:           site,
		ExpectedLink:   row.Link,
		ExpectedAnchor: expectedAnchor,
		FoundAnchors:   []string{},
	}

	found, ok := anchorsByKey[urlutil.Normalize(row.Link)]
	if !ok {
		result.Status = model.StatusLinkNotFound
		return result
	}

	result.FoundAnchors = found
	if expectedAnchor == "" || anchorMatches(expectedAnchor, found) {
		result.Status = model.StatusOK
	} else {
		result.Status = model.StatusAnchorMismatch
	}
	return result
}

// anchorMatches reports whether the expected anchor text case-insensitively
// equals any of the anchors found on the page.
func anchorMatches(expected string, found []string) bool {
	for _, f := range found {
		if strings.EqualFold(expected, f) {
			return true
		}
	}
	return false
}
