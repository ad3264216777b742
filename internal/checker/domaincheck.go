package checker

import (
	"context"
	"net/url"
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

// noAnchorPlaceholder stands in for anchors with no visible text, so that
// "this domain is linked via an image" is still reported.
const noAnchorPlaceholder = "[no anchor]"

// DomainChecker crawls referring domains' homepages for outbound links to
// target domains. One DomainChecker exists per process; it runs at most one
// batch at a time.
type DomainChecker struct {
	tracker  *status.Tracker[model.DomainCheckResult]
	settings settings

	mu   sync.Mutex
	done chan struct{}
}

// NewDomainChecker creates an idle DomainChecker.
func NewDomainChecker(opts ...Option) *DomainChecker {
	return &DomainChecker{
		tracker:  status.New[model.DomainCheckResult](),
		settings: newSettings(opts),
	}
}

// Tracker exposes the engine's status tracker for polling.
func (c *DomainChecker) Tracker() *status.Tracker[model.DomainCheckResult] {
	return c.tracker
}

// Run submits a domain-check batch and returns immediately.
//
// Each referring domain's homepage (https://{domain}/) is fetched once,
// concurrency-bounded. Run fails with ErrNoDomains for an empty submission
// and ErrAlreadyRunning when a batch is in flight; neither failure changes
// any state. targetDomains may be empty, in which case the run still
// reports each domain's external link count.
func (c *DomainChecker) Run(ctx context.Context, domains, targetDomains []string, concurrency int, timeout time.Duration) error {
	if len(domains) == 0 {
		return ErrNoDomains
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	if !c.tracker.TryStart(len(domains), 0) {
		return ErrAlreadyRunning
	}

	c.settings.logger.Info("domain check started",
		"domains", len(domains),
		"targets", len(targetDomains),
		"concurrency", concurrency,
	)

	done := make(chan struct{})
	c.mu.Lock()
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.run(ctx, domains, targetDomains, concurrency, timeout)
	}()
	return nil
}

// Wait blocks until the current batch finishes or ctx is cancelled.
// It returns immediately when no batch has been submitted.
func (c *DomainChecker) Wait(ctx context.Context) error {
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

// run is the supervising task for one batch.
func (c *DomainChecker) run(ctx context.Context, domains, targetDomains []string, concurrency int, timeout time.Duration) {
	defer c.tracker.Finish()

	fetchOpts := append([]fetch.Option{fetch.WithTimeout(timeout)}, c.settings.fetchOpts...)
	fetcher := fetch.New(fetchOpts...)

	units := make([]runner.Unit[model.DomainCheckResult], 0, len(domains))
	for _, domain := range domains {
		domain := domain
		units = append(units, runner.Unit[model.DomainCheckResult]{
			ID: domain,
			Do: func(ctx context.Context) (model.DomainCheckResult, error) {
				return checkDomain(ctx, fetcher, domain, targetDomains)
			},
		})
	}

	var mu sync.Mutex
	all := make([]model.DomainCheckResult, 0, len(domains))

	pool := runner.New(
		runner.WithConcurrency[model.DomainCheckResult](concurrency),
		runner.WithLogger[model.DomainCheckResult](c.settings.logger),
	)
	pool.Run(ctx, units, func(o runner.Outcome[model.DomainCheckResult]) {
		mu.Lock()
		all = append(all, o.Result)
		mu.Unlock()

		entry := model.LogEntry{
			Domain:    o.ID,
			Status:    o.Result.Status,
			Links:     o.Result.LinksCount,
			Error:     o.Result.Error,
			Timestamp: time.Now().UTC(),
		}
		c.tracker.RecordUnit(1, 0, entry)
	})

	sort.Slice(all, func(i, j int) bool { return all[i].Domain < all[j].Domain })

	counts := map[string]int{
		model.DomainStatusOK:    0,
		model.DomainStatusError: 0,
	}
	for _, r := range all {
		counts[r.Status]++
	}

	c.tracker.Publish(all, counts)

	c.settings.logger.Info("domain check complete",
		"domains", len(all),
		"ok", counts[model.DomainStatusOK],
		"error", counts[model.DomainStatusError],
	)
}

// checkDomain fetches one referring domain's homepage and tests which
// target domains it links to. A fetch failure yields an error-status result
// with all targets not found; the error is also returned for logging.
func checkDomain(ctx context.Context, fetcher *fetch.Fetcher, domain string, targetDomains []string) (model.DomainCheckResult, error) {
	result := model.DomainCheckResult{
		Domain:  domain,
		Status:  model.DomainStatusOK,
		Targets: make(map[string]model.TargetMatch, len(targetDomains)),
	}
	for _, td := range targetDomains {
		result.Targets[td] = model.TargetMatch{Found: false, Anchors: []string{}}
	}

	pageURL := "https://" + domain + "/"
	links, err := fetcher.Links(ctx, pageURL)
	if err != nil {
		result.Status = model.DomainStatusError
		result.Error = model.ClampError(err.Error())
		return result, err
	}

	sourceDomain := urlutil.Domain(pageURL)

	// Group external anchors by destination domain. Internal links are
	// excluded: only cross-domain references count.
	anchorsByDomain := make(map[string][]string)
	external := 0
	for _, link := range links {
		u, err := url.Parse(link.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		linkDomain := urlutil.Domain(link.URL)
		if linkDomain == "" || linkDomain == sourceDomain {
			continue
		}
		external++
		anchor := link.Anchor
		if anchor == "" {
			anchor = noAnchorPlaceholder
		}
		anchorsByDomain[linkDomain] = append(anchorsByDomain[linkDomain], anchor)
	}
	result.LinksCount = external

	for _, td := range targetDomains {
		clean := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(td)), "www.")
		if anchors, ok := anchorsByDomain[clean]; ok {
			result.Targets[td] = model.TargetMatch{Found: true, Anchors: anchors}
		}
	}

	return result, nil
}
