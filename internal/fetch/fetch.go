package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/linkaudit/linkaudit/internal/urlutil"
)

// ErrUnexpectedStatus is returned when the server responds with a non-2xx
// status after redirects have been followed.
var ErrUnexpectedStatus = errors.New("unexpected status")

// DefaultUserAgent identifies the checker in HTTP requests. Pages served to
// unknown clients sometimes differ from pages served to browsers, so the
// default mimics a common desktop browser the way the original input data
// was collected.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// DefaultMaxBodySize limits the response body size read per page. 5MB is
// sufficient for any realistic HTML page while preventing memory exhaustion
// from unexpectedly large responses.
const DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

// DefaultTimeout is the overall per-request timeout, covering connection,
// redirects, and body read.
const DefaultTimeout = 15 * time.Second

// Link is one hyperlink extracted from a page.
type Link struct {
	// URL is the absolute URL the anchor points at, resolved against the
	// fetched page's final URL.
	URL string

	// Key is the normalized comparison key for URL (see urlutil.Normalize).
	Key string

	// Anchor is the anchor element's visible text with whitespace collapsed.
	// Empty when the anchor has no text content.
	Anchor string
}

// Fetcher retrieves pages and extracts their links.
//
// Design decision: We hold the http.Client in a struct rather than passing
// it on each call because:
//  1. Client configuration (redirects, timeouts) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to substitute a client in tests
type Fetcher struct {
	// client performs the requests. Redirects are followed with the
	// stdlib's default 10-hop bound.
	client *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits how much of the response body is read.
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient substitutes the HTTP client. Intended for tests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// New creates a Fetcher. Apply WithTimeout after WithClient if both are
// used, since WithClient replaces the client wholesale.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Links fetches pageURL and returns every hyperlink found on it.
//
// The GET follows redirects; relative hrefs are resolved against the final
// URL, so a page that redirects from example.com to www.example.com still
// resolves "/about" correctly. Transport failures, timeouts, and non-2xx
// responses return an error; an unparseable body returns zero links.
func (f *Fetcher) Links(ctx context.Context, pageURL string) ([]Link, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", pageURL, ErrUnexpectedStatus, resp.Status)
	}

	// The final URL after redirects is the base for resolving relative hrefs.
	base := resp.Request.URL

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		// Treat an unparseable body as a page with no links. The HTTP
		// layer succeeded, so this is not a fetch failure.
		return nil, nil
	}

	return extractLinks(doc, base), nil
}

// extractLinks walks the DOM collecting anchor elements with href attributes.
func extractLinks(doc *html.Node, base *url.URL) []Link {
	links := make([]Link, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				if resolved, err := base.Parse(href); err == nil {
					abs := resolved.String()
					links = append(links, Link{
						URL:    abs,
						Key:    urlutil.Normalize(abs),
						Anchor: anchorText(n),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// getAttr returns the value of the named attribute, or "" when absent.
func getAttr(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// anchorText collects the visible text content of a node's subtree with
// runs of whitespace collapsed to single spaces.
func anchorText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
