// Package fetch retrieves a single web page and extracts its hyperlinks.
//
// The Fetcher performs one HTTP GET per call, follows redirects, and parses
// the response body with golang.org/x/net/html. Every anchor element with an
// href attribute is resolved to an absolute URL against the page's final URL
// (after redirects), paired with its normalized comparison key and visible
// anchor text.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//
// A body that is not HTML, or that cannot be parsed, yields zero links
// rather than an error; only transport failures and non-2xx responses are
// reported as errors.
package fetch
