package urlutil

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a raw URL string into a comparable key.
//
// The transformation is:
//  1. Trim surrounding whitespace and lowercase the whole string.
//  2. Prepend "https://" when no http(s) scheme is present.
//  3. Discard any fragment portion.
//  4. Drop a leading "www." from the host.
//  5. Strip a single trailing "/" from the path.
//  6. Reassemble as scheme://host[path][?query], the query only when non-empty.
//
// Normalize is idempotent: feeding a key back in returns the same key.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	u, err := url.Parse(s)
	if err != nil {
		// Best effort for unparseable input: keep the scheme, treat the
		// remainder as an opaque hostless key. It compares, it never matches.
		scheme, rest, _ := strings.Cut(s, "://")
		return scheme + "://" + strings.TrimSuffix(rest, "/")
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.TrimSuffix(u.Path, "/")

	key := u.Scheme + "://" + host + path
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// Domain returns the lowercased host of the URL with a leading "www."
// stripped, or the empty string when no host can be extracted. Unlike
// Normalize it ignores scheme, path, and query entirely; it answers only
// "which site does this point at".
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
