// Package urlutil provides URL canonicalization helpers used for link
// comparison.
//
// Two pages rarely agree on how they spell the same address: with or without
// a scheme, with or without "www.", with or without a trailing slash, with a
// fragment appended. Normalize reduces all of these variants to a single
// comparable key so that "is this the link we expected" becomes a string
// equality check.
//
// Design decision: Normalize never returns an error. A malformed URL still
// produces a key; it simply will not match anything extracted from a real
// page. Aborting the caller over one bad spreadsheet cell would be worse
// than a non-matching key.
package urlutil
