// Package main provides the entry point for the linkaudit CLI.
//
// linkaudit verifies backlinks: it checks that pages still carry expected
// links with expected anchor text, and that referring domains still link
// out to target domains.
//
// Usage:
//
//	linkaudit serve
//	linkaudit check <csv-file>
//	linkaudit domains --targets example.com <domain-list-file>
//
// See --help for all available options.
package main

// main is the entry point for linkaudit.
func main() {
	Execute()
}
