// Package input parses user-supplied check definitions into structured form.
//
// Link-check input is CSV with columns site, link, and optional anchor.
// Domain-check input is a free-form list of host names separated by newlines
// or commas. Both parsers are forgiving: invalid lines are dropped rather
// than rejected, because the typical source is a spreadsheet export with
// stray headers and blank lines. Row numbers always refer to positions in
// the original input, so a report line can be traced back to the
// spreadsheet row it came from even when lines were dropped.
package input
