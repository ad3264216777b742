// Package server exposes the checkers over a JSON HTTP API.
//
// The API mirrors the two checkers: each gets a start endpoint that
// accepts raw input and launches a background run, a status endpoint
// that reports live progress, a results endpoint with filtering and
// pagination, and an advisory stop endpoint.
//
// Design decision: We use chi for routing because it composes plain
// net/http handlers, which keeps the handlers testable with httptest
// without any framework-specific machinery.
//
// Background runs are tied to the server's lifetime context, not the
// request context. A start request returns immediately and the run
// keeps going after the client disconnects.
package server
