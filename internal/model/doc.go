// Package model defines the data types shared across the checker engines,
// the status tracker, the HTTP API, and the report writers.
//
// All types here are plain data. Results are immutable once created: an
// engine builds them during a run and publishes the finished, sorted set in
// one step. The JSON tags define the wire shape served by the API and
// written by the JSON report writer, so changing them is a breaking change
// for API consumers.
package model
