// Package runner provides a bounded-concurrency dispatcher for independent
// units of work.
//
// A Runner executes every submitted unit exactly once, running at most N
// units in parallel, and delivers each unit's outcome (result or error) to a
// callback in completion order. A failing unit never aborts the batch: its
// error is carried in the outcome and the remaining units keep running.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled worker
// pool because it's simpler and errgroup handles the concurrency correctly.
// Each unit gets its own goroutine, but only the configured number run
// simultaneously.
package runner
