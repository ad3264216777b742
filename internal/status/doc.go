// Package status tracks the progress and results of one in-flight check run.
//
// Each engine owns exactly one Tracker. The run's background task is the
// only writer; HTTP pollers are the readers. Every read-modify-write is
// guarded by a single mutex, and the final result set is published as one
// atomic replace, so a poller can never observe a half-updated run.
//
// Starting a run is a compare-and-set on the running flag: TryStart either
// claims the idle tracker and resets it for the new run, or reports that a
// run is already in flight without touching any state. This is what makes
// "at most one run per engine" hold under concurrent submissions.
package status
