package status

import (
	"sync"

	"github.com/linkaudit/linkaudit/internal/model"
)

// Snapshot is a consistent, point-in-time copy of a run's progress, shaped
// for the status poll endpoint. Results are deliberately excluded to keep
// polling cheap; they are fetched separately once published.
//
// TotalSites and CheckedSites are only meaningful for link-check runs,
// where several input rows share one fetched site; domain-check runs leave
// them at zero.
type Snapshot struct {
	Running      bool             `json:"running"`
	Total        int              `json:"total"`
	Checked      int              `json:"checked"`
	TotalSites   int              `json:"total_sites"`
	CheckedSites int              `json:"checked_sites"`
	Counts       map[string]int   `json:"counts"`
	Log          []model.LogEntry `json:"log"`
}

// Tracker holds the mutable state of one engine's current run. The zero
// value is ready to use. R is the engine's result record type.
type Tracker[R any] struct {
	mu sync.Mutex

	running      bool
	total        int
	checked      int
	totalSites   int
	checkedSites int
	results      []R
	counts       map[string]int
	log          []model.LogEntry
}

// New creates an idle Tracker.
func New[R any]() *Tracker[R] {
	return &Tracker[R]{}
}

// TryStart atomically claims the tracker for a new run. It returns false,
// with no state change, when a run is already in flight. On success all
// fields from the previous run are reset: the new run replaces the old one
// wholesale.
func (t *Tracker[R]) TryStart(total, totalSites int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return false
	}

	t.running = true
	t.total = total
	t.checked = 0
	t.totalSites = totalSites
	t.checkedSites = 0
	t.results = nil
	t.counts = map[string]int{}
	t.log = make([]model.LogEntry, 0, totalSites)
	return true
}

// RecordUnit registers the completion of one unit of work: rowsDone input
// rows and sitesDone fetched sites are marked checked and the log entry is
// appended, all under one lock acquisition so pollers see the counters and
// the log move together.
func (t *Tracker[R]) RecordUnit(rowsDone, sitesDone int, entry model.LogEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.checked += rowsDone
	t.checkedSites += sitesDone
	t.log = append(t.log, entry)
}

// Publish atomically replaces the run's result set and status counts.
// Called once, after every unit has completed.
func (t *Tracker[R]) Publish(results []R, counts map[string]int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results = results
	t.counts = counts
}

// Finish clears the running flag, allowing the next submission.
func (t *Tracker[R]) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
}

// Stop clears the running flag without touching anything else. The stop is
// advisory: in-flight units keep running and the current batch still
// completes and publishes; only a new submission is unblocked.
func (t *Tracker[R]) Stop() {
	t.Finish()
}

// Running reports whether a run is in flight.
func (t *Tracker[R]) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

// Snapshot returns a consistent copy of the run's progress. The log and
// counts are copied, never aliased, so the caller can serve them without
// holding the lock.
func (t *Tracker[R]) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		counts[k] = v
	}

	log := make([]model.LogEntry, len(t.log))
	copy(log, t.log)

	return Snapshot{
		Running:      t.running,
		Total:        t.total,
		Checked:      t.checked,
		TotalSites:   t.totalSites,
		CheckedSites: t.checkedSites,
		Counts:       counts,
		Log:          log,
	}
}

// Results returns a copy of the published result set. It is empty while a
// run is in progress: TryStart clears the previous run's results and Publish
// installs the new ones only after the whole batch completes.
func (t *Tracker[R]) Results() []R {
	t.mu.Lock()
	defer t.mu.Unlock()

	results := make([]R, len(t.results))
	copy(results, t.results)
	return results
}
