package runner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of units executed in parallel when no
// explicit limit is configured.
const DefaultConcurrency = 5

// Unit is one independent piece of work. ID identifies the unit in its
// outcome; Do performs the work.
type Unit[T any] struct {
	ID string
	Do func(ctx context.Context) (T, error)
}

// Outcome is the terminal result of one unit. A non-nil Err marks the unit
// as failed; Result may still carry partial data the unit produced on the
// way to failing. Every submitted unit produces exactly one Outcome.
type Outcome[T any] struct {
	ID     string
	Result T
	Err    error
}

// Runner executes batches of independent units with bounded concurrency.
// A Runner is stateless between batches and safe to reuse.
type Runner[T any] struct {
	// concurrency is the maximum number of units executing in parallel.
	concurrency int

	// logger is used for per-unit completion logging.
	logger *slog.Logger
}

// Option configures a Runner.
type Option[T any] func(*Runner[T])

// WithConcurrency sets the maximum number of units executing in parallel.
// Non-positive values are ignored.
func WithConcurrency[T any](n int) Option[T] {
	return func(r *Runner[T]) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Runner[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner with the given options.
func New[T any](opts ...Option[T]) *Runner[T] {
	r := &Runner[T]{
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run executes all units and blocks until every one has produced an outcome.
//
// Units run concurrently up to the configured limit; queued units wait for a
// slot. The deliver callback is invoked once per unit, in completion order,
// from the goroutine that finished the unit, so it must be safe for
// concurrent use. A unit error is delivered in its outcome and does not
// affect other units.
//
// If ctx is cancelled, units that have not started are delivered with
// ctx.Err() as their outcome, preserving the one-outcome-per-unit guarantee.
// Units already in flight run to completion.
func (r *Runner[T]) Run(ctx context.Context, units []Unit[T], deliver func(Outcome[T])) {
	r.logger.Debug("starting batch",
		"units", len(units),
		"concurrency", r.concurrency,
	)

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)

	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			// Cancelled batches still owe every unit an outcome.
			select {
			case <-ctx.Done():
				deliver(Outcome[T]{ID: unit.ID, Err: ctx.Err()})
				return nil
			default:
			}

			result, err := unit.Do(ctx)
			if err != nil {
				r.logger.Debug("unit failed", "unit", unit.ID, "error", err)
			} else {
				r.logger.Debug("unit completed", "unit", unit.ID)
			}

			// Errors ride in the outcome, never up to the errgroup:
			// one failing unit must not cancel the batch.
			deliver(Outcome[T]{ID: unit.ID, Result: result, Err: err})
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // Workers always return nil.

	r.logger.Debug("batch complete", "units", len(units))
}
