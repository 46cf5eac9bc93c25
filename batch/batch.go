// Package batch runs independent jobs, such as sessions or probes, on a
// bounded number of goroutines.
package batch

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidWorkers is returned for a worker count below one.
var ErrInvalidWorkers = errors.New("batch: workers must be >= 1")

// Map applies fn to every item with at most workers calls in flight and
// returns the results in input order. The first error cancels the context
// passed to the remaining calls and is returned.
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers < 1 {
		return nil, errors.Wrapf(ErrInvalidWorkers, "got %d", workers)
	}

	out := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Result is the outcome of one MapAll call.
type Result[R any] struct {
	Value R
	Err   error
}

// MapAll is like Map but keeps going after failures: every item gets its
// own Result, in input order. Items not started before ctx is done report
// the context error.
func MapAll[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]Result[R], error) {
	if workers < 1 {
		return nil, errors.Wrapf(ErrInvalidWorkers, "got %d", workers)
	}

	out := make([]Result[R], len(items))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Value, out[i].Err = fn(ctx, item)
			return nil
		})
	}

	_ = g.Wait()
	return out, nil
}

// Errors returns the non-nil errors of results.
func Errors[R any](results []Result[R]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
