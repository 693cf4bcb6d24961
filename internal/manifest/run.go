package manifest

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/models"
)

// Result is the outcome of generating one job
type Result struct {
	Job      *Job
	Fragment *models.GeneratedFragment
	Err      error
}

// Failed reports whether the job produced no fragment
func (r Result) Failed() bool {
	return r.Err != nil
}

// RunOptions tune a manifest run
type RunOptions struct {
	Logger generator.Logger
	Limit  int // concurrent jobs, defaults to GOMAXPROCS
}

// Run generates every action of the manifest concurrently, one generator
// per action. Results are returned in manifest order. A failing action does
// not stop the others; only a cancelled context or a broken manifest ends
// the run early.
func (m *Manifest) Run(ctx context.Context, cfg generator.Config, opts RunOptions) ([]Result, error) {
	types, err := m.TypeRegistry()
	if err != nil {
		return nil, err
	}
	jobs, err := m.Jobs()
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runJob(job, cfg,
				generator.WithTypeRegistry(types),
				generator.WithLogger(opts.Logger),
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runJob generates one job, turning contract violations into errors
func runJob(job *Job, cfg generator.Config, opts ...generator.Option) (result Result) {
	result.Job = job
	defer func() {
		if cv := errors.AsContractViolation(recover()); cv != nil {
			result.Fragment = nil
			result.Err = errors.WrapGenerateError(job.Name(), "setup", cv).
				WithSuggestion("declare the model the action operates on")
		}
	}()

	result.Fragment, result.Err = job.NewGenerator(cfg, opts...).Generate()
	return result
}
