// Package audit drives reconciliation of a repository snapshot against
// source-derived metadata across a pool of workers
package audit

import (
	"context"
	"sync"

	"github.com/pborman/uuid"
	"github.com/rs/zerolog/log"

	"github.com/repoaudit-dev/repoaudit/pacman"
	"github.com/repoaudit-dev/repoaudit/repoaudit"
)

// DefaultThreads is the worker count used when the configuration doesn't
// set one
const DefaultThreads = 20

// Stat is the per-package aggregate exchanged between the runner and the
// reporter
type Stat struct {
	Diffs      int
	Attributes int
}

// Result is the outcome of auditing a single package. Err is set when the
// source metadata could not be derived; such packages don't abort the
// batch.
type Result struct {
	Package string
	Stat    Stat
	Diffs   pacman.FieldDiffs
	Err     error
}

// AuditFunc performs one full per-package audit cycle
type AuditFunc func(ctx context.Context, name string) (Stat, pacman.FieldDiffs, error)

type auditTask struct {
	index int
	name  string
}

// Runner fans per-package audits out across a fixed-size worker pool
type Runner struct {
	threads  int
	runID    string
	progress repoaudit.Progress
}

// NewRunner creates runner with specified number of worker threads
func NewRunner(threads int, progress repoaudit.Progress) *Runner {
	if threads <= 0 {
		threads = DefaultThreads
	}

	return &Runner{
		threads:  threads,
		runID:    uuid.New(),
		progress: progress,
	}
}

// Run audits every named package with fn. Workers share only the read-only
// snapshot captured by fn; results are stored by submission index, so
// reporting order is stable regardless of scheduling.
func (r *Runner) Run(ctx context.Context, names []string, fn AuditFunc) []Result {
	queue := make(chan auditTask, r.threads)
	results := make([]Result, len(names))

	wg := &sync.WaitGroup{}
	for i := 0; i < r.threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for task := range queue {
				stat, diffs, err := fn(ctx, task.name)
				if err != nil {
					log.Warn().Str("run", r.runID).Str("package", task.name).Err(err).
						Msg("unable to audit package")
				} else {
					log.Debug().Str("run", r.runID).Str("package", task.name).
						Int("diffs", stat.Diffs).Interface("detail", diffs).
						Msg("package audited")
				}

				results[task.index] = Result{Package: task.name, Stat: stat, Diffs: diffs, Err: err}

				if r.progress != nil {
					r.progress.AddBar(1)
				}
			}
		}()
	}

	for i, name := range names {
		queue <- auditTask{index: i, name: name}
	}
	close(queue)

	wg.Wait()

	return results
}
