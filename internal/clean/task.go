// Package clean is the task engine behind "devsweep clean": the catalogue of
// cache cleanup tasks, the filter that selects them, and the coordinator that
// runs them and accounts for the space they reclaim.
package clean

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/sirupsen/logrus"
)

// Task is one named cleanup integration. Implementations hold no per-run
// state; everything a run needs arrives through the Run argument.
type Task interface {
	Name() string
	// MinProfile is the lowest profile that includes the task.
	MinProfile() config.Profile
	// Available reports whether the underlying tool is present. When it is
	// not, note explains why and the task is recorded as SKIP.
	Available(ctx context.Context) (ok bool, note string)
	// Estimate returns the bytes the task expects to free under opts.
	Estimate(ctx context.Context, opts config.Options) int64
	// Run executes the task's operations through r and records outcomes.
	Run(ctx context.Context, r *Run)
}

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// State is a task's position in a run.
type State int

const (
	StatePending State = iota
	StateEstimating
	StateExecuting
	StateRecorded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateEstimating:
		return "ESTIMATING"
	case StateExecuting:
		return "EXECUTING"
	case StateRecorded:
		return "RECORDED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Operation is a single command or filesystem action a task performs.
type Operation struct {
	// Desc names the operation in logs, e.g. "go clean -cache".
	Desc string
	Fn   func(ctx context.Context) error
}

// ─── Per-task run buffer ─────────────────────────────────────────────────────

// Run is handed to Task.Run. It executes operations under the run's mode,
// tracks the failure flag, and buffers records until the coordinator
// finalizes them.
type Run struct {
	ctx      context.Context
	task     string
	opts     config.Options
	estimate int64
	prompter Prompter
	log      *logrus.Entry

	records []Record
	failed  bool
}

func newRun(ctx context.Context, task string, opts config.Options, estimate int64, p Prompter) *Run {
	return &Run{
		ctx:      ctx,
		task:     task,
		opts:     opts,
		estimate: estimate,
		prompter: p,
		log:      logrus.WithField("task", task),
	}
}

// Options returns the frozen run configuration.
func (r *Run) Options() config.Options { return r.opts }

// DryRun reports whether operations are only logged.
func (r *Run) DryRun() bool { return r.opts.DryRun }

// Log returns the task's log entry.
func (r *Run) Log() *logrus.Entry { return r.log }

// Failed reports whether any operation has failed so far.
func (r *Run) Failed() bool { return r.failed }

// Do runs op. A failure is logged as a warning and sets the task failure
// flag; the caller carries on with its next operation either way. In dry-run
// the operation is logged and reported as successful.
func (r *Run) Do(op Operation) bool {
	entry := r.log.WithField("op", op.Desc)
	if r.opts.DryRun {
		entry.Info("would run")
		return true
	}
	entry.Info("running")
	if err := op.Fn(r.ctx); err != nil {
		r.failed = true
		entry.Warnf("%s failed: %v", op.Desc, err)
		return false
	}
	return true
}

// ConfirmRisky gates a risky operation. --yes proceeds, --interactive asks,
// and without either the operation proceeds unprompted. Dry-run never asks.
func (r *Run) ConfirmRisky(question string) bool {
	switch {
	case r.opts.DryRun, r.opts.AssumeYes, !r.opts.Interactive:
		return true
	case r.prompter == nil:
		r.log.Warn("no prompter for risky confirmation; declining")
		return false
	}
	ok, err := r.prompter.Confirm(question)
	if err != nil {
		r.log.Warnf("confirmation failed: %v", err)
		return false
	}
	if !ok {
		r.log.Info("risky operation declined")
	}
	return ok
}

// Record buffers an outcome. The first record of a task carries the task's
// estimate; later sub-step records carry zero so totals count it once.
func (r *Run) Record(status Status, note string) {
	var est int64
	if len(r.records) == 0 {
		est = r.estimate
	}
	r.records = append(r.records, Record{
		Task:      r.task,
		Status:    status,
		Note:      note,
		Estimated: est,
	})
}

// OK records success with a note chosen by mode.
func (r *Run) OK(done, wouldDo string) {
	if r.opts.DryRun {
		r.Record(StatusOK, wouldDo)
		return
	}
	r.Record(StatusOK, done)
}

// Skip records a skipped step.
func (r *Run) Skip(note string) {
	r.Record(StatusSkip, note)
}
