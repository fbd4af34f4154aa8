package clean

import (
	"context"
	"errors"
	"fmt"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/sirupsen/logrus"
)

var (
	// ErrStrictHalt is returned when strict mode stopped the run after a
	// task failure.
	ErrStrictHalt = errors.New("strict mode: run halted after task failure")
	// ErrDeclined is returned when the operator declines the apply prompt.
	ErrDeclined = errors.New("cleanup declined")
)

// Step is one selected task with its pre-run verdict.
type Step struct {
	Task      Task
	Available bool
	Note      string
	Estimated int64
}

// Plan is the estimated, not yet executed, run.
type Plan struct {
	DryRun bool
	Steps  []Step
}

// Preview renders the plan as an unexecuted dry result, used when the
// operator declines to apply it.
func (p Plan) Preview() Result {
	res := Result{DryRun: true}
	for _, s := range p.Steps {
		rec := Record{Task: s.Task.Name(), Status: StatusOK, Note: "not run", Estimated: s.Estimated}
		if !s.Available {
			rec.Status, rec.Note = StatusSkip, s.Note
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// Result is everything a run produced, in order.
type Result struct {
	DryRun  bool
	Records []Record

	StartFree int64
	EndFree   int64
	// Sampled is set when both run-level free-space samples succeeded.
	Sampled bool

	// Failed is set when any task failed.
	Failed bool
	// HaltedAfter names the task whose failure stopped a strict run.
	HaltedAfter string
}

// Halted reports whether strict mode stopped the run early.
func (r Result) Halted() bool { return r.HaltedAfter != "" }

// Totals folds the records. The run's reclaimed figure is the free-space
// delta across the whole run, not the sum of per-task figures.
func (r Result) Totals() Totals {
	t := Sum(r.Records)
	t.Reclaimed = 0
	if !r.DryRun && r.Sampled {
		t.Reclaimed = core.Reclaimed(r.StartFree, r.EndFree)
	}
	return t
}

// ─── Coordinator ─────────────────────────────────────────────────────────────

// Coordinator drives selected tasks through estimate, execute and record.
// Tasks run one at a time in order.
type Coordinator struct {
	Options  config.Options
	Sampler  core.Sampler
	Prompter Prompter
}

// Plan checks availability and estimates every task.
func (c *Coordinator) Plan(ctx context.Context, tasks []Task) Plan {
	plan := Plan{DryRun: c.Options.DryRun}
	for _, t := range tasks {
		log := logrus.WithField("task", t.Name())
		log.WithField("state", StateEstimating).Debug("task state")

		step := Step{Task: t}
		step.Available, step.Note = t.Available(ctx)
		if step.Available {
			step.Estimated = max(t.Estimate(ctx, c.Options), 0)
		}
		log.WithField("bytes", step.Estimated).Debugf("estimated %s", core.FormatSize(step.Estimated))
		plan.Steps = append(plan.Steps, step)
	}
	return plan
}

// Execute runs plan. It returns ErrStrictHalt, alongside the partial result,
// when strict mode stopped the run.
func (c *Coordinator) Execute(ctx context.Context, plan Plan) (Result, error) {
	res := Result{DryRun: c.Options.DryRun}
	start, startErr := c.sample(ctx)
	res.StartFree = start

	for _, step := range plan.Steps {
		recs, failed := c.runStep(ctx, step)
		res.Records = append(res.Records, recs...)
		if !failed {
			continue
		}
		res.Failed = true
		if c.Options.Strict {
			res.HaltedAfter = step.Task.Name()
			logrus.WithField("task", step.Task.Name()).Warn("strict mode: halting run")
			break
		}
	}

	end, endErr := c.sample(ctx)
	res.EndFree = end
	res.Sampled = startErr == nil && endErr == nil

	if res.Halted() {
		return res, fmt.Errorf("%w: %s", ErrStrictHalt, res.HaltedAfter)
	}
	return res, nil
}

// Run plans and executes tasks.
func (c *Coordinator) Run(ctx context.Context, tasks []Task) (Result, error) {
	return c.Execute(ctx, c.Plan(ctx, tasks))
}

func (c *Coordinator) runStep(ctx context.Context, step Step) ([]Record, bool) {
	name := step.Task.Name()
	log := logrus.WithField("task", name)
	log.WithField("state", StateExecuting).Debug("task state")

	r := newRun(ctx, name, c.Options, step.Estimated, c.Prompter)
	var reclaimed int64
	if !step.Available {
		r.Skip(step.Note)
	} else {
		apply := !c.Options.DryRun
		var before int64
		var beforeErr error
		if apply {
			before, beforeErr = c.sample(ctx)
		}
		step.Task.Run(ctx, r)
		if apply {
			after, afterErr := c.sample(ctx)
			if beforeErr == nil && afterErr == nil {
				reclaimed = core.Reclaimed(before, after)
			}
		}
		if len(r.records) == 0 {
			r.OK("done", "dry-run")
		}
	}

	recs := finalize(r.records, r.failed, reclaimed)
	log.WithFields(logrus.Fields{"state": StateRecorded, "bytes": reclaimed}).Debug("task state")
	return recs, r.failed
}

func (c *Coordinator) sample(ctx context.Context) (int64, error) {
	if c.Sampler == nil {
		return 0, errors.New("no free-space sampler")
	}
	n, err := c.Sampler.Free(ctx)
	if err != nil {
		logrus.Warnf("free-space sample failed: %v", err)
	}
	return n, err
}
