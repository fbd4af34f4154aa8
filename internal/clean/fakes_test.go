package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/docker"
	"github.com/lakshaymaurya-felt/devsweep/internal/executil"
)

// fakeRunner answers LookPath from installed and Output from outputs, keyed
// by the full command line.
type fakeRunner struct {
	installed map[string]bool
	outputs   map[string]string
	fail      map[string]bool
	calls     []string
}

func newFakeRunner(tools ...string) *fakeRunner {
	f := &fakeRunner{
		installed: map[string]bool{},
		outputs:   map[string]string{},
		fail:      map[string]bool{},
	}
	for _, t := range tools {
		f.installed[t] = true
	}
	return f
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", executil.ErrNotFound
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	line := executil.CommandLine(name, args...)
	f.calls = append(f.calls, line)
	if f.fail[line] {
		return "", errors.New(line + " failed (exit code 1)")
	}
	return f.outputs[line], nil
}

// fakeSampler returns values in sequence, repeating the last one.
type fakeSampler struct {
	values []int64
	n      int
	err    error
}

func (s *fakeSampler) Free(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(s.values) == 0 {
		return 0, nil
	}
	v := s.values[min(s.n, len(s.values)-1)]
	s.n++
	return v, nil
}

type fakePrompter struct {
	answers []bool
	asked   []string
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return false, nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type fakeEngine struct {
	usage  docker.Usage
	calls  []string
	failOn string
	// runIDs holds the runKey value of the context each call received.
	runIDs []any
}

type runKey struct{}

func (e *fakeEngine) Reclaimable(ctx context.Context, allImages bool) (docker.Usage, error) {
	e.sawContext(ctx)
	u := e.usage
	if !allImages {
		u.Images /= 2
	}
	return u, nil
}

func (e *fakeEngine) sawContext(ctx context.Context) {
	e.runIDs = append(e.runIDs, ctx.Value(runKey{}))
}

func (e *fakeEngine) record(ctx context.Context, name string) (int64, error) {
	e.sawContext(ctx)
	e.calls = append(e.calls, name)
	if e.failOn == name {
		return 0, errors.New(name + " failed")
	}
	return 0, nil
}

func (e *fakeEngine) PruneContainers(ctx context.Context) (int64, error) {
	return e.record(ctx, "containers")
}

func (e *fakeEngine) PruneImages(ctx context.Context, all bool) (int64, error) {
	if all {
		return e.record(ctx, "images-all")
	}
	return e.record(ctx, "images")
}

func (e *fakeEngine) PruneBuildCache(ctx context.Context) (int64, error) {
	return e.record(ctx, "buildcache")
}

func (e *fakeEngine) PruneVolumes(ctx context.Context) (int64, error) {
	return e.record(ctx, "volumes")
}

// fakeTask runs fn as its body.
type fakeTask struct {
	base
	available bool
	note      string
	estimate  int64
	fn        func(r *Run)
	ran       bool
}

func newFakeTask(name string, estimate int64, fn func(r *Run)) *fakeTask {
	return &fakeTask{base: base{name, config.ProfileSafe}, available: true, estimate: estimate, fn: fn}
}

func (t *fakeTask) Available(context.Context) (bool, string) { return t.available, t.note }

func (t *fakeTask) Estimate(context.Context, config.Options) int64 { return t.estimate }

func (t *fakeTask) Run(_ context.Context, r *Run) {
	t.ran = true
	if t.fn != nil {
		t.fn(r)
	}
}

func failingOp(desc string) Operation {
	return Operation{Desc: desc, Fn: func(context.Context) error { return errors.New("exit status 1") }}
}

func okOp(desc string, done *bool) Operation {
	return Operation{Desc: desc, Fn: func(context.Context) error {
		if done != nil {
			*done = true
		}
		return nil
	}}
}

func applyOptions() config.Options {
	o := config.DefaultOptions()
	o.DryRun = false
	return o
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func dryOptions() config.Options {
	return config.DefaultOptions()
}
