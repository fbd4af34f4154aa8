package clean

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/lakshaymaurya-felt/devsweep/internal/docker"
	"github.com/lakshaymaurya-felt/devsweep/internal/executil"
	"github.com/sirupsen/logrus"
)

// DockerEngine is the slice of the docker SDK client the docker task uses.
type DockerEngine interface {
	Reclaimable(ctx context.Context, allImages bool) (docker.Usage, error)
	PruneContainers(ctx context.Context) (int64, error)
	PruneImages(ctx context.Context, all bool) (int64, error)
	PruneBuildCache(ctx context.Context) (int64, error)
	PruneVolumes(ctx context.Context) (int64, error)
}

// Env is what tasks need from the outside world.
type Env struct {
	Runner executil.Runner
	Paths  config.Paths
	// Docker connects to the engine. It may be called more than once per
	// run and should return the same connection.
	Docker func(ctx context.Context) (DockerEngine, error)
}

// Catalogue returns every task in run order.
func Catalogue(env Env) []Task {
	return []Task{
		&dockerTask{base{"docker", config.ProfileSafe}, env},
		&goTask{base{"go", config.ProfileSafe}, env},
		&nodeTask{base{"node", config.ProfileSafe}, env},
		&pythonTask{base{"python", config.ProfileSafe}, env},
		&rubyTask{base{"ruby", config.ProfileSafe}, env},
		&brewTask{base{"brew", config.ProfileSafe}, env},
		&xcodeTask{base{"xcode", config.ProfileDev}, env},
		&simulatorTask{base{"ios_sim", config.ProfileDev}, env},
		&gradleTask{base{"gradle", config.ProfileDev}, env},
		&cargoTask{base{"cargo", config.ProfileAggressive}, env},
	}
}

// Names returns the task names of tasks, in order.
func Names(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name()
	}
	return out
}

type base struct {
	name string
	min  config.Profile
}

func (b base) Name() string               { return b.name }
func (b base) MinProfile() config.Profile { return b.min }

// ─── Shared helpers ──────────────────────────────────────────────────────────

func (e Env) has(tool string) bool {
	_, err := e.Runner.LookPath(tool)
	return err == nil
}

// firstTool returns the first installed tool of names, or "".
func (e Env) firstTool(names ...string) string {
	for _, n := range names {
		if e.has(n) {
			return n
		}
	}
	return ""
}

// query runs a read-only command and returns its output, or "" on failure.
func (e Env) query(ctx context.Context, name string, args ...string) string {
	out, err := e.Runner.Output(ctx, name, args...)
	if err != nil {
		logrus.WithField("op", executil.CommandLine(name, args...)).Debugf("query failed: %v", err)
		return ""
	}
	return strings.TrimSpace(out)
}

// dirSize sizes the directory a tool reports, e.g. "go env GOCACHE".
func (e Env) dirSize(ctx context.Context, name string, args ...string) int64 {
	dir := e.query(ctx, name, args...)
	if dir == "" || !filepath.IsAbs(dir) {
		return 0
	}
	return core.PathSize(dir)
}

func (e Env) command(name string, args ...string) Operation {
	line := executil.CommandLine(name, args...)
	return Operation{
		Desc: line,
		Fn: func(ctx context.Context) error {
			_, err := e.Runner.Output(ctx, name, args...)
			return err
		},
	}
}

// clearTarget empties target under the run's policy. Global targets are
// left alone unless global caches are on, and high-risk targets need
// confirmation; a decline is recorded as SKIP. It reports whether the
// removal was attempted.
func clearTarget(r *Run, target config.CacheTarget) bool {
	if target.Global && !r.Options().GlobalCaches() {
		r.Log().WithField("target", target.Name).Debug("global cache left in place")
		return false
	}
	if target.Risky() {
		question := fmt.Sprintf("Delete the %s (%s)? It is downloaded again when next needed.",
			target.Description, strings.Join(target.Paths, ", "))
		if !r.ConfirmRisky(question) {
			r.Skip(target.Description + " kept, confirmation declined")
			return false
		}
	}
	r.Do(removeContents(target))
	return true
}

// removeContents empties every directory in target, keeping the directories.
func removeContents(target config.CacheTarget) Operation {
	return Operation{
		Desc: "remove " + target.Description,
		Fn: func(ctx context.Context) error {
			var errs []string
			for _, dir := range core.ExpandGlobs(target.Paths...) {
				freed, err := core.RemoveContents(dir)
				logrus.WithFields(logrus.Fields{"target": target.Name, "path": dir, "bytes": freed}).Debug("emptied")
				if err != nil {
					errs = append(errs, err.Error())
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("%s", strings.Join(errs, "; "))
			}
			return nil
		},
	}
}

// targetSize is what clearTarget would free under opts.
func targetSize(target config.CacheTarget, opts config.Options) int64 {
	if target.Global && !opts.GlobalCaches() {
		return 0
	}
	return core.PathsSize(target.Paths...)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func anyExists(target config.CacheTarget) bool {
	for _, p := range core.ExpandGlobs(target.Paths...) {
		if dirExists(p) {
			return true
		}
	}
	return false
}

func notInstalled(tool string) string {
	return tool + " not installed"
}
