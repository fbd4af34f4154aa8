package clean

import (
	"context"
	"strings"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
)

// ─── go ──────────────────────────────────────────────────────────────────────

type goTask struct {
	base
	env Env
}

func (t *goTask) Available(context.Context) (bool, string) {
	if !t.env.has("go") {
		return false, notInstalled("go")
	}
	return true, ""
}

func (t *goTask) Estimate(ctx context.Context, opts config.Options) int64 {
	n := t.env.dirSize(ctx, "go", "env", "GOCACHE")
	if opts.GlobalCaches() {
		n += t.env.dirSize(ctx, "go", "env", "GOMODCACHE")
	}
	return n
}

func (t *goTask) Run(ctx context.Context, r *Run) {
	r.Do(t.env.command("go", "clean", "-cache"))
	r.Do(t.env.command("go", "clean", "-testcache"))
	r.OK("cleaned build and test cache", "would clean build and test cache")

	if !r.Options().GlobalCaches() {
		return
	}
	if !r.ConfirmRisky("Delete the Go module cache (GOMODCACHE)? Modules are downloaded again on next build.") {
		r.Skip("module cache kept, confirmation declined")
		return
	}
	r.Do(t.env.command("go", "clean", "-modcache"))
	r.OK("cleaned module cache", "would clean module cache")
}

// ─── node ────────────────────────────────────────────────────────────────────

type nodeTask struct {
	base
	env Env
}

func (t *nodeTask) Available(context.Context) (bool, string) {
	if t.env.firstTool("npm", "pnpm", "yarn") == "" {
		return false, notInstalled("npm")
	}
	return true, ""
}

// Verify and store prune free little and are not estimated. The global
// estimate is the npm and yarn cache directories.
func (t *nodeTask) Estimate(ctx context.Context, opts config.Options) int64 {
	if !opts.GlobalCaches() {
		return 0
	}
	var n int64
	if t.env.has("npm") {
		n += t.env.dirSize(ctx, "npm", "config", "get", "cache")
	}
	if t.env.has("yarn") {
		n += t.env.dirSize(ctx, "yarn", "cache", "dir")
	}
	return n
}

func (t *nodeTask) Run(ctx context.Context, r *Run) {
	global := r.Options().GlobalCaches()
	var touched []string
	if t.env.has("npm") {
		r.Do(t.env.command("npm", "cache", "verify"))
		if global {
			r.Do(t.env.command("npm", "cache", "clean", "--force"))
		}
		touched = append(touched, "npm")
	}
	if t.env.has("pnpm") {
		r.Do(t.env.command("pnpm", "store", "prune"))
		touched = append(touched, "pnpm")
	}
	if global && t.env.has("yarn") {
		r.Do(t.env.command("yarn", "cache", "clean"))
		touched = append(touched, "yarn")
	}
	if len(touched) == 0 {
		r.Skip("no applicable package manager for this profile")
		return
	}
	list := strings.Join(touched, ", ")
	r.OK("cleaned "+list+" caches", "would clean "+list+" caches")
}

// ─── python ──────────────────────────────────────────────────────────────────

type pythonTask struct {
	base
	env Env
}

func (t *pythonTask) pip() string {
	return t.env.firstTool("pip3", "pip")
}

func (t *pythonTask) Available(context.Context) (bool, string) {
	if t.pip() == "" && !t.env.has("uv") {
		return false, notInstalled("pip")
	}
	return true, ""
}

func (t *pythonTask) Estimate(ctx context.Context, opts config.Options) int64 {
	var n int64
	if pip := t.pip(); pip != "" {
		n += t.env.dirSize(ctx, pip, "cache", "dir")
	}
	if opts.GlobalCaches() && t.env.has("uv") {
		n += t.env.dirSize(ctx, "uv", "cache", "dir")
	}
	return n
}

func (t *pythonTask) Run(ctx context.Context, r *Run) {
	var touched []string
	if pip := t.pip(); pip != "" {
		r.Do(t.env.command(pip, "cache", "purge"))
		touched = append(touched, "pip")
	}
	if t.env.has("uv") {
		if r.Options().GlobalCaches() {
			r.Do(t.env.command("uv", "cache", "clean"))
		} else {
			r.Do(t.env.command("uv", "cache", "prune"))
		}
		touched = append(touched, "uv")
	}
	list := strings.Join(touched, ", ")
	r.OK("cleaned "+list+" caches", "would clean "+list+" caches")
}

// ─── ruby ────────────────────────────────────────────────────────────────────

type rubyTask struct {
	base
	env Env
}

func (t *rubyTask) Available(context.Context) (bool, string) {
	if t.env.firstTool("gem", "bundle") == "" && !anyExists(t.env.Paths.BundlerCache()) {
		return false, notInstalled("ruby")
	}
	return true, ""
}

func (t *rubyTask) Estimate(_ context.Context, opts config.Options) int64 {
	return targetSize(t.env.Paths.BundlerCache(), opts)
}

func (t *rubyTask) Run(ctx context.Context, r *Run) {
	clearTarget(r, t.env.Paths.BundlerCache())
	if r.Options().GlobalCaches() && t.env.has("gem") {
		r.Do(t.env.command("gem", "cleanup"))
		r.OK("cleaned bundler cache and old gems", "would clean bundler cache and old gems")
		return
	}
	r.OK("cleaned bundler cache", "would clean bundler cache")
}

// ─── brew ────────────────────────────────────────────────────────────────────

type brewTask struct {
	base
	env Env
}

func (t *brewTask) Available(context.Context) (bool, string) {
	if !t.env.has("brew") {
		return false, notInstalled("brew")
	}
	return true, ""
}

func (t *brewTask) cleanupArgs(global bool) []string {
	if global {
		return []string{"cleanup", "-s", "--prune=all"}
	}
	return []string{"cleanup"}
}

// Estimate reads the "would free approximately" total of a dry cleanup and
// falls back to the download cache size.
func (t *brewTask) Estimate(ctx context.Context, opts config.Options) int64 {
	args := append(t.cleanupArgs(opts.GlobalCaches()), "-n")
	if n := brewFreed(t.env.query(ctx, "brew", args...)); n > 0 {
		return n
	}
	return t.env.dirSize(ctx, "brew", "--cache")
}

// brewFreed parses the summary line of "brew cleanup -n". The per-file
// "Would remove" lines before it are ignored.
func brewFreed(out string) int64 {
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(strings.ToLower(line), "would free approximately"); i >= 0 {
			return core.ExtractSize(line[i:])
		}
	}
	return 0
}

func (t *brewTask) Run(ctx context.Context, r *Run) {
	r.Do(t.env.command("brew", t.cleanupArgs(r.Options().GlobalCaches())...))
	r.OK("removed old downloads and versions", "would remove old downloads and versions")
}
