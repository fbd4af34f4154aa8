package clean

import (
	"context"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
)

// ─── xcode ───────────────────────────────────────────────────────────────────

type xcodeTask struct {
	base
	env Env
}

func (t *xcodeTask) Available(context.Context) (bool, string) {
	if !t.env.has("xcrun") || !dirExists(t.env.Paths.XcodeRoot()) {
		return false, notInstalled("xcode")
	}
	return true, ""
}

func (t *xcodeTask) Estimate(_ context.Context, opts config.Options) int64 {
	return targetSize(t.env.Paths.XcodeDerivedData(), opts) +
		targetSize(t.env.Paths.XcodeDeviceSupport(), opts)
}

func (t *xcodeTask) Run(ctx context.Context, r *Run) {
	clearTarget(r, t.env.Paths.XcodeDerivedData())
	if clearTarget(r, t.env.Paths.XcodeDeviceSupport()) {
		r.OK("removed DerivedData, caches and device support", "would remove DerivedData, caches and device support")
		return
	}
	r.OK("removed DerivedData and caches", "would remove DerivedData and caches")
}

// ─── ios_sim ─────────────────────────────────────────────────────────────────

type simulatorTask struct {
	base
	env Env
}

func (t *simulatorTask) Available(context.Context) (bool, string) {
	if !t.env.has("xcrun") {
		return false, notInstalled("xcrun")
	}
	return true, ""
}

func (t *simulatorTask) Estimate(_ context.Context, opts config.Options) int64 {
	return targetSize(t.env.Paths.SimulatorCaches(), opts)
}

func (t *simulatorTask) Run(ctx context.Context, r *Run) {
	r.Do(t.env.command("xcrun", "simctl", "delete", "unavailable"))
	clearTarget(r, t.env.Paths.SimulatorCaches())
	r.OK("deleted unavailable simulators and caches", "would delete unavailable simulators and caches")
}

// ─── gradle ──────────────────────────────────────────────────────────────────

type gradleTask struct {
	base
	env Env
}

func (t *gradleTask) Available(context.Context) (bool, string) {
	if !t.env.has("gradle") && !dirExists(t.env.Paths.GradleRoot()) {
		return false, notInstalled("gradle")
	}
	return true, ""
}

func (t *gradleTask) Estimate(_ context.Context, opts config.Options) int64 {
	return targetSize(t.env.Paths.GradleBuildCache(), opts) +
		targetSize(t.env.Paths.GradleModules(), opts)
}

func (t *gradleTask) Run(ctx context.Context, r *Run) {
	clearTarget(r, t.env.Paths.GradleBuildCache())
	r.OK("removed build cache and daemon logs", "would remove build cache and daemon logs")

	if clearTarget(r, t.env.Paths.GradleModules()) {
		r.OK("removed dependency cache", "would remove dependency cache")
	}
}

// ─── cargo ───────────────────────────────────────────────────────────────────

type cargoTask struct {
	base
	env Env
}

func (t *cargoTask) Available(context.Context) (bool, string) {
	if !t.env.has("cargo") && !dirExists(t.env.Paths.CargoRoot()) {
		return false, notInstalled("cargo")
	}
	return true, ""
}

// The registry is a global cache, so nothing is estimated unless global
// caches are on. The aggressive profile that includes this task turns them on.
func (t *cargoTask) Estimate(_ context.Context, opts config.Options) int64 {
	return targetSize(t.env.Paths.CargoRegistry(), opts)
}

func (t *cargoTask) Run(ctx context.Context, r *Run) {
	if !r.Options().GlobalCaches() {
		r.Skip("global caches disabled")
		return
	}
	registry := t.env.Paths.CargoRegistry()
	if !anyExists(registry) {
		r.OK("registry already clean", "registry already clean")
		return
	}
	if clearTarget(r, registry) {
		r.OK("removed registry cache and git checkouts", "would remove registry cache and git checkouts")
	}
}
