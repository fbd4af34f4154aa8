package clean

import (
	"context"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
)

// dockerTask prunes stopped containers, unused images and build cache
// through the engine API, and optionally unused volumes.
type dockerTask struct {
	base
	env Env
}

func (t *dockerTask) Available(ctx context.Context) (bool, string) {
	if !t.env.has("docker") {
		return false, notInstalled("docker")
	}
	if t.env.Docker == nil {
		return false, "docker daemon not running"
	}
	if _, err := t.env.Docker(ctx); err != nil {
		return false, "docker daemon not running"
	}
	return true, ""
}

func (t *dockerTask) Estimate(ctx context.Context, opts config.Options) int64 {
	engine, err := t.env.Docker(ctx)
	if err != nil {
		return 0
	}
	u, err := engine.Reclaimable(ctx, opts.GlobalCaches())
	if err != nil {
		return 0
	}
	total := u.Containers + u.Images + u.BuildCache
	if opts.IncludeVolumes {
		total += u.Volumes
	}
	return total
}

func (t *dockerTask) Run(ctx context.Context, r *Run) {
	engine, err := t.env.Docker(ctx)
	if err != nil {
		r.Skip("docker daemon not running")
		return
	}
	allImages := r.Options().GlobalCaches()

	r.Do(Operation{Desc: "docker container prune", Fn: prune(engine.PruneContainers)})
	r.Do(Operation{Desc: "docker image prune", Fn: prune(func(ctx context.Context) (int64, error) {
		return engine.PruneImages(ctx, allImages)
	})})
	r.Do(Operation{Desc: "docker builder prune", Fn: prune(engine.PruneBuildCache)})
	if allImages {
		r.OK("pruned containers, unused images and build cache",
			"would prune containers, unused images and build cache")
	} else {
		r.OK("pruned containers, dangling images and build cache",
			"would prune containers, dangling images and build cache")
	}

	if !r.Options().IncludeVolumes {
		return
	}
	if !r.ConfirmRisky("Prune unused docker volumes? Named volumes not used by any container are deleted.") {
		r.Skip("volume prune declined")
		return
	}
	r.Do(Operation{Desc: "docker volume prune", Fn: prune(engine.PruneVolumes)})
	r.OK("pruned unused volumes", "would prune unused volumes")
}

func prune(fn func(context.Context) (int64, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := fn(ctx)
		return err
	}
}
