package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/sirupsen/logrus"
)

// Usage is the reclaimable space reported by the engine, split the way the
// prune calls split it.
type Usage struct {
	Containers int64
	Images     int64
	BuildCache int64
	Volumes    int64
}

// Client talks to the docker engine through the SDK.
type Client struct {
	APIClient client.APIClient
}

// NewClient connects using the standard DOCKER_HOST environment and checks
// the daemon answers.
func NewClient(ctx context.Context) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return &Client{APIClient: cli}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.APIClient.Close()
}

// Reclaimable computes what the prune calls would free. When allImages is
// false only dangling images count, matching a plain "image prune".
func (c *Client) Reclaimable(ctx context.Context, allImages bool) (Usage, error) {
	du, err := c.APIClient.DiskUsage(ctx, types.DiskUsageOptions{})
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read docker disk usage: %w", err)
	}

	var u Usage
	for _, ctr := range du.Containers {
		if ctr.State != "running" && ctr.State != "paused" {
			u.Containers += ctr.SizeRw
		}
	}
	for _, img := range du.Images {
		if img.Containers > 0 {
			continue
		}
		if allImages || isDangling(img.RepoTags) {
			u.Images += img.Size - max(img.SharedSize, 0)
		}
	}
	for _, bc := range du.BuildCache {
		if !bc.InUse && !bc.Shared {
			u.BuildCache += bc.Size
		}
	}
	for _, v := range du.Volumes {
		if v.UsageData != nil && v.UsageData.RefCount == 0 && v.UsageData.Size > 0 {
			u.Volumes += v.UsageData.Size
		}
	}
	return u, nil
}

// PruneContainers removes stopped containers.
func (c *Client) PruneContainers(ctx context.Context) (int64, error) {
	rep, err := c.APIClient.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		return 0, fmt.Errorf("failed to prune containers: %w", err)
	}
	logrus.WithField("bytes", rep.SpaceReclaimed).Infof("removed %d containers", len(rep.ContainersDeleted))
	return int64(rep.SpaceReclaimed), nil
}

// PruneImages removes dangling images, or every unused image when all is set.
func (c *Client) PruneImages(ctx context.Context, all bool) (int64, error) {
	args := filters.NewArgs()
	if all {
		args.Add("dangling", "false")
	}
	rep, err := c.APIClient.ImagesPrune(ctx, args)
	if err != nil {
		return 0, fmt.Errorf("failed to prune images: %w", err)
	}
	logrus.WithField("bytes", rep.SpaceReclaimed).Infof("removed %d images", len(rep.ImagesDeleted))
	return int64(rep.SpaceReclaimed), nil
}

// PruneBuildCache removes unused build cache.
func (c *Client) PruneBuildCache(ctx context.Context) (int64, error) {
	rep, err := c.APIClient.BuildCachePrune(ctx, types.BuildCachePruneOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to prune build cache: %w", err)
	}
	return int64(rep.SpaceReclaimed), nil
}

// PruneVolumes removes every volume not referenced by a container,
// including named ones.
func (c *Client) PruneVolumes(ctx context.Context) (int64, error) {
	rep, err := c.APIClient.VolumesPrune(ctx, filters.NewArgs(filters.Arg("all", "true")))
	if err != nil {
		return 0, fmt.Errorf("failed to prune volumes: %w", err)
	}
	logrus.WithField("bytes", rep.SpaceReclaimed).Infof("removed %d volumes", len(rep.VolumesDeleted))
	return int64(rep.SpaceReclaimed), nil
}

func isDangling(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if !strings.HasPrefix(t, "<none>") {
			return false
		}
	}
	return true
}
