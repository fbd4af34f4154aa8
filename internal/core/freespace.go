package core

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/disk"
)

// Sampler reports the free bytes available on a volume at the moment it is
// called.
type Sampler interface {
	Free(ctx context.Context) (int64, error)
}

// DiskSampler samples the volume hosting Path.
type DiskSampler struct {
	Path string
}

// NewHomeSampler returns a sampler anchored at the user's home directory.
func NewHomeSampler() (*DiskSampler, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return &DiskSampler{Path: home}, nil
}

// Free implements Sampler using gopsutil.
func (s *DiskSampler) Free(ctx context.Context) (int64, error) {
	usage, err := disk.UsageWithContext(ctx, s.Path)
	if err != nil {
		return 0, fmt.Errorf("disk usage for %s: %w", s.Path, err)
	}
	return int64(usage.Free), nil
}

// Reclaimed is the non-negative growth of free space between two samples.
// Free space fluctuates with unrelated activity, so a shrink reports zero.
func Reclaimed(before, after int64) int64 {
	if after <= before {
		return 0
	}
	return after - before
}
