// Package status reports free space on the home volume and mounted
// partitions for "devsweep status".
package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/lakshaymaurya-felt/devsweep/internal/ui"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/sirupsen/logrus"
)

// Volume is one line of the report.
type Volume struct {
	Mount       string
	Fstype      string
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
	// Home marks the volume cleanup reclaim is measured on.
	Home bool
}

// Report is a point-in-time disk summary.
type Report struct {
	Host    string
	Volumes []Volume
}

// Source lists partitions and reads usage. DiskSource is the real one.
type Source interface {
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, path string) (*disk.UsageStat, error)
}

// DiskSource reads physical partitions through gopsutil.
type DiskSource struct{}

func (DiskSource) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (DiskSource) Usage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

// Collect builds a report: the home volume first, then every partition with
// a non-zero size. Unreadable partitions are skipped.
func Collect(ctx context.Context, home string, src Source) (Report, error) {
	r := Report{Host: core.HostString()}

	hu, err := src.Usage(ctx, home)
	if err != nil {
		return r, fmt.Errorf("disk usage for %s: %w", home, err)
	}
	r.Volumes = append(r.Volumes, volume(home, hu, true))

	parts, err := src.Partitions(ctx)
	if err != nil {
		logrus.Debugf("list partitions: %v", err)
		return r, nil
	}
	seen := map[string]bool{}
	for _, p := range parts {
		if seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		u, err := src.Usage(ctx, p.Mountpoint)
		if err != nil {
			logrus.WithField("path", p.Mountpoint).Debugf("skipping partition: %v", err)
			continue
		}
		if u.Total == 0 {
			continue
		}
		v := volume(p.Mountpoint, u, false)
		if v.Fstype == "" {
			v.Fstype = p.Fstype
		}
		r.Volumes = append(r.Volumes, v)
	}
	return r, nil
}

func volume(mount string, u *disk.UsageStat, home bool) Volume {
	return Volume{
		Mount:       mount,
		Fstype:      u.Fstype,
		Total:       u.Total,
		Used:        u.Used,
		Free:        u.Free,
		UsedPercent: u.UsedPercent,
		Home:        home,
	}
}

// Render draws the report with one usage bar per volume.
func Render(r Report, barWidth int) string {
	var lines []string
	lines = append(lines, ui.Heading("Disk status", 60))
	lines = append(lines, ui.DimStyle().Render("  "+r.Host))
	lines = append(lines, "")

	for _, v := range r.Volumes {
		label := v.Mount
		if v.Home {
			label += " (home)"
		}
		lines = append(lines,
			fmt.Sprintf("  %s", ui.TitleStyle().Render(label)),
			fmt.Sprintf("    %s  %5.1f%%  %s / %s  %s free",
				ui.UsageBar(v.UsedPercent, barWidth), v.UsedPercent,
				core.FormatSize(int64(v.Used)),
				core.FormatSize(int64(v.Total)),
				core.FormatSize(int64(v.Free))))
	}
	return strings.Join(lines, "\n") + "\n"
}
