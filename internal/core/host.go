package core

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// HostString returns a human-readable description of the current machine.
// Examples: "macOS 14.5 (arm64)", "ubuntu 24.04 (x86_64)"
func HostString() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return fmt.Sprintf("%s (%s)", runtime.GOOS, runtime.GOARCH)
	}

	name := info.Platform
	if info.OS == "darwin" {
		name = "macOS"
	}

	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}
	return fmt.Sprintf("%s %s (%s)", name, info.PlatformVersion, arch)
}
