package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// CacheTarget is a set of filesystem locations owned by one tool.
type CacheTarget struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths are the directories whose contents get removed. Glob patterns
	// are allowed.
	Paths []string

	// Description is a human-readable description.
	Description string

	// Global marks package/registry caches beyond the local build cache.
	// They are only touched when global caches are enabled.
	Global bool

	// RiskLevel is one of "low", "medium", "high". High-risk targets are
	// confirmed before removal.
	RiskLevel string
}

// Risky reports whether removing the target needs confirmation.
func (t CacheTarget) Risky() bool {
	return t.RiskLevel == "high"
}

// Paths resolves the per-tool locations under a home directory. It exists so
// tests can point every task at a temporary home.
type Paths struct {
	Home string
}

// DefaultPaths returns Paths for the current user.
func DefaultPaths() Paths {
	home, _ := os.UserHomeDir()
	return Paths{Home: home}
}

func (p Paths) library(elem ...string) string {
	return filepath.Join(append([]string{p.Home, "Library"}, elem...)...)
}

// ─── Per-tool targets ────────────────────────────────────────────────────────

// BundlerCache is the per-user bundler download cache.
func (p Paths) BundlerCache() CacheTarget {
	return CacheTarget{
		Name:        "BundlerCache",
		Paths:       []string{filepath.Join(p.Home, ".bundle", "cache")},
		Description: "Bundler gem download cache",
		RiskLevel:   "low",
	}
}

// XcodeDerivedData holds Xcode build products and indexes.
func (p Paths) XcodeDerivedData() CacheTarget {
	return CacheTarget{
		Name: "XcodeDerivedData",
		Paths: []string{
			p.library("Developer", "Xcode", "DerivedData"),
			p.library("Caches", "com.apple.dt.Xcode"),
		},
		Description: "Xcode DerivedData and caches",
		RiskLevel:   "low",
	}
}

// XcodeDeviceSupport holds symbol caches for connected devices. They are
// downloaded again on the next device connection.
func (p Paths) XcodeDeviceSupport() CacheTarget {
	return CacheTarget{
		Name: "XcodeDeviceSupport",
		Paths: []string{
			p.library("Developer", "Xcode", "iOS DeviceSupport"),
			p.library("Developer", "Xcode", "watchOS DeviceSupport"),
		},
		Description: "Xcode device support symbols",
		Global:      true,
		RiskLevel:   "medium",
	}
}

// XcodeRoot is the directory whose presence signals an Xcode install.
func (p Paths) XcodeRoot() string {
	return p.library("Developer", "Xcode")
}

// SimulatorCaches holds CoreSimulator caches.
func (p Paths) SimulatorCaches() CacheTarget {
	return CacheTarget{
		Name:        "SimulatorCaches",
		Paths:       []string{p.library("Developer", "CoreSimulator", "Caches")},
		Description: "iOS simulator caches",
		RiskLevel:   "low",
	}
}

// GradleRoot is the Gradle user home.
func (p Paths) GradleRoot() string {
	if g := os.Getenv("GRADLE_USER_HOME"); g != "" {
		return g
	}
	return filepath.Join(p.Home, ".gradle")
}

// GradleBuildCache is the local build cache and daemon logs.
func (p Paths) GradleBuildCache() CacheTarget {
	root := p.GradleRoot()
	return CacheTarget{
		Name: "GradleBuildCache",
		Paths: []string{
			filepath.Join(root, "caches", "build-cache-*"),
			filepath.Join(root, "daemon"),
		},
		Description: "Gradle build cache and daemon logs",
		RiskLevel:   "low",
	}
}

// GradleModules is the downloaded dependency cache.
func (p Paths) GradleModules() CacheTarget {
	return CacheTarget{
		Name:        "GradleModules",
		Paths:       []string{filepath.Join(p.GradleRoot(), "caches", "modules-2")},
		Description: "Gradle dependency cache",
		Global:      true,
		RiskLevel:   "high",
	}
}

// CargoRoot is the cargo home.
func (p Paths) CargoRoot() string {
	if c := os.Getenv("CARGO_HOME"); c != "" {
		return c
	}
	return filepath.Join(p.Home, ".cargo")
}

// CargoRegistry is the crate registry and git checkout cache.
func (p Paths) CargoRegistry() CacheTarget {
	root := p.CargoRoot()
	return CacheTarget{
		Name: "CargoRegistry",
		Paths: []string{
			filepath.Join(root, "registry", "cache"),
			filepath.Join(root, "registry", "src"),
			filepath.Join(root, "git", "checkouts"),
		},
		Description: "Rust cargo registry cache",
		Global:      true,
		RiskLevel:   "high",
	}
}

// ─── Protected locations ─────────────────────────────────────────────────────

// UnsafeRoots returns directories that must never be used as a purge root.
// The filesystem root and the home directory are included.
func (p Paths) UnsafeRoots() []string {
	roots := []string{
		string(filepath.Separator),
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/lib64",
		"/opt",
		"/proc",
		"/sbin",
		"/sys",
		"/usr",
		"/var",
		"/tmp",
		"/home",
		"/private",
	}
	if runtime.GOOS == "darwin" {
		roots = append(roots,
			"/System",
			"/Library",
			"/Applications",
			"/Users",
			"/Volumes",
		)
	}
	if p.Home != "" {
		roots = append(roots, p.Home)
	}
	return roots
}
