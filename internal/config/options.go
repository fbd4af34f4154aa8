package config

import (
	"fmt"
	"strings"
)

// Profile is a named preset controlling which optional tasks run.
type Profile int

const (
	// ProfileSafe runs the base package-manager tasks only.
	ProfileSafe Profile = iota
	// ProfileDev adds IDE and build-cache tasks.
	ProfileDev
	// ProfileAggressive adds the global registry task and implies global caches.
	ProfileAggressive
)

var profileNames = map[Profile]string{
	ProfileSafe:       "safe",
	ProfileDev:        "dev",
	ProfileAggressive: "aggressive",
}

func (p Profile) String() string {
	if s, ok := profileNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// Includes reports whether a task whose minimum profile is min runs under p.
func (p Profile) Includes(min Profile) bool {
	return min <= p
}

// ParseProfile converts a flag value into a Profile.
func ParseProfile(s string) (Profile, error) {
	for p, name := range profileNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return p, nil
		}
	}
	return ProfileSafe, fmt.Errorf("invalid profile %q (want safe, dev or aggressive)", s)
}

// Options is the run configuration for a cleanup run. It is built once from
// flags and the defaults file and never modified afterwards.
type Options struct {
	Profile             Profile
	DryRun              bool
	AssumeYes           bool
	Interactive         bool
	Strict              bool
	IncludeVolumes      bool
	IncludeGlobalCaches bool

	// Only restricts the run to these task names when non-empty.
	Only []string
	// Skip drops these task names after Only is applied.
	Skip []string
}

// DefaultOptions is a dry, strict, safe-profile run.
func DefaultOptions() Options {
	return Options{
		Profile: ProfileSafe,
		DryRun:  true,
		Strict:  true,
	}
}

// GlobalCaches reports whether package and registry caches beyond the local
// build cache may be touched.
func (o Options) GlobalCaches() bool {
	return o.IncludeGlobalCaches || o.Profile == ProfileAggressive
}

// Mode is "dry-run" or "apply".
func (o Options) Mode() string {
	if o.DryRun {
		return "dry-run"
	}
	return "apply"
}

// SplitList normalizes comma-separated task names. Empty entries are dropped
// and duplicates collapsed, keeping first-seen order.
func SplitList(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
