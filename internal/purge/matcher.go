// Package purge finds and removes regenerable build and dependency
// directories (node_modules, target, virtualenvs) under a workspace root.
package purge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/sirupsen/logrus"
)

// DefaultNames are directory names that always match.
var DefaultNames = []string{
	"node_modules",
	"target",
	".venv",
	"venv",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	".ruff_cache",
	".tox",
	".gradle",
	".next",
	".nuxt",
	".turbo",
	".parcel-cache",
	".svelte-kit",
	".dart_tool",
	"bower_components",
	"Pods",
	"DerivedData",
}

// DefaultSuffixes are slash-separated relative paths that match when a
// directory's path ends with them.
var DefaultSuffixes = []string{
	"vendor/bundle",
	"Carthage/Build",
	".yarn/cache",
}

// Match is one discovered directory.
type Match struct {
	Path string
	KB   int64
	// Type is the name or suffix that matched.
	Type string
}

// Matcher walks a root looking for target directories.
type Matcher struct {
	names    map[string]bool
	suffixes []string
}

// NewMatcher builds a matcher from the defaults plus extra names and
// suffixes.
func NewMatcher(extraNames, extraSuffixes []string) *Matcher {
	m := &Matcher{names: make(map[string]bool)}
	for _, n := range append(append([]string{}, DefaultNames...), extraNames...) {
		if n = strings.TrimSpace(n); n != "" {
			m.names[n] = true
		}
	}
	seen := make(map[string]bool)
	for _, s := range append(append([]string{}, DefaultSuffixes...), extraSuffixes...) {
		s = strings.Trim(filepath.ToSlash(strings.TrimSpace(s)), "/")
		if s != "" && !seen[s] {
			seen[s] = true
			m.suffixes = append(m.suffixes, s)
		}
	}
	return m
}

// Scan walks root and returns matches in discovery order, each sized once.
// Version-control metadata is never entered, and a matched directory is not
// descended into, so nested targets are not reported twice.
func (m *Matcher) Scan(ctx context.Context, root string) ([]Match, error) {
	root = filepath.Clean(root)
	var matches []Match

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logrus.WithField("path", path).Warnf("skipping unreadable path: %v", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		typ, ok := m.match(root, path, d.Name())
		if !ok {
			return nil
		}

		kb := core.KB(core.PathSize(path))
		logrus.WithFields(logrus.Fields{"path": path, "bytes": kb * 1024}).Debugf("match %s", typ)
		matches = append(matches, Match{Path: path, KB: kb, Type: typ})
		return filepath.SkipDir
	})
	if err != nil {
		return matches, fmt.Errorf("scan %s: %w", root, err)
	}
	return matches, nil
}

func (m *Matcher) match(root, path, name string) (string, bool) {
	if m.names[name] {
		return name, true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	for _, s := range m.suffixes {
		if rel == s || strings.HasSuffix(rel, "/"+s) {
			return s, true
		}
	}
	return "", false
}

// ─── Root validation ─────────────────────────────────────────────────────────

// ErrUnsafeRoot is returned for roots that must never be purged.
var ErrUnsafeRoot = errors.New("refusing to purge protected directory")

// ValidateRoot canonicalizes root and checks it is an existing directory
// that is not itself one of the unsafe locations.
func ValidateRoot(root string, unsafe []string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errors.New("--root is required")
	}
	canon, err := core.Canonical(root)
	if err != nil {
		return "", fmt.Errorf("invalid root %s: %w", root, err)
	}
	info, err := os.Stat(canon)
	if err != nil {
		return "", fmt.Errorf("invalid root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid root %s: not a directory", root)
	}
	for _, u := range unsafe {
		cu, err := core.Canonical(u)
		if err != nil {
			cu = filepath.Clean(u)
		}
		if canon == cu {
			return "", fmt.Errorf("%w: %s", ErrUnsafeRoot, canon)
		}
	}
	return canon, nil
}
