package core

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// ─── Deletion strategies ─────────────────────────────────────────────────────

// Deleter removes a directory tree. Implementations are chosen once per run.
type Deleter interface {
	// Delete removes the tree at path.
	Delete(path string) error
	// Reversible reports whether deleted trees can be recovered.
	Reversible() bool
	// Name is a short label for logs and reports.
	Name() string
}

// RemoveDeleter irreversibly removes trees with os.RemoveAll.
type RemoveDeleter struct{}

func (RemoveDeleter) Delete(path string) error {
	if err := refuseSymlink(path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

func (RemoveDeleter) Reversible() bool { return false }
func (RemoveDeleter) Name() string     { return "remove" }

// TrashDeleter moves trees into the user's trash.
type TrashDeleter struct {
	// Dir is the trash "files" directory.
	Dir string
	// InfoDir, when set, receives freedesktop .trashinfo records.
	InfoDir string

	now func() time.Time
}

// NewTrashDeleter returns a TrashDeleter for the platform trash under home:
// ~/.Trash on macOS, the XDG trash elsewhere.
func NewTrashDeleter(home string) (*TrashDeleter, error) {
	switch runtime.GOOS {
	case "darwin":
		return &TrashDeleter{Dir: filepath.Join(home, ".Trash")}, nil
	case "windows":
		return nil, errors.New("trash is not supported on Windows")
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = filepath.Join(home, ".local", "share")
	}
	trash := filepath.Join(base, "Trash")
	return &TrashDeleter{
		Dir:     filepath.Join(trash, "files"),
		InfoDir: filepath.Join(trash, "info"),
	}, nil
}

func (t *TrashDeleter) Delete(path string) error {
	if err := refuseSymlink(path); err != nil {
		return err
	}
	if err := os.MkdirAll(t.Dir, 0o700); err != nil {
		return fmt.Errorf("create trash: %w", err)
	}
	if t.InfoDir != "" {
		if err := os.MkdirAll(t.InfoDir, 0o700); err != nil {
			return fmt.Errorf("create trash info: %w", err)
		}
	}

	dest, name := t.freeName(filepath.Base(path))

	if t.InfoDir != "" {
		abs, _ := filepath.Abs(path)
		info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
			trashPath(abs), t.clock().Format("2006-01-02T15:04:05"))
		if err := os.WriteFile(filepath.Join(t.InfoDir, name+".trashinfo"), []byte(info), 0o600); err != nil {
			return fmt.Errorf("write trash info: %w", err)
		}
	}

	if err := os.Rename(path, dest); err != nil {
		if t.InfoDir != "" {
			_ = os.Remove(filepath.Join(t.InfoDir, name+".trashinfo"))
		}
		return fmt.Errorf("move to trash: %w", err)
	}
	return nil
}

func (t *TrashDeleter) Reversible() bool { return true }
func (t *TrashDeleter) Name() string     { return "trash" }

// freeName picks a name free in both the files and the info directory.
func (t *TrashDeleter) freeName(base string) (string, string) {
	name := base
	for i := 1; ; i++ {
		dest := filepath.Join(t.Dir, name)
		if !exists(dest) && (t.InfoDir == "" || !exists(filepath.Join(t.InfoDir, name+".trashinfo"))) {
			return dest, name
		}
		name = base + "." + strconv.Itoa(i)
	}
}

// trashPath percent-encodes an absolute path for a .trashinfo Path key.
// Separators stay literal.
func trashPath(abs string) string {
	return (&url.URL{Path: filepath.ToSlash(abs)}).EscapedPath()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, os.ErrNotExist)
}

func (t *TrashDeleter) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// ErrSymlink is returned when asked to delete through a symbolic link.
var ErrSymlink = errors.New("refusing to delete symbolic link")

func refuseSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s", ErrSymlink, path)
	}
	return nil
}

// RemoveContents deletes every entry inside dir but keeps dir itself. A
// missing dir is not an error. Returns the bytes the entries occupied.
func RemoveContents(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var freed int64
	var failed []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		size := PathSize(p)
		if err := os.RemoveAll(p); err != nil {
			failed = append(failed, e.Name())
			continue
		}
		freed += size
	}
	if len(failed) > 0 {
		return freed, fmt.Errorf("could not remove %d entries in %s: %s",
			len(failed), dir, strings.Join(failed, ", "))
	}
	return freed, nil
}

// IsWithin reports whether path lies strictly below root. Both are
// canonicalized first, so symlinked escapes are rejected.
func IsWithin(root, path string) (bool, error) {
	canonRoot, err := Canonical(root)
	if err != nil {
		return false, err
	}
	canonPath, err := Canonical(path)
	if err != nil {
		return false, err
	}
	if canonPath == canonRoot {
		return false, nil
	}
	rel, err := filepath.Rel(canonRoot, canonPath)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// Canonical returns the absolute, symlink-resolved, cleaned form of path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}
