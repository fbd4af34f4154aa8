package core

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

// ErrLocked is returned when another run already holds the lock.
var ErrLocked = errors.New("another devsweep run is in progress")

// Lock is an advisory, exclusive, non-blocking run lock backed by a file.
type Lock struct {
	f    *os.File
	path string
}

// LockPath returns the lock file location for a tool identity such as
// "clean" or "purge". The path is per user.
func LockPath(identity string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("devsweep-%s-%s.lock", identity, userTag()))
}

// AcquireLock takes the run lock for identity. It never waits: if the lock
// is held, ErrLocked is returned immediately.
func AcquireLock(identity string) (*Lock, error) {
	return acquireLockAt(LockPath(identity))
}

func acquireLockAt(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock %s: %w", path, err)
	}

	if err := tryLock(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	// Record the holder for operators inspecting a stuck lock.
	_ = f.Truncate(0)
	_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)

	return &Lock{f: f, path: path}, nil
}

// Release drops the lock and removes the marker. Safe to call more than once.
func (l *Lock) Release() {
	if l == nil || l.f == nil {
		return
	}
	_ = unlock(l.f)
	_ = l.f.Close()
	_ = os.Remove(l.path)
	l.f = nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

func userTag() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username)
	}
	return strconv.Itoa(os.Getuid())
}
