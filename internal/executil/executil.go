// Package executil wraps exec.Cmd for the package-manager integrations:
// availability lookups, bounded runs and readable failures.
package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 10 * time.Minute

// maxOutput is how much combined output is kept in error messages.
const maxOutput = 200

// ErrNotFound is returned when the requested tool is not on PATH.
var ErrNotFound = errors.New("executable not found")

// Runner runs external tools. Tasks only talk to tools through a Runner so
// tests can substitute a fake.
type Runner interface {
	// LookPath reports whether name is installed.
	LookPath(name string) (string, error)
	// Output runs name with args and returns trimmed combined output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs real processes.
type ExecRunner struct {
	// Timeout bounds each invocation; zero means DefaultTimeout.
	Timeout time.Duration
	// Env is appended to the inherited environment.
	Env []string
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		c.Env = append(c.Environ(), r.Env...)
	}

	logrus.WithField("op", CommandLine(name, args...)).Debug("---- Running command")
	out, err := c.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s", name, timeout)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", ExitError(CommandLine(name, args...), err, out)
	}
	return strings.TrimSpace(string(out)), nil
}

// ExitError wraps a process error with its exit code and a truncated,
// UTF-8 safe excerpt of its output.
func ExitError(cmdLine string, err error, output []byte) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("%s: %w", cmdLine, err)
	}

	code := exitErr.ExitCode()
	out := Truncate(strings.TrimSpace(string(output)), maxOutput)
	if out != "" {
		return fmt.Errorf("%s failed (exit code %d): %s", cmdLine, code, out)
	}
	return fmt.Errorf("%s failed (exit code %d)", cmdLine, code)
}

// Truncate shortens s to at most n bytes without splitting a rune, adding an
// ellipsis when anything was cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// CommandLine renders a command for logs.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
