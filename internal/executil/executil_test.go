package executil

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"Short", "ok", 10, "ok"},
		{"Exact", "abcde", 5, "abcde"},
		{"Cut", "abcdef", 3, "abc..."},
		{"RuneBoundary", "aé", 2, "a..."},
		{"RuneBoundaryThreeByte", "ab€cd", 4, "ab..."},
		{"InvalidByteKept", "ab\xffcdefghijkl", 10, "ab\xffcdefgh..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestCommandLine(t *testing.T) {
	if got := CommandLine("go", "clean", "-cache"); got != "go clean -cache" {
		t.Errorf("CommandLine = %q", got)
	}
	if got := CommandLine("brew"); got != "brew" {
		t.Errorf("CommandLine = %q", got)
	}
}

func TestLookPathMissing(t *testing.T) {
	r := &ExecRunner{}
	if _, err := r.LookPath("devsweep-definitely-not-installed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookPath error = %v, want ErrNotFound", err)
	}
}

func TestOutputExitError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	r := &ExecRunner{}
	out, err := r.Output(context.Background(), "sh", "-c", "echo '  hello  '")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Errorf("Output = %q, want trimmed hello", out)
	}

	_, err = r.Output(context.Background(), "sh", "-c", "echo broken; exit 3")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "exit code 3") || !strings.Contains(err.Error(), "broken") {
		t.Errorf("error = %q, want exit code and output", err)
	}
}
