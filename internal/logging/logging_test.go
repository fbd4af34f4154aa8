package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupFallsBack(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a file blocking directory creation")
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	preferred := filepath.Join(blocker, "devsweep", "devsweep.log")
	fallback := filepath.Join(dir, "fallback.log")

	log := logrus.New()
	var console bytes.Buffer
	path, closeLog, err := setup(log, []string{preferred, fallback}, false, &console)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	if path != fallback {
		t.Errorf("path = %q, want fallback %q", path, fallback)
	}

	log.Info("quiet line")
	log.WithField("task", "go").Warn("go clean failed")

	data, err := os.ReadFile(fallback)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "quiet line") || !strings.Contains(string(data), "go clean failed") {
		t.Errorf("log file missing entries:\n%s", data)
	}
	if strings.Contains(console.String(), "quiet line") {
		t.Error("info entry echoed to console")
	}
	if !strings.Contains(console.String(), "[go] go clean failed") {
		t.Errorf("console = %q, want the warning", console.String())
	}
}

func TestSetupNoWritableLocation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a file blocking directory creation")
	}
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, closeLog, err := setup(logrus.New(), []string{filepath.Join(blocker, "x", "a.log")}, false, nil)
	defer closeLog()
	if err == nil {
		t.Error("expected an error")
	}
}

func TestCandidatesEndInTempDir(t *testing.T) {
	c := Candidates()
	if len(c) == 0 || filepath.Dir(c[len(c)-1]) != filepath.Clean(os.TempDir()) {
		t.Errorf("Candidates() = %v, want temp fallback last", c)
	}
}
