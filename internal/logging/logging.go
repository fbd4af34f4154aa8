// Package logging bootstraps the devsweep log file and mirrors warnings to
// the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Candidates returns the log file locations in preference order.
func Candidates() []string {
	var out []string
	if home, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "darwin" {
			out = append(out, filepath.Join(home, "Library", "Logs", "devsweep", "devsweep.log"))
		} else {
			state := os.Getenv("XDG_STATE_HOME")
			if state == "" {
				state = filepath.Join(home, ".local", "state")
			}
			out = append(out, filepath.Join(state, "devsweep", "devsweep.log"))
		}
	}
	name := "devsweep.log"
	if u := os.Getenv("USER"); u != "" {
		name = fmt.Sprintf("devsweep-%s.log", u)
	}
	return append(out, filepath.Join(os.TempDir(), name))
}

// Setup points the standard logrus logger at the first writable candidate
// and installs a console hook for warnings. The returned closer flushes the
// file.
func Setup(debug bool, console io.Writer) (string, func(), error) {
	return setup(logrus.StandardLogger(), Candidates(), debug, console)
}

func setup(log *logrus.Logger, candidates []string, debug bool, console io.Writer) (string, func(), error) {
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if console != nil {
		log.AddHook(&consoleHook{out: console, debug: debug})
	}

	var lastErr error
	for _, path := range candidates {
		f, err := openLog(path)
		if err != nil {
			lastErr = err
			continue
		}
		log.SetOutput(f)
		return path, func() { _ = f.Close() }, nil
	}

	log.SetOutput(io.Discard)
	return "", func() {}, fmt.Errorf("no writable log location: %w", lastErr)
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// consoleHook echoes warnings and errors, plus debug output when enabled,
// to the console in a short form.
type consoleHook struct {
	out   io.Writer
	debug bool
}

func (h *consoleHook) Levels() []logrus.Level {
	if h.debug {
		return logrus.AllLevels
	}
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *consoleHook) Fire(e *logrus.Entry) error {
	prefix := "  "
	switch e.Level {
	case logrus.WarnLevel:
		prefix = "  ! "
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		prefix = "  ✗ "
	}
	task := ""
	if t, ok := e.Data["task"]; ok {
		task = fmt.Sprintf("[%v] ", t)
	}
	_, err := fmt.Fprintf(h.out, "%s%s%s\n", prefix, task, e.Message)
	return err
}
