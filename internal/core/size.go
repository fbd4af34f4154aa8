package core

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ─── Byte formatting ─────────────────────────────────────────────────────────

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count with 1024-based units. Bytes are shown
// without decimals, every larger unit with two.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}

	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}

// ─── Size string parsing ─────────────────────────────────────────────────────

// sizePattern matches "<number><unit>" with optional thousands separators,
// an optional fraction and optional whitespace before the unit.
var sizePattern = regexp.MustCompile(`(?i)^([0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(\.[0-9]+)?\s*(B|KB|KIB|MB|MIB|GB|GIB|TB|TIB)$`)

// sizeToken finds a size inside free text, e.g. tool output.
var sizeToken = regexp.MustCompile(`(?i)\b(?:[0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(?:\.[0-9]+)?\s*(?:KIB|MIB|GIB|TIB|KB|MB|GB|TB|B)\b`)

var unitShift = map[string]uint{
	"B":   0,
	"KB":  10,
	"KIB": 10,
	"MB":  20,
	"MIB": 20,
	"GB":  30,
	"GIB": 30,
	"TB":  40,
	"TIB": 40,
}

// ParseSize converts a tool-reported size such as "1.5GB", "512 KiB" or
// "1,024MB" into bytes. Input that does not conform returns 0.
func ParseSize(s string) int64 {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}

	number := strings.ReplaceAll(m[1], ",", "") + m[2]
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || v < 0 {
		return 0
	}

	bytes := v * float64(uint64(1)<<unitShift[strings.ToUpper(m[3])])
	if bytes >= math.MaxInt64 {
		return 0
	}
	return int64(math.Round(bytes))
}

// ExtractSize returns the first size token found in text, parsed with
// ParseSize. Text without a size yields 0. Callers holding multi-line tool
// output should narrow text to the line carrying the figure they want.
func ExtractSize(text string) int64 {
	tok := sizeToken.FindString(text)
	if tok == "" {
		return 0
	}
	return ParseSize(tok)
}

// ─── Filesystem sizing ───────────────────────────────────────────────────────

// PathSize returns the total size in bytes of the file or directory tree at
// path. Symlinks are never followed. Missing paths and unreadable subtrees
// contribute zero.
func PathSize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if info.Mode().IsRegular() {
		return info.Size()
	}
	if !info.IsDir() {
		return 0
	}

	var total int64
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission denied or vanished entry: skip, don't fail.
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
				logrus.WithField("path", p).Debugf("size: skipping: %v", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			logrus.WithField("path", p).Debugf("size: %v", err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += fi.Size()
		return nil
	})
	return total
}

// PathsSize sums PathSize over several paths. Glob patterns are expanded.
func PathsSize(paths ...string) int64 {
	var total int64
	for _, p := range ExpandGlobs(paths...) {
		total += PathSize(p)
	}
	return total
}

// ExpandGlobs expands any path containing glob metacharacters. Paths without
// metacharacters are passed through even if they don't exist.
func ExpandGlobs(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// KB converts bytes to kilobytes, rounding up like du -k.
func KB(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	return (bytes + 1023) / 1024
}
