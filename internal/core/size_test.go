package core

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-5, "0 B"},
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 << 30, "3.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
		{1 << 60, "1024.00 PB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0B", 0},
		{"512B", 512},
		{"1KB", 1024},
		{"1KiB", 1024},
		{"1.5 KB", 1536},
		{"2MB", 2 << 20},
		{"2 MiB", 2 << 20},
		{"1.2GB", 1288490189},
		{"3GiB", 3 << 30},
		{"1TB", 1 << 40},
		{"1,024MB", 1 << 30},
		{"1,234,567B", 1234567},
		{"4.5kb", 4608},
		{"  10MB  ", 10 << 20},
	}
	for _, tt := range tests {
		if got := ParseSize(tt.in); got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSizeMalformed(t *testing.T) {
	for _, in := range []string{
		"", "MB", "abc", "12", "1.2.3GB", "-1MB", "1 PB", "1XB", "1,23MB", ",100MB", "GB1", "1e3MB",
	} {
		if got := ParseSize(in); got != 0 {
			t.Errorf("ParseSize(%q) = %d, want 0", in, got)
		}
	}
}

func TestParseSizeRoundTrip(t *testing.T) {
	units := []struct {
		suffix string
		mult   int64
	}{
		{"B", 1}, {"KB", 1 << 10}, {"MiB", 1 << 20}, {"GB", 1 << 30}, {"TiB", 1 << 40},
	}
	for _, u := range units {
		for _, n := range []int64{0, 1, 7, 42, 999} {
			s := formatInt(n) + u.suffix
			got := ParseSize(s)
			if got/u.mult != n || got%u.mult != 0 {
				t.Errorf("ParseSize(%q) = %d, want %d", s, got, n*u.mult)
			}
		}
	}
}

func formatInt(n int64) string {
	return string(appendInt(nil, n))
}

func appendInt(b []byte, n int64) []byte {
	if n >= 10 {
		b = appendInt(b, n/10)
	}
	return append(b, byte('0'+n%10))
}

func TestExtractSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"==> This operation would free approximately 1.5GB of disk space.", 3 << 29},
		{"Removing: /cache/foo... (12KB)", 12 << 10},
		{"nothing to do", 0},
		{"12 files", 0},
	}
	for _, tt := range tests {
		if got := ExtractSize(tt.in); got != tt.want {
			t.Errorf("ExtractSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPathSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 100)
	writeFile(t, filepath.Join(dir, "sub", "b"), 250)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c"), 650)

	if got := PathSize(dir); got != 1000 {
		t.Errorf("PathSize(dir) = %d, want 1000", got)
	}
	if got := PathSize(filepath.Join(dir, "a")); got != 100 {
		t.Errorf("PathSize(file) = %d, want 100", got)
	}
	if got := PathSize(filepath.Join(dir, "missing")); got != 0 {
		t.Errorf("PathSize(missing) = %d, want 0", got)
	}
}

func TestPathSizeDoesNotFollowSymlinks(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "big"), 4096)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small"), 10)
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if got := PathSize(dir); got != 10 {
		t.Errorf("PathSize = %d, want 10", got)
	}
}

func TestPathSizeToleratesPermissionErrors(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok"), 10)
	locked := filepath.Join(dir, "locked")
	writeFile(t, filepath.Join(locked, "hidden"), 500)
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if got := PathSize(dir); got != 10 {
		t.Errorf("PathSize = %d, want 10", got)
	}
}

func TestPathsSizeExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "p1", "caches", "x"), 30)
	writeFile(t, filepath.Join(dir, "p2", "caches", "y"), 70)

	if got := PathsSize(filepath.Join(dir, "*", "caches")); got != 100 {
		t.Errorf("PathsSize = %d, want 100", got)
	}
}

func TestKB(t *testing.T) {
	for in, want := range map[int64]int64{0: 0, 1: 1, 1024: 1, 1025: 2, -3: 0} {
		if got := KB(in); got != want {
			t.Errorf("KB(%d) = %d, want %d", in, got, want)
		}
	}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}
