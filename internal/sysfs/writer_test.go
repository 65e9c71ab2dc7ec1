package sysfs

import (
	"os"
	"path/filepath"
	"testing"
)

func mkNode(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWriteAppendsNewline(t *testing.T) {
	root := t.TempDir()
	node := "/sys/devices/system/cpu/cpu0/cpufreq/scaling_max_freq"
	mkNode(t, root, node, "1586000\n")

	w := New(root)
	w.Write(node, "1014000")

	got, err := os.ReadFile(filepath.Join(root, node))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1014000\n" {
		t.Fatalf("node content = %q, want %q", got, "1014000\n")
	}
}

func TestWriteMissingNodeIsSwallowed(t *testing.T) {
	root := t.TempDir()
	w := New(root)

	// must not panic or create the node
	w.Write("/sys/class/sec/tsp/input/enabled", "1")

	if _, err := os.Stat(filepath.Join(root, "sys/class/sec/tsp/input/enabled")); !os.IsNotExist(err) {
		t.Fatalf("missing node was created, stat err = %v", err)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	mkNode(t, root, "/sys/class/sec/tsp/input/enabled", "1\n")
	w := New(root)

	tests := []struct {
		path string
		want bool
	}{
		{"/sys/class/sec/tsp/input/enabled", true},
		{"/sys/class/power_supply/battery/lcd", false},
	}
	for _, tt := range tests {
		if got := w.Exists(tt.path); got != tt.want {
			t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReadTrims(t *testing.T) {
	root := t.TempDir()
	mkNode(t, root, "/sys/x", " 42\n")
	got, err := New(root).Read("/sys/x")
	if err != nil {
		t.Fatal(err)
	}
	if got != "42" {
		t.Fatalf("Read = %q, want %q", got, "42")
	}
	if _, err := New(root).Read("/sys/missing"); err == nil {
		t.Fatal("Read of missing node returned nil error")
	}
}

func TestResolveStaysBelowRoot(t *testing.T) {
	w := New("/tmp/fake")
	if got := w.resolve("/../../etc/passwd"); got != "/tmp/fake/etc/passwd" {
		t.Fatalf("resolve escaped root: %q", got)
	}
	if got := New("").resolve("/sys/a/../b"); got != "/sys/b" {
		t.Fatalf("resolve on real root = %q", got)
	}
}
