package sysfs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes textual values to kernel control nodes below a root
// directory. On a device the root is "/"; tests point it at a temp dir.
type Writer struct {
	root string
}

// New creates a Writer rooted at the given directory. An empty root
// means the real filesystem.
func New(root string) *Writer {
	if root == "" {
		root = "/"
	}
	return &Writer{root: root}
}

// Root returns the directory every node path is resolved against.
func (w *Writer) Root() string {
	return w.root
}

// Write writes value followed by a newline to the node at path.
// Failures are logged and swallowed: callers have no way to act on them.
func (w *Writer) Write(path, value string) {
	if err := w.write(path, value); err != nil {
		slog.Error("write node", "path", path, "value", value, "err", err)
		return
	}
	slog.Debug("write node", "path", path, "value", value)
}

func (w *Writer) write(path, value string) error {
	// O_TRUNC without O_CREATE: control nodes are never created by us.
	f, err := os.OpenFile(w.resolve(path), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if _, err := f.WriteString(value + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Exists reports whether a node is present and readable.
func (w *Writer) Exists(path string) bool {
	f, err := os.Open(w.resolve(path))
	if err != nil {
		return false
	}
	f.Close()
	slog.Debug("found node", "path", path)
	return true
}

// Read returns the trimmed content of a node.
func (w *Writer) Read(path string) (string, error) {
	data, err := os.ReadFile(w.resolve(path))
	if err != nil {
		return "", fmt.Errorf("read node: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// resolve maps an absolute control path below the writer root.
func (w *Writer) resolve(path string) string {
	if w.root == "/" {
		return filepath.Clean(path)
	}
	return filepath.Join(w.root, filepath.Clean("/"+path))
}
