package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer commits artifacts under one output directory. Content lands in a
// temp file first and is renamed over the final name, so readers never
// observe a partially written artifact.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir. The directory is created on the
// first commit, not here, so dry runs never touch the filesystem.
func NewWriter(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("emit: writer requires an output directory")
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory artifacts are committed into.
func (w *Writer) Dir() string { return w.dir }

// Commit writes data under name inside the output directory and returns the
// final path.
func (w *Writer) Commit(name string, data []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("emit: commit requires an artifact name")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("emit: create output directory %s: %w", w.dir, err)
	}

	tmp, err := os.CreateTemp(w.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("emit: create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("emit: write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("emit: close artifact %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("emit: chmod artifact %s: %w", name, err)
	}

	final := filepath.Join(w.dir, name)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("emit: commit artifact %s: %w", name, err)
	}
	return final, nil
}
