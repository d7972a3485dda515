package sources

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ErrNilFilesystem indicates the reader was constructed without a corpus
// filesystem.
var ErrNilFilesystem = errors.New("sources: corpus filesystem is required")

// ErrPathEscapesCorpus marks references that resolve outside the corpus root.
var ErrPathEscapesCorpus = errors.New("sources: reference escapes the corpus root")

// ErrEmptyReference marks blank path references.
var ErrEmptyReference = errors.New("sources: reference path is empty")

// Reader resolves document-relative references against one corpus
// filesystem. Every path handed to other components is canonical: cleaned,
// slash-separated, and relative to the corpus root.
type Reader struct {
	fsys fs.FS
}

// NewReader wraps the corpus filesystem, typically os.DirFS(contentDir).
func NewReader(fsys fs.FS) (*Reader, error) {
	if fsys == nil {
		return nil, ErrNilFilesystem
	}
	return &Reader{fsys: fsys}, nil
}

// Resolve canonicalizes ref against the directory of the referencing
// document. The result stays inside the corpus root or the call fails.
func (r *Reader) Resolve(docDir, ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", ErrEmptyReference
	}

	canonical := path.Join(path.Clean(docDir), trimmed)
	if canonical == ".." || strings.HasPrefix(canonical, "../") {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesCorpus, ref)
	}
	if canonical == "." || canonical == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyReference, ref)
	}
	return canonical, nil
}

// Read resolves ref against docDir and returns the canonical path together
// with the file content.
func (r *Reader) Read(docDir, ref string) (string, string, error) {
	canonical, err := r.Resolve(docDir, ref)
	if err != nil {
		return "", "", err
	}
	content, err := r.ReadCanonical(canonical)
	if err != nil {
		return canonical, "", err
	}
	return canonical, content, nil
}

// ReadCanonical reads a path that is already corpus-root relative.
func (r *Reader) ReadCanonical(canonical string) (string, error) {
	data, err := fs.ReadFile(r.fsys, canonical)
	if err != nil {
		return "", fmt.Errorf("sources: read %s: %w", canonical, err)
	}
	return string(data), nil
}

// Exists reports whether the canonical path names a readable file.
func (r *Reader) Exists(canonical string) bool {
	info, err := fs.Stat(r.fsys, canonical)
	return err == nil && !info.IsDir()
}
