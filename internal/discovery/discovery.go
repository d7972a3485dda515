// Package discovery determines which kata directories a build covers and in
// what order: the corpus root's published index first (its order is the
// site's display order), then every remaining on-disk kata directory in
// lexicographic order, flagged unpublished. Presentation order only; tree
// construction never depends on it.
package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-katas/internal/kata"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/internal/sources"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Options names the two fixed files discovery relies on.
type Options struct {
	// Index is the published index file at the corpus root: a JSON array of
	// kata directory names in display order.
	Index string
	// Document is the main document name inside each kata directory. A
	// directory without it is not a kata.
	Document string
}

func (o Options) withDefaults() Options {
	if o.Index == "" {
		o.Index = "index.json"
	}
	if o.Document == "" {
		o.Document = "index.md"
	}
	return o
}

// Discover enumerates the katas to build. Every indexed directory must
// exist and hold the main document; extra directories are appended after
// the published set. Hidden directories and directories without the main
// document are skipped.
func Discover(fsys fs.FS, opts Options, logger interfaces.Logger) ([]kata.Ref, error) {
	if fsys == nil {
		return nil, ErrNilFilesystem
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	opts = opts.withDefaults()

	published, err := readIndex(fsys, opts.Index, logger)
	if err != nil {
		return nil, err
	}

	refs := make([]kata.Ref, 0, len(published))
	seen := make(map[string]bool, len(published))
	for _, name := range published {
		name = strings.TrimSpace(name)
		if name == "" {
			logger.Warn("discovery: blank index entry dropped", "index", opts.Index)
			continue
		}
		if seen[name] {
			logger.Warn("discovery: duplicate index entry dropped", "kata", name, "index", opts.Index)
			continue
		}
		seen[name] = true

		docPath := path.Join(name, opts.Document)
		info, err := fs.Stat(fsys, docPath)
		if err != nil {
			return nil, sources.MissingResource(err, docPath, opts.Index, name)
		}
		if info.IsDir() {
			return nil, sources.MissingResource(fmt.Errorf("%s is a directory", docPath), docPath, opts.Index, name)
		}
		refs = append(refs, kata.Ref{ID: name, Dir: name, Document: opts.Document, Published: true})
	}
	publishedCount := len(refs)

	// fs.ReadDir returns entries sorted by name, which is exactly the
	// stable order unpublished katas are appended in.
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("discovery: list corpus root: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || seen[name] {
			continue
		}
		info, err := fs.Stat(fsys, path.Join(name, opts.Document))
		if err != nil || info.IsDir() {
			continue
		}
		refs = append(refs, kata.Ref{ID: name, Dir: name, Document: opts.Document, Published: false})
	}

	logger.Debug("discovery: corpus enumerated",
		"published", publishedCount,
		"unpublished", len(refs)-publishedCount,
	)
	return refs, nil
}

func readIndex(fsys fs.FS, name string, logger interfaces.Logger) ([]string, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("discovery: published index missing; every kata treated as unpublished", "index", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("discovery: read index %s: %w", name, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, malformedIndex(err, name)
	}
	return names, nil
}
