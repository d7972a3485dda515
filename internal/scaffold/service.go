// Package scaffold creates new kata directory skeletons inside a corpus: a
// slug-named directory seeded with the main document and, when requested, an
// entry in the published index. It is the only part of the toolchain that
// writes into the corpus itself.
package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Config locates the corpus and names its fixed files.
type Config struct {
	// ContentDir is the corpus root the new kata directory is created under.
	ContentDir string
	// Document is the main document file name seeded into the new directory.
	Document string
	// Index is the published-index file name at the corpus root.
	Index string
}

func (c Config) withDefaults() Config {
	if c.Document == "" {
		c.Document = "index.md"
	}
	if c.Index == "" {
		c.Index = "index.json"
	}
	return c
}

// Dependencies carries the collaborators the service needs.
type Dependencies struct {
	Logger interfaces.Logger
}

// Service scaffolds kata directories. Safe for concurrent use as long as
// callers do not scaffold the same id twice.
type Service struct {
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.Scaffolder = (*Service)(nil)

// New constructs a scaffolder rooted at cfg.ContentDir.
func New(cfg Config, deps Dependencies) (*Service, error) {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return nil, ErrContentDirRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{cfg: cfg.withDefaults(), logger: logger}, nil
}

// Scaffold creates the kata directory, seeds the main document with the
// request title, and registers the id in the published index when asked to.
// The id derives from the title unless the request overrides it; both paths
// must satisfy the corpus slug rules.
func (s *Service) Scaffold(ctx context.Context, req interfaces.ScaffoldRequest) (*interfaces.ScaffoldResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, titleRequired()
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		normalized, err := slug.Normalize(title)
		if err != nil {
			return nil, invalidID(title, err)
		}
		id = normalized
	}
	if !slug.IsValid(id) {
		return nil, invalidID(id, nil)
	}

	dir := filepath.Join(s.cfg.ContentDir, id)
	if _, err := os.Stat(dir); err == nil {
		return nil, kataExists(id, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("scaffold: stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scaffold: create %s: %w", dir, err)
	}

	docPath := filepath.Join(dir, s.cfg.Document)
	if err := os.WriteFile(docPath, []byte("# "+title+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("scaffold: write %s: %w", docPath, err)
	}

	result := &interfaces.ScaffoldResult{
		ID:    id,
		Dir:   dir,
		Files: []string{docPath},
	}

	if req.Publish {
		registered, err := s.register(id)
		if err != nil {
			return nil, err
		}
		result.Registered = registered
	}

	s.logger.Info("scaffold: kata created",
		"kata", id,
		"dir", dir,
		"registered", result.Registered,
	)
	return result, nil
}

// register appends id to the published index, creating the file on first
// use. Returns false when the index already lists the id.
func (s *Service) register(id string) (bool, error) {
	indexPath := filepath.Join(s.cfg.ContentDir, s.cfg.Index)

	names := []string{}
	data, err := os.ReadFile(indexPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// first published kata creates the index
	case err != nil:
		return false, fmt.Errorf("scaffold: read index %s: %w", indexPath, err)
	default:
		if err := json.Unmarshal(data, &names); err != nil {
			return false, malformedIndex(err, indexPath)
		}
	}

	for _, name := range names {
		if name == id {
			s.logger.Warn("scaffold: index already lists kata", "kata", id, "index", indexPath)
			return false, nil
		}
	}
	names = append(names, id)

	encoded, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return false, fmt.Errorf("scaffold: encode index: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(indexPath, encoded, 0o644); err != nil {
		return false, fmt.Errorf("scaffold: write index %s: %w", indexPath, err)
	}
	return true, nil
}
