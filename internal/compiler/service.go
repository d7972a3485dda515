// Package compiler orchestrates the corpus pipeline: discovery, one build
// pass per rendering mode over a shared code table, uniqueness validation,
// the cross-mode structural check, and atomic artifact emission.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-katas/internal/discovery"
	"github.com/goliatone/go-katas/internal/emit"
	"github.com/goliatone/go-katas/internal/kata"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/internal/render"
	"github.com/goliatone/go-katas/internal/sources"
	"github.com/goliatone/go-katas/internal/validate"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Config captures the corpus layout and emission knobs for one compiler.
type Config struct {
	// Document is the main document file name inside each kata directory.
	Document string
	// Index is the published-index file name at the corpus root.
	Index  string
	Layout kata.Layout
	Render render.Options
	// HTMLArtifact and MarkdownArtifact name the per-mode output files.
	HTMLArtifact     string
	MarkdownArtifact string
	// Manifest toggles the build manifest committed beside the artifacts.
	Manifest bool
}

// Dependencies lists the collaborators the compiler is wired with.
type Dependencies struct {
	// FS is the corpus root; every document and source read goes through it.
	FS fs.FS
	// Writer commits artifacts; its directory also anchors verify reads.
	Writer *emit.Writer
	// Links resolves manifest deep links. Nil disables them.
	Links  *emit.LinkResolver
	Logger interfaces.Logger
}

// Service runs corpus builds and drift checks. It implements
// interfaces.Compiler.
type Service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
	runID  func() string
}

var _ interfaces.Compiler = (*Service)(nil)

// New wires a compiler service.
func New(cfg Config, deps Dependencies) (*Service, error) {
	if deps.FS == nil {
		return nil, ErrNilFilesystem
	}
	if deps.Writer == nil {
		return nil, ErrNilWriter
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
		runID:  uuid.NewString,
	}, nil
}

// Build compiles the corpus once per rendering mode and, unless the run is a
// dry run, commits every artifact. Nothing is written until the whole corpus
// has passed both passes and validation.
func (s *Service) Build(ctx context.Context, opts interfaces.BuildOptions) (*interfaces.BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	comp, err := s.compile(ctx)
	if err != nil {
		return nil, err
	}

	result := &interfaces.BuildResult{
		RunID:  s.runID(),
		Katas:  len(comp.corpus.Katas),
		DryRun: opts.DryRun,
	}
	for _, k := range comp.corpus.Katas {
		if k.Published {
			result.Published++
		}
		result.Sections += len(k.Sections)
	}
	result.Sources = len(comp.corpus.GlobalCodeSources)

	for _, art := range comp.artifacts {
		info := interfaces.ArtifactInfo{
			Mode:     art.mode,
			Path:     filepath.Join(s.deps.Writer.Dir(), art.name),
			Bytes:    len(art.data),
			Checksum: art.fingerprint,
		}
		if !opts.DryRun {
			committed, err := s.deps.Writer.Commit(art.name, art.data)
			if err != nil {
				return nil, err
			}
			info.Path = committed
			info.Written = true
		}
		result.Artifacts = append(result.Artifacts, info)
	}

	if s.cfg.Manifest && !opts.DryRun {
		manifest, err := s.buildManifest(result.RunID, comp)
		if err != nil {
			return nil, err
		}
		data, err := manifest.Marshal()
		if err != nil {
			return nil, err
		}
		committed, err := s.deps.Writer.Commit(emit.ManifestName, data)
		if err != nil {
			return nil, err
		}
		result.Manifest = committed
	}

	result.Duration = time.Since(start)
	s.logger.Info("compiler: corpus built",
		"run_id", result.RunID,
		"katas", result.Katas,
		"published", result.Published,
		"sections", result.Sections,
		"sources", result.Sources,
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// Verify rebuilds the corpus in memory and compares artifact fingerprints
// against what is on disk. It never writes; drift is reported, not returned
// as an error.
func (s *Service) Verify(ctx context.Context) (*interfaces.VerifyResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	comp, err := s.compile(ctx)
	if err != nil {
		return nil, err
	}

	result := &interfaces.VerifyResult{
		RunID: s.runID(),
		Clean: true,
	}
	for _, art := range comp.artifacts {
		path := filepath.Join(s.deps.Writer.Dir(), art.name)
		drift := interfaces.ArtifactDrift{
			Mode: art.mode,
			Path: path,
			Want: art.fingerprint,
		}
		disk, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			drift.Missing = true
		case err != nil:
			return nil, fmt.Errorf("compiler: read artifact %s: %w", path, err)
		default:
			drift.Have = emit.Fingerprint(disk)
			drift.Match = drift.Have == drift.Want
		}
		if !drift.Match {
			result.Clean = false
		}
		result.Artifacts = append(result.Artifacts, drift)
	}
	result.Duration = time.Since(start)

	s.logger.Info("compiler: corpus verified",
		"run_id", result.RunID,
		"clean", result.Clean,
		"artifacts", len(result.Artifacts),
	)
	return result, nil
}

type artifact struct {
	mode        interfaces.RenderMode
	name        string
	data        []byte
	fingerprint string
}

type compilation struct {
	refs []kata.Ref
	// corpus holds the first pass's tree; manifest summaries come from it
	// since the structural check guarantees the passes agree on shape.
	corpus    kata.Corpus
	artifacts []artifact
}

func (s *Service) compile(ctx context.Context) (*compilation, error) {
	refs, err := discovery.Discover(s.deps.FS, discovery.Options{Index: s.cfg.Index, Document: s.cfg.Document}, s.logger)
	if err != nil {
		return nil, err
	}

	reader, err := sources.NewReader(s.deps.FS)
	if err != nil {
		return nil, err
	}
	// One table across both passes keeps every source read single and the
	// emitted id set identical per mode.
	table := sources.NewTable(reader, s.logger)

	modes := render.Modes()
	comp := &compilation{refs: refs}
	masked := make([][]byte, 0, len(modes))
	for i, mode := range modes {
		renderer, err := render.ForMode(mode, s.cfg.Render)
		if err != nil {
			return nil, err
		}
		builder, err := kata.NewBuilder(reader, table, renderer, s.cfg.Layout, s.logger)
		if err != nil {
			return nil, err
		}

		katas := make([]kata.Kata, 0, len(refs))
		for _, ref := range refs {
			built, err := builder.Build(ctx, ref)
			if err != nil {
				return nil, err
			}
			katas = append(katas, built)
		}
		corpus := kata.Corpus{Katas: katas, GlobalCodeSources: table.Entries()}

		if err := validate.Corpus(corpus); err != nil {
			return nil, err
		}

		shape, err := json.Marshal(corpus.MaskContent())
		if err != nil {
			return nil, fmt.Errorf("compiler: mask %s corpus: %w", mode, err)
		}
		masked = append(masked, shape)

		data, err := emit.Marshal(corpus)
		if err != nil {
			return nil, err
		}
		comp.artifacts = append(comp.artifacts, artifact{
			mode:        mode,
			name:        s.artifactName(mode),
			data:        data,
			fingerprint: emit.Fingerprint(data),
		})
		if i == 0 {
			comp.corpus = corpus
		}
	}

	for i := 1; i < len(masked); i++ {
		if !bytes.Equal(masked[0], masked[i]) {
			return nil, modeDivergence(modes[0].String(), modes[i].String())
		}
	}
	return comp, nil
}

func (s *Service) buildManifest(runID string, comp *compilation) (*emit.Manifest, error) {
	manifest := emit.NewManifest(runID, s.now().UTC())
	manifest.Config = s.cfg.fingerprint()
	for _, art := range comp.artifacts {
		manifest.Artifacts = append(manifest.Artifacts, emit.ManifestArtifact{
			Mode:        art.mode.String(),
			Path:        filepath.Join(s.deps.Writer.Dir(), art.name),
			Fingerprint: art.fingerprint,
			Size:        int64(len(art.data)),
		})
	}
	for _, k := range comp.corpus.Katas {
		url, err := s.deps.Links.KataURL(k.ID)
		if err != nil {
			return nil, fmt.Errorf("compiler: resolve site link for %s: %w", k.ID, err)
		}
		manifest.Katas = append(manifest.Katas, emit.ManifestKata{
			ID:        k.ID,
			Title:     k.Title,
			Published: k.Published,
			Sections:  len(k.Sections),
			Summary:   k.Meta.Summary,
			Tags:      k.Meta.Tags,
			URL:       url,
		})
	}
	return manifest, nil
}

func (s *Service) artifactName(mode interfaces.RenderMode) string {
	switch mode {
	case interfaces.RenderModeHTML:
		return s.cfg.HTMLArtifact
	case interfaces.RenderModeMarkdown:
		return s.cfg.MarkdownArtifact
	}
	return mode.String() + ".json"
}

// fingerprint condenses the knobs that shape artifact bytes so the manifest
// records which configuration produced a build.
func (c Config) fingerprint() string {
	key := strings.Join([]string{
		"document=" + c.Document,
		"index=" + c.Index,
		"description=" + c.Layout.Description,
		"placeholder=" + c.Layout.Placeholder,
		"verification=" + c.Layout.Verification,
		"solution=" + c.Layout.Solution,
		"extensions=" + strings.Join(c.Render.Extensions, ","),
		"hard_wraps=" + strconv.FormatBool(c.Render.HardWraps),
		"unsafe=" + strconv.FormatBool(c.Render.Unsafe),
		"html=" + c.HTMLArtifact,
		"markdown=" + c.MarkdownArtifact,
	}, "|")
	return emit.Fingerprint([]byte(key))
}
