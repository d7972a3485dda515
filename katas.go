// Package katas compiles kata corpora: directories of Markdown documents,
// inline content macros, and shared code sources become deterministic
// content artifacts, one per rendering mode, plus a build manifest.
package katas

import (
	"context"

	"github.com/goliatone/go-katas/internal/di"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Compiler exports the corpus compiler contract for consumers of the katas package.
type Compiler = interfaces.Compiler

// Scaffolder exports the kata scaffolder contract.
type Scaffolder = interfaces.Scaffolder

// LoggerProvider exports the logging provider contract hosts can implement.
type LoggerProvider = interfaces.LoggerProvider

// Logger exports the structured logger contract used across the module.
type Logger = interfaces.Logger

type (
	// BuildOptions control one corpus build run.
	BuildOptions = interfaces.BuildOptions
	// BuildResult summarizes a completed corpus build.
	BuildResult = interfaces.BuildResult
	// ArtifactInfo describes one emitted corpus artifact.
	ArtifactInfo = interfaces.ArtifactInfo
	// VerifyResult reports drift between a fresh build and disk artifacts.
	VerifyResult = interfaces.VerifyResult
	// ArtifactDrift reports the verification outcome for one artifact.
	ArtifactDrift = interfaces.ArtifactDrift
	// ScaffoldRequest describes a kata skeleton to create.
	ScaffoldRequest = interfaces.ScaffoldRequest
	// ScaffoldResult reports what the scaffolder created.
	ScaffoldResult = interfaces.ScaffoldResult
	// RenderMode selects how Markdown prose becomes emitted text content.
	RenderMode = interfaces.RenderMode
)

const (
	// RenderModeHTML renders Markdown prose into HTML markup.
	RenderModeHTML = interfaces.RenderModeHTML
	// RenderModeMarkdown passes Markdown prose through untouched.
	RenderModeMarkdown = interfaces.RenderModeMarkdown
)

// Module represents the top level corpus compiler runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a compiler module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Compiler returns the configured compiler service.
func (m *Module) Compiler() Compiler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Compiler()
}

// Scaffolder returns the configured scaffolder service.
func (m *Module) Scaffolder() Scaffolder {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Scaffolder()
}

// Build compiles the corpus in both rendering modes and, unless opts request
// a dry run, commits the artifacts.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.Compiler().Build(ctx, opts)
}

// Verify rebuilds the corpus in memory and reports drift against the
// artifacts on disk. Nothing is written.
func (m *Module) Verify(ctx context.Context) (*VerifyResult, error) {
	return m.container.Compiler().Verify(ctx)
}

// Scaffold creates a new kata directory skeleton inside the corpus.
func (m *Module) Scaffold(ctx context.Context, req ScaffoldRequest) (*ScaffoldResult, error) {
	return m.container.Scaffolder().Scaffold(ctx, req)
}
