package interfaces

import (
	"context"
	"time"
)

// BuildOptions control one corpus build run.
type BuildOptions struct {
	// DryRun executes the full pipeline and validation without writing any
	// artifact to disk.
	DryRun bool
}

// ArtifactInfo describes one emitted corpus artifact.
type ArtifactInfo struct {
	Mode     RenderMode `json:"mode"`
	Path     string     `json:"path"`
	Bytes    int        `json:"bytes"`
	Checksum string     `json:"checksum"`
	Written  bool       `json:"written"`
}

// BuildResult summarizes a completed corpus build.
type BuildResult struct {
	RunID     string         `json:"run_id"`
	Katas     int            `json:"katas"`
	Published int            `json:"published"`
	Sections  int            `json:"sections"`
	Sources   int            `json:"sources"`
	Artifacts []ArtifactInfo `json:"artifacts"`
	Manifest  string         `json:"manifest,omitempty"`
	Duration  time.Duration  `json:"duration"`
	DryRun    bool           `json:"dry_run"`
}

// ArtifactDrift reports the verification outcome for one artifact.
type ArtifactDrift struct {
	Mode    RenderMode `json:"mode"`
	Path    string     `json:"path"`
	Want    string     `json:"want"`
	Have    string     `json:"have,omitempty"`
	Missing bool       `json:"missing"`
	Match   bool       `json:"match"`
}

// VerifyResult reports drift between a fresh in-memory build and the
// artifacts currently on disk.
type VerifyResult struct {
	RunID     string          `json:"run_id"`
	Artifacts []ArtifactDrift `json:"artifacts"`
	Clean     bool            `json:"clean"`
	Duration  time.Duration   `json:"duration"`
}

// Compiler builds a kata corpus into its emitted artifacts.
type Compiler interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Verify(ctx context.Context) (*VerifyResult, error)
}

// ScaffoldRequest describes a kata skeleton to create.
type ScaffoldRequest struct {
	// Title is the human title seeded into the main document heading.
	Title string
	// ID overrides the directory name derived from Title.
	ID string
	// Publish appends the new kata to the published index.
	Publish bool
}

// ScaffoldResult reports what the scaffolder created.
type ScaffoldResult struct {
	ID         string   `json:"id"`
	Dir        string   `json:"dir"`
	Files      []string `json:"files"`
	Registered bool     `json:"registered"`
}

// Scaffolder creates new kata directory skeletons inside the corpus.
type Scaffolder interface {
	Scaffold(ctx context.Context, req ScaffoldRequest) (*ScaffoldResult, error)
}
