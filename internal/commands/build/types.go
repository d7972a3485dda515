package buildcmd

import (
	"github.com/goliatone/go-katas/pkg/interfaces"
)

const (
	buildCorpusMessageType  = "katas.compiler.build_corpus"
	verifyCorpusMessageType = "katas.compiler.verify_corpus"
)

// BuildCallback receives the build result produced by a successful corpus
// build. The callback is optional and invoked synchronously from the handler.
type BuildCallback func(*interfaces.BuildResult)

// VerifyCallback receives the drift report produced by a verification run,
// including runs that detected drift.
type VerifyCallback func(*interfaces.VerifyResult)

// BuildCorpusCommand compiles the configured corpus in both rendering modes
// and commits the artifacts unless DryRun is set.
type BuildCorpusCommand struct {
	// DryRun executes the full pipeline and validation without writing
	// artifacts.
	DryRun bool `json:"dry_run,omitempty"`
	// ResultCallback is invoked with the build summary when the run succeeds.
	ResultCallback BuildCallback `json:"-"`
}

// Type implements command.Message.
func (BuildCorpusCommand) Type() string { return buildCorpusMessageType }

// Validate satisfies command.Message; the corpus location comes from the
// compiler configuration, so the message carries no constrained payload.
func (BuildCorpusCommand) Validate() error { return nil }

// VerifyCorpusCommand rebuilds the corpus in memory and compares artifact
// fingerprints against what is on disk. Nothing is written.
type VerifyCorpusCommand struct {
	// ResultCallback is invoked with the per-artifact drift report whenever
	// the verification pipeline itself succeeds, drifted or not.
	ResultCallback VerifyCallback `json:"-"`
}

// Type implements command.Message.
func (VerifyCorpusCommand) Type() string { return verifyCorpusMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (VerifyCorpusCommand) Validate() error { return nil }
