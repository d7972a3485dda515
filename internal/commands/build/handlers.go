package buildcmd

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-katas/internal/commands"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

var (
	// ErrCompilerUnavailable indicates the command was wired without a
	// compiler service.
	ErrCompilerUnavailable = errors.New("compiler commands: compiler service unavailable")
	// ErrArtifactsDrifted indicates verification found artifacts on disk that
	// no longer match a fresh build.
	ErrArtifactsDrifted = errors.New("compiler commands: artifacts drifted")
)

// TextCodeArtifactsDrifted tags verification failures caused by stale or
// missing artifacts.
const TextCodeArtifactsDrifted = "ARTIFACTS_DRIFTED"

// BuildCorpusHandler runs full corpus builds through the shared command
// handler foundation.
type BuildCorpusHandler struct {
	inner *commands.Handler[BuildCorpusCommand]
}

// NewBuildCorpusHandler constructs a handler wired to the provided compiler.
func NewBuildCorpusHandler(service interfaces.Compiler, logger interfaces.Logger, opts ...commands.HandlerOption[BuildCorpusCommand]) *BuildCorpusHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildCorpusCommand) error {
		if service == nil {
			return ErrCompilerUnavailable
		}

		result, err := service.Build(ctx, interfaces.BuildOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildCorpusCommand]{
		commands.WithLogger[BuildCorpusCommand](baseLogger),
		commands.WithOperation[BuildCorpusCommand]("compiler.build"),
		commands.WithMessageFields(func(msg BuildCorpusCommand) map[string]any {
			fields := map[string]any{}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildCorpusCommand].
func (h *BuildCorpusHandler) Execute(ctx context.Context, msg BuildCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyCorpusHandler checks emitted artifacts against a fresh in-memory
// build. Drift is reported through the callback and surfaced as an error so
// callers can fail CI runs.
type VerifyCorpusHandler struct {
	inner *commands.Handler[VerifyCorpusCommand]
}

// NewVerifyCorpusHandler constructs a handler wired to the provided compiler.
func NewVerifyCorpusHandler(service interfaces.Compiler, logger interfaces.Logger, opts ...commands.HandlerOption[VerifyCorpusCommand]) *VerifyCorpusHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg VerifyCorpusCommand) error {
		if service == nil {
			return ErrCompilerUnavailable
		}

		result, err := service.Verify(ctx)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		if !result.Clean {
			inner := fmt.Errorf("%w: %d artifact(s) checked", ErrArtifactsDrifted, len(result.Artifacts))
			return goerrors.Wrap(inner, goerrors.CategoryConflict, "compiler commands: verification failed").
				WithTextCode(TextCodeArtifactsDrifted)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[VerifyCorpusCommand]{
		commands.WithLogger[VerifyCorpusCommand](baseLogger),
		commands.WithOperation[VerifyCorpusCommand]("compiler.verify"),
		commands.WithTelemetry(commands.DefaultTelemetry[VerifyCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifyCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[VerifyCorpusCommand].
func (h *VerifyCorpusHandler) Execute(ctx context.Context, msg VerifyCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}
