package compiler

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeModeDivergence tags the internal invariant failure where the
// rendering passes disagree on corpus structure.
const TextCodeModeDivergence = "MODE_DIVERGENCE"

var (
	ErrNilFilesystem = errors.New("compiler: corpus filesystem is required")
	ErrNilWriter     = errors.New("compiler: artifact writer is required")

	// ErrModeDivergence flags corpora whose rendering passes produced
	// structurally different trees. Only text content may vary by mode, so a
	// divergence is a pipeline bug, not an authoring error.
	ErrModeDivergence = errors.New("compiler: rendering passes diverged")
)

func modeDivergence(first, second string) error {
	inner := fmt.Errorf("%w: %s and %s corpora differ beyond text content", ErrModeDivergence, first, second)
	return goerrors.Wrap(inner, goerrors.CategoryInternal, "compiler: cross-mode structural check failed").
		WithTextCode(TextCodeModeDivergence)
}
