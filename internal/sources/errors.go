package sources

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeMissingResource tags references to unreadable files.
	TextCodeMissingResource = "MISSING_RESOURCE"
	// TextCodeDuplicateID tags distinct paths deriving the same source id.
	TextCodeDuplicateID = "DUPLICATE_ID"
)

// ErrMissingResource marks a reference whose file cannot be read.
var ErrMissingResource = errors.New("sources: missing resource")

// ErrDuplicateID marks two distinct paths mapping to one source id.
var ErrDuplicateID = errors.New("sources: duplicate source id")

// missingResource carries the failing reference, the document holding it,
// and the owning exercise or solution id.
func missingResource(cause error, ref, document, owner string) error {
	inner := fmt.Errorf("%w: %s referenced by %s in %s: %w",
		ErrMissingResource, ref, owner, document, cause)
	return goerrors.Wrap(inner, goerrors.CategoryNotFound, "sources: resource unavailable").
		WithTextCode(TextCodeMissingResource)
}

// MissingResource wraps reads performed outside the table (descriptions,
// placeholders, embedded diagrams) into the same failure shape.
func MissingResource(cause error, ref, document, owner string) error {
	if cause == nil {
		return nil
	}
	if goerrors.IsWrapped(cause) {
		return cause
	}
	return missingResource(cause, ref, document, owner)
}

func duplicateID(id, first, second string) error {
	inner := fmt.Errorf("%w: %s derived from both %s and %s",
		ErrDuplicateID, id, first, second)
	return goerrors.Wrap(inner, goerrors.CategoryConflict, "sources: source id collision").
		WithTextCode(TextCodeDuplicateID)
}
