package kata

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Stable text codes attached to build failures raised by this package.
const (
	TextCodeStructural          = "STRUCTURAL_ERROR"
	TextCodeEmbeddingConstraint = "EMBEDDING_CONSTRAINT"
)

// ErrMissingTitle reports a document that does not open with a single-line
// `# <title>` heading.
var ErrMissingTitle = errors.New("kata: document must open with a single-line # title")

// ErrUnexpectedSegment reports a segment appearing where the document grammar
// does not allow it.
var ErrUnexpectedSegment = errors.New("kata: segment not allowed here")

// ErrFrontmatter reports a document whose frontmatter block cannot be decoded.
var ErrFrontmatter = errors.New("kata: malformed document frontmatter")

// ErrEmbeddingConstraint reports an embedded diagram holding a blank line,
// which would terminate the surrounding prose block.
var ErrEmbeddingConstraint = errors.New("kata: embedded diagram contains a blank line")

func structural(sentinel error, document string, line int, detail string) error {
	inner := fmt.Errorf("%w: %s (%s:%d)", sentinel, detail, document, line)
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "kata: document grammar violated").
		WithTextCode(TextCodeStructural)
}

func embeddingViolation(diagram, document string, line int) error {
	inner := fmt.Errorf("%w: %s embedded at %s:%d", ErrEmbeddingConstraint, diagram, document, line)
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "kata: diagram embed rejected").
		WithTextCode(TextCodeEmbeddingConstraint)
}
