package discovery

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeMalformedIndex is the stable code attached to index decode
// failures.
const TextCodeMalformedIndex = "MALFORMED_INDEX"

// ErrNilFilesystem reports discovery over a nil corpus filesystem.
var ErrNilFilesystem = errors.New("discovery: corpus filesystem is required")

// ErrMalformedIndex reports a published index that is not a JSON array of
// directory names.
var ErrMalformedIndex = errors.New("discovery: malformed published index")

func malformedIndex(cause error, index string) error {
	inner := fmt.Errorf("%w: %s must be a JSON array of kata directory names: %w", ErrMalformedIndex, index, cause)
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "discovery: published index rejected").
		WithTextCode(TextCodeMalformedIndex)
}
