package validate

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeDuplicateID is the stable code attached to uniqueness failures.
const TextCodeDuplicateID = "DUPLICATE_ID"

// ErrDuplicateID reports an id claimed by two holders anywhere in the corpus.
var ErrDuplicateID = errors.New("validate: duplicate id")

func duplicateID(id, first, second string) error {
	inner := fmt.Errorf("%w: %q claimed by %s and %s", ErrDuplicateID, id, first, second)
	return goerrors.Wrap(inner, goerrors.CategoryConflict, "validate: corpus ids must be globally unique").
		WithTextCode(TextCodeDuplicateID)
}
