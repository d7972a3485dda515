package scaffold

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-katas/internal/discovery"
)

// TextCodeKataExists tags scaffold rejections caused by an id that already
// has a directory in the corpus.
const TextCodeKataExists = "KATA_EXISTS"

// TextCodeInvalidID tags titles and overrides that cannot become a kata
// directory name.
const TextCodeInvalidID = "KATA_ID_INVALID"

var (
	// ErrContentDirRequired reports a service built without a corpus root.
	ErrContentDirRequired = errors.New("scaffold: content directory is required")
	// ErrTitleRequired reports a scaffold request without a usable title.
	ErrTitleRequired = errors.New("scaffold: kata title is required")
	// ErrKataExists reports a scaffold target that already exists on disk.
	ErrKataExists = errors.New("scaffold: kata directory already exists")
	// ErrInvalidID reports an id that does not normalize to a slug.
	ErrInvalidID = errors.New("scaffold: kata id is invalid")
)

func titleRequired() error {
	return goerrors.Wrap(ErrTitleRequired, goerrors.CategoryValidation, "scaffold: request rejected").
		WithTextCode(TextCodeInvalidID)
}

func invalidID(id string, cause error) error {
	inner := fmt.Errorf("%w: %q", ErrInvalidID, id)
	if cause != nil {
		inner = fmt.Errorf("%w: %q: %w", ErrInvalidID, id, cause)
	}
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "scaffold: request rejected").
		WithTextCode(TextCodeInvalidID)
}

func kataExists(id, dir string) error {
	inner := fmt.Errorf("%w: %s at %s", ErrKataExists, id, dir)
	return goerrors.Wrap(inner, goerrors.CategoryConflict, "scaffold: kata id taken").
		WithTextCode(TextCodeKataExists)
}

func malformedIndex(cause error, index string) error {
	inner := fmt.Errorf("scaffold: %s must be a JSON array of kata directory names: %w", index, cause)
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "scaffold: published index rejected").
		WithTextCode(discovery.TextCodeMalformedIndex)
}
