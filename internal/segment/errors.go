package segment

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeMalformedMacro tags macro invocations whose payload was rejected.
const TextCodeMalformedMacro = "MALFORMED_MACRO"

// ErrMalformedMacro marks invocations that match the macro pattern but carry
// an unknown type or an invalid payload.
var ErrMalformedMacro = errors.New("segment: malformed macro")

func malformedMacro(cause error, path string, line int, name, payload string) error {
	inner := fmt.Errorf("%w: @[%s] at %s:%d with payload %s: %w",
		ErrMalformedMacro, name, path, line, payload, cause)
	return goerrors.Wrap(inner, goerrors.CategoryValidation, "segment: macro invocation rejected").
		WithTextCode(TextCodeMalformedMacro)
}
