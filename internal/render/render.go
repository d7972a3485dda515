package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-katas/pkg/interfaces"
)

// ErrUnknownMode reports a render mode outside the supported set.
var ErrUnknownMode = errors.New("render: unknown mode")

// Options controls how the HTML renderer treats the markdown input. The
// markdown renderer ignores every field because it emits the text verbatim.
type Options struct {
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}

// Modes returns the render modes every build produces, in emission order.
func Modes() []interfaces.RenderMode {
	return []interfaces.RenderMode{
		interfaces.RenderModeHTML,
		interfaces.RenderModeMarkdown,
	}
}

// ForMode returns the renderer responsible for the given mode.
func ForMode(mode interfaces.RenderMode, opts Options) (interfaces.Renderer, error) {
	switch mode {
	case interfaces.RenderModeHTML:
		return NewHTML(opts), nil
	case interfaces.RenderModeMarkdown:
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
