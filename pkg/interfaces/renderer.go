package interfaces

// RenderMode selects how Markdown prose becomes emitted text content. The
// mode applies to an entire build pass and is threaded through every text
// construction point; it is never consulted as a global.
type RenderMode string

const (
	// RenderModeHTML renders Markdown prose into HTML markup.
	RenderModeHTML RenderMode = "html"
	// RenderModeMarkdown passes Markdown prose through untouched.
	RenderModeMarkdown RenderMode = "markdown"
)

// String returns the mode identifier used in configuration and artifacts.
func (m RenderMode) String() string {
	return string(m)
}

// Valid reports whether the mode is one of the supported rendering modes.
func (m RenderMode) Valid() bool {
	switch m {
	case RenderModeHTML, RenderModeMarkdown:
		return true
	}
	return false
}

// Renderer converts Markdown prose into the text emitted for its mode.
// Implementations must be deterministic: identical input yields identical
// output across runs.
type Renderer interface {
	Mode() RenderMode
	Render(markdown string) (string, error)
}
