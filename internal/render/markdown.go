package render

import "github.com/goliatone/go-katas/pkg/interfaces"

// Markdown is the identity renderer: the markdown artifact carries the
// coalesced prose exactly as it appears in the corpus documents.
type Markdown struct{}

// NewMarkdown constructs the passthrough renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Mode satisfies interfaces.Renderer.
func (r *Markdown) Mode() interfaces.RenderMode {
	return interfaces.RenderModeMarkdown
}

// Render returns the fragment unchanged.
func (r *Markdown) Render(markdown string) (string, error) {
	return markdown, nil
}
