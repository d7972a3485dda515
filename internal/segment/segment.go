package segment

import "github.com/goliatone/go-katas/internal/macro"

// Kind discriminates the two segment variants a document scans into.
type Kind string

const (
	// KindMarkdown marks a run of Markdown prose.
	KindMarkdown Kind = "markdown"
	// KindMacro marks one decoded macro invocation.
	KindMacro Kind = "macro"
)

// Segment is the unit the segmenter produces: either a Markdown prose run or
// a typed macro invocation. Line records where the segment started inside
// its document (1-based) for error provenance.
type Segment struct {
	Kind  Kind
	Text  string
	Macro macro.Macro
	Line  int
}

// Markdown builds a prose segment.
func Markdown(text string, line int) Segment {
	return Segment{Kind: KindMarkdown, Text: text, Line: line}
}

// Invocation builds a macro segment.
func Invocation(m macro.Macro, line int) Segment {
	return Segment{Kind: KindMacro, Macro: m, Line: line}
}

// IsMacro reports whether the segment holds a macro of the given type.
func (s Segment) IsMacro(macroType macro.Type) bool {
	return s.Kind == KindMacro && s.Macro != nil && s.Macro.MacroType() == macroType
}
