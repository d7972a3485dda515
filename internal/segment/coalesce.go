package segment

import "strings"

// Coalesce merges every run of adjacent Markdown segments into a single
// segment, joining pieces with one newline so an inlined block (a resolved
// diagram) stays inside the surrounding prose block. Macro segments are
// never merged. The operation preserves order, drops runs that merge to
// whitespace, strips blank lines at the start of a merged block, and is
// idempotent.
func Coalesce(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))

	var (
		pieces  []string
		line    int
		started bool
	)

	flush := func() {
		if started && len(pieces) > 0 {
			merged := strings.TrimLeft(strings.Join(pieces, "\n"), "\r\n")
			if strings.TrimSpace(merged) != "" {
				out = append(out, Markdown(merged, line))
			}
		}
		pieces = nil
		started = false
	}

	for _, seg := range segments {
		if seg.Kind != KindMarkdown {
			flush()
			out = append(out, seg)
			continue
		}
		if !started {
			line = seg.Line
			started = true
		}
		if piece := strings.TrimRight(seg.Text, "\r\n"); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	flush()

	return out
}
