package kata

import (
	"fmt"
	"path"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-katas/internal/macro"
	"github.com/goliatone/go-katas/internal/segment"
	"github.com/goliatone/go-katas/internal/sources"
)

// Meta is the optional YAML frontmatter a kata's main document may open
// with. It is stripped before segmentation and surfaced to build reporting;
// none of it enters the corpus artifact.
type Meta struct {
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
}

// parseDocument reads and normalizes one document: frontmatter is stripped
// when requested, diagram embeds are inlined, and adjacent prose segments
// are coalesced. owner names the node the document belongs to for error
// provenance.
func (b *Builder) parseDocument(docPath, owner string, withMeta bool) ([]segment.Segment, Meta, error) {
	content, err := b.reader.ReadCanonical(docPath)
	if err != nil {
		return nil, Meta{}, sources.MissingResource(err, docPath, docPath, owner)
	}

	body := content
	var meta Meta
	if withMeta {
		rest, err := frontmatter.Parse(strings.NewReader(content), &meta)
		if err != nil {
			return nil, Meta{}, structural(ErrFrontmatter, docPath, 1, err.Error())
		}
		// Replace the stripped frontmatter with blank lines so every scanned
		// segment and scan error keeps the line numbers the author sees.
		if stripped := strings.Count(content, "\n") - strings.Count(string(rest), "\n"); stripped > 0 {
			body = strings.Repeat("\n", stripped) + string(rest)
		} else {
			body = string(rest)
		}
	}

	segments, err := segment.Scan(docPath, body)
	if err != nil {
		return nil, Meta{}, err
	}

	resolved, err := b.resolveEmbeds(docPath, owner, segments)
	if err != nil {
		return nil, Meta{}, err
	}
	return segment.Coalesce(resolved), meta, nil
}

// resolveEmbeds replaces diagram macros with the referenced markup so the
// coalescer can fold them into the surrounding prose.
func (b *Builder) resolveEmbeds(docPath, owner string, segments []segment.Segment) ([]segment.Segment, error) {
	docDir := path.Dir(docPath)
	out := make([]segment.Segment, 0, len(segments))
	for _, seg := range segments {
		embed, ok := seg.Macro.(macro.DiagramEmbed)
		if seg.Kind != segment.KindMacro || !ok {
			out = append(out, seg)
			continue
		}

		canonical, markup, err := b.reader.Read(docDir, embed.Path)
		if err != nil {
			return nil, sources.MissingResource(err, embed.Path, docPath, owner)
		}
		if hasBlankLine(markup) {
			return nil, embeddingViolation(canonical, docPath, seg.Line)
		}
		out = append(out, segment.Markdown(markup, seg.Line))
	}
	return out, nil
}

func hasBlankLine(markup string) bool {
	body := strings.TrimRight(markup, "\r\n")
	if body == "" {
		return false
	}
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			return true
		}
	}
	return false
}

// resolveDescription parses a description document, which must hold a single
// prose block: no macros, at most one segment after coalescing.
func (b *Builder) resolveDescription(docPath, owner string) (TextContent, error) {
	segments, _, err := b.parseDocument(docPath, owner, false)
	if err != nil {
		return TextContent{}, err
	}
	for _, seg := range segments {
		if seg.Kind == segment.KindMacro {
			return TextContent{}, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: description documents hold prose only", describe(seg)))
		}
	}
	if len(segments) == 0 {
		return TextContent{}, nil
	}
	return b.newText(segments[0].Text)
}

// parseAnswer parses a question's answer document: prose and example macros.
func (b *Builder) parseAnswer(docPath, owner string) ([]Item, error) {
	segments, _, err := b.parseDocument(docPath, owner, false)
	if err != nil {
		return nil, err
	}

	items := []Item{}
	for _, seg := range segments {
		if seg.Kind == segment.KindMarkdown {
			text, err := b.newText(seg.Text)
			if err != nil {
				return nil, err
			}
			items = append(items, text)
			continue
		}
		example, ok := seg.Macro.(macro.Example)
		if !ok {
			return nil, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: answers allow prose and example macros", describe(seg)))
		}
		resolved, err := b.resolveExample(docPath, example)
		if err != nil {
			return nil, err
		}
		items = append(items, resolved)
	}
	return items, nil
}

// parseSolution parses an exercise's explained-solution document: prose,
// example, and solution macros in document order.
func (b *Builder) parseSolution(docPath, owner string) (ExplainedSolution, error) {
	segments, _, err := b.parseDocument(docPath, owner, false)
	if err != nil {
		return ExplainedSolution{}, err
	}

	items := []Item{}
	for _, seg := range segments {
		if seg.Kind == segment.KindMarkdown {
			text, err := b.newText(seg.Text)
			if err != nil {
				return ExplainedSolution{}, err
			}
			items = append(items, text)
			continue
		}
		switch m := seg.Macro.(type) {
		case macro.Example:
			resolved, err := b.resolveExample(docPath, m)
			if err != nil {
				return ExplainedSolution{}, err
			}
			items = append(items, resolved)
		case macro.Solution:
			resolved, err := b.resolveSolution(docPath, m)
			if err != nil {
				return ExplainedSolution{}, err
			}
			items = append(items, resolved)
		default:
			return ExplainedSolution{}, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: explained solutions allow prose, example, and solution macros", describe(seg)))
		}
	}
	return ExplainedSolution{Items: items}, nil
}

func (b *Builder) resolveExample(docPath string, m macro.Example) (Example, error) {
	_, code, err := b.reader.Read(path.Dir(docPath), m.CodePath)
	if err != nil {
		return Example{}, sources.MissingResource(err, m.CodePath, docPath, m.ID)
	}
	return Example{ID: m.ID, Code: code}, nil
}

func (b *Builder) resolveSolution(docPath string, m macro.Solution) (Solution, error) {
	_, code, err := b.reader.Read(path.Dir(docPath), m.CodePath)
	if err != nil {
		return Solution{}, sources.MissingResource(err, m.CodePath, docPath, m.ID)
	}
	return Solution{ID: m.ID, Code: code}, nil
}

// newText renders one prose block under the builder's rendering mode.
func (b *Builder) newText(markdown string) (TextContent, error) {
	content, err := b.renderer.Render(markdown)
	if err != nil {
		return TextContent{}, fmt.Errorf("kata: render prose in %s mode: %w", b.renderer.Mode(), err)
	}
	return TextContent{Content: content}, nil
}
