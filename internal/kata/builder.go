package kata

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/internal/macro"
	"github.com/goliatone/go-katas/internal/segment"
	"github.com/goliatone/go-katas/internal/sources"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// ErrNilReader reports a builder constructed without a corpus reader.
var ErrNilReader = errors.New("kata: source reader is required")

// ErrNilTable reports a builder constructed without a shared code table.
var ErrNilTable = errors.New("kata: shared code table is required")

// ErrNilRenderer reports a builder constructed without a renderer.
var ErrNilRenderer = errors.New("kata: renderer is required")

// Layout names the fixed files expected under an exercise's directory plus
// the explained-solution document beside them.
type Layout struct {
	Description  string
	Placeholder  string
	Verification string
	Solution     string
}

// DefaultLayout returns the conventional file names.
func DefaultLayout() Layout {
	return Layout{
		Description:  "index.md",
		Placeholder:  "Placeholder.qs",
		Verification: "Verification.qs",
		Solution:     "solution.md",
	}
}

func (l Layout) withDefaults() Layout {
	defaults := DefaultLayout()
	if l.Description == "" {
		l.Description = defaults.Description
	}
	if l.Placeholder == "" {
		l.Placeholder = defaults.Placeholder
	}
	if l.Verification == "" {
		l.Verification = defaults.Verification
	}
	if l.Solution == "" {
		l.Solution = defaults.Solution
	}
	return l
}

// Ref identifies one kata directory pending a build. Discovery produces
// these in presentation order.
type Ref struct {
	ID        string
	Dir       string
	Document  string
	Published bool
}

// Builder folds a kata's segment stream into its section tree. One builder
// serves one rendering pass; the shared code table it mutates may span
// several builders.
type Builder struct {
	reader   *sources.Reader
	table    *sources.Table
	renderer interfaces.Renderer
	layout   Layout
	logger   interfaces.Logger
}

// NewBuilder wires a builder. A nil logger falls back to the no-op logger.
func NewBuilder(reader *sources.Reader, table *sources.Table, renderer interfaces.Renderer, layout Layout, logger interfaces.Logger) (*Builder, error) {
	if reader == nil {
		return nil, ErrNilReader
	}
	if table == nil {
		return nil, ErrNilTable
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Builder{
		reader:   reader,
		table:    table,
		renderer: renderer,
		layout:   layout.withDefaults(),
		logger:   logger,
	}, nil
}

var titlePattern = regexp.MustCompile(`^#[ \t]+(\S.*)$`)

// Build assembles one kata from its main document: title first, then a
// sequence of section, exercise, and question macros.
func (b *Builder) Build(ctx context.Context, ref Ref) (Kata, error) {
	if err := ctx.Err(); err != nil {
		return Kata{}, err
	}

	docPath := path.Join(ref.Dir, ref.Document)
	segments, meta, err := b.parseDocument(docPath, ref.ID, true)
	if err != nil {
		return Kata{}, err
	}

	cur := newCursor(segments)
	title, err := extractTitle(cur, docPath)
	if err != nil {
		return Kata{}, err
	}

	built := Kata{
		ID:        ref.ID,
		Title:     title,
		Published: ref.Published,
		Sections:  []Section{},
		Meta:      meta,
	}

	for !cur.empty() {
		if err := ctx.Err(); err != nil {
			return Kata{}, err
		}

		seg := cur.pop()
		if seg.Kind != segment.KindMacro {
			return Kata{}, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: kata body allows section, exercise, and question macros only", describe(seg)))
		}

		switch m := seg.Macro.(type) {
		case macro.Section:
			lesson, err := b.buildLesson(cur, docPath, m)
			if err != nil {
				return Kata{}, err
			}
			built.Sections = append(built.Sections, lesson)
		case macro.Exercise:
			exercise, err := b.buildExercise(docPath, m)
			if err != nil {
				return Kata{}, err
			}
			built.Sections = append(built.Sections, exercise)
		case macro.Question:
			question, err := b.buildQuestion(docPath, m)
			if err != nil {
				return Kata{}, err
			}
			built.Sections = append(built.Sections, question)
		default:
			return Kata{}, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: kata body allows section, exercise, and question macros only", describe(seg)))
		}
	}

	b.logger.Debug("kata: document built",
		"kata", built.ID,
		"render_mode", string(b.renderer.Mode()),
		"sections", len(built.Sections),
	)
	return built, nil
}

// extractTitle pops the first segment, which must be a single-line heading.
func extractTitle(cur *cursor, docPath string) (string, error) {
	if cur.empty() {
		return "", structural(ErrMissingTitle, docPath, 1, "document is empty")
	}

	seg := cur.pop()
	if seg.Kind != segment.KindMarkdown {
		return "", structural(ErrMissingTitle, docPath, seg.Line,
			fmt.Sprintf("%s: expected a # title line", describe(seg)))
	}

	text := strings.TrimSpace(seg.Text)
	if strings.Contains(text, "\n") {
		return "", structural(ErrMissingTitle, docPath, seg.Line,
			"title segment spans multiple lines; the first macro must follow the title directly")
	}
	match := titlePattern.FindStringSubmatch(text)
	if match == nil {
		return "", structural(ErrMissingTitle, docPath, seg.Line,
			fmt.Sprintf("prose %q is not a # title", truncate(text)))
	}
	return strings.TrimSpace(match[1]), nil
}

// buildLesson greedily consumes items until the next structural delimiter.
// An exercise or section macro at the top of the stack closes the lesson
// without being consumed; running out of segments closes it too.
func (b *Builder) buildLesson(cur *cursor, docPath string, m macro.Section) (Lesson, error) {
	lesson := Lesson{ID: m.ID, Title: m.Title, Items: []Item{}}

	for !cur.empty() {
		next := cur.peek()
		if next.IsMacro(macro.TypeSection) || next.IsMacro(macro.TypeExercise) {
			break
		}

		seg := cur.pop()
		if seg.Kind == segment.KindMarkdown {
			text, err := b.newText(seg.Text)
			if err != nil {
				return Lesson{}, err
			}
			lesson.Items = append(lesson.Items, text)
			continue
		}

		switch inner := seg.Macro.(type) {
		case macro.Example:
			example, err := b.resolveExample(docPath, inner)
			if err != nil {
				return Lesson{}, err
			}
			lesson.Items = append(lesson.Items, example)
		case macro.Question:
			question, err := b.buildQuestion(docPath, inner)
			if err != nil {
				return Lesson{}, err
			}
			lesson.Items = append(lesson.Items, question)
		default:
			return Lesson{}, structural(ErrUnexpectedSegment, docPath, seg.Line,
				fmt.Sprintf("%s: lessons allow prose, example, and question items", describe(seg)))
		}
	}

	return lesson, nil
}

// buildExercise resolves the four companion files an exercise macro points
// at: description, verification (first source id), placeholder, and the
// explained-solution document. Declared dependencies follow the verification
// source in declaration order.
func (b *Builder) buildExercise(docPath string, m macro.Exercise) (Exercise, error) {
	docDir := path.Dir(docPath)

	exerciseDir, err := b.reader.Resolve(docDir, m.Path)
	if err != nil {
		return Exercise{}, sources.MissingResource(err, m.Path, docPath, m.ID)
	}

	description, err := b.resolveDescription(path.Join(exerciseDir, b.layout.Description), m.ID)
	if err != nil {
		return Exercise{}, err
	}

	refs := make([]string, 0, len(m.Dependencies)+1)
	refs = append(refs, path.Join(m.Path, b.layout.Verification))
	refs = append(refs, m.Dependencies...)
	ids, err := b.table.Aggregate(docDir, m.ID, docPath, refs)
	if err != nil {
		return Exercise{}, err
	}

	placeholderRef := path.Join(m.Path, b.layout.Placeholder)
	_, placeholder, err := b.reader.Read(docDir, placeholderRef)
	if err != nil {
		return Exercise{}, sources.MissingResource(err, placeholderRef, docPath, m.ID)
	}

	solution, err := b.parseSolution(path.Join(exerciseDir, b.layout.Solution), m.ID)
	if err != nil {
		return Exercise{}, err
	}

	return Exercise{
		ID:                m.ID,
		Title:             m.Title,
		Description:       description,
		SourceIDs:         ids,
		PlaceholderCode:   placeholder,
		ExplainedSolution: solution,
	}, nil
}

// buildQuestion resolves a question macro's description and answer documents.
func (b *Builder) buildQuestion(docPath string, m macro.Question) (Question, error) {
	docDir := path.Dir(docPath)
	owner := m.ID
	if owner == "" {
		owner = m.DescriptionPath
	}

	descPath, err := b.reader.Resolve(docDir, m.DescriptionPath)
	if err != nil {
		return Question{}, sources.MissingResource(err, m.DescriptionPath, docPath, owner)
	}
	description, err := b.resolveDescription(descPath, owner)
	if err != nil {
		return Question{}, err
	}

	answerPath, err := b.reader.Resolve(docDir, m.AnswerPath)
	if err != nil {
		return Question{}, sources.MissingResource(err, m.AnswerPath, docPath, owner)
	}
	answer, err := b.parseAnswer(answerPath, owner)
	if err != nil {
		return Question{}, err
	}

	return Question{ID: m.ID, Description: description, Answer: answer}, nil
}

// cursor walks an immutable segment slice with one-token lookahead.
type cursor struct {
	segments []segment.Segment
	next     int
}

func newCursor(segments []segment.Segment) *cursor {
	return &cursor{segments: segments}
}

func (c *cursor) empty() bool {
	return c.next >= len(c.segments)
}

func (c *cursor) peek() segment.Segment {
	return c.segments[c.next]
}

func (c *cursor) pop() segment.Segment {
	seg := c.segments[c.next]
	c.next++
	return seg
}

func describe(seg segment.Segment) string {
	if seg.Kind == segment.KindMacro && seg.Macro != nil {
		return fmt.Sprintf("@[%s] macro", seg.Macro.MacroType())
	}
	return fmt.Sprintf("prose %q", truncate(strings.TrimSpace(seg.Text)))
}

func truncate(text string) string {
	const max = 48
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
