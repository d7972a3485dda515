package kata_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-katas/internal/kata"
	"github.com/goliatone/go-katas/internal/render"
	"github.com/goliatone/go-katas/internal/sources"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

func corpusDir(tb testing.TB, files map[string]string) string {
	tb.Helper()
	root := tb.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			tb.Fatalf("write %s: %v", full, err)
		}
	}
	return root
}

type fixture struct {
	table   *sources.Table
	builder *kata.Builder
}

func newFixture(tb testing.TB, files map[string]string, renderer interfaces.Renderer) *fixture {
	tb.Helper()
	root := corpusDir(tb, files)
	reader, err := sources.NewReader(os.DirFS(root))
	if err != nil {
		tb.Fatalf("NewReader: %v", err)
	}
	table := sources.NewTable(reader, nil)
	builder, err := kata.NewBuilder(reader, table, renderer, kata.Layout{}, nil)
	if err != nil {
		tb.Fatalf("NewBuilder: %v", err)
	}
	return &fixture{table: table, builder: builder}
}

func pauliFiles() map[string]string {
	return map[string]string{
		"pauli_gates/index.md": `# Pauli Gates

@[section]({"id": "pauli_intro", "title": "Introduction"})

The Pauli gates act on a single qubit.

@[example]({"id": "pauli_x_demo", "codePath": "./examples/PauliXDemo.qs"})

@[exercise]({"id": "y_gate", "title": "The Y gate", "path": "./y_gate", "dependencies": ["../lib/Common.qs"]})
`,
		"pauli_gates/examples/PauliXDemo.qs": "operation Demo() : Unit {}",
		"pauli_gates/y_gate/index.md":        "Implement the Y gate.\n",
		"pauli_gates/y_gate/Placeholder.qs":  "operation ApplyY(q : Qubit) : Unit {\n    // ...\n}",
		"pauli_gates/y_gate/Verification.qs": "operation VerifyY() : Bool { return true; }",
		"pauli_gates/y_gate/solution.md": `Apply the Y operation directly.

@[solution]({"id": "y_gate_solution", "codePath": "./Solution.qs"})
`,
		"pauli_gates/y_gate/Solution.qs": "operation ApplyY(q : Qubit) : Unit { Y(q); }",
		"lib/Common.qs":                  "namespace Common {}",
	}
}

func pauliRef() kata.Ref {
	return kata.Ref{ID: "pauli_gates", Dir: "pauli_gates", Document: "index.md", Published: true}
}

func TestBuildAssemblesSectionTree(t *testing.T) {
	f := newFixture(t, pauliFiles(), render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), pauliRef())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got.ID != "pauli_gates" || got.Title != "Pauli Gates" || !got.Published {
		t.Fatalf("unexpected kata header: %+v", got)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}

	lesson, ok := got.Sections[0].(kata.Lesson)
	if !ok {
		t.Fatalf("expected first section to be a lesson, got %T", got.Sections[0])
	}
	if lesson.ID != "pauli_intro" || lesson.Title != "Introduction" {
		t.Fatalf("unexpected lesson header: %+v", lesson)
	}
	if len(lesson.Items) != 2 {
		t.Fatalf("expected 2 lesson items, got %d", len(lesson.Items))
	}
	text, ok := lesson.Items[0].(kata.TextContent)
	if !ok || text.Content != "The Pauli gates act on a single qubit." {
		t.Fatalf("unexpected first lesson item: %#v", lesson.Items[0])
	}
	example, ok := lesson.Items[1].(kata.Example)
	if !ok || example.ID != "pauli_x_demo" || example.Code != "operation Demo() : Unit {}" {
		t.Fatalf("unexpected example item: %#v", lesson.Items[1])
	}

	exercise, ok := got.Sections[1].(kata.Exercise)
	if !ok {
		t.Fatalf("expected second section to be an exercise, got %T", got.Sections[1])
	}
	if exercise.ID != "y_gate" || exercise.Title != "The Y gate" {
		t.Fatalf("unexpected exercise header: %+v", exercise)
	}
	if exercise.Description.Content != "Implement the Y gate." {
		t.Fatalf("unexpected description: %q", exercise.Description.Content)
	}
	wantSources := []string{"pauli_gates__y_gate__Verification.qs", "lib__Common.qs"}
	if len(exercise.SourceIDs) != 2 || exercise.SourceIDs[0] != wantSources[0] || exercise.SourceIDs[1] != wantSources[1] {
		t.Fatalf("unexpected source ids: %v", exercise.SourceIDs)
	}
	if !strings.Contains(exercise.PlaceholderCode, "operation ApplyY") {
		t.Fatalf("unexpected placeholder code: %q", exercise.PlaceholderCode)
	}
	if len(exercise.ExplainedSolution.Items) != 2 {
		t.Fatalf("expected 2 solution items, got %d", len(exercise.ExplainedSolution.Items))
	}
	solution, ok := exercise.ExplainedSolution.Items[1].(kata.Solution)
	if !ok || solution.ID != "y_gate_solution" || !strings.Contains(solution.Code, "Y(q);") {
		t.Fatalf("unexpected solution item: %#v", exercise.ExplainedSolution.Items[1])
	}

	if f.table.Len() != 2 {
		t.Fatalf("expected 2 shared sources, got %d", f.table.Len())
	}
}

func TestBuildTitleExtraction(t *testing.T) {
	files := map[string]string{
		"intro/index.md": `# My Title

@[section]({"id": "s1", "title": "One"})
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "intro", Dir: "intro", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.Title != "My Title" {
		t.Fatalf("expected title %q, got %q", "My Title", got.Title)
	}
}

func TestBuildFailsWhenDocumentOpensWithMacro(t *testing.T) {
	files := map[string]string{
		"intro/index.md": `@[section]({"id": "s1", "title": "One"})
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "intro", Dir: "intro", Document: "index.md"})
	if !errors.Is(err, kata.ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(err.Error(), "intro/index.md") {
		t.Fatalf("expected error to name the document, got %v", err)
	}
}

func TestBuildFailsWhenProseFollowsTitleDirectly(t *testing.T) {
	files := map[string]string{
		"intro/index.md": `# My Title

Some prose before the first macro.

@[section]({"id": "s1", "title": "One"})
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "intro", Dir: "intro", Document: "index.md"})
	if !errors.Is(err, kata.ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle for multi-line opening segment, got %v", err)
	}
}

func TestBuildStructuralFidelity(t *testing.T) {
	files := map[string]string{
		"mixed/index.md": `# Mixed

@[section]({"id": "s1", "title": "One"})

Prose one.

@[exercise]({"id": "e1", "title": "Ex One", "path": "./ex", "dependencies": []})

@[section]({"id": "s2", "title": "Two"})

@[section]({"id": "s3", "title": "Three"})

Prose three.

@[exercise]({"id": "e2", "title": "Ex Two", "path": "./ex", "dependencies": []})
`,
		"mixed/ex/index.md":        "Do the thing.\n",
		"mixed/ex/Placeholder.qs":  "// placeholder",
		"mixed/ex/Verification.qs": "// verification",
		"mixed/ex/solution.md":     "Solved.\n",
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "mixed", Dir: "mixed", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantIDs := []string{"s1", "e1", "s2", "s3", "e2"}
	if len(got.Sections) != len(wantIDs) {
		t.Fatalf("expected %d sections, got %d", len(wantIDs), len(got.Sections))
	}
	for i, section := range got.Sections {
		switch v := section.(type) {
		case kata.Lesson:
			if v.ID != wantIDs[i] {
				t.Fatalf("section %d: expected id %q, got %q", i, wantIDs[i], v.ID)
			}
		case kata.Exercise:
			if v.ID != wantIDs[i] {
				t.Fatalf("section %d: expected id %q, got %q", i, wantIDs[i], v.ID)
			}
		default:
			t.Fatalf("section %d: unexpected type %T", i, section)
		}
	}

	first := got.Sections[0].(kata.Lesson)
	if len(first.Items) != 1 {
		t.Fatalf("expected lesson s1 to absorb its prose, got %d items", len(first.Items))
	}
}

func TestBuildEmptyLessonBoundary(t *testing.T) {
	files := map[string]string{
		"empty/index.md": `# Empty Lessons

@[section]({"id": "s1", "title": "One"})

@[section]({"id": "s2", "title": "Two"})

Prose for two.
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "empty", Dir: "empty", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}

	first := got.Sections[0].(kata.Lesson)
	if len(first.Items) != 0 {
		t.Fatalf("expected empty lesson, got %d items", len(first.Items))
	}
	second := got.Sections[1].(kata.Lesson)
	if len(second.Items) != 1 {
		t.Fatalf("expected second lesson to hold the prose, got %d items", len(second.Items))
	}
}

func TestBuildRejectsTopLevelProse(t *testing.T) {
	files := map[string]string{
		"stray/index.md": `# Stray Prose

@[question]({"descriptionPath": "./q1.md", "answerPath": "./a1.md"})

This prose has no enclosing section.
`,
		"stray/q1.md": "What now?\n",
		"stray/a1.md": "Nothing.\n",
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "stray", Dir: "stray", Document: "index.md"})
	if !errors.Is(err, kata.ErrUnexpectedSegment) {
		t.Fatalf("expected ErrUnexpectedSegment, got %v", err)
	}
	if !strings.Contains(err.Error(), "section") {
		t.Fatalf("expected error to point at the missing section macro, got %v", err)
	}
}

func TestBuildRejectsTopLevelSolutionMacro(t *testing.T) {
	files := map[string]string{
		"stray/index.md": `# Stray Solution

@[solution]({"id": "sol", "codePath": "./Sol.qs"})
`,
		"stray/Sol.qs": "// code",
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "stray", Dir: "stray", Document: "index.md"})
	if !errors.Is(err, kata.ErrUnexpectedSegment) {
		t.Fatalf("expected ErrUnexpectedSegment, got %v", err)
	}
}

func TestBuildQuestionSections(t *testing.T) {
	files := map[string]string{
		"measure/index.md": `# Measurement

@[question]({"id": "flip_q", "descriptionPath": "./questions/flip.md", "answerPath": "./questions/flip_answer.md"})

@[section]({"id": "basics", "title": "Basics"})

Measurement collapses state.

@[question]({"descriptionPath": "./questions/inline.md", "answerPath": "./questions/inline_answer.md"})
`,
		"measure/questions/flip.md": "Which gate flips |0> to |1>?\n",
		"measure/questions/flip_answer.md": `The X gate.

@[example]({"id": "flip_example", "codePath": "./FlipDemo.qs"})
`,
		"measure/questions/FlipDemo.qs":      "operation Flip(q : Qubit) : Unit { X(q); }",
		"measure/questions/inline.md":        "Why does order matter?\n",
		"measure/questions/inline_answer.md": "Gates do not generally commute.\n",
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "measure", Dir: "measure", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}

	question, ok := got.Sections[0].(kata.Question)
	if !ok {
		t.Fatalf("expected first section to be a question, got %T", got.Sections[0])
	}
	if question.ID != "flip_q" {
		t.Fatalf("unexpected question id: %q", question.ID)
	}
	if question.Description.Content != "Which gate flips |0> to |1>?" {
		t.Fatalf("unexpected question description: %q", question.Description.Content)
	}
	if len(question.Answer) != 2 {
		t.Fatalf("expected 2 answer items, got %d", len(question.Answer))
	}
	if _, ok := question.Answer[1].(kata.Example); !ok {
		t.Fatalf("expected answer example, got %T", question.Answer[1])
	}

	lesson := got.Sections[1].(kata.Lesson)
	if len(lesson.Items) != 2 {
		t.Fatalf("expected 2 lesson items, got %d", len(lesson.Items))
	}
	nested, ok := lesson.Items[1].(kata.Question)
	if !ok {
		t.Fatalf("expected nested question item, got %T", lesson.Items[1])
	}
	if nested.ID != "" {
		t.Fatalf("expected nested question without id, got %q", nested.ID)
	}
}

func TestBuildInlinesDiagrams(t *testing.T) {
	files := map[string]string{
		"circuits/index.md": `# Circuits

@[section]({"id": "circuit_intro", "title": "Circuits"})

A controlled gate:

@[diagram-embed]({"path": "./assets/cnot.svg"})

After the diagram.
`,
		"circuits/assets/cnot.svg": "<svg viewBox=\"0 0 10 10\"></svg>\n",
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "circuits", Dir: "circuits", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lesson := got.Sections[0].(kata.Lesson)
	if len(lesson.Items) != 1 {
		t.Fatalf("expected diagram to coalesce into one prose item, got %d items", len(lesson.Items))
	}
	text := lesson.Items[0].(kata.TextContent)
	want := "A controlled gate:\n<svg viewBox=\"0 0 10 10\"></svg>\n\nAfter the diagram."
	if text.Content != want {
		t.Fatalf("unexpected coalesced prose\nwant: %q\ngot:  %q", want, text.Content)
	}
}

func TestBuildRejectsDiagramWithBlankLine(t *testing.T) {
	files := map[string]string{
		"circuits/index.md": `# Circuits

@[section]({"id": "circuit_intro", "title": "Circuits"})

@[diagram-embed]({"path": "./assets/bad.svg"})
`,
		"circuits/assets/bad.svg": "<svg>\n\n</svg>\n",
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "circuits", Dir: "circuits", Document: "index.md"})
	if !errors.Is(err, kata.ErrEmbeddingConstraint) {
		t.Fatalf("expected ErrEmbeddingConstraint, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(err.Error(), "circuits/assets/bad.svg") {
		t.Fatalf("expected error to name the diagram, got %v", err)
	}
}

func TestBuildFailsOnMissingExerciseFile(t *testing.T) {
	files := pauliFiles()
	delete(files, "pauli_gates/y_gate/Placeholder.qs")
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), pauliRef())
	if !errors.Is(err, sources.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
	if !strings.Contains(err.Error(), "y_gate") {
		t.Fatalf("expected error to name the exercise, got %v", err)
	}
}

func TestBuildStripsFrontmatter(t *testing.T) {
	files := map[string]string{
		"intro/index.md": `---
summary: Pauli gate warmup
tags:
  - gates
---
# Pauli Gates

@[section]({"id": "s1", "title": "Intro"})
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	got, err := f.builder.Build(context.Background(), kata.Ref{ID: "intro", Dir: "intro", Document: "index.md"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.Title != "Pauli Gates" {
		t.Fatalf("expected title extraction after frontmatter, got %q", got.Title)
	}
	if got.Meta.Summary != "Pauli gate warmup" {
		t.Fatalf("expected frontmatter summary, got %q", got.Meta.Summary)
	}
	if len(got.Meta.Tags) != 1 || got.Meta.Tags[0] != "gates" {
		t.Fatalf("expected frontmatter tags, got %v", got.Meta.Tags)
	}
}

func TestBuildReportsDocumentLinesAfterFrontmatter(t *testing.T) {
	files := map[string]string{
		"intro/index.md": `---
summary: broken macro demo
---
# Pauli Gates

@[section]({"id": nope})
`,
	}
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), kata.Ref{ID: "intro", Dir: "intro", Document: "index.md"})
	if err == nil {
		t.Fatal("expected malformed macro error, got nil")
	}
	if !strings.Contains(err.Error(), "intro/index.md:6") {
		t.Fatalf("expected error at document line 6, got %v", err)
	}
}

func TestBuildDescriptionRejectsMacros(t *testing.T) {
	files := pauliFiles()
	files["pauli_gates/y_gate/index.md"] = `Implement the Y gate.

@[section]({"id": "nested", "title": "Nope"})
`
	f := newFixture(t, files, render.NewMarkdown())

	_, err := f.builder.Build(context.Background(), pauliRef())
	if !errors.Is(err, kata.ErrUnexpectedSegment) {
		t.Fatalf("expected ErrUnexpectedSegment, got %v", err)
	}
	if !strings.Contains(err.Error(), "prose only") {
		t.Fatalf("expected description constraint in error, got %v", err)
	}
}

func TestBuildRendersHTMLMode(t *testing.T) {
	f := newFixture(t, pauliFiles(), render.NewHTML(render.Options{Unsafe: true}))

	got, err := f.builder.Build(context.Background(), pauliRef())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lesson := got.Sections[0].(kata.Lesson)
	text := lesson.Items[0].(kata.TextContent)
	if !strings.Contains(text.Content, "<p>The Pauli gates act on a single qubit.</p>") {
		t.Fatalf("expected rendered prose, got %q", text.Content)
	}
	example := lesson.Items[1].(kata.Example)
	if example.Code != "operation Demo() : Unit {}" {
		t.Fatalf("expected code to stay raw in html mode, got %q", example.Code)
	}
}

func TestBuildModesAreStructurallyEquivalent(t *testing.T) {
	files := pauliFiles()

	htmlFixture := newFixture(t, files, render.NewHTML(render.Options{Unsafe: true}))
	htmlKata, err := htmlFixture.builder.Build(context.Background(), pauliRef())
	if err != nil {
		t.Fatalf("html Build: %v", err)
	}

	mdFixture := newFixture(t, files, render.NewMarkdown())
	mdKata, err := mdFixture.builder.Build(context.Background(), pauliRef())
	if err != nil {
		t.Fatalf("markdown Build: %v", err)
	}

	htmlCorpus := kata.Corpus{Katas: []kata.Kata{htmlKata}, GlobalCodeSources: htmlFixture.table.Entries()}
	mdCorpus := kata.Corpus{Katas: []kata.Kata{mdKata}, GlobalCodeSources: mdFixture.table.Entries()}

	htmlMasked, err := json.Marshal(htmlCorpus.MaskContent())
	if err != nil {
		t.Fatalf("marshal masked html corpus: %v", err)
	}
	mdMasked, err := json.Marshal(mdCorpus.MaskContent())
	if err != nil {
		t.Fatalf("marshal masked markdown corpus: %v", err)
	}
	if string(htmlMasked) != string(mdMasked) {
		t.Fatalf("masked corpora differ\nhtml:     %s\nmarkdown: %s", htmlMasked, mdMasked)
	}
}

func TestBuildHonorsContextCancellation(t *testing.T) {
	f := newFixture(t, pauliFiles(), render.NewMarkdown())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.builder.Build(ctx, pauliRef())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
