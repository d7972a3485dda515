package macro

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Type identifies one macro variant in the closed grammar.
type Type string

const (
	TypeExample      Type = "example"
	TypeSolution     Type = "solution"
	TypeExercise     Type = "exercise"
	TypeSection      Type = "section"
	TypeQuestion     Type = "question"
	TypeDiagramEmbed Type = "diagram-embed"
)

// Types lists every macro type in the grammar, in a stable order.
func Types() []Type {
	return []Type{
		TypeExample,
		TypeSolution,
		TypeExercise,
		TypeSection,
		TypeQuestion,
		TypeDiagramEmbed,
	}
}

// Known reports whether name matches a grammar type.
func Known(name string) bool {
	_, ok := grammar()[Type(name)]
	return ok
}

// Macro is one decoded invocation. The set of variants is closed: consumers
// type-switch over the concrete structs below and treat anything else as a
// programming error.
type Macro interface {
	MacroType() Type
	Validate() error
}

// Example inlines a code file as a standalone listing.
type Example struct {
	ID       string `json:"id"`
	CodePath string `json:"codePath"`
}

// MacroType implements Macro.
func (Example) MacroType() Type { return TypeExample }

// Validate rejects blank identifiers and paths the schema cannot see.
func (m Example) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required, notBlank("macro.example.id")),
		validation.Field(&m.CodePath, validation.Required, notBlank("macro.example.code_path")),
	)
}

// Solution inlines a code file as one step of an explained solution.
type Solution struct {
	ID       string `json:"id"`
	CodePath string `json:"codePath"`
}

// MacroType implements Macro.
func (Solution) MacroType() Type { return TypeSolution }

// Validate rejects blank identifiers and paths the schema cannot see.
func (m Solution) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required, notBlank("macro.solution.id")),
		validation.Field(&m.CodePath, validation.Required, notBlank("macro.solution.code_path")),
	)
}

// Exercise declares an exercise section backed by a directory of fixed-name
// files plus the code files every submission is compiled against.
type Exercise struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
	// Dependencies are code paths aggregated into the shared table after
	// the exercise's own verification source.
	Dependencies []string `json:"dependencies"`
}

// MacroType implements Macro.
func (Exercise) MacroType() Type { return TypeExercise }

// Validate rejects blank identifiers, titles, and paths.
func (m Exercise) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required, notBlank("macro.exercise.id")),
		validation.Field(&m.Title, validation.Required, notBlank("macro.exercise.title")),
		validation.Field(&m.Path, validation.Required, notBlank("macro.exercise.path")),
		validation.Field(&m.Dependencies, validation.Each(notBlank("macro.exercise.dependency"))),
	)
}

// Section opens a lesson that greedily absorbs following prose, examples,
// and questions.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MacroType implements Macro.
func (Section) MacroType() Type { return TypeSection }

// Validate rejects blank identifiers and titles.
func (m Section) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required, notBlank("macro.section.id")),
		validation.Field(&m.Title, validation.Required, notBlank("macro.section.title")),
	)
}

// Question references a description document and an answer document that are
// compiled into a prose-plus-examples pair.
type Question struct {
	ID              string `json:"id,omitempty"`
	DescriptionPath string `json:"descriptionPath"`
	AnswerPath      string `json:"answerPath"`
}

// MacroType implements Macro.
func (Question) MacroType() Type { return TypeQuestion }

// Validate rejects blank paths; the id is optional but must not be blank
// when present.
func (m Question) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&m.DescriptionPath, validation.Required, notBlank("macro.question.description_path")),
		validation.Field(&m.AnswerPath, validation.Required, notBlank("macro.question.answer_path")),
	}
	if m.ID != "" {
		rules = append(rules, validation.Field(&m.ID, notBlank("macro.question.id")))
	}
	return validation.ValidateStruct(&m, rules...)
}

// DiagramEmbed inlines a markup file (typically SVG) into the surrounding
// prose block.
type DiagramEmbed struct {
	Path string `json:"path"`
}

// MacroType implements Macro.
func (DiagramEmbed) MacroType() Type { return TypeDiagramEmbed }

// Validate rejects blank paths.
func (m DiagramEmbed) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.Required, notBlank("macro.diagram_embed.path")),
	)
}

func notBlank(code string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, "cannot be blank")
		}
		return nil
	})
}
