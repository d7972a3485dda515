package kata

import (
	"encoding/json"

	"github.com/goliatone/go-katas/internal/sources"
)

// Item is the sealed set of nodes that can appear inside lessons, answers,
// and explained solutions. Which members are legal in each spot is enforced
// during tree construction, not by the type system.
type Item interface {
	item()
}

// Section is the sealed set of nodes a kata's body is made of.
type Section interface {
	section()
}

// TextContent is one prose block. Content holds rendered HTML or the raw
// markdown depending on the rendering mode the corpus was built under.
type TextContent struct {
	Content string `json:"content"`
}

func (TextContent) item() {}

// MarshalJSON emits the node with its type discriminator first.
func (t TextContent) MarshalJSON() ([]byte, error) {
	type alias TextContent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "text", alias: alias(t)})
}

// Example is a runnable code listing inlined from its referenced file.
type Example struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func (Example) item() {}

func (e Example) MarshalJSON() ([]byte, error) {
	type alias Example
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "example", alias: alias(e)})
}

// Solution is a code listing that only appears inside explained solutions.
type Solution struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func (Solution) item() {}

func (s Solution) MarshalJSON() ([]byte, error) {
	type alias Solution
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "solution", alias: alias(s)})
}

// Question pairs a prompt with its worked answer. It appears both as a
// lesson item and as a top-level kata section; ID is optional and only
// participates in uniqueness checks when present.
type Question struct {
	ID          string      `json:"id,omitempty"`
	Description TextContent `json:"description"`
	Answer      []Item      `json:"answer"`
}

func (Question) item()    {}
func (Question) section() {}

func (q Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "question", alias: alias(q)})
}

// Lesson is prose, examples, and questions appearing between structural
// macros. An empty Items list is valid.
type Lesson struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

func (Lesson) section() {}

func (l Lesson) MarshalJSON() ([]byte, error) {
	type alias Lesson
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "lesson", alias: alias(l)})
}

// ExplainedSolution is the ordered content revealed once an exercise is
// solved.
type ExplainedSolution struct {
	Items []Item `json:"items"`
}

func (s ExplainedSolution) MarshalJSON() ([]byte, error) {
	type alias ExplainedSolution
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "explained-solution", alias: alias(s)})
}

// Exercise is an interactive coding challenge. SourceIDs references the
// shared code table: the verification source first, then the declared
// dependencies in declaration order.
type Exercise struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       TextContent       `json:"description"`
	SourceIDs         []string          `json:"sourceIds"`
	PlaceholderCode   string            `json:"placeholderCode"`
	ExplainedSolution ExplainedSolution `json:"explainedSolution"`
}

func (Exercise) section() {}

func (e Exercise) MarshalJSON() ([]byte, error) {
	type alias Exercise
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "exercise", alias: alias(e)})
}

// Kata is one built topic unit. Meta carries document frontmatter for build
// reporting and never enters the corpus artifact.
type Kata struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
	Sections  []Section `json:"sections"`
	Meta      Meta      `json:"-"`
}

func (k Kata) MarshalJSON() ([]byte, error) {
	type alias Kata
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "kata", alias: alias(k)})
}

// Corpus is the single emitted artifact: every built kata plus the shared
// code table in insertion order.
type Corpus struct {
	Katas             []Kata          `json:"katas"`
	GlobalCodeSources []sources.Entry `json:"globalCodeSources"`
}

// maskedContent replaces prose when comparing trees across rendering modes.
const maskedContent = "<masked>"

// MaskContent returns a deep copy of the corpus with every TextContent
// blanked to a fixed token. Two builds of the same corpus under different
// rendering modes must produce equal masked copies.
func (c Corpus) MaskContent() Corpus {
	out := Corpus{
		Katas:             make([]Kata, len(c.Katas)),
		GlobalCodeSources: append([]sources.Entry(nil), c.GlobalCodeSources...),
	}
	for i, k := range c.Katas {
		out.Katas[i] = k.maskContent()
	}
	return out
}

func (k Kata) maskContent() Kata {
	masked := k
	masked.Sections = make([]Section, len(k.Sections))
	for i, section := range k.Sections {
		masked.Sections[i] = maskSection(section)
	}
	return masked
}

func maskSection(section Section) Section {
	switch v := section.(type) {
	case Lesson:
		v.Items = maskItems(v.Items)
		return v
	case Exercise:
		v.Description = maskText(v.Description)
		v.SourceIDs = append([]string(nil), v.SourceIDs...)
		v.ExplainedSolution = ExplainedSolution{Items: maskItems(v.ExplainedSolution.Items)}
		return v
	case Question:
		return maskQuestion(v)
	default:
		return section
	}
}

func maskItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case TextContent:
			out[i] = maskText(v)
		case Question:
			out[i] = maskQuestion(v)
		default:
			out[i] = item
		}
	}
	return out
}

func maskQuestion(q Question) Question {
	q.Description = maskText(q.Description)
	q.Answer = maskItems(q.Answer)
	return q
}

func maskText(t TextContent) TextContent {
	t.Content = maskedContent
	return t
}
