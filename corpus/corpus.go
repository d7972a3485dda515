// Package corpus exports the emitted content model so hosts can construct
// and inspect built corpora without importing internal packages.
package corpus

import (
	"github.com/goliatone/go-katas/internal/kata"
	"github.com/goliatone/go-katas/internal/sources"
)

type (
	// Corpus is the top-level artifact document: every built kata plus the
	// shared code table in insertion order.
	Corpus = kata.Corpus
	// Kata is one built topic unit.
	Kata = kata.Kata
	// Section is the sealed set of nodes a kata's body is made of.
	Section = kata.Section
	// Item is the sealed set of nodes inside lessons, answers, and explained
	// solutions.
	Item = kata.Item
	// Lesson is prose, examples, and questions between structural macros.
	Lesson = kata.Lesson
	// Exercise is an interactive coding challenge.
	Exercise = kata.Exercise
	// ExplainedSolution is the content revealed once an exercise is solved.
	ExplainedSolution = kata.ExplainedSolution
	// Question pairs a prompt with its worked answer.
	Question = kata.Question
	// TextContent is one prose block, rendered per the build's mode.
	TextContent = kata.TextContent
	// Example is a runnable code listing inlined from its referenced file.
	Example = kata.Example
	// Solution is a code listing inside an explained solution.
	Solution = kata.Solution
	// CodeSource is one shared code table entry.
	CodeSource = sources.Entry
)
