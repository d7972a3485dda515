// Package validate walks a fully built corpus and enforces the invariants
// that only hold once every kata exists: global id uniqueness across katas,
// sections, nested items, and the shared code table. Section and item ids
// double as deep-link anchors in the published site, so a collision silently
// breaks navigation to one of the two holders.
package validate

import (
	"fmt"

	"github.com/goliatone/go-katas/internal/kata"
)

// Corpus checks every id in the built corpus for global uniqueness. The
// first duplicate aborts the walk, naming the id and both holders.
func Corpus(c kata.Corpus) error {
	reg := registry{holders: map[string]string{}}

	for _, k := range c.Katas {
		if err := reg.claim(k.ID, fmt.Sprintf("kata %s", k.ID)); err != nil {
			return err
		}
		for _, section := range k.Sections {
			if err := reg.claimSection(section, k.ID); err != nil {
				return err
			}
		}
	}

	for _, entry := range c.GlobalCodeSources {
		if err := reg.claim(entry.ID, fmt.Sprintf("code source %s", entry.ID)); err != nil {
			return err
		}
	}

	return nil
}

// registry tracks which holder claimed each id first.
type registry struct {
	holders map[string]string
}

func (r registry) claim(id, holder string) error {
	if id == "" {
		return nil
	}
	if first, ok := r.holders[id]; ok {
		return duplicateID(id, first, holder)
	}
	r.holders[id] = holder
	return nil
}

func (r registry) claimSection(section kata.Section, kataID string) error {
	switch v := section.(type) {
	case kata.Lesson:
		if err := r.claim(v.ID, fmt.Sprintf("lesson %s in kata %s", v.ID, kataID)); err != nil {
			return err
		}
		return r.claimItems(v.Items, fmt.Sprintf("lesson %s", v.ID), kataID)
	case kata.Exercise:
		if err := r.claim(v.ID, fmt.Sprintf("exercise %s in kata %s", v.ID, kataID)); err != nil {
			return err
		}
		return r.claimItems(v.ExplainedSolution.Items, fmt.Sprintf("exercise %s", v.ID), kataID)
	case kata.Question:
		return r.claimQuestion(v, fmt.Sprintf("kata %s", kataID), kataID)
	default:
		return nil
	}
}

func (r registry) claimItems(items []kata.Item, context, kataID string) error {
	for _, item := range items {
		switch v := item.(type) {
		case kata.Example:
			if err := r.claim(v.ID, fmt.Sprintf("example %s in %s of kata %s", v.ID, context, kataID)); err != nil {
				return err
			}
		case kata.Solution:
			if err := r.claim(v.ID, fmt.Sprintf("solution %s in %s of kata %s", v.ID, context, kataID)); err != nil {
				return err
			}
		case kata.Question:
			if err := r.claimQuestion(v, context, kataID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r registry) claimQuestion(q kata.Question, context, kataID string) error {
	if err := r.claim(q.ID, fmt.Sprintf("question %s in %s", q.ID, context)); err != nil {
		return err
	}
	return r.claimItems(q.Answer, fmt.Sprintf("question %s", questionLabel(q)), kataID)
}

func questionLabel(q kata.Question) string {
	if q.ID != "" {
		return q.ID
	}
	return "(unnamed)"
}
