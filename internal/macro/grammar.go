package macro

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Payload shapes are closed: every property is typed, required unless noted,
// and unknown properties are rejected so author typos surface immediately.
var grammarSources = map[Type]string{
	TypeExample: `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"codePath": {"type": "string", "minLength": 1}
		},
		"required": ["id", "codePath"],
		"additionalProperties": false
	}`,
	TypeSolution: `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"codePath": {"type": "string", "minLength": 1}
		},
		"required": ["id", "codePath"],
		"additionalProperties": false
	}`,
	TypeExercise: `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"path": {"type": "string", "minLength": 1},
			"dependencies": {
				"type": "array",
				"items": {"type": "string", "minLength": 1}
			}
		},
		"required": ["id", "title", "path", "dependencies"],
		"additionalProperties": false
	}`,
	TypeSection: `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1}
		},
		"required": ["id", "title"],
		"additionalProperties": false
	}`,
	TypeQuestion: `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"descriptionPath": {"type": "string", "minLength": 1},
			"answerPath": {"type": "string", "minLength": 1}
		},
		"required": ["descriptionPath", "answerPath"],
		"additionalProperties": false
	}`,
	TypeDiagramEmbed: `{
		"type": "object",
		"properties": {
			"path": {"type": "string", "minLength": 1}
		},
		"required": ["path"],
		"additionalProperties": false
	}`,
}

var grammar = sync.OnceValue(func() map[Type]*jsonschema.Schema {
	compiled := make(map[Type]*jsonschema.Schema, len(grammarSources))
	for macroType, source := range grammarSources {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		name := fmt.Sprintf("katas://macro/%s.json", macroType)
		if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
			panic(fmt.Sprintf("macro: register %s schema: %v", macroType, err))
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("macro: compile %s schema: %v", macroType, err))
		}
		compiled[macroType] = schema
	}
	return compiled
})
