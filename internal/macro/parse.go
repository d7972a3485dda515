package macro

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrUnknownType marks invocations whose type is outside the grammar.
var ErrUnknownType = errors.New("macro: unknown macro type")

// Issue captures a single payload validation failure.
type Issue struct {
	Location string
	Message  string
}

// PayloadError surfaces schema and semantic violations for one invocation.
type PayloadError struct {
	Type   Type
	Issues []Issue
	cause  error
}

func (e *PayloadError) Error() string {
	if len(e.Issues) == 0 {
		if e.cause != nil {
			return fmt.Sprintf("macro: invalid %s payload: %v", e.Type, e.cause)
		}
		return fmt.Sprintf("macro: invalid %s payload", e.Type)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("macro: invalid %s payload: %s", e.Type, strings.Join(parts, "; "))
}

func (e *PayloadError) Unwrap() error {
	return e.cause
}

// Parse decodes one invocation into its typed variant. The payload must be a
// JSON object conforming to the per-type schema; decoded values are then
// checked for semantic problems schemas cannot express (blank strings).
func Parse(name string, payload []byte) (Macro, error) {
	macroType := Type(strings.TrimSpace(name))
	schema, ok := grammar()[macroType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("macro: %s payload is not valid JSON: %w", macroType, err)
	}
	if _, isObject := decoded.(map[string]any); !isObject {
		return nil, fmt.Errorf("macro: %s payload must be a JSON object", macroType)
	}
	if err := schema.Validate(decoded); err != nil {
		return nil, &PayloadError{Type: macroType, Issues: schemaIssues(err), cause: err}
	}

	var parsed Macro
	switch macroType {
	case TypeExample:
		var m Example
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	case TypeSolution:
		var m Solution
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	case TypeExercise:
		var m Exercise
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	case TypeSection:
		var m Section
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	case TypeQuestion:
		var m Question
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	case TypeDiagramEmbed:
		var m DiagramEmbed
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("macro: decode %s payload: %w", macroType, err)
		}
		parsed = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	if err := parsed.Validate(); err != nil {
		return nil, &PayloadError{Type: macroType, Issues: semanticIssues(err), cause: err}
	}
	return parsed, nil
}

func schemaIssues(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []Issue{{Message: err.Error()}}
	}

	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}

func semanticIssues(err error) []Issue {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return []Issue{{Message: err.Error()}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	issues := make([]Issue, 0, len(fields))
	for _, field := range fields {
		issues = append(issues, Issue{
			Location: "/" + field,
			Message:  fieldErrs[field].Error(),
		})
	}
	return issues
}
