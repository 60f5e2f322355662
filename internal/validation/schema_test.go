package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateExerciseConfig(t *testing.T) {
	payload := map[string]any{
		"title": "Add two numbers",
		"functions": map[string]any{
			"add": map[string]any{
				"inputs": []any{"int", "int"},
				"output": "int",
			},
		},
	}
	if err := ValidateExerciseConfig(payload); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateExerciseConfigIssues(t *testing.T) {
	cases := map[string]struct {
		payload  map[string]any
		location string
	}{
		"missing title": {
			payload:  map[string]any{},
			location: "",
		},
		"bad function name": {
			payload: map[string]any{
				"title":     "x",
				"functions": map[string]any{"1add": map[string]any{"inputs": []any{}, "output": "int"}},
			},
			location: "/functions",
		},
		"missing output": {
			payload: map[string]any{
				"title":     "x",
				"functions": map[string]any{"add": map[string]any{"inputs": []any{"int"}}},
			},
			location: "/functions/add",
		},
		"non string input": {
			payload: map[string]any{
				"title":     "x",
				"functions": map[string]any{"add": map[string]any{"inputs": []any{int64(1)}, "output": "int"}},
			},
			location: "/functions/add/inputs/0",
		},
		"unknown key": {
			payload:  map[string]any{"title": "x", "author": "me"},
			location: "",
		},
	}

	for name, tc := range cases {
		err := ValidateExerciseConfig(tc.payload)
		if !errors.Is(err, ErrSchemaValidation) {
			t.Fatalf("%s: expected schema validation error, got %v", name, err)
		}
		issues := Issues(err)
		if len(issues) == 0 {
			t.Fatalf("%s: expected issues", name)
		}
		found := false
		for _, issue := range issues {
			if strings.HasPrefix(issue.Location, tc.location) {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected an issue under %q, got %+v", name, tc.location, issues)
		}
	}
}

func TestValidatePayloadRejectsInvalidSchema(t *testing.T) {
	err := ValidatePayload([]byte(`{"type": 12}`), map[string]any{})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected invalid schema error, got %v", err)
	}
}

func TestPayloadValidationErrorMessage(t *testing.T) {
	err := &PayloadValidationError{Issues: []ValidationIssue{{Location: "/title", Message: "missing"}}}
	if err.Error() != "#/title: missing" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidatePayloadNormalisesDecodedValues(t *testing.T) {
	schema := []byte(`{
  "type": "object",
  "properties": {
    "weight": {"type": "integer", "minimum": 1},
    "ratio": {"type": "number", "maximum": 1},
    "published": {"type": "string", "format": "date-time"},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`)
	payload := map[string]any{
		"weight":    int64(3),
		"ratio":     0.5,
		"published": time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"tags":      []string{"rust", "intro"},
	}
	if err := ValidatePayload(schema, payload); err != nil {
		t.Fatalf("expected decoded values to validate, got %v", err)
	}

	payload["weight"] = int64(0)
	err := ValidatePayload(schema, payload)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected minimum violation, got %v", err)
	}
	if issues := Issues(err); len(issues) != 1 || issues[0].Location != "/weight" {
		t.Fatalf("expected one issue at /weight, got %+v", issues)
	}
}
