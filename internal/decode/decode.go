// Package decode turns free-form model replies into validated canonical
// objects.
//
// Models vary field names and envelope shapes between runs, so every
// logical field carries an explicit ordered list of candidate names, tried
// in priority order with the first match winning. The candidate lists are
// part of each canonical type's contract, documented on the type.
//
// Decode failure (malformed or unrecognisable JSON) and validation failure
// (well-formed but semantically unusable) are distinct error types so
// callers can decide whether a retry with the model is worth it.
package decode

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huntboard/huntboard/internal/shared/llmutils"
)

// DecodeError reports that the reply could not be parsed into the
// canonical shape: invalid JSON, a missing required field, or an
// unrecognisable envelope.
type DecodeError struct {
	Field string   // canonical name of the missing field, "" for whole-document failures
	Tried []string // every candidate name attempted
	Cause string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode: %s", e.Cause)
	}
	return fmt.Sprintf("decode: required field %q not found (tried %s)",
		e.Field, strings.Join(e.Tried, ", "))
}

// ValidationError reports that a structurally decoded reply violates a
// semantic invariant of the canonical type.
type ValidationError struct {
	Cause string
}

func (e *ValidationError) Error() string {
	return "validate: " + e.Cause
}

// parseDocument fence-strips and unmarshals the raw reply.
func parseDocument(text string) (any, error) {
	var doc any
	cleaned := llmutils.ExtractJSON(text)
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &DecodeError{Cause: fmt.Sprintf("reply is not valid JSON: %v", err)}
	}
	return doc, nil
}

// arrayField resolves the named array of a canonical envelope.
// If doc is an object, the candidates are tried in order; if doc is a bare
// array it is accepted directly — models frequently omit the wrapping
// object.
func arrayField(doc any, canonical string, candidates ...string) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, name := range candidates {
			if raw, ok := v[name]; ok {
				if arr, ok := raw.([]any); ok {
					return arr, nil
				}
			}
		}
		return nil, &DecodeError{Field: canonical, Tried: candidates}
	default:
		return nil, &DecodeError{Cause: fmt.Sprintf("expected object or array, got %T", doc)}
	}
}

// stringField resolves a string field by candidate names.
func stringField(item map[string]any, required bool, canonical string, candidates ...string) (string, error) {
	for _, name := range candidates {
		if raw, ok := item[name]; ok {
			if s, ok := raw.(string); ok {
				return s, nil
			}
		}
	}
	if required {
		return "", &DecodeError{Field: canonical, Tried: candidates}
	}
	return "", nil
}

// intField resolves an integer field by candidate names. JSON numbers
// arrive as float64; integral floats are accepted, fractional ones are not.
func intField(item map[string]any, required bool, canonical string, candidates ...string) (int, error) {
	for _, name := range candidates {
		raw, ok := item[name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			if v == float64(int(v)) {
				return int(v), nil
			}
		case int:
			return v, nil
		}
	}
	if required {
		return 0, &DecodeError{Field: canonical, Tried: candidates}
	}
	return 0, nil
}

// stringSliceField resolves an array-of-strings field by candidate names.
// The field is always optional and defaults to an empty collection.
func stringSliceField(item map[string]any, candidates ...string) []string {
	for _, name := range candidates {
		raw, ok := item[name]
		if !ok {
			continue
		}
		arr, ok := raw.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// asObject asserts an array element is a JSON object.
func asObject(raw any, index int) (map[string]any, error) {
	item, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{Cause: fmt.Sprintf("item %d is %T, expected object", index, raw)}
	}
	return item, nil
}
