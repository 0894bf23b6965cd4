package refine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx body that is not a JSON object.
var ErrMalformedResponse = errors.New("malformed refinement response")

// Optional is a string that may be missing from the payload.
type Optional struct {
	Value   string
	Present bool
}

// CoreIntent is the summarized intent portion of a result.
type CoreIntent struct {
	Summary        Optional
	PrimaryGoal    Optional
	TargetAudience Optional
}

// Result is the structured payload returned by the refinement service. The
// backend may omit any field or add new ones, so the decoded object is kept
// whole and every recognized field is read through an accessor that falls
// back to the zero value.
type Result struct {
	fields map[string]any
	raw    []byte
}

// Decode parses a response body. Only JSON objects are accepted.
func Decode(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Result{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return Result{}, fmt.Errorf("%w: null body", ErrMalformedResponse)
	}
	return Result{fields: fields, raw: append([]byte(nil), trimmed...)}, nil
}

// Fields exposes the whole decoded object.
func (r Result) Fields() map[string]any {
	return r.fields
}

func (r Result) CoreIntent() CoreIntent {
	intent := object(r.fields, "core_intent")
	return CoreIntent{
		Summary:        optionalString(intent, "summary"),
		PrimaryGoal:    optionalString(intent, "primary_goal"),
		TargetAudience: optionalString(intent, "target_audience"),
	}
}

// FunctionalRequirements returns the requirement list in order. Missing
// levels yield nil and non-string entries are skipped.
func (r Result) FunctionalRequirements() []string {
	specs := object(r.fields, "specifications")
	items, ok := specs["functional_requirements"].([]any)
	if !ok {
		return nil
	}
	requirements := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			requirements = append(requirements, text)
		}
	}
	return requirements
}

// PrettyJSON renders every field of the payload with two-space indentation.
func (r Result) PrettyJSON() string {
	if len(r.raw) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, r.raw, "", "  "); err != nil {
		return string(r.raw)
	}
	return out.String()
}

func object(fields map[string]any, key string) map[string]any {
	value, _ := fields[key].(map[string]any)
	return value
}

func optionalString(fields map[string]any, key string) Optional {
	value, ok := fields[key].(string)
	return Optional{Value: value, Present: ok}
}
