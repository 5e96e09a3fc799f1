package bisque

import "fmt"

// FailKind classifies a field-level extraction failure.
type FailKind string

// Failure kinds.
const (
	// FailMissing records a required field whose selector matched no node,
	// or a matched node lacking the requested attribute.
	FailMissing FailKind = "missing"

	// FailCoerce records a raw value the Coercer rejected. The message
	// carries the coercer's diagnostic verbatim.
	FailCoerce FailKind = "coerce"
)

// FieldError is one accumulated extraction failure. Path is the dotted
// field path from the schema root, with [i] suffixes for ModeAll entries
// (e.g. "items[2].price").
type FieldError struct {
	Path    string   `json:"path"`
	Kind    FailKind `json:"kind"`
	Message string   `json:"message"`
}

// String returns a single-line rendering of the failure.
func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Kind)
}

// Result is the outcome of binding a Record schema against a document:
// either a fully populated record or a non-empty list of field failures.
// Every field contributes exactly one of the two; extraction never stops at
// the first failure. A Result is immutable once returned.
type Result struct {
	// Fields maps field names to extracted values. ModeAll fields hold
	// []any; nested records hold map[string]any.
	Fields map[string]any `json:"fields"`

	// Errs lists every field failure in schema order. Empty on success.
	Errs []FieldError `json:"errors,omitempty"`
}

// OK reports whether extraction produced no field failures.
func (r *Result) OK() bool {
	return len(r.Errs) == 0
}
