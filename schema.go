package bisque

// Mode selects how many matching nodes a field consumes.
type Mode string

// Extraction modes.
const (
	// ModeOne requires at least one matching node. When the selector matches
	// more than one node the first in document order is used; this is a
	// documented policy, not an error. When it matches none the field fails
	// with FailMissing unless a Default is declared.
	ModeOne Mode = "one"

	// ModeOpt extracts a single node like ModeOne but treats absence as the
	// declared Default (or nil), never as a failure.
	ModeOpt Mode = "opt"

	// ModeAll collects a value for every matching node in document order.
	ModeAll Mode = "all"
)

// FieldType is the closed set of scalar target types understood by a
// Coercer.
type FieldType string

// Field types.
const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
	TypeTime   FieldType = "time"
)

// Field binds one output field to a selector, an extraction mode, and a
// target type.
type Field struct {
	Name     string `json:"name"`
	Selector string `json:"selector"`
	Mode     Mode   `json:"mode"`

	// Type is the scalar target type. Ignored when Record is set.
	Type FieldType `json:"type"`

	// Attr names the attribute whose raw value is extracted from the
	// matched node. When empty the field extracts the node's text content.
	Attr string `json:"attr"`

	// Default is used by ModeOne and ModeOpt when the selector matches no
	// node. It is emitted as-is, without coercion.
	Default any `json:"default"`

	// Record, when non-nil, extracts a nested record from each matched
	// node's subtree instead of a scalar value.
	Record *Record `json:"record"`
}

// Record is an ordered collection of fields describing one structured
// output record. Records may nest through Field.Record. A Record is
// immutable by convention once handed to an Extractor and may be shared
// across concurrent extraction calls.
type Record struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Validate returns an error if the schema contains invalid fields.
// Selector syntax is not checked here; that happens when an Extractor
// compiles the schema.
func (r *Record) Validate() error {
	if len(r.Fields) == 0 {
		return Errorf(EINVALID, "record %q has no fields", r.Name)
	}
	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return Errorf(EINVALID, "record %q: field name required", r.Name)
		}
		if seen[f.Name] {
			return Errorf(EINVALID, "record %q: duplicate field %q", r.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Selector == "" {
			return Errorf(EINVALID, "field %q: selector required", f.Name)
		}
		switch f.Mode {
		case ModeOne, ModeOpt, ModeAll:
		default:
			return Errorf(EINVALID, "field %q: unknown mode %q", f.Name, f.Mode)
		}
		if f.Record != nil {
			if f.Attr != "" {
				return Errorf(EINVALID, "field %q: attr and record are mutually exclusive", f.Name)
			}
			if err := f.Record.Validate(); err != nil {
				return err
			}
			continue
		}
		switch f.Type {
		case TypeString, TypeInt, TypeFloat, TypeBool, TypeTime:
		default:
			return Errorf(EINVALID, "field %q: unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}
