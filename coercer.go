package bisque

// Coercer validates and converts a raw extracted string into a typed value.
// The extraction binder treats it as opaque: a returned error is captured
// as a FailCoerce field failure with the error's message forwarded
// verbatim, never as an abort of the extraction call.
type Coercer interface {
	// Coerce converts raw into the target type.
	Coerce(raw string, typ FieldType) (any, error)
}
