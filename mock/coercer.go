package mock

import "github.com/lmmx/bisque"

var _ bisque.Coercer = (*Coercer)(nil)

// Coercer is a mock implementation of bisque.Coercer.
type Coercer struct {
	CoerceFn func(raw string, typ bisque.FieldType) (any, error)
}

func (c *Coercer) Coerce(raw string, typ bisque.FieldType) (any, error) {
	return c.CoerceFn(raw, typ)
}
