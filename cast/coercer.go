// Package cast adapts spf13/cast as a bisque coercion backend.
package cast

import (
	"strings"

	"github.com/lmmx/bisque"
	"github.com/spf13/cast"
)

// Ensure Coercer implements bisque.Coercer.
var _ bisque.Coercer = (*Coercer)(nil)

// Coercer converts raw extracted strings into typed values using spf13/cast.
// Raw values are whitespace-trimmed before conversion, since text extracted
// from markup routinely carries indentation and newlines.
type Coercer struct{}

// NewCoercer creates a new Coercer.
func NewCoercer() *Coercer {
	return &Coercer{}
}

// Coerce converts raw into the target type. TypeInt yields int64, TypeFloat
// float64, TypeBool bool, TypeTime time.Time and TypeString the trimmed
// string itself. Failures carry EUNPROCESSABLE with the cast diagnostic.
func (c *Coercer) Coerce(raw string, typ bisque.FieldType) (any, error) {
	raw = strings.TrimSpace(raw)
	switch typ {
	case bisque.TypeString:
		return raw, nil
	case bisque.TypeInt:
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, bisque.Errorf(bisque.EUNPROCESSABLE, "cannot convert %q to int: %v", raw, err)
		}
		return v, nil
	case bisque.TypeFloat:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, bisque.Errorf(bisque.EUNPROCESSABLE, "cannot convert %q to float: %v", raw, err)
		}
		return v, nil
	case bisque.TypeBool:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, bisque.Errorf(bisque.EUNPROCESSABLE, "cannot convert %q to bool: %v", raw, err)
		}
		return v, nil
	case bisque.TypeTime:
		v, err := cast.ToTimeE(raw)
		if err != nil {
			return nil, bisque.Errorf(bisque.EUNPROCESSABLE, "cannot convert %q to time: %v", raw, err)
		}
		return v, nil
	default:
		return nil, bisque.Errorf(bisque.EINVALID, "unknown field type %q", typ)
	}
}
