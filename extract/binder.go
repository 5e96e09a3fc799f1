// Package extract implements the schema-driven extraction binder: it walks
// a record schema, runs each field's selector against a document tree, and
// coerces matched content into typed values, accumulating every field
// failure instead of stopping at the first.
package extract

import (
	"fmt"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/selector"
)

// Ensure Binder implements bisque.Extractor.
var _ bisque.Extractor = (*Binder)(nil)

// Binder binds record schemas against document trees. Selector compilation
// is cached across calls, so reusing one Binder for many documents compiles
// each schema selector once. A Binder is safe for concurrent use on
// distinct documents; it never mutates the tree or the schema.
type Binder struct {
	coercer bisque.Coercer
	cache   *selector.Cache
}

// NewBinder creates a new Binder using the given coercion backend.
func NewBinder(coercer bisque.Coercer) *Binder {
	return &Binder{coercer: coercer, cache: selector.NewCache()}
}

// CompileSchema validates schema and compiles every selector it declares,
// including those of nested records. It fails fast on the first problem so
// a malformed schema is rejected once, before any document is processed.
func (b *Binder) CompileSchema(schema *bisque.Record) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	return b.compileFields(schema, "")
}

func (b *Binder) compileFields(schema *bisque.Record, path string) error {
	for _, f := range schema.Fields {
		if _, err := b.cache.Get(f.Selector); err != nil {
			return bisque.Errorf(bisque.EINVALID, "field %q: %v", joinPath(path, f.Name), err)
		}
		if f.Record != nil {
			if err := b.compileFields(f.Record, joinPath(path, f.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Extract binds schema against the tree rooted at root. Per-field failures
// accumulate in the Result; the returned error is reserved for schema
// problems detected before extraction begins. Extraction is deterministic:
// repeated calls on the same tree yield identical results.
func (b *Binder) Extract(schema *bisque.Record, root *bisque.Node) (*bisque.Result, error) {
	if err := b.CompileSchema(schema); err != nil {
		return nil, err
	}
	fields := make(map[string]any, len(schema.Fields))
	var errs []bisque.FieldError
	b.extractRecord(schema, root, "", fields, &errs)
	return &bisque.Result{Fields: fields, Errs: errs}, nil
}

func (b *Binder) extractRecord(schema *bisque.Record, root *bisque.Node, path string, out map[string]any, errs *[]bisque.FieldError) {
	for _, f := range schema.Fields {
		fpath := joinPath(path, f.Name)
		// The cache is warm and validated by CompileSchema.
		sel, _ := b.cache.Get(f.Selector)

		if f.Mode == bisque.ModeAll {
			out[f.Name] = b.extractAll(f, sel, root, fpath, errs)
			continue
		}

		n := sel.First(root)
		if n == nil {
			if f.Default != nil {
				out[f.Name] = f.Default
				continue
			}
			if f.Mode == bisque.ModeOpt {
				out[f.Name] = nil
				continue
			}
			*errs = append(*errs, bisque.FieldError{
				Path:    fpath,
				Kind:    bisque.FailMissing,
				Message: fmt.Sprintf("selector %q matched no node", f.Selector),
			})
			continue
		}

		if f.Record != nil {
			sub := make(map[string]any, len(f.Record.Fields))
			b.extractRecord(f.Record, n, fpath, sub, errs)
			out[f.Name] = sub
			continue
		}

		if v, ok := b.extractValue(f, n, fpath, errs); ok {
			out[f.Name] = v
		}
	}
}

func (b *Binder) extractAll(f bisque.Field, sel *selector.Selector, root *bisque.Node, fpath string, errs *[]bisque.FieldError) []any {
	matched := sel.AllNodes(root)
	vals := make([]any, 0, len(matched))
	for i, n := range matched {
		ipath := fmt.Sprintf("%s[%d]", fpath, i)
		if f.Record != nil {
			sub := make(map[string]any, len(f.Record.Fields))
			b.extractRecord(f.Record, n, ipath, sub, errs)
			vals = append(vals, sub)
			continue
		}
		if v, ok := b.extractValue(f, n, ipath, errs); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// extractValue pulls the raw text or attribute value off a matched node and
// coerces it. It reports false when the value could not be produced, in
// which case a failure has been accumulated.
func (b *Binder) extractValue(f bisque.Field, n *bisque.Node, fpath string, errs *[]bisque.FieldError) (any, bool) {
	var raw string
	if f.Attr != "" {
		v, ok := n.Attr(f.Attr)
		if !ok {
			if f.Default != nil {
				return f.Default, true
			}
			if f.Mode == bisque.ModeOpt {
				return nil, true
			}
			*errs = append(*errs, bisque.FieldError{
				Path:    fpath,
				Kind:    bisque.FailMissing,
				Message: fmt.Sprintf("matched node has no %q attribute", f.Attr),
			})
			return nil, false
		}
		raw = v
	} else {
		raw = n.Text()
	}

	v, err := b.coercer.Coerce(raw, f.Type)
	if err != nil {
		// Forward the coercer's diagnostic verbatim.
		msg := bisque.ErrorMessage(err)
		if bisque.ErrorCode(err) == bisque.EINTERNAL {
			msg = err.Error()
		}
		*errs = append(*errs, bisque.FieldError{
			Path:    fpath,
			Kind:    bisque.FailCoerce,
			Message: msg,
		})
		return nil, false
	}
	return v, true
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
