package mock

import "github.com/lmmx/bisque"

var _ bisque.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bisque.Extractor.
type Extractor struct {
	ExtractFn func(schema *bisque.Record, root *bisque.Node) (*bisque.Result, error)
}

func (e *Extractor) Extract(schema *bisque.Record, root *bisque.Node) (*bisque.Result, error) {
	return e.ExtractFn(schema, root)
}
