package mock

import (
	"io"

	"github.com/lmmx/bisque"
)

var _ bisque.Parser = (*Parser)(nil)

// Parser is a mock implementation of bisque.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*bisque.Node, error)
}

func (p *Parser) Parse(r io.Reader) (*bisque.Node, error) {
	return p.ParseFn(r)
}
