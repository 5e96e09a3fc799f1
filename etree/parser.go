// Package etree adapts beevik/etree as a bisque parser backend for XML
// documents.
package etree

import (
	"io"

	"github.com/beevik/etree"
	"github.com/lmmx/bisque"
)

// Ensure Parser implements bisque.Parser.
var _ bisque.Parser = (*Parser)(nil)

// Parser parses XML documents into bisque document trees. Tag names are
// lower-cased on conversion so selector matching stays case-insensitive;
// attribute order is preserved.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a complete XML document and returns its root node.
func (p *Parser) Parse(r io.Reader) (*bisque.Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, bisque.Errorf(bisque.EINVALID, "failed to parse XML: %v", err)
	}
	root := bisque.NewDocument()
	for _, tok := range doc.Child {
		convert(tok, root)
	}
	return root, nil
}

func convert(tok etree.Token, parent *bisque.Node) {
	switch t := tok.(type) {
	case *etree.Element:
		attrs := make([]bisque.Attr, 0, len(t.Attr))
		for _, a := range t.Attr {
			attrs = append(attrs, bisque.Attr{Key: a.Key, Value: a.Value})
		}
		n := bisque.NewElement(t.Tag, attrs...)
		parent.AppendChild(n)
		for _, c := range t.Child {
			convert(c, n)
		}
	case *etree.CharData:
		parent.AppendChild(bisque.NewText(t.Data))
	case *etree.Comment:
		parent.AppendChild(bisque.NewComment(t.Data))
	}
	// Processing instructions and directives have no place in the node
	// model and are dropped.
}
