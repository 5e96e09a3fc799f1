// Package html adapts golang.org/x/net/html as a bisque parser backend.
package html

import (
	"io"

	"github.com/lmmx/bisque"
	"golang.org/x/net/html"
)

// Ensure Parser implements bisque.Parser.
var _ bisque.Parser = (*Parser)(nil)

// Parser parses HTML documents into bisque document trees. The underlying
// tokenizer lower-cases tag names and preserves attribute order, satisfying
// the node model contract.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a complete HTML document and returns its root node. Doctype
// declarations are dropped; elements, text and comments are preserved with
// their document order intact. Like the underlying parser, it is lenient:
// malformed markup is repaired rather than rejected.
func (p *Parser) Parse(r io.Reader) (*bisque.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, bisque.Errorf(bisque.EINVALID, "failed to parse HTML: %v", err)
	}
	root := bisque.NewDocument()
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		convert(c, root)
	}
	return root, nil
}

func convert(src *html.Node, parent *bisque.Node) {
	var n *bisque.Node
	switch src.Type {
	case html.ElementNode:
		attrs := make([]bisque.Attr, 0, len(src.Attr))
		for _, a := range src.Attr {
			attrs = append(attrs, bisque.Attr{Key: a.Key, Value: a.Val})
		}
		n = bisque.NewElement(src.Data, attrs...)
	case html.TextNode:
		n = bisque.NewText(src.Data)
	case html.CommentNode:
		n = bisque.NewComment(src.Data)
	default:
		// Doctype and document nodes have no place in the node model.
		return
	}
	parent.AppendChild(n)
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		convert(c, n)
	}
}
