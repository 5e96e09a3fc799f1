package bisque

import "io"

// Parser turns raw markup into a document tree. Implementations must
// lower-case tag names, preserve attribute order, and produce a finite
// acyclic tree whose child order matches the source document.
type Parser interface {
	// Parse reads a complete document and returns its root node.
	Parse(r io.Reader) (*Node, error)
}
