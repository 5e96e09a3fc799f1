package bisque

// Extractor binds a record schema against a parsed document tree.
type Extractor interface {
	// Extract runs every field of schema against the tree rooted at root
	// and returns a populated record or an accumulated failure report.
	// The returned error is reserved for schema problems (for example a
	// malformed selector) detected before any field is attempted;
	// per-field failures live in the Result and never abort sibling
	// fields.
	Extract(schema *Record, root *Node) (*Result, error)
}
