package bisque

import (
	"iter"
	"strings"
)

// NodeType identifies the kind of a document tree node.
type NodeType int

// Node types.
const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

// Attr is a single element attribute. Attribute order is preserved from the
// source document; duplicate names resolve to the last occurrence on lookup.
type Attr struct {
	Key   string
	Value string
}

// Node is one unit of a parsed markup document: the document root, an
// element, a text run, or a comment. Trees are built once by a Parser
// backend via AppendChild and are read-only afterwards, which makes them
// safe to query from multiple goroutines.
type Node struct {
	Type NodeType

	// Tag is the lower-cased element name. Empty for non-element nodes.
	Tag string

	// Attrs holds element attributes in source order.
	Attrs []Attr

	// Data is the payload of text and comment nodes.
	Data string

	parent   *Node
	children []*Node
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// NewElement returns a detached element node. The tag is lower-cased so
// lookups are case-insensitive regardless of the source document's casing.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag), Attrs: attrs}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment returns a detached comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// AppendChild attaches child as the last child of n. It is intended for
// parser backends during tree construction; a tree must not be modified
// once queries run against it.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in document order. The returned
// slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Attr returns the value of the named attribute. When the source document
// repeated an attribute name, the last occurrence wins.
func (n *Node) Attr(name string) (string, bool) {
	var val string
	var ok bool
	for _, a := range n.Attrs {
		if a.Key == name {
			val, ok = a.Value, true
		}
	}
	return val, ok
}

// Text returns the concatenation of every descendant text node in document
// order. Comment content is excluded.
func (n *Node) Text() string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}

// Descendants returns a lazy, restartable pre-order (document order)
// sequence of every node under n, excluding n itself.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(*Node) bool
		walk = func(p *Node) bool {
			for _, c := range p.children {
				if !yield(c) {
					return false
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

// ElementIndex returns the 1-based position of n among its parent's element
// children, or 0 when n is not an element or is detached. Text and comment
// siblings do not count.
func (n *Node) ElementIndex() int {
	if n.Type != ElementNode || n.parent == nil {
		return 0
	}
	idx := 0
	for _, c := range n.parent.children {
		if c.Type == ElementNode {
			idx++
			if c == n {
				return idx
			}
		}
	}
	return 0
}

// ElementIndexOfType returns the 1-based position of n among its parent's
// element children sharing n's tag, or 0 when n is not an element or is
// detached.
func (n *Node) ElementIndexOfType() int {
	if n.Type != ElementNode || n.parent == nil {
		return 0
	}
	idx := 0
	for _, c := range n.parent.children {
		if c.Type == ElementNode && c.Tag == n.Tag {
			idx++
			if c == n {
				return idx
			}
		}
	}
	return 0
}

// PrevElementSibling returns the nearest preceding element sibling of n,
// or nil when there is none.
func (n *Node) PrevElementSibling() *Node {
	if n.parent == nil {
		return nil
	}
	var prev *Node
	for _, c := range n.parent.children {
		if c == n {
			return prev
		}
		if c.Type == ElementNode {
			prev = c
		}
	}
	return nil
}

// NextElementSibling returns the nearest following element sibling of n,
// or nil when there is none.
func (n *Node) NextElementSibling() *Node {
	if n.parent == nil {
		return nil
	}
	seen := false
	for _, c := range n.parent.children {
		if c == n {
			seen = true
			continue
		}
		if seen && c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of n's subtree. The copy is detached: its
// parent is nil, and no node is shared with the original.
func (n *Node) Clone() *Node {
	c := &Node{Type: n.Type, Tag: n.Tag, Data: n.Data}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	for _, child := range n.children {
		c.AppendChild(child.Clone())
	}
	return c
}
