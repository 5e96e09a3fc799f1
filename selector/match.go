package selector

import (
	"iter"
	"strings"

	"github.com/lmmx/bisque"
)

// All returns every element strictly under root matching s, as a lazy
// sequence in document (pre-order) order. Each matching node appears
// exactly once, even when multiple selector groups resolve to it. A
// selector that matches nothing yields an empty sequence, never an error.
func (s *Selector) All(root *bisque.Node) iter.Seq[*bisque.Node] {
	return func(yield func(*bisque.Node) bool) {
		for n := range root.Descendants() {
			if n.Type != bisque.ElementNode {
				continue
			}
			if s.matches(n, root) && !yield(n) {
				return
			}
		}
	}
}

// AllNodes collects All into a slice.
func (s *Selector) AllNodes(root *bisque.Node) []*bisque.Node {
	var nodes []*bisque.Node
	for n := range s.All(root) {
		nodes = append(nodes, n)
	}
	return nodes
}

// First returns the first match in document order, or nil when there is
// none. Traversal short-circuits as soon as a match is found, so on large
// documents no more of the tree is evaluated than necessary.
func (s *Selector) First(root *bisque.Node) *bisque.Node {
	for n := range s.All(root) {
		return n
	}
	return nil
}

func (s *Selector) matches(n, root *bisque.Node) bool {
	for i := range s.chains {
		if s.chains[i].matches(n, root) {
			return true
		}
	}
	return false
}

// matches evaluates the chain right-to-left: n must satisfy the rightmost
// step, and the remaining steps must be satisfiable along some valid
// ancestor/sibling path. Walks never climb above root: the query root acts
// as the top of the tree, so matching a subtree is equivalent to matching a
// detached copy of it.
func (c *chain) matches(n, root *bisque.Node) bool {
	if len(c.steps) == 0 {
		return false
	}
	last := len(c.steps) - 1
	if !stepMatches(&c.steps[last], n) {
		return false
	}
	return c.matchLeft(last-1, n, root)
}

// matchLeft checks whether steps[0..i] can be satisfied to the left of
// node n, which matched steps[i+1].
func (c *chain) matchLeft(i int, n, root *bisque.Node) bool {
	if i < 0 {
		return true
	}
	if n == root {
		return false
	}
	switch c.combs[i] {
	case Child:
		p := n.Parent()
		if p == nil || !stepMatches(&c.steps[i], p) {
			return false
		}
		return c.matchLeft(i-1, p, root)
	case Descendant:
		for p := n.Parent(); p != nil; p = p.Parent() {
			if stepMatches(&c.steps[i], p) && c.matchLeft(i-1, p, root) {
				return true
			}
			if p == root {
				break
			}
		}
		return false
	case AdjacentSibling:
		prev := n.PrevElementSibling()
		if prev == nil || !stepMatches(&c.steps[i], prev) {
			return false
		}
		return c.matchLeft(i-1, prev, root)
	case GeneralSibling:
		for prev := n.PrevElementSibling(); prev != nil; prev = prev.PrevElementSibling() {
			if stepMatches(&c.steps[i], prev) && c.matchLeft(i-1, prev, root) {
				return true
			}
		}
		return false
	}
	return false
}

func stepMatches(st *Step, n *bisque.Node) bool {
	if n.Type != bisque.ElementNode {
		return false
	}
	if st.Tag != "" && st.Tag != n.Tag {
		return false
	}
	for i := range st.Attrs {
		if !attrMatches(&st.Attrs[i], n) {
			return false
		}
	}
	for i := range st.Pseudos {
		if !pseudoMatches(&st.Pseudos[i], n) {
			return false
		}
	}
	return true
}

func attrMatches(p *AttrPred, n *bisque.Node) bool {
	val, ok := n.Attr(p.Key)
	if !ok {
		return false
	}
	switch p.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return val == p.Val
	case AttrIncludes:
		if p.Val == "" {
			return false
		}
		for _, tok := range strings.Fields(val) {
			if tok == p.Val {
				return true
			}
		}
		return false
	case AttrPrefix:
		return p.Val != "" && strings.HasPrefix(val, p.Val)
	case AttrSuffix:
		return p.Val != "" && strings.HasSuffix(val, p.Val)
	case AttrSubstring:
		return p.Val != "" && strings.Contains(val, p.Val)
	}
	return false
}

func pseudoMatches(p *Pseudo, n *bisque.Node) bool {
	switch p.Kind {
	case PseudoFirstChild:
		return n.ElementIndex() == 1
	case PseudoLastChild:
		return n.Parent() != nil && n.NextElementSibling() == nil
	case PseudoOnlyChild:
		return n.ElementIndex() == 1 && n.NextElementSibling() == nil
	case PseudoFirstOfType:
		return n.ElementIndexOfType() == 1
	case PseudoLastOfType:
		return n.Parent() != nil && nextOfType(n) == nil
	case PseudoNthChild:
		return nthMatches(p.A, p.B, n.ElementIndex())
	case PseudoNthOfType:
		return nthMatches(p.A, p.B, n.ElementIndexOfType())
	case PseudoEmpty:
		for _, c := range n.Children() {
			if c.Type == bisque.ElementNode {
				return false
			}
			if c.Type == bisque.TextNode && c.Data != "" {
				return false
			}
		}
		return true
	}
	return false
}

func nextOfType(n *bisque.Node) *bisque.Node {
	for s := n.NextElementSibling(); s != nil; s = s.NextElementSibling() {
		if s.Tag == n.Tag {
			return s
		}
	}
	return nil
}

// nthMatches reports whether the 1-based index idx is of the form a*n+b
// for some n >= 0.
func nthMatches(a, b, idx int) bool {
	if idx < 1 {
		return false
	}
	if a == 0 {
		return idx == b
	}
	if (idx-b)%a != 0 {
		return false
	}
	return (idx-b)/a >= 0
}
