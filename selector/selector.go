// Package selector compiles a bounded CSS selector grammar into immutable
// query plans and evaluates them against bisque document trees.
//
// The grammar covers tag names, #id, .class, [attr] predicates with the
// =, ~=, ^=, $= and *= operators, the descendant, child (>), adjacent
// sibling (+) and general sibling (~) combinators, the structural
// pseudo-classes :first-child, :last-child, :only-child, :empty,
// :first-of-type, :last-of-type, :nth-child(an+b) and :nth-of-type(an+b),
// and comma-separated selector groups.
//
// Compilation is pure: a compiled Selector never touches a document, is
// immutable, and may be shared across documents and goroutines.
package selector

// Combinator joins two adjacent compound steps of a selector chain.
type Combinator int

// Combinators.
const (
	Descendant      Combinator = iota // whitespace
	Child                             // >
	AdjacentSibling                   // +
	GeneralSibling                    // ~
)

// AttrOp is an attribute predicate operator.
type AttrOp int

// Attribute operators.
const (
	AttrExists    AttrOp = iota // [attr]
	AttrEquals                  // [attr=v]
	AttrIncludes                // [attr~=v], whitespace-token match
	AttrPrefix                  // [attr^=v]
	AttrSuffix                  // [attr$=v]
	AttrSubstring               // [attr*=v]
)

// AttrPred is one attribute predicate of a compound step.
type AttrPred struct {
	Key string
	Op  AttrOp
	Val string
}

// PseudoKind identifies a structural pseudo-class.
type PseudoKind int

// Structural pseudo-classes.
const (
	PseudoFirstChild PseudoKind = iota
	PseudoLastChild
	PseudoOnlyChild
	PseudoEmpty
	PseudoFirstOfType
	PseudoLastOfType
	PseudoNthChild
	PseudoNthOfType
)

// Pseudo is one structural predicate. For the nth forms the predicate
// matches 1-based sibling positions of the form A*n+B for some n >= 0.
type Pseudo struct {
	Kind PseudoKind
	A, B int
}

// Step is one compound selector: a tag test plus attribute and structural
// predicates, all of which must hold on a single node.
type Step struct {
	// Tag is the required lower-cased element name; empty means any
	// element (universal selector).
	Tag     string
	Attrs   []AttrPred
	Pseudos []Pseudo
}

// chain is a sequence of steps joined by combinators, rightmost step last.
// combs[i] joins steps[i] to steps[i+1].
type chain struct {
	steps []Step
	combs []Combinator
}

// Selector is a compiled selector: one or more comma-separated chains.
type Selector struct {
	src    string
	chains []chain
}

// String returns the source text the selector was compiled from.
func (s *Selector) String() string {
	return s.src
}
