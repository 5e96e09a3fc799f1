package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed selector string, naming the offending
// position in the input. It is raised at compile time only; query
// evaluation never produces errors.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("selector %q: %s at position %d", e.Input, e.Msg, e.Pos)
}

// Compile parses src into an immutable Selector. Malformed input returns a
// *SyntaxError. Compilation is deterministic: compiling the same string
// twice yields selectors that match identically on every document.
func Compile(src string) (*Selector, error) {
	p := &parser{src: src}
	p.skipSpace()
	if p.eof() {
		return nil, p.errf(p.pos, "empty selector")
	}
	var chains []chain
	for {
		c, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.src[p.pos] != ',' {
			return nil, p.errf(p.pos, "unexpected %q", p.src[p.pos])
		}
		p.pos++
		p.skipSpace()
		if p.eof() {
			return nil, p.errf(p.pos, "selector expected after ','")
		}
	}
	return &Selector{src: src, chains: chains}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// skipSpace consumes whitespace and reports whether any was present.
func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return p.pos > start
		}
	}
	return p.pos > start
}

func (p *parser) parseChain() (chain, error) {
	var c chain
	st, err := p.parseStep()
	if err != nil {
		return c, err
	}
	c.steps = append(c.steps, st)
	for {
		ws := p.skipSpace()
		if p.eof() {
			return c, nil
		}
		ch := p.src[p.pos]
		if ch == ',' {
			return c, nil
		}
		var comb Combinator
		switch ch {
		case '>':
			comb = Child
			p.pos++
			p.skipSpace()
		case '+':
			comb = AdjacentSibling
			p.pos++
			p.skipSpace()
		case '~':
			comb = GeneralSibling
			p.pos++
			p.skipSpace()
		default:
			if !ws {
				return c, p.errf(p.pos, "unexpected %q", ch)
			}
			comb = Descendant
		}
		st, err := p.parseStep()
		if err != nil {
			return c, err
		}
		c.combs = append(c.combs, comb)
		c.steps = append(c.steps, st)
	}
}

func (p *parser) parseStep() (Step, error) {
	var st Step
	start := p.pos
	if p.eof() {
		return st, p.errf(p.pos, "selector step expected")
	}
	if p.src[p.pos] == '*' {
		p.pos++
	} else if isNameStart(p.src[p.pos]) {
		st.Tag = strings.ToLower(p.ident())
	}
loop:
	for !p.eof() {
		switch p.src[p.pos] {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return st, p.errf(p.pos, "identifier expected after '#'")
			}
			st.Attrs = append(st.Attrs, AttrPred{Key: "id", Op: AttrEquals, Val: id})
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return st, p.errf(p.pos, "class name expected after '.'")
			}
			st.Attrs = append(st.Attrs, AttrPred{Key: "class", Op: AttrIncludes, Val: class})
		case '[':
			pred, err := p.parseAttr()
			if err != nil {
				return st, err
			}
			st.Attrs = append(st.Attrs, pred)
		case ':':
			ps, err := p.parsePseudo()
			if err != nil {
				return st, err
			}
			st.Pseudos = append(st.Pseudos, ps)
		default:
			break loop
		}
	}
	if p.pos == start {
		return st, p.errf(p.pos, "selector step expected")
	}
	return st, nil
}

func (p *parser) parseAttr() (AttrPred, error) {
	var pred AttrPred
	p.pos++ // consume '['
	p.skipSpace()
	pred.Key = p.ident()
	if pred.Key == "" {
		return pred, p.errf(p.pos, "attribute name expected")
	}
	p.skipSpace()
	if p.eof() {
		return pred, p.errf(p.pos, "unterminated attribute selector")
	}
	switch p.src[p.pos] {
	case ']':
		p.pos++
		pred.Op = AttrExists
		return pred, nil
	case '=':
		pred.Op = AttrEquals
		p.pos++
	case '~', '^', '$', '*':
		switch p.src[p.pos] {
		case '~':
			pred.Op = AttrIncludes
		case '^':
			pred.Op = AttrPrefix
		case '$':
			pred.Op = AttrSuffix
		case '*':
			pred.Op = AttrSubstring
		}
		p.pos++
		if p.eof() || p.src[p.pos] != '=' {
			return pred, p.errf(p.pos, "'=' expected in attribute operator")
		}
		p.pos++
	default:
		return pred, p.errf(p.pos, "unexpected %q in attribute selector", p.src[p.pos])
	}
	p.skipSpace()
	val, err := p.attrValue()
	if err != nil {
		return pred, err
	}
	pred.Val = val
	p.skipSpace()
	if p.eof() || p.src[p.pos] != ']' {
		return pred, p.errf(p.pos, "']' expected")
	}
	p.pos++
	return pred, nil
}

// attrValue reads a quoted string or a bare token terminated by ']' or
// whitespace.
func (p *parser) attrValue() (string, error) {
	if p.eof() {
		return "", p.errf(p.pos, "attribute value expected")
	}
	if q := p.src[p.pos]; q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for !p.eof() && p.src[p.pos] != q {
			p.pos++
		}
		if p.eof() {
			return "", p.errf(start, "unterminated string")
		}
		val := p.src[start:p.pos]
		p.pos++
		return val, nil
	}
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ']', ' ', '\t', '\n', '\r', '\f':
			if p.pos == start {
				return "", p.errf(start, "attribute value expected")
			}
			return p.src[start:p.pos], nil
		}
		p.pos++
	}
	return "", p.errf(start, "unterminated attribute selector")
}

func (p *parser) parsePseudo() (Pseudo, error) {
	start := p.pos
	p.pos++ // consume ':'
	name := p.ident()
	if name == "" {
		return Pseudo{}, p.errf(p.pos, "pseudo-class name expected")
	}
	switch strings.ToLower(name) {
	case "first-child":
		return Pseudo{Kind: PseudoFirstChild}, nil
	case "last-child":
		return Pseudo{Kind: PseudoLastChild}, nil
	case "only-child":
		return Pseudo{Kind: PseudoOnlyChild}, nil
	case "empty":
		return Pseudo{Kind: PseudoEmpty}, nil
	case "first-of-type":
		return Pseudo{Kind: PseudoFirstOfType}, nil
	case "last-of-type":
		return Pseudo{Kind: PseudoLastOfType}, nil
	case "nth-child", "nth-of-type":
		kind := PseudoNthChild
		if strings.ToLower(name) == "nth-of-type" {
			kind = PseudoNthOfType
		}
		if p.eof() || p.src[p.pos] != '(' {
			return Pseudo{}, p.errf(p.pos, "'(' expected after :%s", name)
		}
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], ')')
		if end < 0 {
			return Pseudo{}, p.errf(p.pos, "unterminated :%s argument", name)
		}
		arg := p.src[p.pos : p.pos+end]
		a, b, err := parseNth(arg)
		if err != nil {
			return Pseudo{}, p.errf(p.pos, "invalid nth expression %q", arg)
		}
		p.pos += end + 1
		return Pseudo{Kind: kind, A: a, B: b}, nil
	default:
		return Pseudo{}, p.errf(start, "unsupported pseudo-class :%s", name)
	}
}

// parseNth parses an an+b expression: "odd", "even", a bare integer, or
// the full form with optional signs ("2n+1", "-n+3", "n").
func parseNth(s string) (a, b int, err error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	switch s {
	case "":
		return 0, 0, errors.New("empty nth expression")
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	}
	i := strings.IndexByte(s, 'n')
	if i < 0 {
		b, err = strconv.Atoi(s)
		return 0, b, err
	}
	switch prefix := s[:i]; prefix {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		if a, err = strconv.Atoi(prefix); err != nil {
			return 0, 0, err
		}
	}
	rest := s[i+1:]
	if rest == "" {
		return a, 0, nil
	}
	if rest[0] != '+' && rest[0] != '-' {
		return 0, 0, errors.New("sign expected before offset")
	}
	if b, err = strconv.Atoi(rest); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '-'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}
