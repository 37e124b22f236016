package term

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Parse reads a single s-expression from src.
//
// Grammar:
//
//	expr := atom | '(' head expr* ')'
//
// The head of an application must be an atom; it is stored as plain text.
// Atoms that look numeric (leading digit, or sign/dot followed by a digit)
// are parsed as Num leaves, everything else as Sym.
//
// Trailing input after the expression is an error.
func Parse(src string) (Term, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	t, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("term: trailing input at %q", p.peek().text)
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParse(src string) Term {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type tokKind int

const (
	tokLParen tokKind = iota + 1
	tokRParen
	tokAtom
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case unicode.IsSpace(rune(c)):
			i++
		default:
			start := i
			for i < len(src) && !isDelim(src[i]) {
				i++
			}
			toks = append(toks, token{tokAtom, src[start:i], start})
		}
	}
	return toks, nil
}

func isDelim(c byte) bool {
	return c == '(' || c == ')' || unicode.IsSpace(rune(c))
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) expr() (Term, error) {
	if p.done() {
		return nil, fmt.Errorf("term: unexpected end of input")
	}
	tok := p.next()
	switch tok.kind {
	case tokAtom:
		return atomTerm(tok.text)
	case tokRParen:
		return nil, fmt.Errorf("term: unexpected ')' at offset %d", tok.pos)
	case tokLParen:
		if p.done() {
			return nil, fmt.Errorf("term: unterminated '(' at offset %d", tok.pos)
		}
		head := p.next()
		if head.kind != tokAtom {
			return nil, fmt.Errorf("term: application head must be an atom at offset %d", head.pos)
		}
		call := Call{Head: normSym(head.text)}
		for {
			if p.done() {
				return nil, fmt.Errorf("term: unterminated '(' at offset %d", tok.pos)
			}
			if p.peek().kind == tokRParen {
				p.next()
				return call, nil
			}
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
	}
	return nil, fmt.Errorf("term: invalid token at offset %d", tok.pos)
}

func atomTerm(text string) (Term, error) {
	if looksNumeric(text) {
		return NewNum(text)
	}
	return Sym(normSym(text)), nil
}

// looksNumeric reports whether an atom should parse as a number.
// A leading digit, or a sign/dot immediately followed by a digit, counts.
// Bare "+" and "-" stay symbols.
func looksNumeric(text string) bool {
	if text == "" {
		return false
	}
	if text[0] >= '0' && text[0] <= '9' {
		return true
	}
	if len(text) >= 2 && strings.ContainsRune("+-.", rune(text[0])) {
		return text[1] >= '0' && text[1] <= '9' || text[1] == '.' && len(text) >= 3 && text[2] >= '0' && text[2] <= '9'
	}
	return false
}

// normSym NFC-normalizes symbol and head text at the parse boundary.
// Visually identical operators must intern to the same e-node key.
func normSym(s string) string {
	return norm.NFC.String(s)
}
