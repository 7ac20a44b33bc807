// Package sexp implements a minimal s-expression reader used as the surface
// syntax of the expression tooling.
package sexp

import (
	"fmt"
	"strings"
	"unicode"
)

// SExp is either a Symbol or a List.
type SExp interface {
	fmt.Stringer
	sexp()
}

// Symbol is an atomic token.
type Symbol string

func (Symbol) sexp() {}

// String returns the symbol text.
func (s Symbol) String() string { return string(s) }

// List is a parenthesized sequence of s-expressions.
type List []SExp

func (List) sexp() {}

// String renders the list in parenthesized form.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Parse parses a single s-expression and requires that nothing but
// whitespace follows it.
func Parse(input string) (SExp, error) {
	p := &parser{text: []rune(input)}
	e, err := p.parse()
	if err != nil {
		return nil, err
	} else if e == nil {
		return nil, p.errorf("empty input")
	}
	p.skipSpace()
	if p.index != len(p.text) {
		return nil, p.errorf("unexpected trailing input")
	}
	return e, nil
}

type parser struct {
	text  []rune
	index int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("sexp: offset %d: %s", p.index, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.index < len(p.text) && unicode.IsSpace(p.text[p.index]) {
		p.index++
	}
}

// parse returns the next s-expression, or nil at end of input.
func (p *parser) parse() (SExp, error) {
	p.skipSpace()
	if p.index >= len(p.text) {
		return nil, nil
	}

	switch c := p.text[p.index]; c {
	case ')':
		return nil, p.errorf("unexpected ')'")
	case '(':
		p.index++
		var elements List
		for {
			p.skipSpace()
			if p.index >= len(p.text) {
				return nil, p.errorf("unterminated list")
			} else if p.text[p.index] == ')' {
				p.index++
				return elements, nil
			}
			element, err := p.parse()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
	default:
		start := p.index
		for p.index < len(p.text) && !unicode.IsSpace(p.text[p.index]) &&
			p.text[p.index] != '(' && p.text[p.index] != ')' {
			p.index++
		}
		return Symbol(p.text[start:p.index]), nil
	}
}
