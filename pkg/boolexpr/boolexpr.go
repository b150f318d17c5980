// Package boolexpr evaluates boolean expressions over named operands joined
// by "and", "or" and parentheses. Operand truth values are supplied by the
// caller through a resolver callback, so the package never needs to know
// what the names mean.
package boolexpr

import (
	"fmt"
	"strings"
	"unicode"
)

// Resolver maps an operand name to its truth value.
type Resolver func(name string) bool

// Expr is a parsed boolean expression.
type Expr interface {
	Eval(resolve Resolver) bool
}

type identExpr struct {
	name string
}

func (e identExpr) Eval(resolve Resolver) bool { return resolve(e.name) }

type binaryExpr struct {
	op          string
	left, right Expr
}

func (e binaryExpr) Eval(resolve Resolver) bool {
	if e.op == "and" {
		return e.left.Eval(resolve) && e.right.Eval(resolve)
	}
	return e.left.Eval(resolve) || e.right.Eval(resolve)
}

// Eval parses and evaluates input in one step.
func Eval(input string, resolve Resolver) (bool, error) {
	expr, err := Parse(input)
	if err != nil {
		return false, err
	}
	return expr.Eval(resolve), nil
}

// Parse builds an expression tree using a recursive descent over the grammar
//
//	expr   := term { "or" term }
//	term   := factor { "and" factor }
//	factor := IDENT | "(" expr ")"
//
// "and" binds tighter than "or". Keywords are matched case-insensitively.
func Parse(input string) (Expr, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected token %q", p.peek().value)
	}
	return expr, nil
}

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenAnd
	tokenOr
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	value string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, value: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, value: ")"})
			i++
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '(' && runes[i] != ')' {
				i++
			}
			word := string(runes[start:i])
			switch strings.ToLower(word) {
			case "and":
				tokens = append(tokens, token{kind: tokenAnd, value: word})
			case "or":
				tokens = append(tokens, token{kind: tokenOr, value: word})
			default:
				tokens = append(tokens, token{kind: tokenIdent, value: word})
			}
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for !p.done() && p.peek().kind == tokenOr {
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for !p.done() && p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (Expr, error) {
	if p.done() {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	t := p.next()
	switch t.kind {
	case tokenIdent:
		return identExpr{name: t.value}, nil
	case tokenLParen:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.done() || p.peek().kind != tokenRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return expr, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", t.value)
	}
}

// Operands returns the distinct operand names in input, in first-seen order.
func Operands(input string) ([]string, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, t := range tokens {
		if t.kind != tokenIdent || seen[t.value] {
			continue
		}
		seen[t.value] = true
		names = append(names, t.value)
	}
	return names, nil
}
