package parser

import (
	"fmt"

	"github.com/btouchard/formula/internal/compiler/ast"
	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/lexer"
	"github.com/btouchard/formula/internal/compiler/token"
)

// Parser builds an AST from a token stream in a single pass with one
// token of lookahead. The first error aborts parsing.
type Parser struct {
	l *lexer.Lexer
}

func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// Parse is a shorthand for New(l).ParseProgram().
func Parse(l *lexer.Lexer) (*ast.Program, error) {
	return New(l).ParseProgram()
}

// ParseProgram parses statements separated by ';' until the input is
// exhausted. A trailing ';' is optional.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Body: []ast.Expression{}}

	for !p.l.EOF() {
		stmt, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)

		if !p.l.EOF() {
			if err := p.skip(token.PUNCTUATION, token.SEMICOLON); err != nil {
				return nil, err
			}
		}
	}

	return program, nil
}

// ============ TOKEN HELPERS ============

func (p *Parser) peekIs(typ token.TokenType, literal string) bool {
	tok, err := p.l.Peek()
	return err == nil && tok.Is(typ, literal)
}

func (p *Parser) peekIsKeyword(word string) bool {
	return p.peekIs(token.IDENT, word)
}

// skip consumes the next token and fails unless it matches.
func (p *Parser) skip(typ token.TokenType, literal string) error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	if !tok.Is(typ, literal) {
		return p.fail(tok, fmt.Sprintf("expecting %q, got %s", literal, tok))
	}
	return nil
}

// fail reports an error at the cursor position. Running out of input is
// flagged as incomplete.
func (p *Parser) fail(tok token.Token, message string) error {
	err := errors.New(errors.PhaseParser, p.l.Location(), message)
	err.Incomplete = tok.Type == token.EOF
	return err
}

// unexpected reports the lookahead token as out of place.
func (p *Parser) unexpected() error {
	tok, err := p.l.Peek()
	if err != nil {
		return err
	}
	if tok.Type == token.EOF {
		return p.fail(tok, "unexpected end of input")
	}
	return p.fail(tok, fmt.Sprintf("unexpected token: %s", tok))
}

// delimited parses start item sep item ... stop. A separator right
// before stop is accepted.
func (p *Parser) delimited(start, stop, separator string, parseItem func() (ast.Expression, error)) ([]ast.Expression, error) {
	items := []ast.Expression{}

	if err := p.skip(token.PUNCTUATION, start); err != nil {
		return nil, err
	}

	first := true
	for !p.l.EOF() {
		if p.peekIs(token.PUNCTUATION, stop) {
			break
		}
		if first {
			first = false
		} else if err := p.skip(token.PUNCTUATION, separator); err != nil {
			return nil, err
		}
		if p.peekIs(token.PUNCTUATION, stop) {
			break
		}

		item, err := parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := p.skip(token.PUNCTUATION, stop); err != nil {
		return nil, err
	}
	return items, nil
}
