package parser

import (
	"fmt"

	"github.com/btouchard/formula/internal/compiler/ast"
	"github.com/btouchard/formula/internal/compiler/token"
)

// Precedence levels for binary operators, higher binds tighter.
// All operators are left-associative.
const (
	LOWEST     = 0
	OR         = 2  // || OR
	AND        = 3  // && AND
	COMPARISON = 7  // < > <= >= = !=
	SUM        = 10 // + -
	PRODUCT    = 20 // * / %
)

var precedences = map[string]int{
	"||":      OR,
	token.OR:  OR,
	"&&":      AND,
	token.AND: AND,
	"<":       COMPARISON,
	">":       COMPARISON,
	"<=":      COMPARISON,
	">=":      COMPARISON,
	"=":       COMPARISON,
	"!=":      COMPARISON,
	"+":       SUM,
	"-":       SUM,
	"*":       PRODUCT,
	"/":       PRODUCT,
	"%":       PRODUCT,
}

var keywordSymbols = map[string]string{
	token.AND: "&&",
	token.OR:  "||",
}

// Precedence returns the binding power of a binary operator and whether
// the operator is known.
func Precedence(op string) (int, bool) {
	prec, ok := precedences[op]
	return prec, ok
}

// ============ STATEMENTS ============

// parseExpression parses one statement: an assignment, an IF statement,
// a block, or a value expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	tok, err := p.l.Peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Is(token.PUNCTUATION, token.LPAREN), tok.Type == token.NUMBER:
		atom, err := p.parseAtom(false)
		if err != nil {
			return nil, err
		}
		return p.parseBinary(atom, LOWEST)

	case tok.Type == token.IDENT && tok.Literal == token.KeywordIf:
		item, err := p.parseAtom(true)
		if err != nil {
			return nil, err
		}
		if _, ok := item.(*ast.IFExpression); ok {
			return item, nil
		}
		return p.parseBinary(item, LOWEST)

	case tok.Type == token.IDENT:
		p.l.Next()
		ident := &ast.Identifier{Value: tok.Literal, Pos: tok.Pos}

		switch {
		case p.peekIs(token.OPERATOR, token.COLON):
			p.l.Next()
			return p.parseSpecialAssignment(ident)
		case p.peekIs(token.OPERATOR, token.ASSIGN):
			p.l.Next()
			return p.parseAssignment(ident)
		}

		operand, err := p.parseCallChain(ident, tok.Pos)
		if err != nil {
			return nil, err
		}
		return p.parseBinary(operand, LOWEST)

	case tok.Is(token.PUNCTUATION, token.LBRACE):
		body, err := p.delimited(token.LBRACE, token.RBRACE, token.SEMICOLON, p.parseExpression)
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpression{Body: body, Pos: tok.Pos}, nil
	}

	return nil, p.unexpected()
}

// parseValue parses an expression that must produce a value. Statements
// (assignments, IF statements, blocks) are rejected.
func (p *Parser) parseValue() (ast.Expression, error) {
	tok, err := p.l.Peek()
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !ast.IsValue(expr) {
		return nil, p.fail(tok, fmt.Sprintf("unexpected %s where a value is expected", expr.Type()))
	}
	return expr, nil
}

// parseAssignment parses the right side of x := value.
func (p *Parser) parseAssignment(left *ast.Identifier) (ast.Expression, error) {
	right, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Left: left, Right: right, Pos: left.Pos}, nil
}

// parseSpecialAssignment parses the list in x : a, b, c.
func (p *Parser) parseSpecialAssignment(left *ast.Identifier) (ast.Expression, error) {
	args := []ast.Expression{}
	for {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.peekIs(token.PUNCTUATION, token.COMMA) {
			break
		}
		p.l.Next()
	}
	return &ast.SpecialAssignmentExpression{Left: left, Arguments: args, Pos: left.Pos}, nil
}

// ============ ATOMS ============

// parseAtom parses a sequence, an IF form, an identifier or a number.
// allowElse permits the single-condition IF statement form.
func (p *Parser) parseAtom(allowElse bool) (ast.Expression, error) {
	tok, err := p.l.Peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Is(token.PUNCTUATION, token.LPAREN):
		items, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		return p.parseCallChain(&ast.SequenceExpression{Items: items, Pos: tok.Pos}, tok.Pos)

	case tok.Type == token.IDENT && tok.Literal == token.KeywordIf:
		return p.parseIf(allowElse)

	case tok.Type == token.IDENT:
		p.l.Next()
		return p.parseCallChain(&ast.Identifier{Value: tok.Literal, Pos: tok.Pos}, tok.Pos)

	case tok.Type == token.NUMBER:
		p.l.Next()
		return &ast.Number{Value: tok.Value, Literal: tok.Literal, Pos: tok.Pos}, nil
	}

	return nil, p.unexpected()
}

func (p *Parser) parseSequence() ([]ast.Expression, error) {
	return p.delimited(token.LPAREN, token.RPAREN, token.COMMA, p.parseValue)
}

// parseCallChain wraps callee in one CallExpression per argument list
// that follows it: f(a)(b) is ((f(a))(b)).
func (p *Parser) parseCallChain(callee ast.Expression, pos token.Position) (ast.Expression, error) {
	expr := callee
	for p.peekIs(token.PUNCTUATION, token.LPAREN) {
		args, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		expr = &ast.CallExpression{Callee: expr, Arguments: args, Pos: pos}
	}
	return expr, nil
}

// parseIf handles both IF forms:
//
//	IF(test, then, else)                a call to IF with three arguments
//	IF(test) consequent ELSE alternate  a conditional statement
func (p *Parser) parseIf(allowElse bool) (ast.Expression, error) {
	ifTok, err := p.l.Next()
	if err != nil {
		return nil, err
	}
	if !p.peekIs(token.PUNCTUATION, token.LPAREN) {
		return nil, p.unexpected()
	}

	args, err := p.parseSequence()
	if err != nil {
		return nil, err
	}

	switch {
	case len(args) == 3:
		call := &ast.CallExpression{
			Callee:    &ast.Identifier{Value: ifTok.Literal, Pos: ifTok.Pos},
			Arguments: args,
			Pos:       ifTok.Pos,
		}
		return p.parseCallChain(call, ifTok.Pos)

	case len(args) == 1 && allowElse:
		consequent, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		var alternate ast.Expression
		if p.peekIsKeyword(token.KeywordElse) {
			p.l.Next()
			if alternate, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}

		return &ast.IFExpression{
			Test:       args[0],
			Consequent: consequent,
			Alternate:  alternate,
			Pos:        ifTok.Pos,
		}, nil
	}

	return nil, p.fail(ifTok, fmt.Sprintf("unexpected token: %s with %d arguments", ifTok.Literal, len(args)))
}

// ============ BINARY OPERATORS ============

// parseBinary extends left with every following operator that binds
// tighter than minPrec (precedence climbing).
func (p *Parser) parseBinary(left ast.Expression, minPrec int) (ast.Expression, error) {
	for {
		tok, err := p.l.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.OPERATOR {
			return left, nil
		}
		prec, ok := Precedence(tok.Literal)
		if !ok || prec <= minPrec {
			return left, nil
		}
		p.l.Next()

		atom, err := p.parseAtom(false)
		if err != nil {
			return nil, err
		}
		right, err := p.parseBinary(atom, prec)
		if err != nil {
			return nil, err
		}

		op := tok.Literal
		if sym, ok := keywordSymbols[op]; ok {
			op = sym
		}
		left = &ast.BinaryExpression{Operator: op, Left: left, Right: right, Pos: tok.Pos}
	}
}
