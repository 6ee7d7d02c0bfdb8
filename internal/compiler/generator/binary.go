package generator

import (
	"github.com/btouchard/formula/internal/compiler/ast"
	"github.com/btouchard/formula/internal/compiler/token"
)

// operatorSymbols maps formula operators onto their JavaScript spelling.
var operatorSymbols = map[string]string{
	token.AND: "&&",
	token.OR:  "||",
	"=":       "==",
}

// jsPrecedence is the JavaScript binding power of each emitted operator.
// Equality binds looser than relational comparison there, unlike in
// formulas.
var jsPrecedence = map[string]int{
	"||": 3,
	"&&": 4,
	"==": 8,
	"!=": 8,
	"<":  9,
	">":  9,
	"<=": 9,
	">=": 9,
	"+":  11,
	"-":  11,
	"*":  12,
	"/":  12,
	"%":  12,
}

func symbol(op string) string {
	if sym, ok := operatorSymbols[op]; ok {
		return sym
	}
	return op
}

func emitBinary(n *ast.BinaryExpression) (string, error) {
	op := symbol(n.Operator)

	left, err := emitOperand(n.Left, op, false)
	if err != nil {
		return "", err
	}
	right, err := emitOperand(n.Right, op, true)
	if err != nil {
		return "", err
	}
	return left + op + right, nil
}

// emitOperand parenthesizes a nested binary expression that binds looser
// than its parent, or a right operand that binds at the same level as its
// parent, since all operators are left-associative.
func emitOperand(child ast.Expression, parentOp string, right bool) (string, error) {
	s, err := Emit(child)
	if err != nil {
		return "", err
	}

	bin, ok := child.(*ast.BinaryExpression)
	if !ok {
		return s, nil
	}
	parent, ok := jsPrecedence[parentOp]
	if !ok {
		return s, nil
	}
	prec, ok := jsPrecedence[symbol(bin.Operator)]
	if !ok {
		return s, nil
	}

	if prec < parent || (right && prec == parent) {
		return "(" + s + ")", nil
	}
	return s, nil
}
