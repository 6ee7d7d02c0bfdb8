package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btouchard/formula/internal/compiler/ast"
	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/token"
)

// Generator turns a parsed Program into JavaScript source. It holds no
// state, the zero value is ready to use.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate emits a whole program.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	return Emit(program)
}

// Emit produces the JavaScript text for node and everything below it.
func Emit(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.Program:
		if len(n.Body) == 0 {
			return "", nil
		}
		body, err := emitList(n.Body, ";")
		if err != nil {
			return "", err
		}
		return body + ";", nil

	case *ast.BlockExpression:
		body, err := emitList(n.Body, ";")
		if err != nil {
			return "", err
		}
		return "{" + body + "}", nil

	case *ast.Identifier:
		return n.Value, nil

	case *ast.Number:
		// the value, not the literal: 010 would be octal in JavaScript
		return strconv.FormatFloat(n.Value, 'f', -1, 64), nil

	case *ast.SequenceExpression:
		items, err := emitList(n.Items, ",")
		if err != nil {
			return "", err
		}
		return "(" + items + ")", nil

	case *ast.CallExpression:
		return emitCall(n)

	case *ast.BinaryExpression:
		return emitBinary(n)

	case *ast.IFExpression:
		return emitIf(n)

	case *ast.AssignmentExpression:
		right, err := Emit(n.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("const %s = %s", n.Left.Value, right), nil

	case *ast.SpecialAssignmentExpression:
		args, err := emitList(n.Arguments, ",")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("const %s = (%s)", n.Left.Value, args), nil
	}

	return "", errors.New(errors.PhaseGenerator, token.Position{}, fmt.Sprintf("unexpected node kind: %T", node))
}

func emitList(nodes []ast.Expression, sep string) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		s, err := Emit(node)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func emitCall(n *ast.CallExpression) (string, error) {
	callee := ""
	if n.Callee != nil {
		var err error
		if callee, err = Emit(n.Callee); err != nil {
			return "", err
		}
	}
	args, err := emitList(n.Arguments, ",")
	if err != nil {
		return "", err
	}
	return callee + "(" + args + ")", nil
}

// emitIf writes if(test)consequent, followed by ;else alternate when
// there is an ELSE branch. A block consequent needs no ; before else.
func emitIf(n *ast.IFExpression) (string, error) {
	test, err := Emit(n.Test)
	if err != nil {
		return "", err
	}
	consequent, err := Emit(n.Consequent)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("if(" + test + ")" + consequent)

	if n.Alternate == nil {
		return b.String(), nil
	}

	alternate, err := Emit(n.Alternate)
	if err != nil {
		return "", err
	}
	if _, isBlock := n.Consequent.(*ast.BlockExpression); !isBlock {
		b.WriteString(";")
	}
	b.WriteString("else " + alternate)
	return b.String(), nil
}
