package ast

import "github.com/btouchard/formula/internal/compiler/token"

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	Type() NodeType
}

// Expression is the interface for every node below Program.
// Statements and expressions share it: a statement is any expression
// that appears in a Program or Block body.
type Expression interface {
	Node
	expressionNode()
}

type NodeType string

const (
	ProgramNode           NodeType = "Program"
	BlockNode             NodeType = "BlockExpression"
	IFNode                NodeType = "IFExpression"
	SpecialAssignmentNode NodeType = "SpecialAssignmentExpression"
	AssignmentNode        NodeType = "AssignmentExpression"
	CallNode              NodeType = "CallExpression"
	SequenceNode          NodeType = "SequenceExpression"
	BinaryNode            NodeType = "BinaryExpression"
	IdentifierNode        NodeType = "Identifier"
	NumberNode            NodeType = "Number"
)

// Program is the root: the top-level statements separated by ';'
type Program struct {
	Body []Expression
}

func (p *Program) TokenLiteral() string { return "program" }
func (p *Program) Type() NodeType       { return ProgramNode }

// ============ LEAVES ============

// Identifier: total, IF, x1
type Identifier struct {
	Value string
	Pos   token.Position
}

func (i *Identifier) TokenLiteral() string { return i.Value }
func (i *Identifier) Type() NodeType       { return IdentifierNode }
func (i *Identifier) expressionNode()      {}

// Number: 42, 3.14. Literal keeps the source spelling.
type Number struct {
	Value   float64
	Literal string
	Pos     token.Position
}

func (n *Number) TokenLiteral() string { return n.Literal }
func (n *Number) Type() NodeType       { return NumberNode }
func (n *Number) expressionNode()      {}

// ============ COMPOSITES ============

// SequenceExpression: (a, b, c) without a callee, used for grouping
type SequenceExpression struct {
	Items []Expression
	Pos   token.Position
}

func (s *SequenceExpression) TokenLiteral() string { return "(" }
func (s *SequenceExpression) Type() NodeType       { return SequenceNode }
func (s *SequenceExpression) expressionNode()      {}

// CallExpression: f(a, b). Callee is an Identifier, another
// CallExpression for chained calls f(a)(b), or a SequenceExpression for
// (f)(a). A nil Callee emits as a bare parenthesized list.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
	Pos       token.Position
}

func (c *CallExpression) TokenLiteral() string { return "call" }
func (c *CallExpression) Type() NodeType       { return CallNode }
func (c *CallExpression) expressionNode()      {}

// BinaryExpression: left op right. Operator is the symbolic form, so
// AND and OR are stored as && and ||.
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	Pos      token.Position
}

func (b *BinaryExpression) TokenLiteral() string { return b.Operator }
func (b *BinaryExpression) Type() NodeType       { return BinaryNode }
func (b *BinaryExpression) expressionNode()      {}

// IFExpression: IF(test) consequent ELSE alternate. Alternate is nil
// when there is no ELSE branch.
type IFExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Pos        token.Position
}

func (i *IFExpression) TokenLiteral() string { return "IF" }
func (i *IFExpression) Type() NodeType       { return IFNode }
func (i *IFExpression) expressionNode()      {}

// AssignmentExpression: x := expr
type AssignmentExpression struct {
	Left  *Identifier
	Right Expression
	Pos   token.Position
}

func (a *AssignmentExpression) TokenLiteral() string { return ":=" }
func (a *AssignmentExpression) Type() NodeType       { return AssignmentNode }
func (a *AssignmentExpression) expressionNode()      {}

// SpecialAssignmentExpression: x : a, b, c
type SpecialAssignmentExpression struct {
	Left      *Identifier
	Arguments []Expression
	Pos       token.Position
}

func (s *SpecialAssignmentExpression) TokenLiteral() string { return ":" }
func (s *SpecialAssignmentExpression) Type() NodeType       { return SpecialAssignmentNode }
func (s *SpecialAssignmentExpression) expressionNode()      {}

// BlockExpression: { stmt; stmt }
type BlockExpression struct {
	Body []Expression
	Pos  token.Position
}

func (b *BlockExpression) TokenLiteral() string { return "{" }
func (b *BlockExpression) Type() NodeType       { return BlockNode }
func (b *BlockExpression) expressionNode()      {}

// IsValue reports whether e may appear where a value is expected: call
// arguments, sequence items and the right side of an assignment.
func IsValue(e Expression) bool {
	switch e.(type) {
	case *CallExpression, *Identifier, *SequenceExpression, *Number, *BinaryExpression:
		return true
	}
	return false
}
