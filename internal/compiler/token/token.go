package token

type TokenType string

// Position is a location in the source text.
// Line is 1-based, Column is 0-based and resets after each newline.
type Position struct {
	Line   int
	Column int
	Offset int
}

type Token struct {
	Type    TokenType
	Literal string
	Value   float64 // numeric value, NUMBER only
	Pos     Position
}

const (
	// Special
	EOF TokenType = "EOF"

	IDENT       TokenType = "Identifier"
	NUMBER      TokenType = "Number"
	OPERATOR    TokenType = "Operator"
	PUNCTUATION TokenType = "Punctuation"
)

// Operator literals with a meaning in the grammar
const (
	COLON  = ":"
	ASSIGN = ":="
	AND    = "AND"
	OR     = "OR"
)

// Punctuation literals
const (
	COMMA     = ","
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
)

// Reserved identifiers the parser gives special meaning to.
const (
	KeywordIf   = "IF"
	KeywordElse = "ELSE"
)

var keywordOperators = map[string]bool{
	AND: true,
	OR:  true,
}

// LookupIdent classifies a scanned word: AND and OR are operators,
// everything else is an identifier.
func LookupIdent(ident string) TokenType {
	if keywordOperators[ident] {
		return OPERATOR
	}
	return IDENT
}

// Is reports whether the token has the given type and literal.
func (t Token) Is(typ TokenType, literal string) bool {
	return t.Type == typ && t.Literal == literal
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return string(t.Type) + "(" + t.Literal + ")"
}
