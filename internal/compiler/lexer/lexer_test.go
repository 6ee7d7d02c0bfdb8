package lexer

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/token"
)

type expectedToken struct {
	typ token.TokenType
	lit string
}

func assertTokens(t *testing.T, input string, expected []expectedToken) {
	t.Helper()

	l := New(input)
	for i, exp := range expected {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("test[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != exp.typ || tok.Literal != exp.lit {
			t.Fatalf("test[%d] - expected %s(%q), got %s(%q)", i, exp.typ, exp.lit, tok.Type, tok.Literal)
		}
	}
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error at end: %v", err)
	}
	if tok.Type != token.EOF {
		t.Fatalf("expected EOF, got %s(%q)", tok.Type, tok.Literal)
	}
}

func TestStatementTokens(t *testing.T) {
	input := "// comment \na:1,2; IF(true,1,2);"

	assertTokens(t, input, []expectedToken{
		{token.IDENT, "a"},
		{token.OPERATOR, ":"},
		{token.NUMBER, "1"},
		{token.PUNCTUATION, ","},
		{token.NUMBER, "2"},
		{token.PUNCTUATION, ";"},
		{token.IDENT, "IF"},
		{token.PUNCTUATION, "("},
		{token.IDENT, "true"},
		{token.PUNCTUATION, ","},
		{token.NUMBER, "1"},
		{token.PUNCTUATION, ","},
		{token.NUMBER, "2"},
		{token.PUNCTUATION, ")"},
		{token.PUNCTUATION, ";"},
	})
}

func TestPunctuation(t *testing.T) {
	assertTokens(t, ",;(){}", []expectedToken{
		{token.PUNCTUATION, ","},
		{token.PUNCTUATION, ";"},
		{token.PUNCTUATION, "("},
		{token.PUNCTUATION, ")"},
		{token.PUNCTUATION, "{"},
		{token.PUNCTUATION, "}"},
	})
}

func TestOperatorMaximalMunch(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{":=", []expectedToken{{token.OPERATOR, ":="}}},
		{"<=", []expectedToken{{token.OPERATOR, "<="}}},
		{"a != b", []expectedToken{{token.IDENT, "a"}, {token.OPERATOR, "!="}, {token.IDENT, "b"}}},
		{"a&&b||c", []expectedToken{
			{token.IDENT, "a"}, {token.OPERATOR, "&&"}, {token.IDENT, "b"},
			{token.OPERATOR, "||"}, {token.IDENT, "c"},
		}},
		{"1+-2", []expectedToken{{token.NUMBER, "1"}, {token.OPERATOR, "+-"}, {token.NUMBER, "2"}}},
		{"a*/b", []expectedToken{{token.IDENT, "a"}, {token.OPERATOR, "*/"}, {token.IDENT, "b"}}},
		// a leading slash is always a single operator
		{"/=", []expectedToken{{token.OPERATOR, "/"}, {token.OPERATOR, "="}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertTokens(t, tt.input, tt.expected)
		})
	}
}

func TestKeywordOperators(t *testing.T) {
	assertTokens(t, "a AND b OR c and ANDx", []expectedToken{
		{token.IDENT, "a"},
		{token.OPERATOR, "AND"},
		{token.IDENT, "b"},
		{token.OPERATOR, "OR"},
		{token.IDENT, "c"},
		{token.IDENT, "and"},
		{token.IDENT, "ANDx"},
	})
}

func TestIdentifiers(t *testing.T) {
	assertTokens(t, "x1 total2023 élan", []expectedToken{
		{token.IDENT, "x1"},
		{token.IDENT, "total2023"},
		{token.IDENT, "élan"},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		lit   string
		value float64
	}{
		{"42", "42", 42},
		{"3.14", "3.14", 3.14},
		{"0", "0", 0},
		{"100.5", "100.5", 100.5},
		{"7.", "7.", 7},
		{"007", "007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok, err := l.Next()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Type != token.NUMBER || tok.Literal != tt.lit || tok.Value != tt.value {
				t.Fatalf("got %s(%q, %v), want Number(%q, %v)", tok.Type, tok.Literal, tok.Value, tt.lit, tt.value)
			}
		})
	}
}

func TestSecondDecimalPointEndsNumber(t *testing.T) {
	l := New("1.2.3")

	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.NUMBER || tok.Value != 1.2 {
		t.Fatalf("expected Number(1.2), got %s(%q)", tok.Type, tok.Literal)
	}

	// a lone '.' belongs to no token class
	_, err = l.Next()
	if err == nil {
		t.Fatal("expected an error for the lone '.'")
	}
	if !strings.Contains(err.Error(), `cannot handle character: "."`) {
		t.Fatalf("unexpected error: %v", err)
	}
	var serr *errors.SyntaxError
	if !stderrors.As(err, &serr) || serr.Pos.Column != 3 {
		t.Fatalf("expected error at column 3, got %v", err)
	}
}

func TestLineComments(t *testing.T) {
	assertTokens(t, "a // this is a comment\nb", []expectedToken{
		{token.IDENT, "a"},
		{token.IDENT, "b"},
	})
}

func TestBlockComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multi line", "a /* this\nis\na comment */ b"},
		{"stars inside", "a /* 2 * 3 ** */ b"},
		{"star before close", "a /**/ b"},
		{"slash inside", "a /* x / y */ b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.input, []expectedToken{
				{token.IDENT, "a"},
				{token.IDENT, "b"},
			})
		})
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := Tokenize("a /* never closed *")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsIncomplete(err) {
		t.Fatalf("expected an incomplete-input error, got %v", err)
	}
}

func TestSlashOperator(t *testing.T) {
	assertTokens(t, "a / b", []expectedToken{
		{token.IDENT, "a"},
		{token.OPERATOR, "/"},
		{token.IDENT, "b"},
	})
}

func TestOnlyWhitespaceAndComments(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n",
		"// nothing here",
		"/* nothing */ // here\n\r\n",
	}

	for _, input := range inputs {
		toks, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", input, err)
		}
		if len(toks) != 0 {
			t.Fatalf("Tokenize(%q) = %v, want no tokens", input, toks)
		}
		if !New(input).EOF() {
			t.Fatalf("EOF() = false for %q", input)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("a # b")

	if _, err := l.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected an error for '#'")
	}
	if err.Error() != `[lexer] 1:2: cannot handle character: "#"` {
		t.Fatalf("unexpected error: %v", err)
	}

	// the error is sticky
	if _, again := l.Next(); again != err {
		t.Fatalf("expected the same error again, got %v", again)
	}
	if l.EOF() {
		t.Fatal("EOF() must be false after a scan error")
	}
}

func TestPeek(t *testing.T) {
	l := New("a := 1")

	first, err := l.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := l.Peek()
	if first != second {
		t.Fatalf("two peeks returned %v and %v", first, second)
	}

	next, _ := l.Next()
	if next != first {
		t.Fatalf("Next() = %v, want peeked %v", next, first)
	}

	op, _ := l.Next()
	if op.Type != token.OPERATOR || op.Literal != ":=" {
		t.Fatalf("expected Operator(:=), got %v", op)
	}
}

func TestEOFWithBufferedToken(t *testing.T) {
	l := New("a b")

	l.Next()
	if _, err := l.Peek(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the cursor is exhausted but "b" is still buffered
	if l.EOF() {
		t.Fatal("EOF() = true while a token is buffered")
	}
	l.Next()
	if !l.EOF() {
		t.Fatal("EOF() = false after the last token")
	}
}

func TestTokenPositions(t *testing.T) {
	toks, err := Tokenize("ab :=\n  12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []token.Position{
		{Line: 1, Column: 0, Offset: 0},
		{Line: 1, Column: 3, Offset: 3},
		{Line: 2, Column: 2, Offset: 8},
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, pos := range expected {
		if toks[i].Pos != pos {
			t.Errorf("token %d (%q) at %+v, want %+v", i, toks[i].Literal, toks[i].Pos, pos)
		}
	}
}

func TestCRLF(t *testing.T) {
	assertTokens(t, "a;\r\nb", []expectedToken{
		{token.IDENT, "a"},
		{token.PUNCTUATION, ";"},
		{token.IDENT, "b"},
	})
}
