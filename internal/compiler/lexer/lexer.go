package lexer

import (
	"fmt"
	"strconv"

	"github.com/btouchard/formula/internal/compiler/cursor"
	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/token"
	"github.com/btouchard/formula/internal/compiler/utils"
)

type Lexer struct {
	cur    *cursor.Cursor
	peeked *token.Token // one token of lookahead
	err    error        // first scan error, returned on every later call
}

func New(input string) *Lexer {
	return NewFromCursor(cursor.New(input))
}

func NewFromCursor(c *cursor.Cursor) *Lexer {
	return &Lexer{cur: c}
}

// Next consumes and returns the next token. At end of input it returns
// a token of type EOF, as many times as it is called.
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return tok, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// EOF reports whether only whitespace and comments remain. A scan error
// reports false so the caller's next Peek or Next surfaces it.
func (l *Lexer) EOF() bool {
	tok, err := l.Peek()
	return err == nil && tok.Type == token.EOF
}

// Location is the cursor position, which is past any peeked token.
func (l *Lexer) Location() token.Position {
	return l.cur.Location()
}

func (l *Lexer) scan() (token.Token, error) {
	if l.err != nil {
		return token.Token{Type: token.EOF, Pos: l.cur.Location()}, l.err
	}
	tok, err := l.readNext()
	if err != nil {
		l.err = err
	}
	return tok, err
}

func (l *Lexer) readNext() (token.Token, error) {
	for {
		l.readWhile(utils.IsWhitespace)

		pos := l.cur.Location()
		ch := l.cur.Peek()

		switch {
		case ch == cursor.EOF:
			return token.Token{Type: token.EOF, Pos: pos}, nil

		case ch == '/':
			l.cur.Next()
			switch l.cur.Peek() {
			case '/':
				l.readWhile(func(ch rune) bool { return ch != '\n' })
				continue
			case '*':
				if err := l.skipBlockComment(); err != nil {
					return token.Token{}, err
				}
				continue
			}
			return token.Token{Type: token.OPERATOR, Literal: "/", Pos: pos}, nil

		case utils.IsPunctuation(ch):
			l.cur.Next()
			return token.Token{Type: token.PUNCTUATION, Literal: string(ch), Pos: pos}, nil

		case utils.IsOperatorChar(ch):
			lit := l.readWhile(utils.IsOperatorChar)
			return token.Token{Type: token.OPERATOR, Literal: lit, Pos: pos}, nil

		case utils.IsDigit(ch):
			return l.readNumber(pos)

		case utils.IsLetter(ch):
			word := l.readWhile(utils.IsIdentChar)
			return token.Token{Type: token.LookupIdent(word), Literal: word, Pos: pos}, nil

		default:
			return token.Token{}, l.cur.Fail(fmt.Sprintf("cannot handle character: %q", string(ch)))
		}
	}
}

// skipBlockComment is called with the cursor on the '*' of "/*".
func (l *Lexer) skipBlockComment() error {
	l.cur.Next() // consume *
	for {
		l.readWhile(func(ch rune) bool { return ch != '*' })
		if l.cur.EOF() {
			err := errors.New(errors.PhaseLexer, l.cur.Location(), "unterminated block comment")
			err.Incomplete = true
			return err
		}
		l.cur.Next() // consume *
		if l.cur.Peek() == '/' {
			l.cur.Next()
			return nil
		}
	}
}

// readNumber reads digits with at most one decimal point; a second '.'
// ends the literal.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	hasDot := false
	lit := l.readWhile(func(ch rune) bool {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
			return true
		}
		return utils.IsDigit(ch)
	})

	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return token.Token{}, l.cur.Fail(fmt.Sprintf("invalid number: %q", lit))
	}
	return token.Token{Type: token.NUMBER, Literal: lit, Value: value, Pos: pos}, nil
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.cur.Location().Offset
	for ch := l.cur.Peek(); ch != cursor.EOF && pred(ch); ch = l.cur.Peek() {
		l.cur.Next()
	}
	return l.cur.Slice(start, l.cur.Location().Offset)
}

// Tokenize scans the whole input. On error it returns the tokens read so
// far along with the error.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		if tok.Type == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
