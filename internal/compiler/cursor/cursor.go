// Package cursor exposes source text one character at a time and keeps
// track of where in the text it is.
package cursor

import (
	"unicode/utf8"

	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/token"
)

// EOF is returned by Peek and Next once the input is exhausted.
const EOF rune = -1

type Cursor struct {
	input  string
	offset int // byte offset of the next character
	line   int // current line (1-based)
	column int // current column (0-based)
}

func New(input string) *Cursor {
	return &Cursor{
		input:  input,
		line:   1,
		column: 0,
	}
}

// Peek returns the next character without consuming it.
func (c *Cursor) Peek() rune {
	if c.offset >= len(c.input) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.offset:])
	return r
}

// Next consumes and returns the next character.
func (c *Cursor) Next() rune {
	if c.offset >= len(c.input) {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.input[c.offset:])
	c.offset += size

	if r == '\n' {
		c.line++
		c.column = 0
	} else {
		c.column++
	}
	return r
}

func (c *Cursor) EOF() bool {
	return c.Peek() == EOF
}

// Location snapshots the current position.
func (c *Cursor) Location() token.Position {
	return token.Position{
		Line:   c.line,
		Column: c.column,
		Offset: c.offset,
	}
}

// Slice returns the input between two byte offsets.
func (c *Cursor) Slice(start, end int) string {
	return c.input[start:end]
}

// Fail builds a lexer-phase error at the current position.
func (c *Cursor) Fail(message string) error {
	return errors.New(errors.PhaseLexer, c.Location(), message)
}
