package utils

import (
	"strings"
	"unicode"
)

const (
	operatorChars    = "+-*/%=&|<>!:"
	punctuationChars = ",;(){}"
)

// IsWhitespace reports the characters skipped between tokens.
// '\r' is accepted so files with CRLF line endings lex the same.
func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// IsLetter reports whether ch may start an identifier.
func IsLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

// IsDigit only accepts ASCII digits so number literals stay valid in the
// emitted code.
func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsOperatorChar(ch rune) bool {
	return ch >= 0 && strings.ContainsRune(operatorChars, ch)
}

func IsPunctuation(ch rune) bool {
	return ch >= 0 && strings.ContainsRune(punctuationChars, ch)
}

// IsIdentChar reports whether ch may continue an identifier.
func IsIdentChar(ch rune) bool {
	return IsLetter(ch) || IsDigit(ch)
}
