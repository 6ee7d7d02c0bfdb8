package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/btouchard/formula/internal/compiler/token"
)

// Compilation phases reported in error messages
const (
	PhaseLexer     = "lexer"
	PhaseParser    = "parser"
	PhaseGenerator = "generator"
)

// Position represents a location in source code
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// At converts a token position into an error position.
func At(pos token.Position) Position {
	return Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

func (p Position) String() string {
	if p.File != "" && p.Line == 0 {
		return p.File
	}
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError is the only error kind produced by the compiler.
// Pos is where the error was detected, not necessarily where the
// offending token starts.
type SyntaxError struct {
	Pos        Position
	Message    string
	Phase      string // "lexer", "parser", "generator"
	Incomplete bool   // input ended before the construct was closed
}

func New(phase string, pos token.Position, message string) *SyntaxError {
	return &SyntaxError{Pos: At(pos), Message: message, Phase: phase}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Pos, e.Message)
}

// IsIncomplete reports whether err was caused by input ending too early.
// The REPL uses it to keep reading lines instead of reporting.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	if stderrors.As(err, &serr) {
		return serr.Incomplete
	}
	return false
}

// WithFile returns err with the file name attached when it is a SyntaxError.
func WithFile(err error, file string) error {
	var serr *SyntaxError
	if !stderrors.As(err, &serr) {
		return err
	}
	cp := *serr
	cp.Pos.File = file
	return &cp
}

// ErrorList collects errors from several independent compilations
type ErrorList struct {
	Errors []*SyntaxError
}

func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Append records err. Errors that are not SyntaxErrors are kept with
// the file as position and no phase.
func (el *ErrorList) Append(file string, err error) {
	if err == nil {
		return
	}
	var serr *SyntaxError
	if stderrors.As(WithFile(err, file), &serr) {
		el.Errors = append(el.Errors, serr)
		return
	}
	el.Errors = append(el.Errors, &SyntaxError{Pos: Position{File: file}, Message: err.Error(), Phase: "io"})
}

func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

func (el *ErrorList) String() string {
	var b strings.Builder
	for _, e := range el.Errors {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Err returns nil for an empty list, the list itself otherwise.
func (el *ErrorList) Err() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

func (el *ErrorList) Error() string {
	switch len(el.Errors) {
	case 0:
		return "no errors"
	case 1:
		return el.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el.Errors[0].Error(), len(el.Errors)-1)
}
