// Package compiler translates formula source into JavaScript.
//
// A compilation runs cursor, lexer, parser and generator over one input
// string and stops at the first error. Compilations share no state, so
// independent inputs may be compiled concurrently with CompileAll.
package compiler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/btouchard/formula/internal/compiler/ast"
	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/generator"
	"github.com/btouchard/formula/internal/compiler/lexer"
	"github.com/btouchard/formula/internal/compiler/parser"
)

// Parse lexes and parses src into a Program.
func Parse(src string) (*ast.Program, error) {
	return parser.Parse(lexer.New(src))
}

// Compile returns the JavaScript for src.
func Compile(src string) (string, error) {
	program, err := Parse(src)
	if err != nil {
		return "", err
	}
	return generator.New().Generate(program)
}

// Source is one named input of a batch.
type Source struct {
	Name string
	Text string
}

// Result holds the outcome for the Source with the same Name. Err is a
// *errors.SyntaxError carrying Name as its file.
type Result struct {
	Name string
	Code string
	Err  error
}

// CompileAll compiles every source with at most limit compilations
// running at once (limit <= 0 means no bound). Results are in input
// order. A failed source does not stop the others. Cancelling ctx stops
// sources that have not started yet; their Result has only a Name, and
// the context error is returned.
func CompileAll(ctx context.Context, sources []Source, limit int) ([]Result, error) {
	results := make([]Result, len(sources))
	for i, src := range sources {
		results[i].Name = src.Name
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := Compile(src.Text)
			results[i].Code = code
			results[i].Err = errors.WithFile(err, src.Name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failures collects the errors of results into one list.
func Failures(results []Result) *errors.ErrorList {
	list := errors.NewErrorList()
	for _, r := range results {
		list.Append(r.Name, r.Err)
	}
	return list
}
