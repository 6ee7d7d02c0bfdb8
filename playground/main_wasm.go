//go:build js && wasm

package main

import (
	stderrors "errors"
	"fmt"
	"syscall/js"

	"github.com/btouchard/formula/internal/compiler"
	"github.com/btouchard/formula/internal/compiler/errors"
	"github.com/btouchard/formula/internal/compiler/lexer"
)

func main() {
	js.Global().Set("compileFormula", js.FuncOf(compileFormulaWrapper))
	js.Global().Set("tokenizeFormula", js.FuncOf(tokenizeFormulaWrapper))

	// Keep the program alive
	select {}
}

// compileFormulaWrapper returns {code, errors} for the source in args[0].
func compileFormulaWrapper(this js.Value, args []js.Value) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			result = js.ValueOf(map[string]interface{}{
				"code":   "",
				"errors": []interface{}{map[string]interface{}{"message": fmt.Sprintf("panic: %v", r)}},
			})
		}
	}()

	if len(args) != 1 {
		return js.ValueOf(map[string]interface{}{
			"code":   "",
			"errors": []interface{}{map[string]interface{}{"message": "expected 1 argument (source code)"}},
		})
	}

	code, err := compiler.Compile(args[0].String())
	jsErrors := []interface{}{}
	if err != nil {
		jsErrors = append(jsErrors, errorObject(err))
	}

	return js.ValueOf(map[string]interface{}{
		"code":   code,
		"errors": jsErrors,
	})
}

// tokenizeFormulaWrapper returns {tokens, errors}, each token being
// {type, literal, line, column}.
func tokenizeFormulaWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return js.ValueOf(map[string]interface{}{
			"tokens": []interface{}{},
			"errors": []interface{}{map[string]interface{}{"message": "expected 1 argument (source code)"}},
		})
	}

	toks, err := lexer.Tokenize(args[0].String())
	jsTokens := make([]interface{}, len(toks))
	for i, tok := range toks {
		jsTokens[i] = map[string]interface{}{
			"type":    string(tok.Type),
			"literal": tok.Literal,
			"line":    tok.Pos.Line,
			"column":  tok.Pos.Column,
		}
	}
	jsErrors := []interface{}{}
	if err != nil {
		jsErrors = append(jsErrors, errorObject(err))
	}

	return js.ValueOf(map[string]interface{}{
		"tokens": jsTokens,
		"errors": jsErrors,
	})
}

// errorObject exposes the position of a syntax error so the editor can
// mark it.
func errorObject(err error) map[string]interface{} {
	obj := map[string]interface{}{"message": err.Error()}

	var serr *errors.SyntaxError
	if stderrors.As(err, &serr) {
		obj["message"] = serr.Message
		obj["phase"] = serr.Phase
		obj["line"] = serr.Pos.Line
		obj["column"] = serr.Pos.Column
		obj["incomplete"] = serr.Incomplete
	}
	return obj
}
