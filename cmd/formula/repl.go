package main

import (
	"bufio"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/btouchard/formula/internal/compiler"
	"github.com/btouchard/formula/internal/compiler/errors"
)

func cmdRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: formula repl\n\nReads formulas and prints the JavaScript they compile to.\nInput that ends inside a construct continues on the next line.\n")
	}
	_ = fs.Parse(args)

	if !isInteractive() {
		runBufferedREPL(bufio.NewReader(os.Stdin), os.Stdout, os.Stderr)
		return
	}
	runInteractiveREPL()
}

func runBufferedREPL(reader *bufio.Reader, out, errOut io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		eof := stderrors.Is(err, io.EOF)
		if err != nil && !eof {
			_, _ = fmt.Fprintf(errOut, "read error: %v\n", err)
			return
		}
		if eof && buffer.Len() == 0 && line == "" {
			return
		}
		buffer.WriteString(line)

		code, compileErr := compiler.Compile(buffer.String())
		if errors.IsIncomplete(compileErr) && !eof {
			continue
		}
		buffer.Reset()

		if compileErr != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v\n", compileErr)
		} else if code != "" {
			_, _ = fmt.Fprintln(out, code)
		}
		if eof {
			return
		}
	}
}

func runInteractiveREPL() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = state.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "fx> "
		if buffer.Len() > 0 {
			prompt = "... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case stderrors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case stderrors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				_, _ = fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		code, compileErr := compiler.Compile(src)
		if errors.IsIncomplete(compileErr) {
			continue
		}

		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		if compileErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", compileErr)
			continue
		}
		if code != "" {
			fmt.Println(code)
		}
	}
}

func replHistoryPath() string {
	if path := os.Getenv("FORMULA_HISTORY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".formula_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
