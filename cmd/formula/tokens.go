package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/btouchard/formula/internal/compiler/lexer"
)

func cmdTokens(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: formula tokens <file>\n")
	}
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	text, err := readSource(fs.Arg(0))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := printTokens(os.Stdout, text); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}
}

// printTokens writes one line per token. On a scan error the tokens read
// so far are still printed.
func printTokens(w io.Writer, text string) error {
	toks, err := lexer.Tokenize(text)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		_, _ = fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
	}
	if ferr := tw.Flush(); ferr != nil {
		return ferr
	}
	return err
}
