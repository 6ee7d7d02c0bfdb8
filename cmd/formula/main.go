package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const usageText = `Usage: formula <command> [arguments]

Commands:
  compile [-o out] [-cache db] [-j n] [-v] <files...>
                 translate formula files to JavaScript
  tokens <file>  print the token stream of a file
  repl           compile formulas interactively
  cache [-cache db] [-prune age]
                 show compile cache statistics, drop old entries

Use "-" as a file name to read standard input.
`

func usage() {
	_, _ = fmt.Fprint(os.Stderr, usageText)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "compile":
		cmdCompile(os.Args[2:])
	case "tokens":
		cmdTokens(os.Args[2:])
	case "repl":
		cmdRepl(os.Args[2:])
	case "cache":
		cmdCache(os.Args[2:])
	case "help", "-h", "-help", "--help":
		usage()
	default:
		// formula file.fx is short for formula compile file.fx
		if filepath.Ext(cmd) == sourceExt {
			cmdCompile(os.Args[1:])
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "formula: unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// readSource reads a file, or standard input for "-".
func readSource(name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
