package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btouchard/formula/internal/cache"
	"github.com/btouchard/formula/internal/compiler"
	"github.com/btouchard/formula/internal/compiler/errors"
)

const (
	sourceExt = ".fx"
	outputExt = ".js"
)

type compileOptions struct {
	output  string
	cache   string
	jobs    int
	verbose bool
}

func cmdCompile(args []string) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	var opts compileOptions
	fs.StringVar(&opts.output, "o", "", "output file, or directory with several inputs (default: stdout, or next to each input)")
	fs.StringVar(&opts.cache, "cache", os.Getenv("FORMULA_CACHE"), "compile cache database (default $FORMULA_CACHE, empty disables)")
	fs.IntVar(&opts.jobs, "j", runtime.NumCPU(), "maximum concurrent compilations")
	fs.BoolVar(&opts.verbose, "v", false, "report cache hits and log cache queries")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: formula compile [-o out] [-cache db] [-j n] [-v] <files...>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runCompile(ctx, fs.Args(), opts); err != nil {
		_, _ = fmt.Fprint(os.Stderr, formatFailure(err))
		os.Exit(1)
	}
}

func formatFailure(err error) string {
	if list, ok := err.(*errors.ErrorList); ok {
		return list.String()
	}
	return fmt.Sprintf("Error: %v\n", err)
}

// runCompile compiles files and writes their output. Every file is
// attempted; the failures come back together as an *errors.ErrorList.
func runCompile(ctx context.Context, files []string, opts compileOptions) error {
	failures := errors.NewErrorList()

	var sources []compiler.Source
	for _, name := range files {
		text, err := readSource(name)
		if err != nil {
			failures.Append(name, err)
			continue
		}
		sources = append(sources, compiler.Source{Name: name, Text: text})
	}

	var store *cache.Cache
	if opts.cache != "" {
		var err error
		if store, err = cache.Open(opts.cache, opts.verbose); err != nil {
			return err
		}
		defer store.Close()
	}

	results, err := compileSources(ctx, store, sources, opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			failures.Append(r.Name, r.Err)
			continue
		}
		if err := writeOutput(r, len(sources), opts.output); err != nil {
			failures.Append(r.Name, err)
		}
	}
	return failures.Err()
}

// compileSources answers what it can from the cache and compiles the
// rest concurrently. Successful compilations are stored back.
func compileSources(ctx context.Context, store *cache.Cache, sources []compiler.Source, opts compileOptions) ([]compiler.Result, error) {
	results := make([]compiler.Result, len(sources))

	var pending []compiler.Source
	var slots []int
	for i, src := range sources {
		if store != nil {
			code, ok, err := store.Get(src.Text)
			if err != nil {
				return nil, err
			}
			if ok {
				if opts.verbose {
					_, _ = fmt.Fprintf(os.Stderr, "cached %s\n", src.Name)
				}
				results[i] = compiler.Result{Name: src.Name, Code: code}
				continue
			}
		}
		pending = append(pending, src)
		slots = append(slots, i)
	}

	compiled, err := compiler.CompileAll(ctx, pending, opts.jobs)
	if err != nil {
		return nil, err
	}

	for k, r := range compiled {
		results[slots[k]] = r
		if store != nil && r.Err == nil {
			if err := store.Put(pending[k].Text, r.Code); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// writeOutput places one result. A single input goes to -o or stdout.
// With several inputs, -o names a directory and each file keeps its base
// name with a .js extension.
func writeOutput(r compiler.Result, inputs int, output string) error {
	code := r.Code + "\n"

	if inputs == 1 {
		if output == "" || output == "-" {
			_, err := fmt.Fprint(os.Stdout, code)
			return err
		}
		return writeFile(output, code)
	}

	if r.Name == "-" {
		_, err := fmt.Fprint(os.Stdout, code)
		return err
	}
	target := strings.TrimSuffix(r.Name, filepath.Ext(r.Name)) + outputExt
	if output != "" {
		target = filepath.Join(output, filepath.Base(target))
	}
	return writeFile(target, code)
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
