package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btouchard/formula/internal/cache"
)

func cmdCache(args []string) {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	path := fs.String("cache", os.Getenv("FORMULA_CACHE"), "compile cache database (default $FORMULA_CACHE)")
	prune := fs.Duration("prune", 0, "delete entries not written for this long, e.g. 720h")
	verbose := fs.Bool("v", false, "log cache queries")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: formula cache [-cache db] [-prune age] [-v]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if *path == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Error: no cache database, set -cache or FORMULA_CACHE\n")
		os.Exit(1)
	}

	store, err := cache.Open(*path, *verbose)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := reportCache(os.Stdout, store, *prune); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// reportCache prunes entries older than age when age is positive, then
// prints the cache statistics.
func reportCache(w io.Writer, store *cache.Cache, age time.Duration) error {
	if age > 0 {
		n, err := store.Prune(time.Now().Add(-age))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "pruned %d entries\n", n)
	}

	entries, hits, err := store.Stats()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%d entries, %d hits\n", entries, hits)
	return nil
}
