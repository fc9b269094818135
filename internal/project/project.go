// Package project is the only consumer of internal/core that touches a
// filesystem: it discovers input files with glob patterns, runs the pure
// transform across a bounded worker pool, and writes `.d.ts` output next
// to (or under an outdir mirroring) each source file.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stacksjs/dtsgo/internal/config"
	"github.com/stacksjs/dtsgo/internal/core"
)

// Result is one file's transform outcome.
type Result struct {
	SourcePath string
	OutputPath string
	Err        error
	Diagnostics *core.Diagnostics
}

// Discover walks opts.Root and returns every file matching opts.Entries
// that does not also match opts.Exclude, in filepath.WalkDir's lexical walk
// order, which is deterministic for a given tree.
func Discover(opts config.Options) ([]string, error) {
	seen := map[string]bool{}
	var matches []string

	err := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, opts.Entries) {
			return nil
		}
		if matchesAny(rel, opts.Exclude) {
			return nil
		}
		if !seen[path] {
			seen[path] = true
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering entries under %s: %w", opts.Root, err)
	}
	return matches, nil
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// RunBatch transforms every file in paths concurrently, bounded by
// opts.Concurrency, and returns one Result per input in input order.
func RunBatch(paths []string, opts config.Options) []Result {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = transformOne(path, opts)
		}(i, path)
	}
	wg.Wait()
	return results
}

func transformOne(path string, opts config.Options) Result {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Result{SourcePath: path, Err: err}
	}

	text, diag := core.ProcessSource(string(contents), path, opts.KeepComments, opts.ImportOrder)
	if diag.HasErrors() {
		return Result{SourcePath: path, Diagnostics: diag, Err: fmt.Errorf("%s", diag.Primary.Text)}
	}

	outPath := OutputPathFor(path, opts)
	if opts.DryRun {
		return Result{SourcePath: path, OutputPath: outPath, Diagnostics: diag}
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{SourcePath: path, Err: err}
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return Result{SourcePath: path, Err: err}
	}
	return Result{SourcePath: path, OutputPath: outPath, Diagnostics: diag}
}

// OutputPathFor computes where a source file's `.d.ts` should land: the
// same relative path under opts.Outdir, with its extension replaced.
func OutputPathFor(path string, opts config.Options) string {
	rel, err := filepath.Rel(opts.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".d.ts"
	return filepath.Join(opts.Outdir, rel)
}
