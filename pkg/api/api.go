// Package api is the library facade other Go programs import to generate
// declaration files without going through the CLI: a thin, stable surface
// over internal/core and internal/project.
package api

import (
	"context"
	"os"

	"github.com/stacksjs/dtsgo/internal/config"
	"github.com/stacksjs/dtsgo/internal/core"
	"github.com/stacksjs/dtsgo/internal/project"
)

// Diagnostics re-exports the core's per-file diagnostic result so callers
// never need to import internal packages.
type Diagnostics = core.Diagnostics

// Generate runs the pure transform over one in-memory source string. It
// performs no I/O and is safe to call concurrently.
func Generate(source, fileName string, keepComments bool, importOrder []string) (string, *Diagnostics) {
	return core.ProcessSource(source, fileName, keepComments, importOrder)
}

// GenerateFile reads path, transforms it, and returns the resulting
// `.d.ts` text without writing anything back to disk.
func GenerateFile(path string, keepComments bool, importOrder []string) (string, *Diagnostics, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	text, diag := core.ProcessSource(string(contents), path, keepComments, importOrder)
	return text, diag, nil
}

// GenerateProject discovers and transforms every matching file under
// opts.Root, writing output under opts.Outdir unless opts.DryRun is set.
func GenerateProject(opts config.Options) ([]project.Result, error) {
	paths, err := project.Discover(opts)
	if err != nil {
		return nil, err
	}
	return project.RunBatch(paths, opts), nil
}

// Watch recompiles the project on every relevant filesystem change until
// ctx is canceled.
func Watch(ctx context.Context, opts config.Options, onBatch func([]project.Result)) error {
	return project.Watch(ctx, opts, onBatch)
}
