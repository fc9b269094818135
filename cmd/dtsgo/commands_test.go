package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsgo/internal/project"
)

func resetFlags() {
	flagRoot = ""
	flagOutdir = ""
	flagKeepComments = false
	flagImportOrder = ""
	flagDryRun = false
	flagConcurrency = 0
}

func TestResolveOptionsAppliesFlagsOverConfig(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagRoot = "./src"
	flagOutdir = "./out"
	flagKeepComments = true
	flagImportOrder = "bun,node:"
	flagDryRun = true
	flagConcurrency = 6

	opts := resolveOptions()
	assert.Equal(t, "./src", opts.Root)
	assert.Equal(t, "./out", opts.Outdir)
	assert.True(t, opts.KeepComments)
	assert.Equal(t, []string{"bun", "node:"}, opts.ImportOrder)
	assert.True(t, opts.DryRun)
	assert.Equal(t, 6, opts.Concurrency)
}

func TestResolveOptionsFallsBackToDefaultsWhenFlagsUnset(t *testing.T) {
	resetFlags()
	defer resetFlags()

	opts := resolveOptions()
	assert.Equal(t, ".", opts.Root)
	assert.Equal(t, "dist", opts.Outdir)
	assert.False(t, opts.KeepComments)
	assert.False(t, opts.DryRun)
}

func TestReadAllReadsUntilEOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	text, err := readAll(f)
	require.NoError(t, err)
	assert.Equal(t, "export const a = 1;", text)
}

func TestReadAllPropagatesNonEOFErrors(t *testing.T) {
	// Reading from a directory handle fails with a non-EOF error.
	f, err := os.Open(t.TempDir())
	require.NoError(t, err)
	defer f.Close()

	_, err = readAll(f)
	assert.Error(t, err)
}

func TestReportResultsReturnsErrorWhenAnyFileFailed(t *testing.T) {
	results := []project.Result{
		{SourcePath: "ok.ts", OutputPath: "ok.d.ts"},
		{SourcePath: "bad.ts", Err: errors.New("boom")},
	}
	err := reportResults(results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) failed")
}

func TestReportResultsSucceedsWhenNoFailures(t *testing.T) {
	results := []project.Result{
		{SourcePath: "ok.ts", OutputPath: "ok.d.ts"},
	}
	assert.NoError(t, reportResults(results))
}
