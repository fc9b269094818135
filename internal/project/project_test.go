package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsgo/internal/config"
)

func writeFile(t *testing.T, dir, rel, contents string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDiscoverMatchesEntriesAndSkipsExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `export const a = 1;`)
	writeFile(t, dir, "a.test.ts", `export const b = 2;`)
	writeFile(t, dir, "nested/c.ts", `export const c = 3;`)

	opts := config.Default()
	opts.Root = dir
	opts.Entries = []string{"**/*.ts"}
	opts.Exclude = []string{"**/*.test.ts"}

	matches, err := Discover(opts)
	require.NoError(t, err)

	rels := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, _ := filepath.Rel(dir, m)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"a.ts", "nested/c.ts"}, rels)
}

func TestOutputPathForReplacesExtensionUnderOutdir(t *testing.T) {
	opts := config.Default()
	opts.Root = "/project/src"
	opts.Outdir = "/project/dist"

	got := OutputPathFor("/project/src/nested/widget.ts", opts)
	assert.Equal(t, filepath.Join("/project/dist", "nested", "widget.d.ts"), got)
}

func TestRunBatchProducesOneResultPerFileInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.ts", `export const a = 1;`)
	second := writeFile(t, dir, "second.ts", `export const b = 2;`)

	opts := config.Default()
	opts.Root = dir
	opts.Outdir = filepath.Join(dir, "dist")
	opts.Concurrency = 2

	results := RunBatch([]string{first, second}, opts)
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0].SourcePath)
	assert.Equal(t, second, results[1].SourcePath)
	for _, r := range results {
		assert.NoError(t, r.Err)
		_, statErr := os.Stat(r.OutputPath)
		assert.NoError(t, statErr)
	}
}

func TestRunBatchRecordsUnreadableFileAsError(t *testing.T) {
	opts := config.Default()
	opts.Root = t.TempDir()
	opts.Outdir = filepath.Join(opts.Root, "dist")

	results := RunBatch([]string{filepath.Join(opts.Root, "missing.ts")}, opts)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestRunBatchDryRunSkipsWritingOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", `export const a = 1;`)

	opts := config.Default()
	opts.Root = dir
	opts.Outdir = filepath.Join(dir, "dist")
	opts.DryRun = true

	results := RunBatch([]string{path}, opts)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	_, statErr := os.Stat(results[0].OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}
