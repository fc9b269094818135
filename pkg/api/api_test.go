package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stacksjs/dtsgo/internal/config"
	"github.com/stacksjs/dtsgo/internal/tstest"
)

func TestGenerateReturnsDeclarationText(t *testing.T) {
	source := `export const port = 3000;`
	text, diag := Generate(source, "config.ts", false, nil)
	if diag.HasErrors() {
		t.Fatalf("unexpected error: %v", diag.Primary)
	}
	tstest.AssertContains(t, text, "export declare const port: 3000;")
}

func TestGenerateFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.ts")
	if err := os.WriteFile(path, []byte(`export function id(x: number): number { return x; }`), 0o644); err != nil {
		t.Fatal(err)
	}

	text, diag, err := GenerateFile(path, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.HasErrors() {
		t.Fatalf("unexpected diagnostic error: %v", diag.Primary)
	}
	tstest.AssertContains(t, text, "export declare function id(x: number): number;")
}

func TestGenerateFileMissingPathErrors(t *testing.T) {
	_, _, err := GenerateFile(filepath.Join(t.TempDir(), "missing.ts"), false, nil)
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestGenerateProjectWritesOutputFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte(`export const a = 1;`), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := config.Default()
	opts.Root = dir
	opts.Outdir = filepath.Join(dir, "dist")
	opts.Entries = []string{"*.ts"}
	opts.Exclude = nil

	results, err := GenerateProject(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected transform error: %v", results[0].Err)
	}
	if _, err := os.Stat(results[0].OutputPath); err != nil {
		t.Fatalf("expected output file at %s: %v", results[0].OutputPath, err)
	}
}
