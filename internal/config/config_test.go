package config

import (
	"os"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	if opts.Root != "." {
		t.Fatalf("got root %q, want .", opts.Root)
	}
	if opts.Outdir != "dist" {
		t.Fatalf("got outdir %q, want dist", opts.Outdir)
	}
	if opts.Concurrency != 4 {
		t.Fatalf("got concurrency %d, want 4", opts.Concurrency)
	}
	if len(opts.ImportOrder) != 2 || opts.ImportOrder[0] != "bun" {
		t.Fatalf("unexpected import order default: %v", opts.ImportOrder)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("DTSGO_OUTDIR", "build-types")
	t.Setenv("DTSGO_ROOT", "src")
	t.Setenv("DTSGO_KEEP_COMMENTS", "true")
	t.Setenv("DTSGO_IMPORT_ORDER", "node:,react")
	t.Setenv("DTSGO_CONCURRENCY", "8")

	opts := Load()
	if opts.Outdir != "build-types" {
		t.Fatalf("got outdir %q, want build-types", opts.Outdir)
	}
	if opts.Root != "src" {
		t.Fatalf("got root %q, want src", opts.Root)
	}
	if !opts.KeepComments {
		t.Fatalf("expected KeepComments true")
	}
	if len(opts.ImportOrder) != 2 || opts.ImportOrder[1] != "react" {
		t.Fatalf("unexpected import order: %v", opts.ImportOrder)
	}
	if opts.Concurrency != 8 {
		t.Fatalf("got concurrency %d, want 8", opts.Concurrency)
	}
}

func TestLoadIgnoresInvalidEnvValues(t *testing.T) {
	t.Setenv("DTSGO_KEEP_COMMENTS", "not-a-bool")
	t.Setenv("DTSGO_CONCURRENCY", "not-a-number")

	opts := Load()
	if opts.KeepComments {
		t.Fatalf("expected KeepComments to stay false on unparsable env value")
	}
	if opts.Concurrency != 4 {
		t.Fatalf("expected Concurrency to stay at default on unparsable env value, got %d", opts.Concurrency)
	}
}

func TestLoadMissingDotenvIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	opts := Load()
	if opts.Root != "." {
		t.Fatalf("Load should fall back to Default() when no .env is present, got root %q", opts.Root)
	}
}
