// Package config resolves the host-level options table from §6: the
// knobs the core accepts (keep_comments, import_order) plus everything
// that stays entirely outside the core's contract (cwd, outdir,
// entrypoints, watch, and so on). An optional .env overlay is loaded the
// same way the pack's godotenv-based services do, so CI and local runs can
// share defaults without a flag on every invocation.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Options is the full host-level configuration surface. Fields map
// directly onto the table in §6; KeepComments and ImportOrder are the
// only two the core pipeline itself observes.
type Options struct {
	Cwd       string
	Root      string
	Outdir    string
	Entries   []string
	Exclude   []string
	Clean     bool
	DryRun    bool
	Stats     bool
	Progress  bool
	Validate  bool
	Parallel  bool
	Concurrency int
	Watch     bool
	LogLevel  string

	KeepComments bool
	ImportOrder  []string
}

// Default returns the option set a bare `dtsgo generate` invocation uses
// before flags or environment overlays are applied.
func Default() Options {
	cwd, _ := os.Getwd()
	return Options{
		Cwd:         cwd,
		Root:        ".",
		Outdir:      "dist",
		Entries:     []string{"**/*.ts"},
		Exclude:     []string{"**/*.test.ts", "**/*.spec.ts", "node_modules/**"},
		Concurrency: 4,
		LogLevel:    "info",
		ImportOrder: []string{"bun", "node:"},
	}
}

// Load starts from Default(), applies a .env overlay if one is present in
// the working directory, then layers environment variables over it. It
// never fails on a missing .env file — that is the expected common case,
// not an error.
func Load() Options {
	_ = godotenv.Load()
	opts := Default()

	if v := strings.TrimSpace(os.Getenv("DTSGO_OUTDIR")); v != "" {
		opts.Outdir = v
	}
	if v := strings.TrimSpace(os.Getenv("DTSGO_ROOT")); v != "" {
		opts.Root = v
	}
	if v := strings.TrimSpace(os.Getenv("DTSGO_LOG_LEVEL")); v != "" {
		opts.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("DTSGO_KEEP_COMMENTS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.KeepComments = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("DTSGO_IMPORT_ORDER")); v != "" {
		opts.ImportOrder = strings.Split(v, ",")
	}
	if v := strings.TrimSpace(os.Getenv("DTSGO_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Concurrency = n
		}
	}

	return opts
}
