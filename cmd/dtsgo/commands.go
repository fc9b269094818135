package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacksjs/dtsgo/internal/config"
	"github.com/stacksjs/dtsgo/internal/project"
	"github.com/stacksjs/dtsgo/pkg/api"
)

var (
	flagRoot         string
	flagOutdir       string
	flagKeepComments bool
	flagImportOrder  string
	flagDryRun       bool
	flagConcurrency  int

	rootCmd = &cobra.Command{
		Use:   "dtsgo",
		Short: "Generate TypeScript declaration files without a type checker",
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Transform matching source files into .d.ts files",
		RunE:  runGenerate,
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Regenerate .d.ts files as their sources change",
		RunE:  runWatch,
	}

	stdinCmd = &cobra.Command{
		Use:   "stdin",
		Short: "Transform a single file's source read from stdin",
		RunE:  runStdin,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, watchCmd} {
		cmd.Flags().StringVar(&flagRoot, "root", "", "directory to search for entry files")
		cmd.Flags().StringVar(&flagOutdir, "outdir", "", "output directory for generated .d.ts files")
		cmd.Flags().BoolVar(&flagKeepComments, "keep-comments", false, "preserve leading comments in output")
		cmd.Flags().StringVar(&flagImportOrder, "import-order", "", "comma-separated import-source priority prefixes")
		cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "number of files to transform in parallel")
	}
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would be written without writing it")
	stdinCmd.Flags().BoolVar(&flagKeepComments, "keep-comments", false, "preserve leading comments in output")

	rootCmd.AddCommand(generateCmd, watchCmd, stdinCmd)
}

func resolveOptions() config.Options {
	opts := config.Load()
	if flagRoot != "" {
		opts.Root = flagRoot
	}
	if flagOutdir != "" {
		opts.Outdir = flagOutdir
	}
	if flagKeepComments {
		opts.KeepComments = true
	}
	if flagImportOrder != "" {
		opts.ImportOrder = strings.Split(flagImportOrder, ",")
	}
	if flagConcurrency > 0 {
		opts.Concurrency = flagConcurrency
	}
	opts.DryRun = flagDryRun
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := resolveOptions()
	results, err := api.GenerateProject(opts)
	if err != nil {
		return err
	}
	return reportResults(results)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := resolveOptions()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Fprintf(os.Stderr, "watching %s for changes...\n", opts.Root)
	return api.Watch(ctx, opts, func(results []project.Result) {
		if err := reportResults(results); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
}

func runStdin(cmd *cobra.Command, args []string) error {
	contents, err := readAll(os.Stdin)
	if err != nil {
		return err
	}
	text, diag := api.Generate(contents, "<stdin>", flagKeepComments, nil)
	if diag.HasErrors() {
		return fmt.Errorf("%s:%d:%d: %s", diag.Primary.Location.File, diag.Primary.Location.Line, diag.Primary.Location.Column, diag.Primary.Text)
	}
	_, err = os.Stdout.WriteString(text)
	return err
}

func readAll(f *os.File) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	return sb.String(), nil
}

func reportResults(results []project.Result) error {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.SourcePath, r.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s -> %s\n", r.SourcePath, r.OutputPath)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to generate", failed)
	}
	return nil
}
