package core

import (
	"strings"
	"testing"
)

func assertEqual(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestProcessSourceExportedConstLiteral(t *testing.T) {
	ClearCaches()
	src := `export const port = 3000;`
	out, diag := ProcessSource(src, "input.ts", false, nil)
	if diag.HasErrors() {
		t.Fatalf("unexpected error: %v", diag.Primary)
	}
	assertEqual(t, out, "export declare const port: 3000;\n")
}

func TestProcessSourceDropsUnusedImport(t *testing.T) {
	ClearCaches()
	src := "import { Unused } from './x';\nexport function run(): void {}\n"
	out, _ := ProcessSource(src, "input.ts", false, nil)
	if strings.Contains(out, "Unused") {
		t.Fatalf("expected unused import to be pruned, got %q", out)
	}
	assertEqual(t, out, "export declare function run(): void;\n")
}

func TestProcessSourceKeepsUsedImport(t *testing.T) {
	ClearCaches()
	src := "import { Foo } from './x';\nexport function run(): Foo {\n  return {} as Foo;\n}\n"
	out, _ := ProcessSource(src, "input.ts", false, nil)
	if !strings.Contains(out, "import { Foo } from './x';") {
		t.Fatalf("expected Foo import kept, got %q", out)
	}
}

func TestProcessSourceFunctionSignature(t *testing.T) {
	ClearCaches()
	src := "export function add(a: number, b: number): number {\n  return a + b\n}\n"
	out, _ := ProcessSource(src, "input.ts", false, nil)
	assertEqual(t, out, "export declare function add(a: number, b: number): number;\n")
}

func TestProcessSourceInterfaceVerbatim(t *testing.T) {
	ClearCaches()
	src := "export interface Point {\n  x: number;\n  y: number;\n}\n"
	out, _ := ProcessSource(src, "input.ts", false, nil)
	if !strings.Contains(out, "declare interface Point") {
		t.Fatalf("expected interface to be preserved, got %q", out)
	}
}

func TestProcessSourceKeepCommentsToggle(t *testing.T) {
	ClearCaches()
	src := "/** Adds two numbers. */\nexport function add(a: number, b: number): number {\n  return a + b\n}\n"
	withComments, _ := ProcessSource(src, "input.ts", true, nil)
	withoutComments, _ := ProcessSource(src, "input.ts", false, nil)
	if !strings.Contains(withComments, "Adds two numbers") {
		t.Fatalf("expected comment kept when requested, got %q", withComments)
	}
	if strings.Contains(withoutComments, "Adds two numbers") {
		t.Fatalf("expected comment dropped by default, got %q", withoutComments)
	}
}

func TestProcessSourceIsDeterministic(t *testing.T) {
	ClearCaches()
	src := "export const x = [1, 2, 3] as const;\n"
	out1, _ := ProcessSource(src, "input.ts", false, nil)
	ClearCaches()
	out2, _ := ProcessSource(src, "input.ts", false, nil)
	assertEqual(t, out1, out2)
}

func TestProcessSourceNamespaceRecursion(t *testing.T) {
	ClearCaches()
	src := "export namespace Shapes {\n  export const sides = 4;\n}\n"
	out, _ := ProcessSource(src, "input.ts", false, nil)
	if !strings.Contains(out, "declare namespace Shapes") {
		t.Fatalf("expected namespace header, got %q", out)
	}
	if !strings.Contains(out, "sides: 4") {
		t.Fatalf("expected recursively-inferred member type, got %q", out)
	}
}
