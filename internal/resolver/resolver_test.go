package resolver

import (
	"testing"

	"github.com/stacksjs/dtsgo/internal/ast"
)

func assertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveDropsUnusedNamedImport(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindImport, Source: "./types", Text: "import { Used, Unused } from './types';"},
		{
			Kind: ast.KindFunction, Name: "run", IsExported: true,
			Text: "export declare function run(): Used;",
		},
	}
	out := Resolve(decls, nil)
	assertEqual(t, len(out), 2)
	imp := out[0]
	assertEqual(t, imp.Kind, ast.KindImport)
	assertEqual(t, imp.Text, "import { Used } from './types';")
}

func TestResolveDropsFullyUnusedImport(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindImport, Source: "./types", Text: "import { Unused } from './types';"},
		{Kind: ast.KindFunction, Name: "run", IsExported: true, Text: "export declare function run(): void;"},
	}
	out := Resolve(decls, nil)
	assertEqual(t, len(out), 1)
	assertEqual(t, out[0].Kind, ast.KindFunction)
}

func TestResolveKeepsSideEffectImport(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindImport, Source: "./polyfill", Text: "import './polyfill';", IsSideEffect: true},
	}
	out := Resolve(decls, nil)
	assertEqual(t, len(out), 1)
}

func TestResolveKeepsInterfaceNeededByExportedFunction(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindInterface, Name: "Options", IsExported: false, Text: "declare interface Options { x: number }"},
		{Kind: ast.KindInterface, Name: "Dead", IsExported: false, Text: "declare interface Dead { y: number }"},
		{
			Kind: ast.KindFunction, Name: "run", IsExported: true,
			Text: "export declare function run(opts: Options): void;",
		},
	}
	out := Resolve(decls, nil)
	var names []string
	for _, d := range out {
		names = append(names, d.Name)
	}
	assertEqual(t, len(out), 2)
	found := false
	for _, n := range names {
		if n == "Options" {
			found = true
		}
		if n == "Dead" {
			t.Fatalf("unreferenced interface Dead should have been dropped")
		}
	}
	if !found {
		t.Fatalf("expected Options to be kept, got %v", names)
	}
}

func TestResolveSortsImportsByPriority(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindImport, Source: "node:fs", Text: "import { readFile } from 'node:fs';"},
		{Kind: ast.KindImport, Source: "bun", Text: "import { serve } from 'bun';"},
		{Kind: ast.KindFunction, Name: "run", IsExported: true, Text: "export declare function run(): typeof readFile | typeof serve;"},
	}
	out := Resolve(decls, []string{"bun"})
	assertEqual(t, out[0].Source, "bun")
	assertEqual(t, out[1].Source, "node:fs")
}

func TestParseImportBindingsDefaultAndNamed(t *testing.T) {
	bindings := parseImportBindings("import Foo, { Bar, Baz as Qux } from './mod';")
	assertEqual(t, len(bindings), 3)
	assertEqual(t, bindings[0].Local, "Foo")
	assertEqual(t, bindings[1].Local, "Bar")
	assertEqual(t, bindings[2].Local, "Qux")
	assertEqual(t, bindings[2].Imported, "Baz")
}

func TestParseImportBindingsNamespace(t *testing.T) {
	bindings := parseImportBindings("import * as ns from './mod';")
	assertEqual(t, len(bindings), 1)
	assertEqual(t, bindings[0].Local, "ns")
}

func TestContainsWordBoundary(t *testing.T) {
	if containsWord("const xFoo = 1", "Foo") {
		t.Fatal("Foo should not match inside xFoo")
	}
	if !containsWord("const Foo = 1", "Foo") {
		t.Fatal("Foo should match as its own token")
	}
}
