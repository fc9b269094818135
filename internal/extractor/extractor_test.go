package extractor

import (
	"strings"
	"testing"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/logger"
)

func extractSrc(src string) []*ast.Declaration {
	return Extract(logger.Source{FileName: "<test>", Contents: src}, logger.NewLog())
}

func TestExtractExportedConstVariable(t *testing.T) {
	decls := extractSrc(`export const port = 3000;`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	d := decls[0]
	if d.Kind != ast.KindVariable || d.Name != "port" || !d.IsExported {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if d.Value != "3000" {
		t.Fatalf("got value %q, want 3000", d.Value)
	}
	if !d.HasModifier(ast.ModConst) {
		t.Fatalf("expected ModConst on a const declarator")
	}
}

func TestExtractFunctionDeclarationWithReturnType(t *testing.T) {
	decls := extractSrc(`export function add(a: number, b: number): number { return a + b; }`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	d := decls[0]
	if d.Kind != ast.KindFunction || d.Name != "add" {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if !strings.Contains(d.Text, "declare function add(a: number, b: number): number;") {
		t.Fatalf("unexpected text: %q", d.Text)
	}
}

func TestExtractInterfaceKeepsBody(t *testing.T) {
	decls := extractSrc(`export interface Point { x: number; y: number; }`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	d := decls[0]
	if d.Kind != ast.KindInterface || d.Name != "Point" {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if !strings.Contains(d.Text, "x: number;") || !strings.Contains(d.Text, "y: number;") {
		t.Fatalf("expected body members preserved, got %q", d.Text)
	}
}

func TestExtractTypeAlias(t *testing.T) {
	decls := extractSrc(`type ID = string | number;`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	d := decls[0]
	if d.Kind != ast.KindType || d.Name != "ID" {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if d.IsExported {
		t.Fatalf("unexported alias should not be marked exported")
	}
}

func TestExtractImportStatementBecomesDeclaration(t *testing.T) {
	decls := extractSrc(`import { readFile } from "node:fs";`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	if decls[0].Kind != ast.KindImport {
		t.Fatalf("got kind %v, want import", decls[0].Kind)
	}
}

func TestExtractReferenceDirectivePrecedesDeclarations(t *testing.T) {
	decls := extractSrc("/// <reference types=\"node\" />\nexport const a = 1;")
	if len(decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(decls))
	}
	if decls[0].Kind != ast.KindReference {
		t.Fatalf("got kind %v, want reference for the first decl", decls[0].Kind)
	}
	if decls[1].Kind != ast.KindVariable || decls[1].Name != "a" {
		t.Fatalf("unexpected second decl: %+v", decls[1])
	}
}

func TestExtractLeadingCommentAttachesToDeclaration(t *testing.T) {
	decls := extractSrc("// computes a sum\nexport function sum(a: number, b: number): number { return a + b; }")
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	if len(decls[0].LeadingComments) != 1 {
		t.Fatalf("got %d leading comments, want 1", len(decls[0].LeadingComments))
	}
}

func TestExtractFunctionOverloadsDropImplementationBody(t *testing.T) {
	decls := extractSrc(`
export function parse(input: string): string;
export function parse(input: number): number;
export function parse(input: any): any { return input; }
`)
	count := 0
	for _, d := range decls {
		if d.Kind == ast.KindFunction && d.Name == "parse" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("got %d parse overload signatures, want 2 (implementation dropped)", count)
	}
}

func TestExtractDeclareGlobalBlock(t *testing.T) {
	decls := extractSrc(`declare global { interface Window { custom: string; } }`)
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	if decls[0].Kind != ast.KindModule || decls[0].Name != "global" {
		t.Fatalf("unexpected decl: %+v", decls[0])
	}
}

func TestExtractClassSetterEmitsNoReturnType(t *testing.T) {
	decls := extractSrc(`export class Box {
  get v(): number { return 1; }
  set v(n: number) { }
}`)
	if len(decls) != 1 || decls[0].Kind != ast.KindClass {
		t.Fatalf("got %d decls, want 1 class decl: %+v", len(decls), decls)
	}
	if !strings.Contains(decls[0].Text, "set v(n: number);") {
		t.Fatalf("expected a bare setter signature with no return type, got %q", decls[0].Text)
	}
	if strings.Contains(decls[0].Text, "set v(n: number): void;") {
		t.Fatalf("setter must not carry a return-type annotation, got %q", decls[0].Text)
	}
	if !strings.Contains(decls[0].Text, "get v(): number;") {
		t.Fatalf("expected the getter to keep its return type, got %q", decls[0].Text)
	}
}

func TestExtractUnknownStatementDoesNotStallExtraction(t *testing.T) {
	decls := extractSrc(`@@garbage@@;
export const recovered = 1;`)
	found := false
	for _, d := range decls {
		if d.Kind == ast.KindVariable && d.Name == "recovered" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected extraction to recover after a malformed statement, got %+v", decls)
	}
}
