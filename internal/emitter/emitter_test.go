package emitter

import (
	"testing"

	"github.com/stacksjs/dtsgo/internal/ast"
)

func assertEqual(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitOrdersReferencesImportsOthersDefault(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindReference, Text: `/// <reference types="node" />`},
		{Kind: ast.KindImport, Text: "import { Foo } from './foo';"},
		{Kind: ast.KindFunction, Name: "run", IsExported: true, Text: "export declare function run(): void;"},
		{Kind: ast.KindExport, Name: ast.DefaultExportName, Text: "export default run;"},
	}
	out := Emit(decls, false)
	want := "/// <reference types=\"node\" />\n\n" +
		"import { Foo } from './foo';\n\n" +
		"export declare function run(): void;\n\n" +
		"export default run;\n"
	assertEqual(t, out, want)
}

func TestEmitFinalizesVariableType(t *testing.T) {
	decls := []*ast.Declaration{
		{
			Kind: ast.KindVariable, Name: "port", IsExported: true,
			Text: "export declare let port", Value: "3000",
		},
	}
	out := Emit(decls, false)
	assertEqual(t, out, "export declare let port: number;\n")
}

func TestEmitFinalizesConstLiteralVariable(t *testing.T) {
	decls := []*ast.Declaration{
		{
			Kind: ast.KindVariable, Name: "name", IsExported: true,
			Text: "export declare const name", Value: `"dtsgo"`,
			Modifiers: []ast.Modifier{ast.ModConst},
		},
	}
	out := Emit(decls, false)
	assertEqual(t, out, `export declare const name: "dtsgo";`+"\n")
}

func TestEmitKeepsComments(t *testing.T) {
	decls := []*ast.Declaration{
		{
			Kind: ast.KindFunction, Name: "run", IsExported: true,
			Text:            "export declare function run(): void;",
			LeadingComments: []string{"/** Runs the thing. */"},
		},
	}
	out := Emit(decls, true)
	assertEqual(t, out, "/** Runs the thing. */\nexport declare function run(): void;\n")
}

func TestEmitEmptyProducesEmptyString(t *testing.T) {
	out := Emit(nil, false)
	assertEqual(t, out, "")
}

func TestEmitValueReexportBeforeDefault(t *testing.T) {
	decls := []*ast.Declaration{
		{Kind: ast.KindExport, Source: "./a", Text: "export { a } from './a';"},
		{Kind: ast.KindExport, Name: ast.DefaultExportName, Text: "export default a;"},
	}
	out := Emit(decls, false)
	assertEqual(t, out, "export { a } from './a';\n\nexport default a;\n")
}
