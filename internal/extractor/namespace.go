package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

// parseNamespace handles `namespace N { ... }`, `module N { ... }`, and
// quoted-name ambient modules `module "spec" { ... }`. Quoted modules are
// passed through verbatim (their contents describe an external module's
// shape and are not "our" declarations to re-derive types for); named
// namespaces capture their inner source into RawBody for the core pipeline
// to recursively run through Extract/Infer/Emit, per §4.2.
func parseNamespace(src string, i int, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	isModuleKeyword := wordAt(src, i, "module")
	kw := "namespace"
	if isModuleKeyword {
		kw = "module"
	}
	i = skipBlank(src, i+len(kw))

	if i < len(src) && (src[i] == '\'' || src[i] == '"') {
		end := skipStringOrTemplateAt(src, i)
		spec := src[i+1 : end-1]
		i = skipBlank(src, end)
		if i >= len(src) || src[i] != '{' {
			return nil, i
		}
		close := matchBalanced(src, i, '{', '}')
		if close < 0 {
			close = len(src) - 1
		}
		text := "declare module '" + spec + "' " + src[i:close+1]
		return &ast.Declaration{
			Kind:      ast.KindModule,
			Name:      spec,
			Text:      text,
			Modifiers: []ast.Modifier{ast.ModDeclare},
		}, close + 1
	}

	name, j := scanIdentifier(src, i)
	for j < len(src) && src[j] == '.' {
		sub, j2 := scanIdentifier(src, j+1)
		name = name + "." + sub
		j = j2
	}
	i = skipBlank(src, j)
	if i >= len(src) || src[i] != '{' {
		return nil, i
	}
	close := matchBalanced(src, i, '{', '}')
	if close < 0 {
		close = len(src) - 1
	}
	body := strings.TrimSpace(src[i+1 : close])

	d := &ast.Declaration{
		Kind:       ast.KindModule,
		Name:       name,
		IsExported: exported,
		Modifiers:  mods,
		RawBody:    body,
	}
	d.AddModifier(ast.ModDeclare)
	return d, close + 1
}
