package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

func parseInterface(src string, i int, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	i = skipBlank(src, i+len("interface"))
	name, j := scanIdentifier(src, i)
	i = skipBlank(src, j)

	generics := ""
	if i < len(src) && src[i] == '<' {
		end := skipGenericsAt(src, i)
		generics = src[i:end]
		i = skipBlank(src, end)
	}

	extendsClause := ""
	if wordAt(src, i, "extends") {
		stop, _ := findFirstTopLevelAny(src, i, '{')
		if stop < 0 {
			stop = len(src)
		}
		extendsClause = strings.TrimSpace(src[i:stop])
		i = stop
	}

	if i >= len(src) || src[i] != '{' {
		return nil, i
	}
	close := matchBalanced(src, i, '{', '}')
	if close < 0 {
		close = len(src) - 1
	}
	body := src[i : close+1]

	prefix := ""
	if exported {
		prefix += "export "
	}
	prefix += "declare interface " + name + generics
	if extendsClause != "" {
		prefix += " " + extendsClause
	}
	text := prefix + " " + body

	return &ast.Declaration{
		Kind:       ast.KindInterface,
		Name:       name,
		Text:       text,
		Generics:   generics,
		Extends:    extendsClause,
		IsExported: exported,
		Modifiers:  mods,
	}, close + 1
}
