package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

func parseTypeAlias(src string, i int, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	i = skipBlank(src, i+len("type"))
	name, j := scanIdentifier(src, i)
	i = skipBlank(src, j)

	generics := ""
	if i < len(src) && src[i] == '<' {
		end := skipGenericsAt(src, i)
		generics = src[i:end]
		i = skipBlank(src, end)
	}

	if i >= len(src) || src[i] != '=' {
		return nil, i
	}
	i = skipBlank(src, i+1)

	end := findTopLevelByte(src, i, ';')
	var typeText string
	var next int
	if end < 0 {
		e := i
		for e < len(src) && src[e] != '\n' {
			e++
		}
		typeText = strings.TrimSpace(src[i:e])
		next = e
	} else {
		typeText = strings.TrimSpace(src[i:end])
		next = end + 1
	}

	prefix := ""
	if exported {
		prefix += "export "
	}
	hasDeclare := false
	for _, m := range mods {
		if m == ast.ModDeclare {
			hasDeclare = true
		}
	}
	if hasDeclare {
		prefix += "declare "
	}
	text := prefix + "type " + name + generics + " = " + typeText + ";"

	return &ast.Declaration{
		Kind:       ast.KindType,
		Name:       name,
		Text:       text,
		Generics:   generics,
		IsExported: exported,
		Modifiers:  mods,
	}, next
}
