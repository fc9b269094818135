package extractor

import "github.com/stacksjs/dtsgo/internal/ast"

func parseEnum(src string, i int, mods []ast.Modifier, exported, isConst bool) (*ast.Declaration, int) {
	if isConst {
		i = skipBlank(src, i+len("const"))
	}
	i = skipBlank(src, i+len("enum"))
	name, j := scanIdentifier(src, i)
	i = skipBlank(src, j)
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
	prefix += "declare "
	if isConst {
		prefix += "const "
	}
	prefix += "enum " + name + " " + body

	d := &ast.Declaration{
		Kind:       ast.KindEnum,
		Name:       name,
		Text:       prefix,
		IsExported: exported,
		Modifiers:  mods,
	}
	if isConst {
		d.AddModifier(ast.ModConst)
	}
	return d, close + 1
}
