package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

var variableKeywords = []string{"const", "let", "var"}

func parseVariable(src string, i int, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	var keyword string
	for _, kw := range variableKeywords {
		if wordAt(src, i, kw) {
			keyword = kw
			break
		}
	}
	i2 := skipBlank(src, i+len(keyword))

	end := findTopLevelByte(src, i2, ';')
	var stmt string
	var next int
	if end < 0 {
		e := i2
		for e < len(src) && src[e] != '\n' {
			e++
		}
		stmt = src[i2:e]
		next = e
	} else {
		stmt = src[i2:end]
		next = end + 1
	}

	name, annotation, value, hasValue := splitDeclarator(stmt)

	d := &ast.Declaration{
		Kind:           ast.KindVariable,
		Name:           name,
		TypeAnnotation: annotation,
		Value:          value,
		IsExported:     exported,
		Modifiers:      mods,
	}
	d.AddModifier(ast.Modifier(keyword))
	prefix := ""
	if exported {
		prefix += "export "
	}
	prefix += "declare " + keyword + " " + name
	d.Text = prefix
	if !hasValue && annotation == "" {
		// ambient `declare const x;` with neither annotation nor value: the
		// emitter will fall back to `any` per the inferencer's annotation
		// policy for "no annotation, inference returns empty."
	}
	return d, next
}

// splitDeclarator parses "NAME[: Annotation][ = Value]" (without the
// trailing keyword/semicolon, which the caller has already stripped).
func splitDeclarator(stmt string) (name, annotation, value string, hasValue bool) {
	i := skipBlank(stmt, 0)
	if i < len(stmt) && (stmt[i] == '{' || stmt[i] == '[') {
		open := stmt[i]
		close := byte('}')
		if open == '[' {
			close = ']'
		}
		j := matchBalanced(stmt, i, open, close)
		if j < 0 {
			j = len(stmt) - 1
		}
		name = strings.TrimSpace(stmt[i : j+1])
		i = j + 1
	} else {
		nm, j := scanIdentifier(stmt, i)
		name = nm
		i = j
	}
	i = skipBlank(stmt, i)
	if i < len(stmt) && stmt[i] == '!' {
		i++
		i = skipBlank(stmt, i)
	}
	if i < len(stmt) && stmt[i] == ':' {
		i++
		i = skipBlank(stmt, i)
		eq := findAssignmentEquals(stmt, i)
		if eq < 0 {
			annotation = strings.TrimSpace(stmt[i:])
			return
		}
		annotation = strings.TrimSpace(stmt[i:eq])
		i = eq
	}
	i = skipBlank(stmt, i)
	eq := findAssignmentEquals(stmt, i)
	if eq < 0 {
		return
	}
	value = strings.TrimSpace(stmt[eq+1:])
	hasValue = true
	return
}

// findAssignmentEquals finds the '=' that separates a declarator's
// name/annotation from its initializer, distinguishing it from '==', '===',
// '<=', '>=', '!=', and '=>' and skipping over parenthesized/bracketed/
// braced spans (so an arrow function's own '=>' inside a type annotation,
// e.g. "x: (a: number) => void = ...", is not mistaken for the assignment).
func findAssignmentEquals(src string, i int) int {
	depthParen, depthBrace, depthBracket := 0, 0, 0
	for i < len(src) {
		c := src[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(src, i)
			continue
		case c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipTrivia(src, i)
			continue
		case c == '(':
			depthParen++
		case c == ')':
			depthParen--
		case c == '[':
			depthBracket++
		case c == ']':
			depthBracket--
		case c == '{':
			depthBrace++
		case c == '}':
			depthBrace--
		case c == '=' && depthParen == 0 && depthBrace == 0 && depthBracket == 0:
			var prev, next byte
			if i > 0 {
				prev = src[i-1]
			}
			if i+1 < len(src) {
				next = src[i+1]
			}
			if next == '>' || next == '=' || prev == '!' || prev == '<' || prev == '>' || prev == '=' {
				i++
				continue
			}
			return i
		}
		i++
	}
	return -1
}
