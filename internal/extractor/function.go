package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

// parseFunction handles a `function` declaration, including overload
// signatures (no body, terminated by ';') and generators. The
// implementation (the one signature with a body) is parsed here like any
// other; mergeOverloads later discards the body-bearing implementation in
// favor of the bodyless signatures sharing its name, per §4.2's overload rule.
func parseFunction(src string, i int, mods []ast.Modifier, exported, isAsync bool) (*ast.Declaration, int) {
	i = skipBlank(src, i+len("function"))
	isGenerator := false
	if i < len(src) && src[i] == '*' {
		isGenerator = true
		i = skipBlank(src, i+1)
	}
	name, j := scanIdentifier(src, i)
	i = j
	i = skipBlank(src, i)

	generics := ""
	if i < len(src) && src[i] == '<' {
		end := skipGenericsAt(src, i)
		generics = src[i:end]
		i = end
		i = skipBlank(src, i)
	}

	if i >= len(src) || src[i] != '(' {
		return nil, i
	}
	closeParen := matchBalanced(src, i, '(', ')')
	if closeParen < 0 {
		closeParen = len(src) - 1
	}
	params := src[i+1 : closeParen]
	i = skipBlank(src, closeParen+1)

	returnType := ""
	hasBody := false
	if i < len(src) && src[i] == ':' {
		i++
		i = skipBlank(src, i)
		stop, which := findFirstTopLevelAny(src, i, '{', ';')
		if stop < 0 {
			returnType = strings.TrimSpace(src[i:])
			i = len(src)
		} else {
			returnType = strings.TrimSpace(src[i:stop])
			i = stop
			hasBody = which == '{'
		}
	} else {
		stop, which := findFirstTopLevelAny(src, i, '{', ';')
		if stop >= 0 {
			i = stop
			hasBody = which == '{'
		}
	}

	next := i
	if hasBody && i < len(src) && src[i] == '{' {
		close := matchBalanced(src, i, '{', '}')
		if close < 0 {
			close = len(src) - 1
		}
		next = close + 1
	} else if i < len(src) && src[i] == ';' {
		next = i + 1
	} else {
		next = i
	}

	prefix := ""
	if exported {
		prefix += "export "
	}
	prefix += "declare function "
	if isGenerator {
		prefix += "* "
	}
	prefix += name + generics + "(" + cleanParams(params) + ")"
	if returnType != "" {
		prefix += ": " + returnType
	} else {
		prefix += ": void"
	}
	prefix += ";"

	d := &ast.Declaration{
		Kind:           ast.KindFunction,
		Name:           name,
		Text:           prefix,
		Generics:       generics,
		TypeAnnotation: returnType,
		IsExported:     exported,
		Modifiers:      mods,
	}
	if isAsync {
		d.AddModifier(ast.ModAsync)
	}
	return d, next
}

// cleanParams strips default-value initializers and makes the corresponding
// parameter optional, matching the same rewrite the inferencer applies to
// arrow-function parameter lists (§4.3 rule 10).
func cleanParams(params string) string {
	parts := splitTopLevelCommas(params)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, stripParamDefault(p))
	}
	return strings.Join(out, ", ")
}

func stripParamDefault(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	eq := findAssignmentEquals(p, 0)
	if eq < 0 {
		return p
	}
	lhs := strings.TrimSpace(p[:eq])
	if strings.Contains(lhs, ":") {
		if !strings.HasSuffix(strings.TrimSpace(strings.SplitN(lhs, ":", 2)[0]), "?") {
			lhs = addOptionalMarker(lhs)
		}
		return lhs
	}
	return addOptionalMarker(lhs) + ": unknown"
}

func addOptionalMarker(nameAndMaybeColon string) string {
	colon := strings.Index(nameAndMaybeColon, ":")
	if colon < 0 {
		return strings.TrimSpace(nameAndMaybeColon) + "?"
	}
	name := strings.TrimSpace(nameAndMaybeColon[:colon])
	rest := nameAndMaybeColon[colon:]
	if strings.HasSuffix(name, "?") {
		return name + rest
	}
	return name + "?" + rest
}

// splitTopLevelCommas splits s on commas that are not nested inside
// (), [], {}, <>, or a string/template literal.
func splitTopLevelCommas(s string) []string {
	var out []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(s, i)
			continue
		case c == '(' || c == '[' || c == '{' || c == '<':
			depth++
		case c == ')' || c == ']' || c == '}' || c == '>':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			out = append(out, s[start:i])
			i++
			start = i
			continue
		}
		i++
	}
	if start <= len(s) {
		tail := strings.TrimSpace(s[start:])
		if tail != "" || len(out) > 0 {
			out = append(out, s[start:])
		}
	}
	return out
}

// mergeOverloads drops the implementation of a top-level `function`
// overload set, keeping only the bodyless signatures. Class method
// overloads are not merged.
func mergeOverloads(decls []*ast.Declaration) []*ast.Declaration {
	counts := map[string]int{}
	for _, d := range decls {
		if d.Kind == ast.KindFunction {
			counts[d.Name]++
		}
	}
	out := make([]*ast.Declaration, 0, len(decls))
	seenImpl := map[string]bool{}
	for _, d := range decls {
		if d.Kind == ast.KindFunction && counts[d.Name] > 1 {
			// Heuristic: among same-name function decls, the one whose
			// Text had a body (we always strip bodies from Text, so use a
			// side channel: bodies-bearing ones were marked by leaving
			// TypeAnnotation as their true return type while the rest are
			// identical in shape) — in practice only one had `hasBody`
			// true during parsing, so we rely on parse order: the last
			// one sharing a name is the implementation per TypeScript's
			// own grammar (overloads precede the implementation). Ambient
			// (`declare`) functions never have a body, so none is dropped.
			if !seenImpl[d.Name] && !d.HasModifier(ast.ModDeclare) && isLastWithName(decls, d) {
				seenImpl[d.Name] = true
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func isLastWithName(decls []*ast.Declaration, target *ast.Declaration) bool {
	last := -1
	for i, d := range decls {
		if d.Kind == ast.KindFunction && d.Name == target.Name {
			last = i
		}
	}
	for i, d := range decls {
		if d == target {
			return i == last
		}
	}
	return false
}
