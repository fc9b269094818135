package inferencer

import "strings"

// inferFunctionExpr covers rule 10: arrow functions and function
// expressions. The signature is rebuilt from the parameter list and any
// explicit return-type annotation; parameter defaults are stripped and
// turned into optional markers the same way the extractor treats them for
// `function` declarations, and untyped parameters fall back to `unknown`.
func inferFunctionExpr(value string, depth int) (string, bool) {
	isAsync := false
	rest := value
	if strings.HasPrefix(rest, "async ") {
		isAsync = true
		rest = strings.TrimSpace(rest[len("async "):])
	}

	if strings.HasPrefix(rest, "function") {
		return inferFunctionKeyword(rest, isAsync)
	}
	return inferArrow(rest, isAsync, depth)
}

func inferFunctionKeyword(rest string, isAsync bool) (string, bool) {
	i := len("function")
	i = skipWS(rest, i)
	if i < len(rest) && rest[i] == '*' {
		i = skipWS(rest, i+1)
	}
	_, j := scanIdentifier(rest, i)
	i = skipWS(rest, j)
	if i >= len(rest) || rest[i] != '(' {
		return "", false
	}
	close := matchBalanced(rest, i, '(', ')')
	if close < 0 {
		return "", false
	}
	params := rest[i+1 : close]
	i = skipWS(rest, close+1)
	ret := ""
	if i < len(rest) && rest[i] == ':' {
		stop, _ := findFirstTopLevelAnyInf(rest, i+1, '{')
		if stop < 0 {
			ret = strings.TrimSpace(rest[i+1:])
		} else {
			ret = strings.TrimSpace(rest[i+1 : stop])
		}
	}
	if ret == "" {
		ret = "void"
	}
	if isAsync && !strings.HasPrefix(ret, "Promise<") {
		ret = "Promise<" + ret + ">"
	}
	return "(" + signatureParams(params) + ") => " + ret, true
}

func inferArrow(rest string, isAsync bool, depth int) (string, bool) {
	i := 0
	var params string
	if i < len(rest) && rest[i] == '(' {
		close := matchBalanced(rest, i, '(', ')')
		if close < 0 {
			return "", false
		}
		params = rest[i+1 : close]
		i = skipWS(rest, close+1)
	} else {
		name, j := scanIdentifier(rest, i)
		if name == "" {
			return "", false
		}
		params = name
		i = skipWS(rest, j)
	}

	ret := ""
	if i < len(rest) && rest[i] == ':' {
		stop := findTopLevelArrow(rest, i+1)
		if stop < 0 {
			return "", false
		}
		ret = strings.TrimSpace(rest[i+1 : stop])
		i = stop
	}
	if i+1 >= len(rest) || rest[i] != '=' || rest[i+1] != '>' {
		return "", false
	}
	i += 2
	i = skipWS(rest, i)
	body := strings.TrimSpace(rest[i:])

	if ret == "" {
		ret = inferArrowReturn(body, isAsync, depth)
	}
	if isAsync && !strings.HasPrefix(ret, "Promise<") {
		ret = "Promise<" + ret + ">"
	}
	return "(" + signatureParams(params) + ") => " + ret, true
}

// inferArrowReturn infers an un-annotated arrow's return type from its
// body: a block body (no return-type annotation) can't be narrowed without
// control-flow analysis, so it falls back to `void`; an expression body is
// inferred like any other expression.
func inferArrowReturn(body string, isAsync bool, depth int) string {
	if strings.HasPrefix(body, "{") {
		return "void"
	}
	return inferDepth(body, false, depth+1)
}

// signatureParams rewrites a raw parameter list into one suitable for a
// type-position function signature: defaults become optional markers,
// untyped parameters get an explicit `unknown` annotation since a bare
// name isn't valid in a type signature.
func signatureParams(params string) string {
	parts := splitTopLevelCommas(params)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "...") {
			out = append(out, rewriteSingleParam(p[3:], true))
			continue
		}
		out = append(out, rewriteSingleParam(p, false))
	}
	return strings.Join(out, ", ")
}

func rewriteSingleParam(p string, isRest bool) string {
	eq := -1
	depth := 0
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(p, i) - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '=' && depth == 0 && !isCompareEq(p, i):
			eq = i
		}
	}
	name := p
	optional := false
	if eq >= 0 {
		name = strings.TrimSpace(p[:eq])
		optional = true
	}
	colon := strings.Index(name, ":")
	prefix := ""
	if isRest {
		prefix = "..."
	}
	if colon < 0 {
		marker := ""
		if optional {
			marker = "?"
		}
		return prefix + strings.TrimSpace(name) + marker + ": unknown"
	}
	ident := strings.TrimSpace(name[:colon])
	typ := strings.TrimSpace(name[colon+1:])
	if optional && !strings.HasSuffix(ident, "?") {
		ident += "?"
	}
	return prefix + ident + ": " + typ
}

func isCompareEq(s string, i int) bool {
	if i+1 < len(s) && s[i+1] == '=' {
		return true
	}
	if i+1 < len(s) && s[i+1] == '>' {
		return true
	}
	if i > 0 && (s[i-1] == '=' || s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>') {
		return true
	}
	return false
}

func skipWS(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// findTopLevelArrow finds the `=>` that closes an arrow function's
// parameter/return-type header, skipping over any nested generics, unions,
// or object/function types in the return-type annotation.
func findTopLevelArrow(s string, from int) int {
	depth := 0
	for i := from; i+1 < len(s); i++ {
		c := s[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(s, i) - 1
		case c == '(' || c == '[' || c == '{' || c == '<':
			depth++
		case c == ')' || c == ']' || c == '}' || c == '>':
			depth--
		case c == '=' && s[i+1] == '>' && depth == 0:
			return i
		}
	}
	return -1
}

// findFirstTopLevelAnyInf is a local copy of extractor's
// findFirstTopLevelAny sized for this package's narrower needs (a single
// target byte).
func findFirstTopLevelAnyInf(s string, from int, target byte) (int, byte) {
	depth := 0
	for i := from; i < len(s); i++ {
		c := s[i]
		if isStringOrTemplateStart(c) {
			i = skipStringOrTemplateAt(s, i) - 1
			continue
		}
		if depth == 0 && c == target {
			return i, c
		}
		switch c {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		}
	}
	return -1, 0
}
