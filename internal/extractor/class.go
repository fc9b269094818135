package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/logger"
)

func parseClass(src string, i int, mods []ast.Modifier, exported bool, source logger.Source, log *logger.Log) (*ast.Declaration, int) {
	i = skipBlank(src, i+len("class"))
	name, j := scanIdentifier(src, i)
	i = skipBlank(src, j)

	generics := ""
	if i < len(src) && src[i] == '<' {
		end := skipGenericsAt(src, i)
		generics = src[i:end]
		i = skipBlank(src, end)
	}

	headerStop, _ := findFirstTopLevelAny(src, i, '{')
	if headerStop < 0 {
		return nil, i
	}
	header := strings.TrimSpace(src[i:headerStop])

	extendsClause, implementsClause := "", ""
	if idx := findWordTopLevel(header, "implements"); idx >= 0 {
		extPart := strings.TrimSpace(header[:idx])
		if strings.HasPrefix(extPart, "extends") {
			extendsClause = extPart
		}
		implementsClause = strings.TrimSpace(header[idx:])
	} else if strings.HasPrefix(header, "extends") {
		extendsClause = header
	}

	close := matchBalanced(src, headerStop, '{', '}')
	if close < 0 {
		close = len(src) - 1
	}
	bodyInner := src[headerStop+1 : close]

	members := parseClassMembers(bodyInner)

	prefix := ""
	if exported {
		prefix += "export "
	}
	prefix += "declare "
	for _, m := range mods {
		if m == ast.ModAbstract {
			prefix += "abstract "
		}
	}
	prefix += "class " + name + generics
	if extendsClause != "" {
		prefix += " " + extendsClause
	}
	if implementsClause != "" {
		prefix += " " + implementsClause
	}

	var lines []string
	for _, m := range members {
		lines = append(lines, m.Text)
	}
	var text string
	if len(lines) == 0 {
		text = prefix + " {}"
	} else {
		text = prefix + " {\n  " + strings.Join(lines, "\n  ") + "\n}"
	}

	d := &ast.Declaration{
		Kind:       ast.KindClass,
		Name:       name,
		Text:       text,
		Generics:   generics,
		Extends:    extendsClause,
		Implements: implementsClause,
		IsExported: exported,
		Modifiers:  mods,
		Members:    members,
	}
	return d, close + 1
}

func findWordTopLevel(s, w string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && wordAt(s, i, w) {
			return i
		}
	}
	return -1
}

var classModifierWords = []string{"public", "protected", "private", "static", "readonly", "abstract", "override", "declare"}

// parseClassMembers walks a class body and returns the surviving (public,
// non-constructor-erased) members as Declarations whose Text is one
// complete member line, ready to be joined by the caller. Private members
// (the `private` modifier or a `#`-named member) are dropped entirely, per
// §4.2's class contract.
func parseClassMembers(body string) []*ast.Declaration {
	var out []*ast.Declaration
	i := 0
	for {
		comments, afterComments := collectLeadingComments(body, i)
		k := skipBlank(body, afterComments)
		if k >= len(body) {
			break
		}

		// Decorators: skipped and not reflected in the emitted member text
		// (the core does no decorator evaluation; decorators are dropped
		// from members the same way bodies are, since members only keep
		// their type-level shape).
		for k < len(body) && body[k] == '@' {
			start := k
			k++
			_, k2 := scanIdentifier(body, k)
			k = k2
			for k < len(body) && body[k] == '.' {
				_, k3 := scanIdentifier(body, k+1)
				k = k3
			}
			if k < len(body) && body[k] == '(' {
				cp := matchBalanced(body, k, '(', ')')
				if cp >= 0 {
					k = cp + 1
				}
			}
			_ = start
			k = skipBlank(body, k)
		}

		if wordAt(body, k, "static") && skipBlank(body, k+len("static")) < len(body) && body[skipBlank(body, k+len("static"))] == '{' {
			braceStart := skipBlank(body, k+len("static"))
			close := matchBalanced(body, braceStart, '{', '}')
			if close < 0 {
				close = len(body) - 1
			}
			i = close + 1
			continue
		}

		mods, isPrivateKeyword, k2 := collectMemberModifiers(body, k)
		k = k2

		isGetter, isSetter := false, false
		if wordAt(body, k, "get") && isAccessorFollows(body, k+len("get")) {
			isGetter = true
			k = skipBlank(body, k+len("get"))
		} else if wordAt(body, k, "set") && isAccessorFollows(body, k+len("set")) {
			isSetter = true
			k = skipBlank(body, k+len("set"))
		}

		isAsyncMember := false
		if wordAt(body, k, "async") {
			isAsyncMember = true
			k = skipBlank(body, k+len("async"))
		}
		isGenerator := false
		if k < len(body) && body[k] == '*' {
			isGenerator = true
			k = skipBlank(body, k+1)
		}

		isPrivateName := false
		var name string
		var n2 int
		switch {
		case k < len(body) && body[k] == '#':
			isPrivateName = true
			nm, nn := scanIdentifier(body, k+1)
			name = "#" + nm
			n2 = nn
		case k < len(body) && (body[k] == '\'' || body[k] == '"'):
			end := skipStringOrTemplateAt(body, k)
			name = body[k:end]
			n2 = end
		case k < len(body) && body[k] == '[':
			end := matchBalanced(body, k, '[', ']')
			if end < 0 {
				end = len(body) - 1
			}
			name = body[k : end+1]
			n2 = end + 1
		case wordAt(body, k, "constructor"):
			name = "constructor"
			n2 = k + len("constructor")
		default:
			nm, nn := scanIdentifier(body, k)
			if nm == "" {
				// Unrecognized token; skip one byte to avoid an infinite loop.
				i = k + 1
				continue
			}
			name = nm
			n2 = nn
		}
		k = n2

		optional := false
		if k < len(body) && body[k] == '?' {
			optional = true
			k++
		}
		if k < len(body) && body[k] == '!' {
			k++
		}

		k = skipBlank(body, k)
		generics := ""
		if k < len(body) && body[k] == '<' && name != "constructor" {
			end := skipGenericsAt(body, k)
			generics = body[k:end]
			k = skipBlank(body, end)
		}

		isPrivate := isPrivateKeyword || isPrivateName
		var memberText string
		var nextIdx int

		if k < len(body) && body[k] == '(' {
			closeParen := matchBalanced(body, k, '(', ')')
			if closeParen < 0 {
				closeParen = len(body) - 1
			}
			params := body[k+1 : closeParen]
			kk := skipBlank(body, closeParen+1)
			returnType := ""
			hasBody := false
			if kk < len(body) && body[kk] == ':' {
				kk++
				kk = skipBlank(body, kk)
				stop, which := findFirstTopLevelAny(body, kk, '{', ';')
				if stop < 0 {
					returnType = strings.TrimSpace(body[kk:])
					kk = len(body)
				} else {
					returnType = strings.TrimSpace(body[kk:stop])
					kk = stop
					hasBody = which == '{'
				}
			} else {
				stop, which := findFirstTopLevelAny(body, kk, '{', ';')
				if stop >= 0 {
					kk = stop
					hasBody = which == '{'
				}
			}
			if hasBody && kk < len(body) && body[kk] == '{' {
				cl := matchBalanced(body, kk, '{', '}')
				if cl < 0 {
					cl = len(body) - 1
				}
				nextIdx = cl + 1
			} else if kk < len(body) && body[kk] == ';' {
				nextIdx = kk + 1
			} else {
				nextIdx = kk
			}

			if name == "constructor" {
				fieldsFromParamProps := extractParamProperties(params)
				if !isPrivate {
					out = append(out, &ast.Declaration{Kind: ast.KindFunction, Name: name, Text: buildMemberLine(mods, "", name, "", cleanParams(params), "", false, false), LeadingComments: commentTexts(comments)})
				}
				for _, f := range fieldsFromParamProps {
					out = append(out, f)
				}
				i = nextIdx
				continue
			}

			sig := name + optionalMarker(optional) + generics
			line := buildMemberLine(mods, accessorPrefix(isGetter, isSetter), sig, returnTypeOrDefault(returnType, isGetter, isSetter), cleanParams(params), "", isAsyncMember, isGenerator)
			memberText = line
			if !isPrivate {
				out = append(out, &ast.Declaration{
					Kind:            ast.KindFunction,
					Name:            name,
					Text:            memberText,
					LeadingComments: commentTexts(comments),
					Modifiers:       mods,
				})
			}
			i = nextIdx
			continue
		}

		// Field.
		annotation := ""
		if k < len(body) && body[k] == ':' {
			k++
			k = skipBlank(body, k)
			eq := findAssignmentEquals(body, k)
			stopSemi, _ := findFirstTopLevelAny(body, k, ';')
			end := stopSemi
			if eq >= 0 && (end < 0 || eq < end) {
				annotation = strings.TrimSpace(body[k:eq])
			} else if end >= 0 {
				annotation = strings.TrimSpace(body[k:end])
			} else {
				annotation = strings.TrimSpace(body[k:])
			}
		}
		semi, _ := findFirstTopLevelAny(body, k, ';')
		if semi < 0 {
			semi = len(body)
			nextIdx = semi
		} else {
			nextIdx = semi + 1
		}

		if annotation == "" {
			annotation = "any"
		}
		fieldLine := name + optionalMarker(optional) + ": " + annotation + ";"
		fieldLine = prependModifiers(mods, fieldLine)

		if !isPrivate {
			out = append(out, &ast.Declaration{
				Kind:            ast.KindVariable,
				Name:            name,
				Text:            fieldLine,
				TypeAnnotation:  annotation,
				LeadingComments: commentTexts(comments),
				Modifiers:       mods,
			})
		}
		i = nextIdx
	}
	return out
}

func isAccessorFollows(body string, i int) bool {
	i = skipBlank(body, i)
	if i >= len(body) {
		return false
	}
	if !isIdentStartByte(body[i]) && body[i] != '#' && body[i] != '\'' && body[i] != '"' && body[i] != '[' {
		return false
	}
	_, end := scanIdentifier(body, i)
	if end == i {
		// quoted/computed name: approximate by scanning to next '('
		idx := strings.IndexByte(body[i:], '(')
		return idx >= 0
	}
	end = skipBlank(body, end)
	return end < len(body) && body[end] == '('
}

func collectMemberModifiers(body string, k int) (mods []ast.Modifier, isPrivate bool, next int) {
	for {
		matched := false
		for _, w := range classModifierWords {
			if wordAt(body, k, w) {
				after := skipBlank(body, k+len(w))
				// Don't consume a modifier word that is actually the
				// member's own name (i.e. nothing sensible follows).
				if after >= len(body) || (!isIdentStartByte(body[after]) && body[after] != '#' && body[after] != '(' && body[after] != '?' && body[after] != ':' && body[after] != '\'' && body[after] != '"' && body[after] != '[' && body[after] != '*') {
					continue
				}
				mods = append(mods, ast.Modifier(w))
				if w == "private" {
					isPrivate = true
				}
				k = after
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	return mods, isPrivate, k
}

func accessorPrefix(isGetter, isSetter bool) string {
	if isGetter {
		return "get "
	}
	if isSetter {
		return "set "
	}
	return ""
}

func optionalMarker(optional bool) string {
	if optional {
		return "?"
	}
	return ""
}

// returnTypeOrDefault fills in a return type for members that lack an
// explicit annotation. Setters never get one: TS1095 forbids a return-type
// clause on a `set` accessor, so a setter's emitted signature has no
// ": Type" at all regardless of what the source wrote.
func returnTypeOrDefault(rt string, isGetter, isSetter bool) string {
	if isSetter {
		return ""
	}
	if rt != "" {
		return rt
	}
	if isGetter {
		return "any"
	}
	return "void"
}

func buildMemberLine(mods []ast.Modifier, accessorKw, nameAndGenerics, returnType, params, _ string, isAsync, isGenerator bool) string {
	var b strings.Builder
	for _, m := range mods {
		if m == "declare" {
			continue
		}
		b.WriteString(string(m))
		b.WriteString(" ")
	}
	if isAsync {
		b.WriteString("async ")
	}
	b.WriteString(accessorKw)
	b.WriteString(nameAndGenerics)
	if isGenerator {
		// Generators get no '*' in the emitted signature: a bodiless
		// signature cannot be a generator, so only the return type remains.
	}
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString(")")
	if nameAndGenerics != "constructor" && returnType != "" {
		b.WriteString(": ")
		b.WriteString(returnType)
	}
	b.WriteString(";")
	return b.String()
}

func prependModifiers(mods []ast.Modifier, line string) string {
	var b strings.Builder
	for _, m := range mods {
		if m == "declare" {
			continue
		}
		b.WriteString(string(m))
		b.WriteString(" ")
	}
	b.WriteString(line)
	return b.String()
}

// extractParamProperties scans a constructor's parameter list for
// parameter-property modifiers (public/private/readonly/protected) and
// emits the corresponding class field declaration for each, per §4.2's
// "constructor parameter properties ... emit the corresponding class
// field" rule. Properties marked `private` are omitted like any other
// private member.
func extractParamProperties(params string) []*ast.Declaration {
	var out []*ast.Declaration
	for _, raw := range splitTopLevelCommas(params) {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		mods, isPrivate, k := collectMemberModifiers(p, 0)
		if len(mods) == 0 {
			continue
		}
		name, n2 := scanIdentifier(p, k)
		if name == "" {
			continue
		}
		k = n2
		optional := false
		if k < len(p) && p[k] == '?' {
			optional = true
			k++
		}
		annotation := "any"
		if k < len(p) && p[k] == ':' {
			k++
			k = skipBlank(p, k)
			eq := findAssignmentEquals(p, k)
			if eq < 0 {
				annotation = strings.TrimSpace(p[k:])
			} else {
				annotation = strings.TrimSpace(p[k:eq])
			}
		}
		if isPrivate {
			continue
		}
		line := prependModifiers(filterOutAccessMod(mods), name+optionalMarker(optional)+": "+annotation+";")
		out = append(out, &ast.Declaration{Kind: ast.KindVariable, Name: name, Text: line, TypeAnnotation: annotation})
	}
	return out
}

func filterOutAccessMod(mods []ast.Modifier) []ast.Modifier {
	out := make([]ast.Modifier, 0, len(mods))
	for _, m := range mods {
		if m == ast.ModPrivate {
			continue
		}
		out = append(out, m)
	}
	return out
}
