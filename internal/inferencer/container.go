package inferencer

import "strings"

// inferArray covers rule 7: array literals. Under `as const` each element
// keeps its own const-narrowed type and the result is a readonly tuple;
// otherwise elements are inferred normally and unioned into a single
// element type.
func inferArray(value string, isConst bool, depth int) (string, bool) {
	if len(value) < 2 || value[0] != '[' {
		return "", false
	}
	close := matchBalanced(value, 0, '[', ']')
	if close < 0 || close != len(value)-1 {
		return "", false
	}
	inner := strings.TrimSpace(value[1:close])
	if inner == "" {
		if isConst {
			return "readonly []", true
		}
		return "unknown[]", true
	}
	elems := splitTopLevelCommas(inner)
	types := make([]string, 0, len(elems))
	for _, e := range elems {
		types = append(types, inferDepth(strings.TrimSpace(e), isConst, depth+1))
	}
	if isConst {
		return "readonly [" + strings.Join(types, ", ") + "]", true
	}
	return "(" + unionOf(types) + ")[]", true
}

// inferObject covers rule 8: object literals. Each property's value is
// inferred recursively; under `as const` properties become readonly and
// keep their narrow literal types.
func inferObject(value string, isConst bool, depth int) (string, bool) {
	if len(value) < 2 || value[0] != '{' {
		return "", false
	}
	close := matchBalanced(value, 0, '{', '}')
	if close < 0 || close != len(value)-1 {
		return "", false
	}
	inner := strings.TrimSpace(value[1:close])
	if inner == "" {
		return "Record<string, never>", true
	}
	props := splitTopLevelCommas(inner)
	var sb strings.Builder
	sb.WriteString("{ ")
	wrote := false
	for _, p := range props {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "...") {
			// spread: can't statically resolve without a type checker, fall
			// back to an index signature rather than drop the member.
			if wrote {
				sb.WriteString("; ")
			}
			sb.WriteString("[key: string]: unknown")
			wrote = true
			continue
		}
		key, val, isMethod, ok := splitObjectProperty(p)
		if !ok {
			continue
		}
		if wrote {
			sb.WriteString("; ")
		}
		prefix := ""
		if isConst {
			prefix = "readonly "
		}
		if isMethod {
			sb.WriteString(prefix + key + val)
		} else {
			sb.WriteString(prefix + key + ": " + inferDepth(val, isConst, depth+1))
		}
		wrote = true
	}
	sb.WriteString(" }")
	if !wrote {
		return "Record<string, never>", true
	}
	return sb.String(), true
}

// splitObjectProperty splits a single object-literal member into its key and
// value text. Shorthand (`{ x }`) and method-shorthand (`{ f() {} }`)
// members are reported as best-effort `unknown`/`(...args: any[]) => unknown`
// shapes since
// the declarator text alone doesn't carry enough information to do better.
func splitObjectProperty(p string) (key, value string, isMethod bool, ok bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", "", false, false
	}
	if strings.HasPrefix(p, "[") {
		// computed key: `[expr]: value` — key stays unresolved.
		end := matchBalanced(p, 0, '[', ']')
		if end < 0 {
			return "", "", false, false
		}
		rest := strings.TrimSpace(p[end+1:])
		rest = strings.TrimPrefix(rest, ":")
		return "[key: string]", strings.TrimSpace(rest), false, true
	}
	colon := findTopLevelColon(p)
	if colon < 0 {
		if paren := strings.IndexByte(p, '('); paren >= 0 {
			name, _ := scanIdentifier(p, 0)
			if name != "" {
				return name, "(...args: any[]) => unknown", true, true
			}
		}
		name, _ := scanIdentifier(p, 0)
		if name == "" {
			return "", "", false, false
		}
		return name, name, false, true
	}
	key = strings.TrimSpace(p[:colon])
	value = strings.TrimSpace(p[colon+1:])
	return key, value, false, true
}

func findTopLevelColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(s, i) - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ':' && depth == 0:
			return i
		}
	}
	return -1
}

func unionOf(types []string) string {
	seen := map[string]bool{}
	var out []string
	for _, t := range types {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return "unknown"
	}
	return strings.Join(out, " | ")
}
