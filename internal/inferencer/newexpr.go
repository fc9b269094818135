package inferencer

import "strings"

// builtinConstructors maps well-known global constructors to the generic
// type they produce, used by rule 9.
var builtinConstructors = map[string]string{
	"Date":       "Date",
	"RegExp":     "RegExp",
	"Error":      "Error",
	"TypeError":  "TypeError",
	"RangeError": "RangeError",
	"WeakMap":    "WeakMap<unknown, unknown>",
	"WeakSet":    "WeakSet<unknown>",
}

// inferNew covers rule 9: `new C(...)` expressions. Map/Set get their
// element types from the constructor's own generic arguments when present,
// or fall back to `unknown` type parameters otherwise.
func inferNew(value string) (string, bool) {
	if !strings.HasPrefix(value, "new ") {
		return "", false
	}
	rest := strings.TrimSpace(value[len("new "):])
	name, i := scanIdentifier(rest, 0)
	if name == "" {
		return "", false
	}

	generics := ""
	if i < len(rest) && rest[i] == '<' {
		end := matchAngle(rest, i)
		if end > i {
			generics = rest[i+1 : end]
			i = end + 1
		}
	}

	switch name {
	case "Map":
		if generics != "" {
			return "Map<" + generics + ">", true
		}
		return "Map<unknown, unknown>", true
	case "Set":
		if generics != "" {
			return "Set<" + generics + ">", true
		}
		return "Set<unknown>", true
	case "Promise":
		if generics != "" {
			return "Promise<" + generics + ">", true
		}
		return "Promise<unknown>", true
	}
	if t, ok := builtinConstructors[name]; ok {
		return t, true
	}
	if generics != "" {
		return name + "<" + generics + ">", true
	}
	return name, true
}

// matchAngle finds the `>` matching an opening `<` at index i, tolerating
// nested generics but bailing out on anything that looks like a comparison
// rather than a type-argument list.
func matchAngle(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return j
			}
		case '(', ';':
			return -1
		}
	}
	return -1
}
