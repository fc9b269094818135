// Package inferencer implements the expression-to-type-string engine
// described in §4.3: given a variable's raw initializer text, produce the
// narrowest TypeScript type the core can faithfully emit without a real
// type checker. Rules are applied in the fixed priority order the spec
// lists; the first match wins.
package inferencer

import "strings"

// maxDepth bounds recursive inference (array/object literals nesting
// arrays/objects, arrow functions returning object literals, and so on) so
// adversarial input cannot grow the call stack without bound.
const maxDepth = 20

// broadAnnotations are the "too-broad" explicit annotations the inferencer
// is allowed to try to narrow past, per the Annotation policy.
var broadAnnotations = []string{"any", "object", "unknown"}

// IsBroadAnnotation reports whether an explicit annotation is one of the
// generic/broad shapes §4.3's Annotation policy allows narrowing away from:
// any, object, unknown, Record<...>, Array<...>, or an index signature
// object type `{ [k: string]: any }`.
func IsBroadAnnotation(annotation string) bool {
	a := strings.TrimSpace(annotation)
	if a == "" {
		return false
	}
	for _, b := range broadAnnotations {
		if a == b {
			return true
		}
	}
	if strings.HasPrefix(a, "Record<") || strings.HasPrefix(a, "Record <") {
		return true
	}
	if strings.HasPrefix(a, "Array<") || strings.HasPrefix(a, "Array <") {
		return true
	}
	if isIndexSignatureObjectType(a) {
		return true
	}
	return false
}

func isIndexSignatureObjectType(a string) bool {
	if !strings.HasPrefix(a, "{") || !strings.HasSuffix(a, "}") {
		return false
	}
	inner := strings.TrimSpace(a[1 : len(a)-1])
	return strings.HasPrefix(inner, "[") && strings.Contains(inner, ":") &&
		(strings.HasSuffix(inner, "any") || strings.HasSuffix(inner, "unknown"))
}

// Resolve implements the full Annotation policy: given an explicit
// annotation (possibly empty) and the declarator's raw initializer value
// (possibly empty), it returns the type to emit. isConstBinding reflects
// the declarator's own `const` keyword (as opposed to `let`/`var`), which
// — independent of any `as const` inside the initializer — is what keeps a
// literal initializer narrow instead of widening to its base type.
func Resolve(annotation, value string, isConstBinding bool) string {
	annotation = strings.TrimSpace(annotation)
	value = strings.TrimSpace(value)

	if annotation != "" && !IsBroadAnnotation(annotation) {
		return annotation
	}
	if value == "" {
		if annotation != "" {
			return annotation
		}
		return "any"
	}
	inferred := Infer(value, isConstBinding)
	if annotation != "" {
		if inferred != "" && inferred != "unknown" {
			return inferred
		}
		return annotation
	}
	return inferred
}

// Infer infers the type of a standalone expression's raw source text.
// isConst reflects whether the expression sits in an `as const` or other
// const-widening context (array/object element position under an outer
// `as const`, or the top-level declarator itself using `as const`).
func Infer(value string, isConst bool) string {
	return inferDepth(strings.TrimSpace(value), isConst, 0)
}

func inferDepth(value string, isConst bool, depth int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	if depth > maxDepth {
		return "unknown"
	}

	// Rule 1: `satisfies T` — independent of the LHS expression, and (per
	// the Open Question decision recorded in DESIGN.md) takes precedence
	// unconditionally even over a preceding `as const`.
	if t, ok := trimSatisfies(value); ok {
		return strings.TrimSpace(t)
	}

	// Rule 2: `as const`.
	if inner, ok := trimAsConst(value); ok {
		return inferDepth(inner, true, depth+1)
	}

	if t, ok := inferStringLiteral(value, isConst); ok {
		return t
	}
	if t, ok := inferNumberBoolNullUndefined(value, isConst); ok {
		return t
	}
	if t, ok := inferBigInt(value, isConst); ok {
		return t
	}
	if t, ok := inferSymbol(value); ok {
		return t
	}
	if t, ok := inferArray(value, isConst, depth); ok {
		return t
	}
	if t, ok := inferObject(value, isConst, depth); ok {
		return t
	}
	if t, ok := inferNew(value); ok {
		return t
	}
	if t, ok := inferFunctionExpr(value, depth); ok {
		return t
	}
	if t, ok := inferTemplate(value, isConst); ok {
		return t
	}
	if t, ok := inferPromiseHelper(value, depth); ok {
		return t
	}
	if strings.HasPrefix(value, "await ") {
		return "unknown"
	}
	if t, ok := inferConditional(value, isConst, depth); ok {
		return t
	}
	if t, ok := inferUnaryNumeric(value, isConst); ok {
		return t
	}

	return "unknown"
}

// trimSatisfies splits off a top-level trailing `satisfies T` clause.
func trimSatisfies(value string) (string, bool) {
	idx := findWordTopLevel(value, "satisfies")
	if idx < 0 {
		return "", false
	}
	return value[idx+len("satisfies"):], true
}

// trimAsConst splits off a top-level trailing `as const` clause, returning
// the expression it qualifies.
func trimAsConst(value string) (string, bool) {
	idx := findWordTopLevel(value, "as")
	for idx >= 0 {
		rest := strings.TrimSpace(value[idx+len("as"):])
		if rest == "const" || strings.HasPrefix(rest, "const") && !isIdentByteInf(restByteAfter(rest, len("const"))) {
			return strings.TrimSpace(value[:idx]), true
		}
		idx = findWordTopLevelFrom(value, "as", idx+1)
	}
	return "", false
}

func restByteAfter(s string, n int) byte {
	if n >= len(s) {
		return 0
	}
	return s[n]
}

func isIdentByteInf(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
