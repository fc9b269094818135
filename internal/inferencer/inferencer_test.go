package inferencer

import "testing"

func assertEqual(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func expectInfer(t *testing.T, value string, want string) {
	t.Helper()
	assertEqual(t, Infer(value, false), want)
}

func expectInferConst(t *testing.T, value string, want string) {
	t.Helper()
	assertEqual(t, Infer(value, true), want)
}

func TestInferStringLiterals(t *testing.T) {
	expectInfer(t, `"hello"`, "string")
	expectInferConst(t, `"hello"`, `"hello"`)
	expectInfer(t, `'single'`, "string")
	expectInfer(t, "String.raw`abc`", "string")
}

func TestInferNumberBoolNull(t *testing.T) {
	expectInfer(t, "3000", "number")
	expectInferConst(t, "3000", "3000")
	expectInfer(t, "true", "boolean")
	expectInferConst(t, "false", "false")
	expectInfer(t, "null", "null")
	expectInfer(t, "undefined", "undefined")
}

func TestInferBigInt(t *testing.T) {
	expectInfer(t, "123n", "bigint")
	expectInferConst(t, "123n", "123n")
}

func TestInferSymbol(t *testing.T) {
	expectInfer(t, `Symbol("x")`, "symbol")
	expectInfer(t, `Symbol.for("x")`, "symbol")
}

func TestInferArray(t *testing.T) {
	expectInfer(t, "[1, 2, 3]", "(number)[]")
	expectInferConst(t, "[1, 2, 3]", "readonly [1, 2, 3]")
	expectInfer(t, "[]", "unknown[]")
}

func TestInferObject(t *testing.T) {
	expectInfer(t, `{ a: 1, b: "x" }`, `{ a: number; b: string }`)
	expectInferConst(t, `{ a: 1 }`, `{ readonly a: 1 }`)
}

func TestInferNew(t *testing.T) {
	expectInfer(t, "new Date()", "Date")
	expectInfer(t, "new Map()", "Map<unknown, unknown>")
	expectInfer(t, "new Map<string, number>()", "Map<string, number>")
	expectInfer(t, "new Set()", "Set<unknown>")
	expectInfer(t, "new WeakMap()", "WeakMap<unknown, unknown>")
}

func TestInferArrow(t *testing.T) {
	expectInfer(t, "(a: number, b: number) => a + b", "(a: number, b: number) => unknown")
	expectInfer(t, "(x: string): boolean => true", "(x: string) => boolean")
	expectInfer(t, "async (x: number) => x", "(x: number) => Promise<unknown>")
	expectInfer(t, "x => x", "(x: unknown) => unknown")
}

func TestInferTemplate(t *testing.T) {
	expectInfer(t, "`hello ${name}`", "string")
}

func TestInferPromiseHelpers(t *testing.T) {
	expectInfer(t, "Promise.resolve(1)", "Promise<number>")
	expectInfer(t, "Promise.resolve()", "Promise<void>")
	expectInfer(t, "Promise.reject(new Error())", "Promise<never>")
	expectInfer(t, "Promise.all([1, 2])", "Promise<(number)[]>")
}

func TestInferConditional(t *testing.T) {
	expectInfer(t, `true ? 1 : "x"`, "number | string")
}

func TestInferUnaryNumeric(t *testing.T) {
	expectInfer(t, "-5", "number")
	expectInferConst(t, "-5", "-5")
	expectInferConst(t, "+5", "+5")
}

func TestInferSatisfiesAndAsConst(t *testing.T) {
	expectInfer(t, `{ a: 1 } satisfies Record<string, number>`, "Record<string, number>")
	expectInfer(t, `[1, 2, 3] as const`, "readonly [1, 2, 3]")
}

func TestResolveAnnotation(t *testing.T) {
	assertEqual(t, Resolve("string", `"x"`, false), "string")
	assertEqual(t, Resolve("any", "3000", false), "number")
	assertEqual(t, Resolve("", "3000", false), "number")
	assertEqual(t, Resolve("CustomType", "3000", false), "CustomType")
}

func TestResolveConstLiteralNotWidened(t *testing.T) {
	assertEqual(t, Resolve("", "3000", true), "3000")
	assertEqual(t, Resolve("", `"hello"`, true), `"hello"`)
	assertEqual(t, Resolve("", "3000", false), "number")
}

func TestIsBroadAnnotation(t *testing.T) {
	if !IsBroadAnnotation("any") {
		t.Fatal("expected any to be broad")
	}
	if !IsBroadAnnotation("Record<string, unknown>") {
		t.Fatal("expected Record<...> to be broad")
	}
	if IsBroadAnnotation("CustomType") {
		t.Fatal("expected CustomType to not be broad")
	}
}
