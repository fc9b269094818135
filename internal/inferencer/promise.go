package inferencer

import "strings"

// inferPromiseHelper covers rule 12: Promise.resolve/reject/all/race/any
// calls. The settled type is inferred from the argument(s) where that's
// possible; Promise.reject settles to `never` and an argument-less
// Promise.resolve() to `void`.
func inferPromiseHelper(value string, depth int) (string, bool) {
	if !strings.HasPrefix(value, "Promise.") {
		return "", false
	}
	rest := value[len("Promise."):]
	name, i := scanIdentifier(rest, 0)
	if name == "" || i >= len(rest) || rest[i] != '(' {
		return "", false
	}
	close := matchBalanced(rest, i, '(', ')')
	if close < 0 {
		return "", false
	}
	args := strings.TrimSpace(rest[i+1 : close])

	switch name {
	case "reject":
		return "Promise<never>", true
	case "resolve":
		if args == "" {
			return "Promise<void>", true
		}
		return "Promise<" + inferDepth(args, false, depth+1) + ">", true
	case "all", "allSettled":
		if !strings.HasPrefix(args, "[") {
			return "Promise<unknown[]>", true
		}
		inner, ok := inferArray(args, false, depth+1)
		if !ok {
			return "Promise<unknown[]>", true
		}
		return "Promise<" + inner + ">", true
	case "race", "any":
		return "Promise<unknown>", true
	}
	return "", false
}
