package extractor

// Low-level text scanning helpers shared by every declaration-kind
// extractor. These mirror the teacher's ts_parser.go "skipTypeScript*"
// family: rather than building a full expression/type AST, they advance a
// cursor over raw source text while tracking bracket depth and skipping
// over strings/comments/templates, and hand back byte ranges the caller
// slices verbatim. That is sufficient here because the contract (§3) is
// that Declaration.Text is reconstructed surface syntax, not a semantic
// tree.

// skipTrivia advances past whitespace, line comments, and block comments
// starting at i, returning the index of the next non-trivia byte (or
// len(src)).
func skipTrivia(src string, i int) int {
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
				i++
			}
			if i < len(src) {
				i += 2
			}
		default:
			return i
		}
	}
	return i
}

// skipStringOrTemplateAt returns the index just past a string or template
// literal starting at i (src[i] is one of ' " `), accounting for escapes
// and (for templates) nested `${ ... }` substitutions that may themselves
// contain strings/templates/braces.
func skipStringOrTemplateAt(src string, i int) int {
	quote := src[i]
	i++
	if quote == '`' {
		for i < len(src) {
			switch src[i] {
			case '\\':
				i += 2
				continue
			case '`':
				return i + 1
			case '$':
				if i+1 < len(src) && src[i+1] == '{' {
					i += 2
					depth := 1
					for i < len(src) && depth > 0 {
						switch src[i] {
						case '{':
							depth++
							i++
						case '}':
							depth--
							i++
						case '\'', '"', '`':
							i = skipStringOrTemplateAt(src, i)
						case '/':
							if i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*') {
								i = skipTrivia(src, i)
							} else {
								i++
							}
						default:
							i++
						}
					}
					continue
				}
				i++
			default:
				i++
			}
		}
		return i
	}
	for i < len(src) {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

// isStringOrTemplateStart reports whether src[i] opens a string/template.
func isStringOrTemplateStart(c byte) bool { return c == '\'' || c == '"' || c == '`' }

// matchBalanced returns the index of the byte that closes the open/close
// delimiter pair starting at openIdx (src[openIdx] == open), or -1 if
// unterminated. Strings, templates, and comments are skipped so that
// brackets inside them never affect the depth count.
func matchBalanced(src string, openIdx int, open, close byte) int {
	if openIdx >= len(src) || src[openIdx] != open {
		return -1
	}
	depth := 0
	i := openIdx
	for i < len(src) {
		c := src[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(src, i)
			continue
		case c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipTrivia(src, i)
			continue
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// findTopLevelByte scans forward from i (at bracket depth 0, ignoring
// strings/comments/templates) for the first occurrence of target, stopping
// early (returning -1) if it hits stop first. Used to find a statement's
// terminating ';' or its introducing '{' / '=' without descending into
// nested brackets.
func findTopLevelByte(src string, i int, target byte, stops ...byte) int {
	depthParen, depthBrace, depthBracket, depthAngle := 0, 0, 0, 0
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
		case c == '<':
			depthAngle++
		case c == '>':
			if depthAngle > 0 {
				depthAngle--
			}
		}
		if depthParen == 0 && depthBrace == 0 && depthBracket == 0 {
			if c == target {
				return i
			}
			for _, s := range stops {
				if c == s {
					return -1
				}
			}
		}
		i++
	}
	return -1
}

// skipGenericsAt returns the index just past a `<...>` generic parameter or
// type-argument list starting at src[i]=='<', or i unchanged if src[i] is
// not '<'. Disambiguation from comparison/shift operators is the caller's
// responsibility (§4.1 edge case policy): this helper assumes the caller
// has already decided "this is a generics position."
func skipGenericsAt(src string, i int) int {
	if i >= len(src) || src[i] != '<' {
		return i
	}
	depth := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isStringOrTemplateStart(c):
			i = skipStringOrTemplateAt(src, i)
			continue
		case c == '(':
			close := matchBalanced(src, i, '(', ')')
			if close < 0 {
				return len(src)
			}
			i = close + 1
			continue
		case c == '{':
			close := matchBalanced(src, i, '{', '}')
			if close < 0 {
				return len(src)
			}
			i = close + 1
			continue
		case c == '<':
			depth++
		case c == '>':
			depth--
			if depth == 0 {
				return i + 1
			}
		case c == '=' && depth == 1 && i+1 < len(src) && src[i+1] == '>':
			// arrow inside a conditional type's extends clause, e.g. `infer T extends (x) => y`
			i++
		}
		i++
	}
	return len(src)
}

// findFirstTopLevelAny scans for the first byte in targets seen at bracket
// depth 0, returning its index and which target matched, or (-1, 0). Unlike
// findTopLevelByte it supports multiple candidate targets with none of them
// treated as an aborting "stop" — used where the next meaningful character
// (whichever it is) decides how to proceed, e.g. a function's return type
// ending at either '{' (a body follows) or ';' (an overload signature).
func findFirstTopLevelAny(src string, i int, targets ...byte) (int, byte) {
	depthParen, depthBrace, depthBracket := 0, 0, 0
	for i < len(src) {
		c := src[i]
		if isStringOrTemplateStart(c) {
			i = skipStringOrTemplateAt(src, i)
			continue
		}
		if c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*') {
			i = skipTrivia(src, i)
			continue
		}
		if depthParen == 0 && depthBrace == 0 && depthBracket == 0 {
			for _, t := range targets {
				if c == t {
					return i, c
				}
			}
		}
		switch c {
		case '(':
			depthParen++
		case ')':
			depthParen--
		case '[':
			depthBracket++
		case ']':
			depthBracket--
		case '{':
			depthBrace++
		case '}':
			depthBrace--
		}
		i++
	}
	return -1, 0
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStartByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// wordAt reports whether src has the identifier word w starting at i, i.e.
// not preceded or followed by another identifier byte.
func wordAt(src string, i int, w string) bool {
	if i+len(w) > len(src) || src[i:i+len(w)] != w {
		return false
	}
	if i > 0 && isIdentByte(src[i-1]) {
		return false
	}
	if i+len(w) < len(src) && isIdentByte(src[i+len(w)]) {
		return false
	}
	return true
}

// scanIdentifier returns the identifier starting at i, and the index past it.
func scanIdentifier(src string, i int) (string, int) {
	start := i
	for i < len(src) && isIdentByte(src[i]) {
		i++
	}
	return src[start:i], i
}
