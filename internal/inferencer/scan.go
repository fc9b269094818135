package inferencer

import "strings"

// This file's scanning helpers are a small, deliberately separate copy of
// the same balanced-bracket / string-skipping technique extractor/scan.go
// uses: the two packages walk different kinds of text (statement-level
// source vs. a standalone expression) for different purposes, so sharing
// one generic package would mean threading irrelevant statement concerns
// (modifiers, semicolon terminators) through expression-only code.

func isStringOrTemplateStart(c byte) bool { return c == '\'' || c == '"' || c == '`' }

func skipStringOrTemplateAt(src string, i int) int {
	quote := src[i]
	i++
	if quote == '`' {
		for i < len(src) {
			switch src[i] {
			case '\\':
				i += 2
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
						default:
							i++
						}
					}
				} else {
					i++
				}
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

// matchBalanced returns the index of the delimiter matching src[openIdx].
func matchBalanced(src string, openIdx int, open, close byte) int {
	if openIdx >= len(src) || src[openIdx] != open {
		return -1
	}
	depth := 0
	i := openIdx
	for i < len(src) {
		c := src[i]
		if isStringOrTemplateStart(c) {
			i = skipStringOrTemplateAt(src, i)
			continue
		}
		if c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*') {
			i = skipLineOrBlockComment(src, i)
			continue
		}
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

func skipLineOrBlockComment(src string, i int) int {
	if src[i+1] == '/' {
		for i < len(src) && src[i] != '\n' {
			i++
		}
		return i
	}
	i += 2
	for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
		i++
	}
	if i < len(src) {
		i += 2
	}
	return i
}

func isIdentByteScan(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func wordAt(src string, i int, w string) bool {
	if i+len(w) > len(src) || src[i:i+len(w)] != w {
		return false
	}
	if i > 0 && isIdentByteScan(src[i-1]) {
		return false
	}
	if i+len(w) < len(src) && isIdentByteScan(src[i+len(w)]) {
		return false
	}
	return true
}

// findWordTopLevel finds the first occurrence of identifier word w at
// bracket depth 0, outside strings/templates/comments.
func findWordTopLevel(src, w string) int { return findWordTopLevelFrom(src, w, 0) }

func findWordTopLevelFrom(src, w string, from int) int {
	depthParen, depthBracket, depthBrace := 0, 0, 0
	i := from
	for i < len(src) {
		c := src[i]
		if isStringOrTemplateStart(c) {
			i = skipStringOrTemplateAt(src, i)
			continue
		}
		if c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*') {
			i = skipLineOrBlockComment(src, i)
			continue
		}
		if depthParen == 0 && depthBracket == 0 && depthBrace == 0 && wordAt(src, i, w) {
			return i
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
	return -1
}

// splitTopLevelCommas splits s on commas not nested in (), [], {}, or a
// string/template literal.
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
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
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
	tail := strings.TrimSpace(s[start:])
	if tail != "" {
		out = append(out, s[start:])
	}
	return out
}

func scanIdentifier(src string, i int) (string, int) {
	start := i
	for i < len(src) && isIdentByteScan(src[i]) {
		i++
	}
	return src[start:i], i
}
