package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/logger"
)

// parseImport handles every import form in §4.1's coverage list: default,
// namespace, named (with aliases), type-only, side-effect, and combinations
// thereof.
func parseImport(src string, i int) (*ast.Declaration, int) {
	start := i
	end := findTopLevelByte(src, i, ';')
	var stmt string
	var next int
	if end < 0 {
		lineEnd := i
		for lineEnd < len(src) && src[lineEnd] != '\n' {
			lineEnd++
		}
		stmt = strings.TrimSpace(src[start:lineEnd])
		next = lineEnd
	} else {
		stmt = strings.TrimSpace(src[start:end])
		next = end + 1
	}

	source := lastQuotedString(stmt)
	isSideEffect := !strings.Contains(stmt, "{") && !strings.Contains(stmt, "*") &&
		!hasDefaultOrNamespaceImport(stmt)

	text := normalizeImportText(stmt, source)

	return &ast.Declaration{
		Kind:         ast.KindImport,
		Name:         source,
		Source:       source,
		Text:         text,
		IsSideEffect: isSideEffect,
	}, next
}

func hasDefaultOrNamespaceImport(stmt string) bool {
	rest := strings.TrimSpace(strings.TrimPrefix(stmt, "import"))
	rest = strings.TrimPrefix(rest, "type")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return false
	}
	return rest[0] != '\'' && rest[0] != '"' && rest[0] != '{' && rest[0] != '*'
}

// lastQuotedString returns the contents of the last single- or
// double-quoted string literal in s (the module specifier, which is always
// the final token of an import/re-export statement).
func lastQuotedString(s string) string {
	for q := len(s) - 1; q >= 0; q-- {
		if s[q] == '\'' || s[q] == '"' {
			quote := s[q]
			start := strings.LastIndexByte(s[:q], quote)
			if start >= 0 {
				return s[start+1 : q]
			}
		}
	}
	return ""
}

// normalizeImportText rewrites quoting to single quotes and ensures a
// trailing semicolon, per §4.4's "rewriting imports" contract. It does not
// prune bindings; that happens in the resolver.
func normalizeImportText(stmt, source string) string {
	quoted := "'" + strings.ReplaceAll(source, "'", "\\'") + "'"
	// Replace the final quoted specifier with the normalized form.
	for q := len(stmt) - 1; q >= 0; q-- {
		if stmt[q] == '\'' || stmt[q] == '"' {
			quote := stmt[q]
			start := strings.LastIndexByte(stmt[:q], quote)
			if start >= 0 {
				stmt = stmt[:start] + quoted + stmt[q+1:]
				break
			}
		}
	}
	return stmt + ";"
}

// parseExport dispatches every export form: re-exports, default exports,
// and exported declarations (which recurse into the kind-specific parser
// with IsExported=true).
func parseExport(src string, i int, source logger.Source, log *logger.Log) (*ast.Declaration, int) {
	i += len("export")
	i = skipBlank(src, i)

	if wordAt(src, i, "default") {
		return parseExportDefault(src, i+len("default"), source, log)
	}

	if src[i] == '*' {
		return parseReexportStar(src, i)
	}

	isTypeOnly := false
	if wordAt(src, i, "type") {
		// Distinguish `export type { ... }` / `export type * from` from a
		// top-level `export type Name = ...` declaration: the former is
		// followed by '{' or '*', the latter by an identifier.
		peek := skipBlank(src, i+len("type"))
		if peek < len(src) && (src[peek] == '{' || src[peek] == '*') {
			isTypeOnly = true
			i = peek
		}
	}

	if i < len(src) && src[i] == '{' {
		return parseExportBraces(src, i, isTypeOnly)
	}

	if wordAt(src, i, "declare") {
		d, next := parseDeclareStatement(src, i, source, log, nil, true)
		return d, next
	}

	mods := []ast.Modifier{}
	d, next := parseBareDeclaration(src, i, source, log, mods, true)
	return d, next
}

func parseExportDefault(src string, i int, source logger.Source, log *logger.Log) (*ast.Declaration, int) {
	i = skipBlank(src, i)

	switch {
	case wordAt(src, i, "function"):
		d, next := parseFunction(src, i, nil, true, false)
		if d != nil {
			d.AddModifier(ast.ModDefault)
		}
		return d, next
	case wordAt(src, i, "async") && wordAt(src, skipBlank(src, i+len("async")), "function"):
		j := skipBlank(src, i+len("async"))
		d, next := parseFunction(src, j, nil, true, true)
		if d != nil {
			d.AddModifier(ast.ModDefault)
		}
		return d, next
	case wordAt(src, i, "class"):
		d, next := parseClass(src, i, nil, true, source, log)
		if d != nil {
			d.AddModifier(ast.ModDefault)
		}
		return d, next
	case wordAt(src, i, "abstract") && wordAt(src, skipBlank(src, i+len("abstract")), "class"):
		j := skipBlank(src, i+len("abstract"))
		d, next := parseClass(src, j, []ast.Modifier{ast.ModAbstract}, true, source, log)
		if d != nil {
			d.AddModifier(ast.ModDefault)
		}
		return d, next
	default:
		end := findTopLevelByte(src, i, ';')
		var expr string
		var next int
		if end < 0 {
			e := i
			for e < len(src) && src[e] != '\n' {
				e++
			}
			expr = strings.TrimSpace(src[i:e])
			next = e
		} else {
			expr = strings.TrimSpace(src[i:end])
			next = end + 1
		}
		return &ast.Declaration{
			Kind:       ast.KindExport,
			Name:       ast.DefaultExportName,
			Text:       "export default " + expr + ";",
			IsExported: true,
			Value:      expr,
			Modifiers:  []ast.Modifier{ast.ModDefault},
		}, next
	}
}

func parseReexportStar(src string, i int) (*ast.Declaration, int) {
	start := i
	end := findTopLevelByte(src, i, ';')
	var stmt string
	var next int
	if end < 0 {
		e := i
		for e < len(src) && src[e] != '\n' {
			e++
		}
		stmt = strings.TrimSpace(src[start:e])
		next = e
	} else {
		stmt = strings.TrimSpace(src[start:end])
		next = end + 1
	}
	source := lastQuotedString(stmt)
	text := normalizeImportText("export "+stmt, source)
	return &ast.Declaration{
		Kind:   ast.KindExport,
		Name:   source,
		Source: source,
		Text:   text,
	}, next
}

func parseExportBraces(src string, i int, isTypeOnly bool) (*ast.Declaration, int) {
	close := matchBalanced(src, i, '{', '}')
	if close < 0 {
		close = len(src) - 1
	}
	rest := close + 1
	rest = skipBlank(src, rest)
	source := ""
	end := findTopLevelByte(src, rest, ';')
	stmtEnd := end
	if wordAt(src, rest, "from") {
		fromEnd := end
		if fromEnd < 0 {
			fromEnd = len(src)
		}
		source = lastQuotedString(src[rest:fromEnd])
		stmtEnd = end
	}
	var next int
	var fullEnd int
	if stmtEnd < 0 {
		fullEnd = len(src)
		next = fullEnd
	} else {
		fullEnd = stmtEnd
		next = stmtEnd + 1
	}

	prefix := "export "
	if isTypeOnly {
		prefix += "type "
	}
	body := strings.TrimSpace(src[i : close+1])
	text := prefix + body
	if source != "" {
		text += " from '" + source + "'"
	}
	text += ";"

	return &ast.Declaration{
		Kind:       ast.KindExport,
		Name:       source,
		Source:     source,
		Text:       text,
		IsExported: source == "",
	}, max(next, fullEnd+1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
