// Package extractor walks TypeScript source text and produces the ordered
// Declaration list described by the data model (§3) and the per-kind text
// contract table (§4.2). It does not build a full expression AST: each
// declaration's Text is reconstructed directly from source ranges found via
// the balanced-scanning helpers in scan.go, the same technique the
// teacher's ts_parser.go uses to "skip" TypeScript type syntax without
// evaluating it.
package extractor

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/logger"
)

// Extract produces the full declaration list for one source file, in
// source order, before any pruning or type inference runs.
func Extract(source logger.Source, log *logger.Log) []*ast.Declaration {
	src := source.Contents
	var decls []*ast.Declaration

	refs, i := extractReferenceDirectives(src)
	decls = append(decls, refs...)

	for {
		comments, afterComments := collectLeadingComments(src, i)
		j := skipBlank(src, afterComments)
		if j >= len(src) {
			break
		}
		d, next := parseTopLevelStatement(src, j, source, log)
		if d == nil {
			// Unrecognized statement shape: skip to the next top-level
			// terminator so one malformed line doesn't stall extraction.
			next = skipUnknownStatement(src, j)
			i = next
			continue
		}
		if len(comments) > 0 {
			d.LeadingComments = commentTexts(comments)
		}
		decls = append(decls, d)
		i = next
	}

	return mergeOverloads(decls)
}

func skipBlank(src string, i int) int {
	for i < len(src) {
		c := src[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			i++
			continue
		}
		break
	}
	return i
}

func extractReferenceDirectives(src string) ([]*ast.Declaration, int) {
	var refs []*ast.Declaration
	i := 0
	for {
		j := skipBlank(src, i)
		if !strings.HasPrefix(src[j:], "///") {
			return refs, i
		}
		end := j
		for end < len(src) && src[end] != '\n' {
			end++
		}
		line := strings.TrimRight(src[j:end], "\r")
		if !strings.Contains(line, "<reference") {
			return refs, i
		}
		refs = append(refs, &ast.Declaration{Kind: ast.KindReference, Text: line})
		i = end
	}
}

func skipUnknownStatement(src string, i int) int {
	end := findTopLevelByte(src, i, ';')
	if end < 0 {
		// Fall back to end of line; a single malformed statement should
		// not stop extraction of the rest of the file.
		for end = i; end < len(src) && src[end] != '\n'; end++ {
		}
		return end
	}
	return end + 1
}

// parseTopLevelStatement dispatches on the leading keyword at i. i points
// at the first non-trivia byte of the statement.
func parseTopLevelStatement(src string, i int, source logger.Source, log *logger.Log) (*ast.Declaration, int) {
	switch {
	case wordAt(src, i, "import"):
		return parseImport(src, i)
	case wordAt(src, i, "export"):
		return parseExport(src, i, source, log)
	case wordAt(src, i, "declare"):
		return parseDeclareStatement(src, i, source, log, nil, false)
	default:
		return parseBareDeclaration(src, i, source, log, nil, false)
	}
}

// parseDeclareStatement handles a statement introduced by the "declare"
// keyword (ambient context), recursing into the kind-specific parser with
// ModDeclare pre-added.
func parseDeclareStatement(src string, i int, source logger.Source, log *logger.Log, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	i += len("declare")
	i = skipBlank(src, i)
	if wordAt(src, i, "global") {
		return parseDeclareGlobal(src, i, exported)
	}
	mods = append(mods, ast.ModDeclare)
	d, next := parseBareDeclaration(src, i, source, log, mods, exported)
	return d, next
}

func parseDeclareGlobal(src string, i int, exported bool) (*ast.Declaration, int) {
	i += len("global")
	i = skipBlank(src, i)
	if i >= len(src) || src[i] != '{' {
		return nil, i
	}
	close := matchBalanced(src, i, '{', '}')
	if close < 0 {
		close = len(src) - 1
	}
	text := "declare global " + src[i:close+1]
	return &ast.Declaration{
		Kind:      ast.KindModule,
		Name:      "global",
		Text:      text,
		Modifiers: []ast.Modifier{ast.ModDeclare},
	}, close + 1
}

// parseBareDeclaration handles a statement that is not introduced by
// "export" or "declare" but may already carry modifiers/exported-ness
// collected by a caller (parseExport, parseDeclareStatement).
func parseBareDeclaration(src string, i int, source logger.Source, log *logger.Log, mods []ast.Modifier, exported bool) (*ast.Declaration, int) {
	isAbstract := false
	if wordAt(src, i, "abstract") {
		isAbstract = true
		i = skipBlank(src, i+len("abstract"))
		mods = append(mods, ast.ModAbstract)
	}
	isAsync := false
	if wordAt(src, i, "async") {
		isAsync = true
		i = skipBlank(src, i+len("async"))
		mods = append(mods, ast.ModAsync)
	}

	switch {
	case wordAt(src, i, "const") && wordAt(src, skipBlank(src, i+len("const")), "enum"):
		return parseEnum(src, i, mods, exported, true)
	case wordAt(src, i, "const"), wordAt(src, i, "let"), wordAt(src, i, "var"):
		return parseVariable(src, i, mods, exported)
	case wordAt(src, i, "function"):
		return parseFunction(src, i, mods, exported, isAsync)
	case wordAt(src, i, "class"):
		_ = isAbstract
		return parseClass(src, i, mods, exported, source, log)
	case wordAt(src, i, "interface"):
		return parseInterface(src, i, mods, exported)
	case wordAt(src, i, "type"):
		return parseTypeAlias(src, i, mods, exported)
	case wordAt(src, i, "enum"):
		return parseEnum(src, i, mods, exported, false)
	case wordAt(src, i, "namespace"), wordAt(src, i, "module"):
		return parseNamespace(src, i, mods, exported)
	default:
		return nil, i
	}
}
