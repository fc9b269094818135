// Package emitter assembles the final pruned, type-resolved declaration
// list into `.d.ts` text: fixed section ordering, per-kind text assembly
// (finalizing variables with their inferred type), and output
// normalization (LF endings, single trailing newline).
package emitter

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/inferencer"
)

// Emit produces the final `.d.ts` text for a pruned, ordered declaration
// list. keepComments controls whether each declaration's leading comments
// are reproduced above it.
func Emit(decls []*ast.Declaration, keepComments bool) string {
	var references, imports, typeReexports, others, valueReexports []*ast.Declaration
	var defaultExport *ast.Declaration

	for _, d := range decls {
		switch {
		case d.Kind == ast.KindReference:
			references = append(references, d)
		case d.Kind == ast.KindImport:
			imports = append(imports, d)
		case d.Kind == ast.KindExport && d.Name == ast.DefaultExportName:
			defaultExport = d
		case d.Kind == ast.KindExport && isTypeReexport(d):
			typeReexports = append(typeReexports, d)
		case d.Kind == ast.KindExport:
			valueReexports = append(valueReexports, d)
		default:
			others = append(others, d)
		}
	}

	var sb strings.Builder
	wroteAny := false

	wroteAny = emitSection(&sb, references, keepComments, wroteAny)
	wroteAny = emitSection(&sb, imports, keepComments, wroteAny)
	wroteAny = emitSection(&sb, typeReexports, keepComments, wroteAny)
	wroteAny = emitOtherSection(&sb, others, keepComments, wroteAny)
	wroteAny = emitSection(&sb, valueReexports, keepComments, wroteAny)
	if defaultExport != nil {
		if wroteAny {
			sb.WriteByte('\n')
		}
		writeDeclaration(&sb, defaultExport, keepComments)
		wroteAny = true
	}

	return normalize(sb.String())
}

func isTypeReexport(d *ast.Declaration) bool {
	return strings.HasPrefix(d.Text, "export type {") || strings.HasPrefix(d.Text, "export type *")
}

func emitSection(sb *strings.Builder, decls []*ast.Declaration, keepComments bool, wroteAny bool) bool {
	if len(decls) == 0 {
		return wroteAny
	}
	if wroteAny {
		sb.WriteByte('\n')
	}
	for _, d := range decls {
		writeDeclaration(sb, d, keepComments)
	}
	return true
}

// emitOtherSection handles the "other declarations" bucket, which needs
// per-kind text assembly (variables are finalized here using the
// inferencer's Resolve, per §4.3/§4.5's contract) rather than a verbatim
// Text field.
func emitOtherSection(sb *strings.Builder, decls []*ast.Declaration, keepComments bool, wroteAny bool) bool {
	if len(decls) == 0 {
		return wroteAny
	}
	if wroteAny {
		sb.WriteByte('\n')
	}
	for _, d := range decls {
		if keepComments {
			writeComments(sb, d)
		}
		sb.WriteString(finalText(d))
		sb.WriteByte('\n')
	}
	return true
}

func writeDeclaration(sb *strings.Builder, d *ast.Declaration, keepComments bool) {
	if keepComments {
		writeComments(sb, d)
	}
	sb.WriteString(d.Text)
	sb.WriteByte('\n')
}

func writeComments(sb *strings.Builder, d *ast.Declaration) {
	for _, c := range d.LeadingComments {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
}

// finalText produces the emission-ready text for one "other" declaration.
// Every kind except variable already carries its final text from the
// extractor (and, for namespaces, from the core's recursive reprocessing);
// variables are finished here because only at emission time has the
// inferencer run against the resolved annotation/value pair.
func finalText(d *ast.Declaration) string {
	if d.Kind != ast.KindVariable {
		return d.Text
	}
	typ := d.InferredType
	if typ == "" {
		typ = inferencer.Resolve(d.TypeAnnotation, d.Value, d.HasModifier(ast.ModConst))
	}
	return d.Text + ": " + typ + ";"
}

// normalize enforces LF line endings and exactly one trailing newline.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
