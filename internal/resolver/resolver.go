// Package resolver prunes unused imports and decides which non-exported
// local interfaces must be retained, per the reference-resolver algorithm:
// build an index of imported local bindings, test each against a corpus of
// text reachable from the file's exports, and iterate to a fixpoint once
// interfaces referenced only from other kept declarations are folded in.
package resolver

import (
	"sort"
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
)

// Binding is one locally-bound name introduced by an import declaration:
// the default import, the namespace import, or one named import/alias.
type Binding struct {
	Local    string // the name as referenced in this file's own code
	Imported string // the name as exported by the source module ("" for default/namespace)
	IsType   bool
}

// importEntry pairs an import declaration with the bindings it introduces.
type importEntry struct {
	decl     *ast.Declaration
	bindings []Binding
}

// Resolve prunes decls down to the declarations that survive reference
// resolution: every retained import is rewritten to list only its
// surviving bindings, and every local interface needed transitively by a
// kept exported declaration is retained even if not itself exported.
func Resolve(decls []*ast.Declaration, importPriority []string) []*ast.Declaration {
	imports := buildImportsIndex(decls)
	corpus := reachableCorpus(decls)

	usedLocals := markUsedBindings(imports, corpus)

	// Fixpoint: interfaces reachable only from other needed declarations'
	// text must themselves be folded into the corpus, which can in turn
	// surface more import bindings.
	neededInterfaces := map[string]bool{}
	for {
		grew := growNeededInterfaces(decls, corpus, neededInterfaces)
		if !grew {
			break
		}
		corpus = appendInterfaceText(decls, corpus, neededInterfaces)
		more := markUsedBindings(imports, corpus)
		if !supersetGrew(usedLocals, more) {
			continue
		}
		usedLocals = more
	}

	out := make([]*ast.Declaration, 0, len(decls))
	for _, d := range decls {
		switch d.Kind {
		case ast.KindImport:
			kept := rewriteImport(d, imports, usedLocals)
			if kept != nil {
				out = append(out, kept)
			}
		case ast.KindInterface:
			if d.IsExported || neededInterfaces[d.Name] {
				out = append(out, d)
			}
		case ast.KindExport:
			if d.Source != "" {
				if keepReexport(d, imports, usedLocals) {
					out = append(out, d)
				}
				continue
			}
			out = append(out, d)
		default:
			out = append(out, d)
		}
	}

	sortImports(out, importPriority)
	return out
}

func buildImportsIndex(decls []*ast.Declaration) []*importEntry {
	var entries []*importEntry
	for _, d := range decls {
		if d.Kind != ast.KindImport {
			continue
		}
		entries = append(entries, &importEntry{decl: d, bindings: parseImportBindings(d.Text)})
	}
	return entries
}

// parseImportBindings extracts the local binding names introduced by one
// import statement's reconstructed text. Cached by the core per §5's
// "parsed import bindings keyed by import text" bound.
func parseImportBindings(text string) []Binding {
	if cached, ok := bindingCache.get(text); ok {
		return cached
	}
	bindings := parseImportBindingsUncached(text)
	bindingCache.put(text, bindings)
	return bindings
}

func parseImportBindingsUncached(text string) []Binding {
	stmt := strings.TrimPrefix(strings.TrimSpace(text), "import")
	stmt = strings.TrimSpace(stmt)
	isTypeOnly := false
	if strings.HasPrefix(stmt, "type ") || stmt == "type" {
		isTypeOnly = true
		stmt = strings.TrimSpace(strings.TrimPrefix(stmt, "type"))
	}

	if idx := strings.Index(stmt, "from"); idx >= 0 {
		stmt = stmt[:idx]
	} else if idx := strings.IndexAny(stmt, "'\""); idx >= 0 {
		stmt = stmt[:idx]
	}
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return nil
	}

	var out []Binding
	rest := stmt
	if brace := strings.IndexByte(rest, '{'); brace >= 0 {
		before := strings.TrimSpace(strings.TrimSuffix(rest[:brace], ","))
		out = append(out, parseSimpleBindings(before, isTypeOnly)...)
		close := strings.IndexByte(rest[brace:], '}')
		if close >= 0 {
			body := rest[brace+1 : brace+close]
			out = append(out, parseNamedBindings(body, isTypeOnly)...)
		}
		return out
	}
	return parseSimpleBindings(rest, isTypeOnly)
}

// parseSimpleBindings handles the default-import and namespace-import
// tokens that precede a possible `{ ... }` clause: `Foo`, `* as Foo`.
func parseSimpleBindings(s string, isTypeOnly bool) []Binding {
	s = strings.TrimSpace(strings.TrimSuffix(s, ","))
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "*") {
		rest := strings.TrimSpace(strings.TrimPrefix(s, "*"))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "as"))
		if rest == "" {
			return nil
		}
		return []Binding{{Local: rest, IsType: isTypeOnly}}
	}
	return []Binding{{Local: s, IsType: isTypeOnly}}
}

func parseNamedBindings(body string, isTypeOnly bool) []Binding {
	parts := strings.Split(body, ",")
	var out []Binding
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		itemType := isTypeOnly
		if strings.HasPrefix(p, "type ") {
			itemType = true
			p = strings.TrimSpace(strings.TrimPrefix(p, "type"))
		}
		if idx := strings.Index(p, " as "); idx >= 0 {
			imported := strings.TrimSpace(p[:idx])
			local := strings.TrimSpace(p[idx+len(" as "):])
			out = append(out, Binding{Local: local, Imported: imported, IsType: itemType})
			continue
		}
		out = append(out, Binding{Local: p, Imported: p, IsType: itemType})
	}
	return out
}

// reachableCorpus concatenates the text of every declaration reachable
// from an export: exported declarations' own text (and, for variables,
// their type annotation), plus every re-export's text.
func reachableCorpus(decls []*ast.Declaration) string {
	var sb strings.Builder
	for _, d := range decls {
		switch d.Kind {
		case ast.KindExport:
			sb.WriteString(d.Text)
			sb.WriteByte('\n')
		default:
			if d.IsExported {
				sb.WriteString(d.Text)
				sb.WriteByte('\n')
				if d.Kind == ast.KindVariable {
					sb.WriteString(d.TypeAnnotation)
					sb.WriteString(d.InferredType)
					sb.WriteByte('\n')
				}
			}
		}
	}
	return sb.String()
}

func appendInterfaceText(decls []*ast.Declaration, corpus string, needed map[string]bool) string {
	var sb strings.Builder
	sb.WriteString(corpus)
	for _, d := range decls {
		if d.Kind == ast.KindInterface && needed[d.Name] {
			sb.WriteString(d.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// growNeededInterfaces marks any non-exported interface as needed if its
// name occurs (as a word) in the current corpus, returning whether the
// needed set grew this pass.
func growNeededInterfaces(decls []*ast.Declaration, corpus string, needed map[string]bool) bool {
	grew := false
	for _, d := range decls {
		if d.Kind != ast.KindInterface || d.IsExported || needed[d.Name] {
			continue
		}
		if containsWord(corpus, d.Name) {
			needed[d.Name] = true
			grew = true
		}
	}
	return grew
}

func markUsedBindings(entries []*importEntry, corpus string) map[string]bool {
	used := map[string]bool{}
	for _, e := range entries {
		for _, b := range e.bindings {
			if containsWord(corpus, b.Local) {
				used[importKey(e.decl, b)] = true
			}
		}
	}
	return used
}

func supersetGrew(prev, next map[string]bool) bool {
	if len(next) != len(prev) {
		return true
	}
	for k := range next {
		if !prev[k] {
			return true
		}
	}
	return false
}

func importKey(d *ast.Declaration, b Binding) string {
	return d.Source + "\x00" + b.Local
}

// containsWord reports whether name occurs in text as a whole identifier
// token (word-boundary match), not as a substring of a longer identifier.
func containsWord(text, name string) bool {
	if name == "" {
		return false
	}
	i := 0
	for {
		idx := strings.Index(text[i:], name)
		if idx < 0 {
			return false
		}
		pos := i + idx
		before := byte(0)
		if pos > 0 {
			before = text[pos-1]
		}
		after := byte(0)
		if pos+len(name) < len(text) {
			after = text[pos+len(name)]
		}
		if !isIdentByte(before) && !isIdentByte(after) {
			return true
		}
		i = pos + len(name)
		if i >= len(text) {
			return false
		}
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func keepReexport(d *ast.Declaration, entries []*importEntry, used map[string]bool) bool {
	_ = entries
	_ = used
	// Re-exports with a source specifier (`export { a } from './x'` or
	// `export * from './x'`) are not themselves imported bindings in this
	// file, so they are always retained: pruning decisions for them belong
	// to the module they point at, not this one.
	return true
}

func rewriteImport(d *ast.Declaration, entries []*importEntry, used map[string]bool) *ast.Declaration {
	if d.IsSideEffect {
		return d
	}
	var entry *importEntry
	for _, e := range entries {
		if e.decl == d {
			entry = e
			break
		}
	}
	if entry == nil {
		return d
	}

	var survivors []Binding
	for _, b := range entry.bindings {
		if used[importKey(d, b)] {
			survivors = append(survivors, b)
		}
	}
	if len(survivors) == 0 {
		return nil
	}
	if len(survivors) == len(entry.bindings) {
		return d
	}

	rewritten := *d
	rewritten.Text = rebuildImportText(d.Text, survivors)
	return &rewritten
}

// rebuildImportText reconstructs an import statement's text keeping only
// the surviving named bindings, preserving the original `import type`
// marker, default/namespace import (unaffected by named-binding pruning),
// and the module specifier.
func rebuildImportText(original string, survivors []Binding) string {
	braceStart := strings.IndexByte(original, '{')
	braceEnd := strings.IndexByte(original, '}')
	if braceStart < 0 || braceEnd < 0 || braceEnd < braceStart {
		return original
	}
	var names []string
	for _, b := range survivors {
		if b.Imported == "" {
			// default/namespace binding: already outside the braces
			continue
		}
		if b.Imported == b.Local {
			item := b.Local
			if b.IsType && !strings.HasPrefix(original[:braceStart], "import type") {
				item = "type " + item
			}
			names = append(names, item)
			continue
		}
		item := b.Imported + " as " + b.Local
		if b.IsType && !strings.HasPrefix(original[:braceStart], "import type") {
			item = "type " + item
		}
		names = append(names, item)
	}
	return original[:braceStart+1] + " " + strings.Join(names, ", ") + " " + original[braceEnd:]
}

// sortImports orders retained imports by the configured priority list: each
// import's rank is the index of the first priority prefix matching its
// source, unmatched imports sort after all matched ones, ties broken
// lexicographically by full text.
func sortImports(decls []*ast.Declaration, priority []string) {
	rank := func(d *ast.Declaration) int {
		for idx, p := range priority {
			if strings.HasPrefix(d.Source, p) {
				return idx
			}
		}
		return len(priority)
	}

	var positions []int
	var block []*ast.Declaration
	for i, d := range decls {
		if d.Kind == ast.KindImport {
			positions = append(positions, i)
			block = append(block, d)
		}
	}
	sort.SliceStable(block, func(i, j int) bool {
		ri, rj := rank(block[i]), rank(block[j])
		if ri != rj {
			return ri < rj
		}
		return block[i].Text < block[j].Text
	})
	for k, pos := range positions {
		decls[pos] = block[k]
	}
}
