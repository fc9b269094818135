// Package core wires the lexer-free extractor, inferencer, resolver, and
// emitter into the single pure entry point the rest of the system depends
// on: ProcessSource. It performs no I/O and holds no state across calls
// beyond the bounded process-local caches described in the resource model.
package core

import (
	"strings"

	"github.com/stacksjs/dtsgo/internal/ast"
	"github.com/stacksjs/dtsgo/internal/emitter"
	"github.com/stacksjs/dtsgo/internal/extractor"
	"github.com/stacksjs/dtsgo/internal/logger"
	"github.com/stacksjs/dtsgo/internal/resolver"
)

// Diagnostics is the per-call result of ProcessSource beyond the emitted
// text: a primary error (if any) and the full set of warnings/notes
// recorded along the way.
type Diagnostics struct {
	Primary  *logger.Msg
	Messages []logger.Msg
}

// HasErrors reports whether a ParseError or InternalInvariantBroken was
// recorded for this call.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && d.Primary != nil
}

// ProcessSource is the core's single exported operation: given one
// TypeScript source file, produce its `.d.ts` text. It never mutates
// global state other than the bounded caches, and two calls on identical
// arguments produce byte-identical output.
func ProcessSource(source, fileName string, keepComments bool, importPriority []string) (string, *Diagnostics) {
	src := logger.Source{FileName: fileName, Contents: source}
	log := logger.NewLog()

	decls := extractor.Extract(src, log)
	decls = reprocessNamespaces(decls, fileName, keepComments, importPriority, log, 0)
	decls = resolver.Resolve(decls, importPriority)
	text := emitter.Emit(decls, keepComments)

	msgs := log.Done()
	diag := &Diagnostics{Messages: msgs}
	if p := log.First(); p != nil {
		diag.Primary = p
	}
	return text, diag
}

// maxNamespaceDepth bounds recursive namespace reprocessing the same way
// the inferencer bounds expression recursion: pathological nesting cannot
// grow the call stack without bound.
const maxNamespaceDepth = 20

// reprocessNamespaces recursively runs the full extract/resolve/emit
// pipeline over every named namespace/module's captured RawBody, folding
// the result back into that declaration's Text. Quoted modules and
// `declare global` blocks never populate RawBody and pass through
// untouched.
func reprocessNamespaces(decls []*ast.Declaration, fileName string, keepComments bool, importPriority []string, log *logger.Log, depth int) []*ast.Declaration {
	for _, d := range decls {
		if d.Kind != ast.KindModule || d.RawBody == "" {
			continue
		}
		if depth >= maxNamespaceDepth {
			d.Text = namespaceHeader(d) + "{}"
			continue
		}

		innerSrc := logger.Source{FileName: fileName, Contents: d.RawBody}
		inner := extractor.Extract(innerSrc, log)
		inner = reprocessNamespaces(inner, fileName, keepComments, importPriority, log, depth+1)
		inner = resolver.Resolve(inner, importPriority)
		body := emitter.Emit(inner, keepComments)

		d.Text = namespaceHeader(d) + "{\n" + indent(body) + "}"
	}
	return decls
}

func namespaceHeader(d *ast.Declaration) string {
	prefix := ""
	if d.IsExported {
		prefix += "export "
	}
	return prefix + "declare namespace " + d.Name + " "
}

// indent prefixes every non-empty line of body with one tab, matching the
// emitter's own unindented top-level style one level deeper.
func indent(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteByte('\t')
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ClearCaches empties every bounded process-local cache the core
// maintains, for deterministic test isolation between cases that would
// otherwise share cache state.
func ClearCaches() {
	resolver.ClearCache()
}
