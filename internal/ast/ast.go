// Package ast defines the Declaration record that flows through the rest of
// the pipeline: the extractor produces them, the core fills in a named
// namespace's Text after recursively processing its body, the resolver
// prunes the list (replacing a rewritten import with a copy), and the
// emitter consumes it once, calling the inferencer for each variable's type.
package ast

import "github.com/stacksjs/dtsgo/internal/logger"

// Kind classifies a top-level declaration.
type Kind uint8

const (
	KindImport Kind = iota
	KindVariable
	KindFunction
	KindInterface
	KindType
	KindClass
	KindEnum
	KindModule
	KindExport
	// KindReference is a pseudo-declaration for a triple-slash directive;
	// it carries no semantic weight, only verbatim text emitted at file top.
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindInterface:
		return "interface"
	case KindType:
		return "type"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindModule:
		return "module"
	case KindExport:
		return "export"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Modifier is one ordered-set entry of Declaration.Modifiers.
type Modifier string

const (
	ModDeclare   Modifier = "declare"
	ModConst     Modifier = "const"
	ModAbstract  Modifier = "abstract"
	ModAsync     Modifier = "async"
	ModDefault   Modifier = "default"
	ModReadonly  Modifier = "readonly"
	ModStatic    Modifier = "static"
	ModPrivate   Modifier = "private"
	ModProtected Modifier = "protected"
	ModPublic    Modifier = "public"
	ModOverride  Modifier = "override"
)

// Declaration is the central record described by the data model: one entry
// per top-level (or, recursively, per-class-member / per-namespace-member)
// syntactic unit.
type Declaration struct {
	Kind Kind

	// Name is the identifier or quoted module specifier. For default exports
	// this is the synthetic marker DefaultExportName.
	Name string

	// Text is the reconstructed, DTS-ready surface form for kinds where the
	// extractor precomputes it (import, export, function, class, interface,
	// type, enum, module, reference). Variables leave Text as the "declare
	// const|let|var name" prefix; the emitter appends ": Type;" once the
	// inferencer has run.
	Text string

	LeadingComments []string
	Decorators      []string

	IsExported   bool
	IsSideEffect bool // imports only
	Modifiers    []Modifier

	Generics        string // raw "<...>" slice including brackets, or ""
	Extends         string // class/interface "extends ..." clause, or ""
	Implements      string // class "implements ..." clause, or ""
	TypeAnnotation  string // variables/params: explicit annotation if present
	Value           string // variable RHS, raw source text
	Source          string // import/re-export module specifier
	InferredType    string // KindVariable: precomputed type; when empty the emitter infers one (the pipeline never sets it)

	Members []*Declaration // nested declarations: class/interface/enum/namespace bodies

	// RawBody holds a named namespace/module's inner source text (between
	// its braces, exclusive) for the core pipeline to recursively process
	// per §4.2's "members inside the body are recursively DTS-ified" rule.
	// Quoted-module and `declare global` bodies are passed through verbatim
	// instead and never populate this field.
	RawBody string

	// Range is the declaration's source span, used for diagnostics.
	Range logger.Range
}

// DefaultExportName is the synthetic Name used for `export default`.
const DefaultExportName = "default"

// HasModifier reports whether m is present in d.Modifiers.
func (d *Declaration) HasModifier(m Modifier) bool {
	for _, x := range d.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// AddModifier appends m if not already present, preserving the "never
// duplicate declare" invariant.
func (d *Declaration) AddModifier(m Modifier) {
	if !d.HasModifier(m) {
		d.Modifiers = append(d.Modifiers, m)
	}
}

// Comment is a single leading comment token with its position. The
// extractor's comment-attachment pass (§4.2) does not use it; it keeps its
// own rawComment records and stores plain strings in LeadingComments.
type Comment struct {
	Text string
	Loc  logger.Loc
	// Block is true for /* ... */ and /** ... */ comments, false for // comments.
	Block bool
}

// ProcessingContext groups one source file's name, text, and declaration
// list. ProcessSource does not construct one; it passes these values to each
// stage directly.
type ProcessingContext struct {
	FileName     string
	SourceCode   string
	Declarations []*Declaration
}
