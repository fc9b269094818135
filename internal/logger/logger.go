// Package logger carries source positions and diagnostic messages through the
// transform pipeline. It is deliberately small: one file's transform never
// needs the multi-file message routing a bundler does, only a place to record
// where something went wrong and what to say about it.
package logger

import "sort"

// Loc is a zero-based byte offset into a Source's Contents.
type Loc struct {
	Start int32
}

// Range is a Loc plus a byte length, used to slice out the offending text for
// a diagnostic or to quote a span back into emitted output.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// Source is the one TypeScript file under transform.
type Source struct {
	FileName string
	Contents string
}

// TextForRange slices the source text for r.
func (s Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start : r.Loc.Start+r.Len]
}

// LineAndColumn converts a byte offset into a 1-based line and 0-based
// column, along with the full text of that line (used for diagnostic
// "suggestion" rendering and for MsgLocation.LineText).
func (s Source) LineAndColumn(offset int32) (line int, column int, lineText string) {
	line = 1
	lineStart := int32(0)
	for i := int32(0); i < offset && int(i) < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = int(offset - lineStart)
	lineEnd := int32(len(s.Contents))
	if idx := indexByteFrom(s.Contents, '\n', lineStart); idx >= 0 {
		lineEnd = idx
	}
	if lineStart <= lineEnd && int(lineEnd) <= len(s.Contents) {
		lineText = s.Contents[lineStart:lineEnd]
	}
	return
}

func indexByteFrom(s string, b byte, from int32) int32 {
	for i := from; int(i) < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Kind classifies a diagnostic message. These map directly onto the error
// taxonomy: ParseError and InternalInvariantBroken are Error-kind, warnings
// cover UnsupportedConstruct, and InferenceFallback is never reported (it is
// resolved silently per the inferencer's fallback rule).
type Kind uint8

const (
	Error Kind = iota
	Warning
	Note
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// MsgLocation is the position payload of a Msg, matching the shape the
// primary ProcessSource error is reported with: line, column, the text of
// the offending line, and an optional fix suggestion.
type MsgLocation struct {
	File       string
	Line       int // 1-based
	Column     int // 0-based, in bytes
	Length     int
	LineText   string
	Suggestion string
}

type Msg struct {
	Kind     Kind
	Text     string
	Location *MsgLocation
}

// Log collects diagnostics during one ProcessSource call. It never panics and
// never performs I/O; the caller decides what to do with Done().
type Log struct {
	msgs []Msg
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) AddError(source Source, r Range, text string) {
	l.add(Error, source, r, text, "")
}

func (l *Log) AddErrorWithSuggestion(source Source, r Range, text, suggestion string) {
	l.add(Error, source, r, text, suggestion)
}

func (l *Log) AddWarning(source Source, r Range, text string) {
	l.add(Warning, source, r, text, "")
}

func (l *Log) add(kind Kind, source Source, r Range, text, suggestion string) {
	line, col, lineText := source.LineAndColumn(r.Loc.Start)
	l.msgs = append(l.msgs, Msg{
		Kind: kind,
		Text: text,
		Location: &MsgLocation{
			File:       source.FileName,
			Line:       line,
			Column:     col,
			Length:     int(r.Len),
			LineText:   lineText,
			Suggestion: suggestion,
		},
	})
}

// HasErrors reports whether any Error-kind message was recorded.
func (l *Log) HasErrors() bool {
	for _, m := range l.msgs {
		if m.Kind == Error {
			return true
		}
	}
	return false
}

// Done returns all recorded messages sorted by position, stable for
// identical input per the determinism invariant (§8 invariant 1).
func (l *Log) Done() []Msg {
	out := make([]Msg, len(l.msgs))
	copy(out, l.msgs)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Location, out[j].Location
		if ai == nil || aj == nil {
			return ai != nil
		}
		if ai.Line != aj.Line {
			return ai.Line < aj.Line
		}
		return ai.Column < aj.Column
	})
	return out
}

// First returns the first Error-kind message, if any, for use as the single
// primary error ProcessSource returns.
func (l *Log) First() *Msg {
	for i := range l.msgs {
		if l.msgs[i].Kind == Error {
			return &l.msgs[i]
		}
	}
	return nil
}
