package extractor

import "strings"

// rawComment is one comment token plus its byte offset, as found walking
// backward/forward over trivia.
type rawComment struct {
	text string
	pos  int
	end  int
}

// collectLeadingComments scans trivia starting at i and returns the ordered
// list of comment tokens that are contiguous with (no blank line before)
// the first non-comment token at the returned index. Per §4.2's attachment
// rule, a blank line anywhere between two comments, or between the last
// comment and the declaration, breaks the chain — only the tail run
// surviving up to the declaration is kept.
func collectLeadingComments(src string, i int) ([]rawComment, int) {
	var all []rawComment
	lineOfLastStop := -1
	pos := i
	for pos < len(src) {
		c := src[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			pos++
		case c == '\n':
			lineOfLastStop++
			pos++
		case c == '/' && pos+1 < len(src) && src[pos+1] == '/':
			start := pos
			for pos < len(src) && src[pos] != '\n' {
				pos++
			}
			all = append(all, rawComment{text: src[start:pos], pos: start, end: pos})
		case c == '/' && pos+1 < len(src) && src[pos+1] == '*':
			start := pos
			pos += 2
			for pos < len(src) && !(src[pos] == '*' && pos+1 < len(src) && src[pos+1] == '/') {
				pos++
			}
			if pos < len(src) {
				pos += 2
			}
			all = append(all, rawComment{text: src[start:pos], pos: start, end: pos})
		default:
			return trimToLastContiguousRun(src, all, pos), pos
		}
	}
	return trimToLastContiguousRun(src, all, pos), pos
}

// trimToLastContiguousRun walks the collected comments from the end
// backward and keeps only the trailing run where no blank line separates
// consecutive entries. A blank line between the last entry and stop (the
// start of the following declaration) drops every entry.
func trimToLastContiguousRun(src string, all []rawComment, stop int) []rawComment {
	if len(all) == 0 {
		return nil
	}
	if blankLineBetween(src, all[len(all)-1].end, stop) {
		return nil
	}
	cut := 0
	for k := len(all) - 1; k > 0; k-- {
		if blankLineBetween(src, all[k-1].end, all[k].pos) {
			cut = k
			break
		}
	}
	return all[cut:]
}

func blankLineBetween(src string, from, to int) bool {
	newlines := 0
	for i := from; i < to && i < len(src); i++ {
		if src[i] == '\n' {
			newlines++
		}
	}
	return newlines >= 2
}

func commentTexts(cs []rawComment) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.text
	}
	return out
}

// jsdocSummary returns the first non-empty content line of a /** ... */
// comment, or "" if comments has no JSDoc block.
func jsdocSummary(comments []string) string {
	for _, c := range comments {
		if !strings.HasPrefix(c, "/**") {
			continue
		}
		body := strings.TrimPrefix(c, "/**")
		body = strings.TrimSuffix(body, "*/")
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimSpace(line)
			if line != "" {
				return line
			}
		}
	}
	return ""
}
