package markup

import "strings"

const fence = "```"

type segmentKind uint8

const (
	segmentText segmentKind = iota
	segmentFence
)

// segment is a run of source that is either ordinary text (split into
// lines) or the body of a complete fenced code block.
type segment struct {
	kind  segmentKind
	lines []string
	code  string
	lang  string
}

// normalizeNewlines turns \r\n and lone \r into \n.
func normalizeNewlines(src string) string {
	if strings.IndexByte(src, '\r') < 0 {
		return src
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}

// splitLines normalizes line endings and splits src into lines.
func splitLines(src string) []string {
	return strings.Split(normalizeNewlines(src), "\n")
}

// splitSegments separates fenced code blocks from text. A fence runs from
// a triple backtick to the next triple backtick, on one line or across
// several; the fences need not sit on lines of their own. An opening fence
// with no closing one is ordinary text.
func splitSegments(src string) []segment {
	var out []segment
	text := func(s string) {
		if s != "" {
			out = append(out, segment{kind: segmentText, lines: strings.Split(s, "\n")})
		}
	}

	pos := 0
	for pos < len(src) {
		open := strings.Index(src[pos:], fence)
		if open < 0 {
			break
		}
		open += pos
		body := open + len(fence)
		end := strings.Index(src[body:], fence)
		if end < 0 {
			break
		}
		end += body

		text(src[pos:open])
		code, lang := fenceBody(src[body:end])
		out = append(out, segment{kind: segmentFence, code: code, lang: lang})
		pos = end + len(fence)
	}
	text(src[pos:])
	return out
}

// fenceBody splits the text between two fences into code and an info
// string. The rest of the opening line is the info string only when it is
// empty or a single language-like word and the block spans lines; one
// newline next to each fence belongs to the fence.
func fenceBody(s string) (code, info string) {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s, ""
	}
	first := strings.TrimSpace(s[:nl])
	if first == "" || fenceLang(first) == first {
		info = first
		s = s[nl+1:]
	}
	return strings.TrimSuffix(s, "\n"), info
}

// fenceLang takes the first word of an info string and drops anything that
// could not appear in a language name.
func fenceLang(info string) string {
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		info = info[:i]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '+', r == '#', r == '.':
			return r
		}
		return -1
	}, info)
}
