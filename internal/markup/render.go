package markup

import (
	"strings"
)

// DefaultMaxInputBytes is the input cap used by Default.
const DefaultMaxInputBytes = 1 << 20

// Renderer converts note source into an output tree. The zero value has
// no input cap and no language detection. A Renderer holds no state
// between calls and is safe for concurrent use.
type Renderer struct {
	// MaxInputBytes caps the input that gets markup recognition. Larger
	// inputs are rendered as escaped plain text. Zero or negative means no cap.
	MaxInputBytes int

	// DetectLanguage labels code blocks that have no language hint.
	DetectLanguage bool
}

// Default is the renderer used by the package-level functions.
var Default = Renderer{MaxInputBytes: DefaultMaxInputBytes}

// Parse builds the output tree for src using Default.
func Parse(src string) *Node { return Default.Parse(src) }

// Render returns the HTML fragment for src using Default.
func Render(src string) string { return Default.Render(src) }

// Parse builds the output tree for src.
func (r Renderer) Parse(src string) *Node {
	doc := &Node{Kind: KindDocument}
	if src == "" {
		return doc
	}
	if r.MaxInputBytes > 0 && len(src) > r.MaxInputBytes {
		doc.append(literalParagraph(splitLines(src)))
		return doc
	}

	for _, seg := range splitSegments(normalizeNewlines(src)) {
		if seg.kind == segmentText {
			parseBlocks(doc, seg.lines)
			continue
		}
		code := seg.code
		lang := langFromInfo(seg.lang)
		if lang == "" && r.DetectLanguage {
			lang = detectLanguage(code)
		}
		doc.append(&Node{Kind: KindCodeBlock, Lang: lang, Text: code})
	}
	return doc
}

// Render returns the HTML fragment for src.
func (r Renderer) Render(src string) string {
	var b strings.Builder
	// strings.Builder never fails a write.
	_ = WriteHTML(&b, r.Parse(src))
	return b.String()
}

// literalParagraph is the fallback for oversized input: the text survives,
// every character escaped, with no markup recognized.
func literalParagraph(lines []string) *Node {
	p := &Node{Kind: KindParagraph}
	for i, line := range lines {
		if i > 0 {
			p.append(&Node{Kind: KindLineBreak})
		}
		if line != "" {
			p.append(textNode(line))
		}
	}
	return p
}
