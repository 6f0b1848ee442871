package markup

import (
	"bufio"
	"html"
	"io"
	"strconv"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// WriteHTML serializes the tree rooted at doc as an HTML fragment.
// Every Text, Code and CodeBlock value and every attribute is escaped here;
// the tree itself never carries escaped text.
func WriteHTML(w io.Writer, doc *Node) error {
	bw := bufio.NewWriter(w)
	hw := &htmlWriter{w: bw}
	if doc != nil {
		if doc.Kind == KindDocument {
			for i, block := range doc.Children {
				if i > 0 {
					hw.raw("\n")
				}
				hw.node(block)
			}
		} else {
			hw.node(doc)
		}
	}
	if hw.err != nil {
		return hw.err
	}
	return bw.Flush()
}

type htmlWriter struct {
	w   *bufio.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = h.w.WriteString(s)
	}
}

func (h *htmlWriter) text(s string) {
	if h.err == nil {
		_, h.err = textEscaper.WriteString(h.w, s)
	}
}

func (h *htmlWriter) attr(s string) {
	h.raw(html.EscapeString(s))
}

func (h *htmlWriter) children(n *Node) {
	for _, c := range n.Children {
		h.node(c)
	}
}

func (h *htmlWriter) wrap(tag string, n *Node) {
	h.raw("<" + tag + ">")
	h.children(n)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) node(n *Node) {
	switch n.Kind {
	case KindDocument:
		h.children(n)
	case KindHeading:
		level := min(max(n.Level, 1), maxHeadingLevel)
		h.wrap("h"+strconv.Itoa(level), n)
	case KindThematicBreak:
		h.raw("<hr/>")
	case KindList:
		h.wrap("ul", n)
	case KindListItem:
		h.wrap("li", n)
	case KindCodeBlock:
		h.raw("<pre><code")
		if n.Lang != "" {
			h.raw(` class="language-`)
			h.attr(n.Lang)
			h.raw(`"`)
		}
		h.raw(">")
		h.text(n.Text)
		h.raw("</code></pre>")
	case KindParagraph:
		h.wrap("p", n)
	case KindText:
		h.text(n.Text)
	case KindStrong:
		h.wrap("strong", n)
	case KindEmphasis:
		h.wrap("em", n)
	case KindCode:
		h.raw("<code>")
		h.text(n.Text)
		h.raw("</code>")
	case KindLink:
		h.raw(`<a href="`)
		h.attr(n.Target)
		h.raw(`" target="_blank" rel="noopener">`)
		h.children(n)
		h.raw("</a>")
	case KindLineBreak:
		h.raw("<br/>")
	}
}
