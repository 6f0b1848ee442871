// Package markup renders the note markup subset (headings, rules, lists,
// fenced code, paragraphs, bold, italic, code spans and links) into a
// small output tree and serializes that tree as escaped HTML.
//
// Rendering is total: every input produces a tree, and anything that is
// not recognized syntax ends up as literal text.
package markup

// Kind classifies a node in the output tree.
type Kind uint8

// Node kinds. Block kinds come first, inline kinds after KindText.
const (
	KindDocument Kind = iota

	// Block-level nodes.
	KindHeading
	KindThematicBreak
	KindList
	KindListItem
	KindCodeBlock
	KindParagraph

	// Inline-level nodes.
	KindText
	KindStrong
	KindEmphasis
	KindCode
	KindLink
	KindLineBreak
)

var kindNames = [...]string{
	KindDocument:      "Document",
	KindHeading:       "Heading",
	KindThematicBreak: "ThematicBreak",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindCodeBlock:     "CodeBlock",
	KindParagraph:     "Paragraph",
	KindText:          "Text",
	KindStrong:        "Strong",
	KindEmphasis:      "Emphasis",
	KindCode:          "Code",
	KindLink:          "Link",
	KindLineBreak:     "LineBreak",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is one element of the output tree.
//
// Text holds the literal (unescaped) source characters for Text, Code and
// CodeBlock nodes. Escaping happens only when the tree is serialized.
type Node struct {
	Kind Kind

	// Level is the heading level (1-6).
	Level int

	// Lang is the language hint of a code block, if any.
	Lang string

	// Text is the literal content of leaf nodes.
	Text string

	// Target is the link destination.
	Target string

	Children []*Node
}

// IsBlock reports whether n is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind < KindText
}

// IsInline reports whether n is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind >= KindText
}

func (n *Node) append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

func textNode(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}
