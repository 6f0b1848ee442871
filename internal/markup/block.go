package markup

import "strings"

const maxHeadingLevel = 6

// parseBlocks appends the blocks found in a text segment to doc.
// Heading, rule and list lines always start their own block; blank lines
// end the current paragraph or list.
func parseBlocks(doc *Node, lines []string) {
	var (
		para []string
		list *Node
	)
	flush := func() {
		if len(para) > 0 {
			doc.append(paragraph(para))
			para = nil
		}
	}

	for _, line := range lines {
		if isBlank(line) {
			flush()
			list = nil
			continue
		}
		if level, text, ok := headingLine(line); ok {
			flush()
			list = nil
			doc.append(&Node{Kind: KindHeading, Level: level, Children: parseInline(text)})
			continue
		}
		if isRule(line) {
			flush()
			list = nil
			doc.append(&Node{Kind: KindThematicBreak})
			continue
		}
		if item, ok := listItemLine(line); ok {
			flush()
			if list == nil {
				list = &Node{Kind: KindList}
				doc.append(list)
			}
			list.append(&Node{Kind: KindListItem, Children: parseInline(item)})
			continue
		}
		list = nil
		para = append(para, line)
	}
	flush()
}

func paragraph(lines []string) *Node {
	p := &Node{Kind: KindParagraph}
	for i, line := range lines {
		if i > 0 {
			p.append(&Node{Kind: KindLineBreak})
		}
		p.append(parseInline(line)...)
	}
	return p
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// headingLine recognizes 1-6 '#' followed by whitespace and text.
// The whole marker run is counted first, so "######" is never read as a
// shorter heading with leftover '#'.
func headingLine(line string) (int, string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingLevel || n == len(line) {
		return 0, "", false
	}
	if line[n] != ' ' && line[n] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(line[n:])
	if text == "" {
		return 0, "", false
	}
	return n, text, true
}

// isRule matches three or more of the same character from "-*_",
// optionally surrounded by whitespace.
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 3 {
		return false
	}
	c := t[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i] != c {
			return false
		}
	}
	return true
}

func listItemLine(line string) (string, bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}
	return "", false
}
