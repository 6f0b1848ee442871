package markup

import "strings"

type allow uint8

const (
	allowStrong allow = 1 << iota
	allowEmphasis

	allowAll = allowStrong | allowEmphasis
)

// atom is a code span or link claimed before emphasis is resolved.
// Emphasis delimiters never pair across an atom boundary.
type atom struct {
	kind Kind
	end  int

	text string

	labelStart, labelEnd int
	target               string
}

// inlineParser scans one line. Code spans are claimed first, links second,
// and bold/italic are resolved last over what is left, so a failed opener
// costs a table lookup rather than a rescan.
type inlineParser struct {
	s       string
	atoms   map[int]*atom
	covered []bool // code spans and link syntax
	inLabel []bool // link label interiors
}

// region is a stretch of the line in which emphasis delimiters may pair:
// either the whole line or one link label.
type region struct {
	p      *inlineParser
	lo, hi int
	top    bool

	nextDouble []int32
	nextLone   []int32
}

func parseInline(s string) []*Node {
	if s == "" {
		return nil
	}
	p := &inlineParser{
		s:       s,
		atoms:   make(map[int]*atom),
		covered: make([]bool, len(s)),
		inLabel: make([]bool, len(s)),
	}
	p.claimCode()
	p.claimLinks()
	return p.parse(p.newRegion(0, len(s), true), 0, len(s), allowAll)
}

func (p *inlineParser) claimCode() {
	s := p.s
	for i := 0; i < len(s); {
		if s[i] != '`' {
			j := strings.IndexByte(s[i:], '`')
			if j < 0 {
				return
			}
			i += j
			continue
		}
		j := strings.IndexByte(s[i+1:], '`')
		if j < 0 {
			return
		}
		if j == 0 {
			i++
			continue
		}
		end := i + j + 2
		p.atoms[i] = &atom{kind: KindCode, end: end, text: s[i+1 : end-1]}
		for k := i; k < end; k++ {
			p.covered[k] = true
		}
		i = end
	}
}

func (p *inlineParser) claimLinks() {
	s := p.s
	n := len(s)
	if strings.IndexByte(s, '[') < 0 {
		return
	}
	// next occurrence tables keep every candidate O(1), accepted or not
	nextBracket := make([]int32, n+1)
	nextParen := make([]int32, n+1)
	nextTick := make([]int32, n+1)
	nextStop := make([]int32, n+1)
	nextBracket[n], nextParen[n], nextTick[n], nextStop[n] = -1, -1, -1, -1
	for i := n - 1; i >= 0; i-- {
		nextBracket[i], nextParen[i], nextTick[i], nextStop[i] = nextBracket[i+1], nextParen[i+1], nextTick[i+1], nextStop[i+1]
		switch s[i] {
		case ']':
			if !p.covered[i] {
				nextBracket[i] = int32(i)
			}
		case ')':
			nextParen[i] = int32(i)
		case '`':
			nextTick[i] = int32(i)
		case ':', '/', '?', '#':
			nextStop[i] = int32(i)
		}
	}

	for i := 0; i < n; i++ {
		if s[i] != '[' || p.covered[i] {
			continue
		}
		k := int(nextBracket[i+1])
		if k < 0 {
			return
		}
		if k == i+1 || k+1 >= n || s[k+1] != '(' || p.covered[k+1] {
			continue
		}
		m := int(nextParen[k+2])
		if m < 0 {
			return
		}
		if m == k+2 {
			continue
		}
		if t := int(nextTick[k+2]); t >= 0 && t < m {
			continue
		}
		if e := int(nextStop[k+2]); e >= 0 && e < m && s[e] == ':' && !allowedScheme(s[k+2:e]) {
			continue
		}
		p.atoms[i] = &atom{kind: KindLink, end: m + 1, labelStart: i + 1, labelEnd: k, target: s[k+2 : m]}
		p.covered[i] = true
		for j := i + 1; j < k; j++ {
			p.inLabel[j] = true
		}
		for j := k; j <= m; j++ {
			p.covered[j] = true
		}
		i = m
	}
}

// safeTarget rejects link targets whose scheme could run script when the
// output is displayed. Relative targets and fragments are allowed.
func safeTarget(target string) bool {
	stop := strings.IndexAny(target, ":/?#")
	if stop < 0 || target[stop] != ':' {
		return true
	}
	return allowedScheme(target[:stop])
}

// longest allowed scheme is "mailto"
const maxSchemeLen = 6

func allowedScheme(scheme string) bool {
	if len(scheme) > maxSchemeLen {
		return false
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "mailto", "tel":
		return true
	}
	return false
}

func (p *inlineParser) newRegion(lo, hi int, top bool) *region {
	r := &region{p: p, lo: lo, hi: hi, top: top}
	if strings.IndexByte(p.s[lo:hi], '*') < 0 {
		return r
	}
	s := p.s
	r.nextDouble = make([]int32, hi-lo+1)
	r.nextLone = make([]int32, hi-lo+1)
	r.nextDouble[hi-lo], r.nextLone[hi-lo] = -1, -1
	for j := hi - 1; j >= lo; j-- {
		d, l := r.nextDouble[j-lo+1], r.nextLone[j-lo+1]
		if s[j] == '*' && r.free(j) {
			if j+1 < hi && s[j+1] == '*' && r.free(j+1) {
				d = int32(j)
			}
			if (j == 0 || s[j-1] != '*') && (j+1 == len(s) || s[j+1] != '*') {
				l = int32(j)
			}
		}
		r.nextDouble[j-lo], r.nextLone[j-lo] = d, l
	}
	return r
}

func (r *region) free(j int) bool {
	return !r.p.covered[j] && !(r.top && r.p.inLabel[j])
}

// double returns the first "**" at or after j, or -1.
func (r *region) double(j int) int {
	if r.nextDouble == nil || j >= r.hi {
		return -1
	}
	return int(r.nextDouble[j-r.lo])
}

// lone returns the first '*' at or after j that has no '*' neighbor, or -1.
func (r *region) lone(j int) int {
	if r.nextLone == nil || j >= r.hi {
		return -1
	}
	return int(r.nextLone[j-r.lo])
}

func (p *inlineParser) parse(r *region, lo, hi int, allowed allow) []*Node {
	s := p.s
	var out []*Node
	textStart := lo
	flush := func(end int) {
		if end > textStart {
			out = appendText(out, s[textStart:end])
		}
	}

	for i := lo; i < hi; {
		c := s[i]
		if c == '`' || c == '[' {
			if a, ok := p.atoms[i]; ok && a.end <= hi {
				flush(i)
				out = append(out, p.atomNode(a, allowed))
				i = a.end
				textStart = i
				continue
			}
		}
		if c != '*' || !r.free(i) {
			i++
			continue
		}
		if allowed&allowStrong != 0 && i+1 < hi && s[i+1] == '*' && r.free(i+1) {
			if j := r.double(i + 3); j >= 0 && j+2 <= hi {
				flush(i)
				out = append(out, &Node{Kind: KindStrong, Children: p.parse(r, i+2, j, allowed&^allowStrong)})
				i = j + 2
				textStart = i
				continue
			}
		}
		if allowed&allowEmphasis != 0 && (i == 0 || s[i-1] != '*') && i+1 < hi && s[i+1] != '*' {
			if j := r.lone(i + 2); j >= 0 && j < hi {
				flush(i)
				out = append(out, &Node{Kind: KindEmphasis, Children: p.parse(r, i+1, j, allowed&^allowEmphasis)})
				i = j + 1
				textStart = i
				continue
			}
		}
		i++
	}
	flush(hi)
	return out
}

func (p *inlineParser) atomNode(a *atom, allowed allow) *Node {
	if a.kind == KindCode {
		return &Node{Kind: KindCode, Text: a.text}
	}
	label := p.newRegion(a.labelStart, a.labelEnd, false)
	return &Node{
		Kind:     KindLink,
		Target:   a.target,
		Children: p.parse(label, a.labelStart, a.labelEnd, allowed),
	}
}

func appendText(out []*Node, s string) []*Node {
	if n := len(out); n > 0 && out[n-1].Kind == KindText {
		out[n-1].Text += s
		return out
	}
	return append(out, textNode(s))
}
