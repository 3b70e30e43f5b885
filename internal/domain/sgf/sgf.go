package sgf

import (
	"strings"
	"unicode"
)

// Node is one raw SGF node: its property bag (values unescaped) and the
// variations that branch off right after it.
type Node struct {
	Properties map[string][]string
	Variations []*GameTree
}

// GameTree is one parenthesised sequence. Children holds subtrees that
// appear before the first node of the sequence; they hang off whatever the
// sequence itself hangs off.
type GameTree struct {
	Nodes    []*Node
	Children []*GameTree
}

// Collection is every top-level game tree in a file.
type Collection []*GameTree

// FirstTree returns the first tree that contains a node, descending into
// node-less wrappers.
func (c Collection) FirstTree() *GameTree {
	for _, t := range c {
		if found := t.firstWithNodes(); found != nil {
			return found
		}
	}
	return nil
}

func (t *GameTree) firstWithNodes() *GameTree {
	if len(t.Nodes) > 0 {
		return t
	}
	for _, child := range t.Children {
		if found := child.firstWithNodes(); found != nil {
			return found
		}
	}
	return nil
}

// ParseCollection runs the raw pass: it reads the text character by
// character and skips anything that does not fit the grammar. It never
// fails; an input without nodes yields trees without nodes.
func ParseCollection(text string) Collection {
	p := &rawParser{text: text}
	var trees Collection
	for p.pos < len(p.text) {
		if p.text[p.pos] == '(' {
			p.pos++
			trees = append(trees, p.parseTree())
			continue
		}
		p.pos++
	}
	return trees
}

type rawParser struct {
	text string
	pos  int
}

// parseTree reads up to and including the closing ')'. An unterminated
// tree ends at the end of input.
func (p *rawParser) parseTree() *GameTree {
	t := &GameTree{}
	var last *Node
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ';':
			p.pos++
			last = p.parseNode()
			t.Nodes = append(t.Nodes, last)
		case '(':
			p.pos++
			sub := p.parseTree()
			if last != nil {
				last.Variations = append(last.Variations, sub)
			} else {
				t.Children = append(t.Children, sub)
			}
		case ')':
			p.pos++
			return t
		default:
			p.pos++
		}
	}
	return t
}

func (p *rawParser) parseNode() *Node {
	n := &Node{Properties: make(map[string][]string)}
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case c == ';' || c == '(' || c == ')':
			return n
		case isLetter(c):
			key := p.readIdentifier()
			values := p.readValues()
			if key == "" || len(values) == 0 {
				continue
			}
			n.Properties[key] = append(n.Properties[key], values...)
		default:
			p.pos++
		}
	}
	return n
}

// readIdentifier consumes a run of letters and keeps the upper-case ones,
// so FF[3] identifiers such as "AddBlack" become "AB".
func (p *rawParser) readIdentifier() string {
	var key strings.Builder
	for p.pos < len(p.text) && isLetter(p.text[p.pos]) {
		if c := p.text[p.pos]; c >= 'A' && c <= 'Z' {
			key.WriteByte(c)
		}
		p.pos++
	}
	return key.String()
}

func (p *rawParser) readValues() []string {
	var values []string
	for {
		p.skipSpace()
		if p.pos >= len(p.text) || p.text[p.pos] != '[' {
			return values
		}
		p.pos++
		values = append(values, p.readValue())
	}
}

// readValue consumes a bracketed value after the '['. Only "\\" and "\]"
// are escapes; any other backslash is kept as written.
func (p *rawParser) readValue() string {
	var v strings.Builder
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case c == ']':
			p.pos++
			return v.String()
		case c == '\\' && p.pos+1 < len(p.text) && (p.text[p.pos+1] == '\\' || p.text[p.pos+1] == ']'):
			v.WriteByte(p.text[p.pos+1])
			p.pos += 2
		default:
			v.WriteByte(c)
			p.pos++
		}
	}
	return v.String()
}

func (p *rawParser) skipSpace() {
	for p.pos < len(p.text) && unicode.IsSpace(rune(p.text[p.pos])) {
		p.pos++
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

// EscapeValue escapes backslash and closing bracket, nothing else.
func EscapeValue(v string) string {
	return valueEscaper.Replace(v)
}
