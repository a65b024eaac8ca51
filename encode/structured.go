package encode

import (
	"strings"

	"github.com/styml-go/styml/tree"
)

// AsStructured walks doc's root and produces the structural comparison
// form: maps as `{ 'k' : v, ... }`, sequences as `[ v, ... ]`, scalars as
// double-quoted escaped strings, absent values as `None`. Comments are
// never emitted. withIndent inserts a newline and 2-space-per-level indent
// before each element of a container that has more than one child.
func AsStructured(doc *tree.Document, withIndent bool) []byte {
	var sb strings.Builder
	root, _ := doc.RootKey().Value()
	writeStructured(&sb, root, 0, withIndent)
	return []byte(sb.String())
}

func writeStructured(sb *strings.Builder, n tree.Node, depth int, withIndent bool) {
	if !n.Present() {
		sb.WriteString("None")
		return
	}
	switch n.Type() {
	case tree.Value:
		b, _ := n.Bytes()
		writeStructuredScalar(sb, b)
	case tree.Sequence:
		children, _ := n.Children()
		writeStructuredContainer(sb, "[", "]", children, depth, withIndent, nil)
	case tree.Map:
		children, _ := n.Children()
		writeStructuredContainer(sb, "{", "}", children, depth, withIndent, func(sb *strings.Builder, child tree.Node) {
			name, _ := child.KeyName()
			sb.WriteString("'")
			sb.WriteString(name)
			sb.WriteString("' : ")
			val, _ := child.Value()
			writeStructured(sb, val, depth+1, withIndent)
		})
	default:
		sb.WriteString("None")
	}
}

// writeStructuredContainer writes open, each visible (non-Comment) child
// separated by ", ", and close. writeEntry handles a Map's "'k' : v"
// rendering; when nil, each child is a Sequence element rendered via
// writeStructured directly.
func writeStructuredContainer(sb *strings.Builder, open, close string, children []tree.Node, depth int, withIndent bool, writeEntry func(*strings.Builder, tree.Node)) {
	visible := make([]tree.Node, 0, len(children))
	for _, c := range children {
		if c.Type() != tree.Comment {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		sb.WriteString(open)
		sb.WriteString(close)
		return
	}
	sb.WriteString(open)
	sb.WriteString(" ")
	multi := len(visible) > 1
	for i, c := range visible {
		if i > 0 {
			sb.WriteString(", ")
		}
		if withIndent && multi {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("  ", depth+1))
		}
		if writeEntry != nil {
			writeEntry(sb, c)
		} else {
			writeStructured(sb, c, depth+1, withIndent)
		}
	}
	sb.WriteString(" ")
	sb.WriteString(close)
}

// writeStructuredScalar double-quotes b, escaping backslash, newline,
// carriage return, tab, and the quote itself. A backslash not immediately
// followed by u, U, or x is doubled, per the structural form's grammar.
func writeStructuredScalar(sb *strings.Builder, b []byte) {
	sb.WriteByte('"')
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			var next byte
			if i+1 < len(b) {
				next = b[i+1]
			}
			if next == 'u' || next == 'U' || next == 'x' {
				sb.WriteByte('\\')
			} else {
				sb.WriteString(`\\`)
			}
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}
