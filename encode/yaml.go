package encode

import (
	"strings"

	"github.com/styml-go/styml/tree"
)

// AsYaml walks doc's root in document order and renders round-trippable
// YAML: stored key order is preserved, comments are reattached from their
// piggybacked chains, and each scalar picks the narrowest style (plain,
// single-quoted, double-quoted) that can represent it losslessly.
func AsYaml(doc *tree.Document, opts ...Option) []byte {
	o := yamlOpts{}
	for _, opt := range opts {
		opt(&o)
	}
	w := &yamlWriter{opts: o}
	rootKey := doc.RootKey()
	emitLeadingComments(w, rootKey, 0)
	root, _ := rootKey.Value()
	if root.Present() {
		emitContainer(w, root, 0)
	}
	return []byte(w.sb.String())
}

type yamlWriter struct {
	sb   strings.Builder
	opts yamlOpts
}

func (w *yamlWriter) raw(s string) { w.sb.WriteString(s) }
func (w *yamlWriter) newline()     { w.sb.WriteString("\n") }

func (w *yamlWriter) rawKey(s string) {
	if w.opts.color {
		w.sb.WriteString(keyColor.Sprint(s))
		return
	}
	w.sb.WriteString(s)
}

func (w *yamlWriter) rawComment(s string) {
	if w.opts.color {
		w.sb.WriteString(commentColor.Sprint(s))
		return
	}
	w.sb.WriteString(s)
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

// emitLeadingComments renders n's own piggybacked comment chain as a block
// of own-line comments at depth. A container's chain holds comments that
// arrived while it was the innermost open frame — typically ones preceding
// its first child, or between two entries once the automaton has unwound
// back to the container — so they are rendered as a leading block rather
// than interleaved at their original position.
func emitLeadingComments(w *yamlWriter, n tree.Node, depth int) {
	for _, c := range n.TrailingComments() {
		text, _ := c.CommentText()
		w.raw(indent(depth))
		w.rawComment("#" + text)
		w.newline()
	}
}

// emitTrailingThenNewline renders comments piggybacked on n as same-line
// ("# hello" appended after a single space) unless a comment is itself
// marked standalone, in which case it starts its own line first. It always
// closes the current line afterward.
func emitTrailingThenNewline(w *yamlWriter, n tree.Node, depth int) {
	for _, c := range n.TrailingComments() {
		text, _ := c.CommentText()
		standalone, _ := c.Standalone()
		if standalone {
			w.newline()
			w.raw(indent(depth))
			w.rawComment("#" + text)
		} else {
			w.raw(" ")
			w.rawComment("#" + text)
		}
	}
	w.newline()
}

// emitContainer renders n (a Map or Sequence, possibly the document root)
// at depth, with no line already open.
func emitContainer(w *yamlWriter, n tree.Node, depth int) {
	emitLeadingComments(w, n, depth)
	switch n.Type() {
	case tree.Sequence:
		emitSequenceEntries(w, n, depth, false)
	case tree.Map:
		emitMapEntries(w, n, depth, false)
	case tree.Value:
		b, _ := n.Bytes()
		w.raw(indent(depth))
		writeScalar(w, b)
		emitTrailingThenNewline(w, n, depth)
	}
}

// emitSequenceEntries renders each child of Sequence n as a "- " item at
// depth. If firstInline, the first item continues the already-open line
// (the "- " introducer for this sequence was already written by the
// caller) instead of starting with its own indent.
func emitSequenceEntries(w *yamlWriter, n tree.Node, depth int, firstInline bool) {
	children, _ := n.Children()
	for i, child := range children {
		inline := firstInline && i == 0
		emitSequenceItem(w, child, depth, inline)
	}
}

func emitSequenceItem(w *yamlWriter, n tree.Node, depth int, inline bool) {
	if !inline {
		w.raw(indent(depth))
	}
	w.raw("- ")
	switch n.Type() {
	case tree.Value:
		b, _ := n.Bytes()
		writeScalar(w, b)
		emitTrailingThenNewline(w, n, depth)
	case tree.Map:
		emitMapEntries(w, n, depth+1, true)
	case tree.Sequence:
		emitSequenceEntries(w, n, depth+1, true)
	default:
		w.newline()
	}
}

// emitMapEntries renders each Key child of Map n at depth. If firstInline,
// the first key continues the already-open line (used for a Map that is
// itself a sequence item, inlined after "- ").
func emitMapEntries(w *yamlWriter, n tree.Node, depth int, firstInline bool) {
	children, _ := n.Children()
	for i, key := range children {
		inline := firstInline && i == 0
		emitKey(w, key, depth, inline)
	}
}

func emitKey(w *yamlWriter, keyNode tree.Node, depth int, inline bool) {
	if !inline {
		w.raw(indent(depth))
	}
	name, _ := keyNode.KeyName()
	w.rawKey(name)
	w.raw(":")

	valNode, _ := keyNode.Value()
	if !valNode.Present() {
		emitTrailingThenNewline(w, keyNode, depth)
		return
	}

	switch valNode.Type() {
	case tree.Value:
		b, _ := valNode.Bytes()
		w.raw(" ")
		writeScalar(w, b)
		emitTrailingThenNewline(w, valNode, depth)
	case tree.Map:
		emitTrailingThenNewline(w, keyNode, depth)
		emitLeadingComments(w, valNode, depth+1)
		emitMapEntries(w, valNode, depth+1, false)
	case tree.Sequence:
		emitTrailingThenNewline(w, keyNode, depth)
		emitLeadingComments(w, valNode, depth+1)
		emitSequenceEntries(w, valNode, depth+1, false)
	default:
		emitTrailingThenNewline(w, keyNode, depth)
	}
}

// writeScalar picks the narrowest style that can represent b losslessly:
// plain when possible, else single-quoted when there is no embedded
// newline, else double-quoted. The literal block form is part of the
// design but, per the ambiguity in the source this was ported from, is
// never selected automatically.
func writeScalar(w *yamlWriter, b []byte) {
	s := string(b)
	if isPlainScalar(s) {
		w.raw(s)
		return
	}
	if !strings.Contains(s, "\n") {
		w.raw("'")
		w.raw(strings.ReplaceAll(s, "'", "''"))
		w.raw("'")
		return
	}
	w.raw(`"`)
	w.raw(escapeDoubleQuoted(s))
	w.raw(`"`)
}

func isPlainScalar(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return false
	}
	switch s[0] {
	case '>', '|', '\'', '"':
		return false
	}
	if strings.ContainsAny(s, "\t\r\n") {
		return false
	}
	if strings.Contains(s, " #") {
		return false
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return false
	}
	return true
}

func escapeDoubleQuoted(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
