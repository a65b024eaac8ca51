// Package parse implements the indent-driven tree builder: a pushdown
// automaton that folds the token package's event stream into the element
// graph defined by package tree.
package parse

import (
	"fmt"

	"github.com/styml-go/styml/token"
	"github.com/styml-go/styml/tree"
)

// frame is one stack entry: the element currently being built, the indent
// column it owns, and the indent its children are pinned to once the first
// child has been seen (-1 until then).
type frame struct {
	idx         uint32
	ownIndent   int
	childIndent int
}

// builder walks a token stream and mutates a tree.Context in place,
// mirroring the original's stack machine: one frame per open container on
// an explicit slice rather than the call stack, so indentation handling
// stays table-driven instead of recursive.
type builder struct {
	ctx  *tree.Context
	tok  *token.Tokenizer
	stk  []frame
	multilineParentIndent int

	// lastResolved/lastResolvedLine track the most recently finalized Key
	// or Value element and the source line it finished on, so a same-line
	// trailing Comment ("foo: 1 # hello") attaches to that element rather
	// than to whatever container frame the stack has unwound to. This is a
	// pragmatic extension of the "nearest non-Unknown ancestor" rule: the
	// stack-top frame after a value resolves is already the enclosing
	// container, which would otherwise place a same-line comment after the
	// entire container instead of after the value it trails.
	lastResolved     uint32
	lastResolvedLine int
	haveLastResolved bool
}

// Parse consumes data in full and returns the resulting document, or the
// first structural or tokenizer error encountered.
func Parse(data []byte) (*tree.Document, error) {
	ctx := tree.NewContext(len(data))
	// The root element (index 0) is always a Key; its document value lives
	// in an Unknown placeholder wired up as its child exactly the way every
	// other Key's value slot is, so the very first token can coerce it into
	// a Map, Sequence, or Value through the same paths onKey/onCaret/
	// onStringValue already use for nested placeholders.
	rootSlot := ctx.NewUnknown()
	ctx.SetChildIdx(tree.RootIdx, rootSlot)
	b := &builder{
		ctx: ctx,
		tok: token.New(data, ctx.Arena()),
		stk: []frame{
			{idx: tree.RootIdx, ownIndent: -1, childIndent: -1},
			{idx: rootSlot, ownIndent: -1, childIndent: -1},
		},
	}
	if err := b.run(); err != nil {
		return nil, err
	}
	return tree.NewDocumentFromContext(ctx), nil
}

func (b *builder) top() *frame { return &b.stk[len(b.stk)-1] }

func (b *builder) run() error {
	for {
		parentIndent := b.top().ownIndent
		tk, err := b.tok.Next(parentIndent)
		if err != nil {
			return err
		}
		switch tk.Kind {
		case token.Eos:
			return nil
		case token.Newline:
			b.multilineParentIndent = b.top().ownIndent
			continue
		case token.Comment:
			b.onComment(tk)
		case token.Caret:
			if err := b.onCaret(tk); err != nil {
				return err
			}
		case token.Key:
			if err := b.onKey(tk); err != nil {
				return err
			}
		case token.StringValue:
			if err := b.onStringValue(tk); err != nil {
				return err
			}
		}
	}
}

func (b *builder) structErr(format string, args ...any) error {
	return fmt.Errorf("styml: "+format, args...)
}

// onComment attaches a Comment element to the nearest non-Unknown
// ancestor's piggybacked comment chain, walking up past an Unknown
// placeholder (the value-not-yet-resolved slot) to its parent.
func (b *builder) onComment(tk token.Token) {
	off, length := tk.Off, tk.Len
	standalone := tk.Column == 0
	commentIdx := b.ctx.NewComment(off, length, standalone)

	if !standalone && b.haveLastResolved && tk.Line == b.lastResolvedLine {
		b.ctx.AppendLastComment(b.lastResolved, commentIdx)
		return
	}

	hostIdx := b.top().idx
	if b.ctx.Type(hostIdx) == tree.Unknown && len(b.stk) > 1 {
		hostIdx = b.stk[len(b.stk)-2].idx
	}
	b.ctx.AppendLastComment(hostIdx, commentIdx)
}

// popWhile pops frames while cond holds on the current top, leaving at
// least the root frame.
func (b *builder) popWhile(cond func(f *frame) bool) {
	for len(b.stk) > 1 && cond(b.top()) {
		b.stk = b.stk[:len(b.stk)-1]
	}
}

// onCaret handles a '-' sequence-item marker at column c.
func (b *builder) onCaret(tk token.Token) error {
	c := tk.Column

	// A caret directly below a Key (c == parent.ownIndent, parent is Key)
	// is the "- k:\n    - item" idiom: the caret belongs to a sequence
	// nested one level under the key, not a sibling of the key itself, so
	// it does not pop the Key frame first.
	if len(b.stk) > 0 {
		top := b.top()
		if !(c == top.ownIndent && b.ctx.Type(top.idx) == tree.Key) {
			b.popWhile(func(f *frame) bool { return c < f.childIndentOr(f.ownIndent) })
		}
	}

	parent := b.top()
	if parent.childIndent != -1 && c != parent.childIndent {
		return b.structErr("line %d: caret at column %d does not match established indent %d", tk.Line, c, parent.childIndent)
	}

	parentType := b.ctx.Type(parent.idx)
	var seqIdx uint32
	switch parentType {
	case tree.Unknown:
		b.ctx.Reset(parent.idx, tree.Sequence)
		seqIdx = parent.idx
	case tree.Sequence:
		seqIdx = parent.idx
	default:
		newSeq := b.ctx.NewContainer(tree.Sequence)
		b.attachChild(parent.idx, newSeq)
		b.stk = append(b.stk, frame{idx: newSeq, ownIndent: c, childIndent: -1})
		seqIdx = newSeq
	}
	if parent.childIndent == -1 {
		parent.childIndent = c
	}
	seqFrame := b.top()
	if seqFrame.idx != seqIdx {
		seqFrame = &b.stk[len(b.stk)-1]
	}
	seqFrame.childIndent = c

	slotIdx := b.ctx.NewUnknown()
	b.ctx.AppendSub(seqIdx, slotIdx)
	b.stk = append(b.stk, frame{idx: slotIdx, ownIndent: c, childIndent: -1})
	return nil
}

// childIndentOr returns f's established child indent, or fallback if none
// has been established yet (used by popWhile to compare against the
// shallower of "my own indent" before any child is seen).
func (f *frame) childIndentOr(fallback int) int {
	if f.childIndent == -1 {
		return fallback
	}
	return f.childIndent
}

// attachChild appends newChild as a plain structural child of parentIdx,
// used for the "coerce Unknown, else wrap in a new container" idiom shared
// by onCaret and onKey. Map-child attachment has its own path because it
// must also touch the map index.
func (b *builder) attachChild(parentIdx, newChild uint32) {
	b.ctx.AppendSub(parentIdx, newChild)
}

// onKey handles a "K:" token at column c.
func (b *builder) onKey(tk token.Token) error {
	c := tk.Column
	name := tk.Text(b.ctx.Arena())

	b.popWhile(func(f *frame) bool { return c <= f.ownIndent })

	parent := b.top()
	if parent.childIndent != -1 && c != parent.childIndent {
		return b.structErr("line %d: key %q at column %d does not match established indent %d", tk.Line, name, c, parent.childIndent)
	}

	parentType := b.ctx.Type(parent.idx)
	var mapIdx uint32
	switch parentType {
	case tree.Unknown:
		b.ctx.Reset(parent.idx, tree.Map)
		mapIdx = parent.idx
	case tree.Map:
		mapIdx = parent.idx
	default:
		newMap := b.ctx.NewContainer(tree.Map)
		b.attachChild(parent.idx, newMap)
		b.stk = append(b.stk, frame{idx: newMap, ownIndent: c, childIndent: -1})
		mapIdx = newMap
	}
	mapFrame := b.top()
	mapFrame.childIndent = c

	if _, found := b.ctx.IndexFind(mapIdx, name); found {
		return b.structErr("line %d: duplicated key %q", tk.Line, name)
	}
	keyIdx := b.ctx.NewKey(name)
	pos := uint32(b.ctx.Size(mapIdx))
	b.ctx.AppendSub(mapIdx, keyIdx)
	b.ctx.IndexInsertOrReplace(mapIdx, name, pos)
	b.lastResolved, b.lastResolvedLine, b.haveLastResolved = keyIdx, tk.Line, true

	b.stk = append(b.stk, frame{idx: keyIdx, ownIndent: c, childIndent: -1})
	slotIdx := b.ctx.NewUnknown()
	b.ctx.SetChildIdx(keyIdx, slotIdx)
	b.stk = append(b.stk, frame{idx: slotIdx, ownIndent: c, childIndent: -1})
	return nil
}

// onStringValue handles a scalar value token at column c.
func (b *builder) onStringValue(tk token.Token) error {
	c := tk.Column
	parent := b.top()

	if c <= parent.ownIndent {
		return b.structErr("line %d: value at column %d is not indented under its parent (column %d)", tk.Line, c, parent.ownIndent)
	}
	if parent.childIndent != -1 && c != parent.childIndent {
		return b.structErr("line %d: value at column %d does not match established indent %d", tk.Line, c, parent.childIndent)
	}

	parentType := b.ctx.Type(parent.idx)
	if parentType == tree.Map {
		return b.structErr("line %d: in a map, a value without a key is forbidden", tk.Line)
	}

	if parentType == tree.Unknown {
		b.ctx.Reset(parent.idx, tree.Value)
		b.ctx.SetString(parent.idx, tk.Text(b.ctx.Arena()))
		b.lastResolved, b.lastResolvedLine, b.haveLastResolved = parent.idx, tk.Line, true
		b.popUnknownAndOwningKey()
		return nil
	}

	valIdx := b.ctx.NewValueFromHandle(tk.Off, tk.Len)
	b.ctx.AppendSub(parent.idx, valIdx)
	b.lastResolved, b.lastResolvedLine, b.haveLastResolved = valIdx, tk.Line, true
	return nil
}

// popUnknownAndOwningKey pops the just-resolved Unknown placeholder frame,
// and if its new parent frame is a Key, pops that too: a Key has at most
// one child, so resolving its value closes the Key frame as well.
func (b *builder) popUnknownAndOwningKey() {
	b.stk = b.stk[:len(b.stk)-1]
	if len(b.stk) > 1 && b.ctx.Type(b.top().idx) == tree.Key {
		b.stk = b.stk[:len(b.stk)-1]
	}
}
