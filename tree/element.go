package tree

import "github.com/styml-go/styml/arena"

// element is one node record. Go has neither bitfields nor unions, so the
// original's packed 3-bit tag / 29-bit compound field plus a three-word
// typed union becomes a plain tagged struct: typ selects which of the
// fields below are meaningful (see DESIGN.md for the rationale). Every
// field here is still a fixed-width scalar except subs, which holds a
// Map/Sequence's children and grows the same way the original's
// heap-allocated, doubling-capacity sub-array does — via append.
type element struct {
	typ Type

	// Key, Value, Comment: the scalar/name string.
	strOff uint32
	strLen uint32 // includes trailing NUL; 0 means "no string"

	// Key: index of the value child (noChild = absent).
	childIdx uint32

	// Key, Value, Comment: next link in a piggybacked comment chain.
	nextComment uint32

	// Comment only.
	standalone bool

	// Map, Sequence: children, in document order.
	subs []uint32
}

// Context owns one document's arena, element store, and map child index.
// It is the "detail::Context" of the original: a Document holds exactly
// one Context exclusively, and Node handles are non-owning references into
// it.
type Context struct {
	arena *arena.Arena
	elems []element
	idx   *mapIndex
}

// NewContext allocates a fresh Context with its root slot (index 0, an
// empty Key) already in place, and the arena pre-reserved to roughly
// reserveBytes the way the original constructor reserves the arena to the
// input's byte length before parsing.
func NewContext(reserveBytes int) *Context {
	c := &Context{
		arena: arena.New(reserveBytes),
		elems: make([]element, 0, reserveBytes/8+1),
		idx:   newMapIndex(),
	}
	off, length := c.arena.Append("")
	c.elems = append(c.elems, element{typ: Key, strOff: off, strLen: length})
	return c
}

// Len reports the number of elements allocated so far, including the root.
func (c *Context) Len() int { return len(c.elems) }

func (c *Context) get(idx uint32) *element { return &c.elems[idx] }

// Type reports the type of the element at idx.
func (c *Context) Type(idx uint32) Type { return c.elems[idx].typ }

// newUnknown allocates a fresh placeholder slot.
func (c *Context) newUnknown() uint32 {
	c.elems = append(c.elems, element{typ: Unknown})
	return uint32(len(c.elems) - 1)
}

// newKey allocates a Key element with the given name and no value child.
func (c *Context) newKey(name string) uint32 {
	off, length := c.arena.Append(name)
	c.elems = append(c.elems, element{typ: Key, strOff: off, strLen: length})
	return uint32(len(c.elems) - 1)
}

// newValue allocates a Value element holding s.
func (c *Context) newValue(s string) uint32 {
	off, length := c.arena.Append(s)
	c.elems = append(c.elems, element{typ: Value, strOff: off, strLen: length})
	return uint32(len(c.elems) - 1)
}

// newValueHandle allocates a Value element from an already-committed arena
// handle, used by the tokenizer/builder path where the scalar was built up
// through a session rather than a single string.
func (c *Context) newValueHandle(off, length uint32) uint32 {
	c.elems = append(c.elems, element{typ: Value, strOff: off, strLen: length})
	return uint32(len(c.elems) - 1)
}

// newCommentHandle allocates a Comment element from an arena handle.
func (c *Context) newCommentHandle(off, length uint32, standalone bool) uint32 {
	c.elems = append(c.elems, element{typ: Comment, strOff: off, strLen: length, standalone: standalone})
	return uint32(len(c.elems) - 1)
}

// newContainer allocates an empty Map or Sequence element.
func (c *Context) newContainer(t Type) uint32 {
	if t != Map && t != Sequence {
		panic("tree: newContainer requires Map or Sequence")
	}
	c.elems = append(c.elems, element{typ: t})
	return uint32(len(c.elems) - 1)
}

// Reset discards idx's prior type-specific state and turns it into a fresh
// element of type t, matching the original's reset(idx, kind) operation
// used when an Unknown placeholder is coerced into a concrete kind.
func (c *Context) Reset(idx uint32, t Type) {
	e := c.get(idx)
	*e = element{typ: t}
}

// SetString overwrites the string payload of a Value, Key, or Comment
// element in place (used by assignment through the Node façade).
func (c *Context) SetString(idx uint32, s string) {
	e := c.get(idx)
	off, length := c.arena.Append(s)
	e.strOff, e.strLen = off, length
}

// String returns the stored string for a Value, Key, or Comment element.
func (c *Context) String(idx uint32) string {
	e := c.get(idx)
	if e.strLen == 0 {
		return ""
	}
	return c.arena.ViewString(e.strOff, e.strLen)
}

// ChildIdx returns a Key's value child (noChild if absent).
func (c *Context) ChildIdx(idx uint32) uint32 { return c.get(idx).childIdx }

// SetChildIdx sets a Key's value child.
func (c *Context) SetChildIdx(idx, child uint32) { c.get(idx).childIdx = child }

// NextComment returns the next link of a piggybacked comment chain.
func (c *Context) NextComment(idx uint32) uint32 { return c.get(idx).nextComment }

// SetNextComment sets the next link of a piggybacked comment chain.
func (c *Context) SetNextComment(idx, next uint32) { c.get(idx).nextComment = next }

// Standalone reports whether a Comment element started at column 0.
func (c *Context) Standalone(idx uint32) bool { return c.get(idx).standalone }

// AppendLastComment walks idx's next-comment chain to its end and links
// newComment there, implementing the "attach to the nearest non-Unknown
// ancestor... walked to the end" rule.
func (c *Context) AppendLastComment(idx, newComment uint32) {
	cur := idx
	for {
		next := c.NextComment(cur)
		if next == noComment {
			c.SetNextComment(cur, newComment)
			return
		}
		cur = next
	}
}

// Subs returns a Map or Sequence element's children, in document order. The
// returned slice must not be mutated by the caller; use the Append/Insert/
// Remove/Pop helpers below.
func (c *Context) Subs(idx uint32) []uint32 { return c.get(idx).subs }

// Size is the number of children of a Map or Sequence element.
func (c *Context) Size(idx uint32) int { return len(c.get(idx).subs) }

// AppendSub adds child to the end of a container's child list.
func (c *Context) AppendSub(parent, child uint32) {
	e := c.get(parent)
	e.subs = append(e.subs, child)
}

// InsertSub inserts child at position pos (0 <= pos <= size).
func (c *Context) InsertSub(parent uint32, pos int, child uint32) {
	e := c.get(parent)
	e.subs = append(e.subs, 0)
	copy(e.subs[pos+1:], e.subs[pos:])
	e.subs[pos] = child
}

// RemoveSubAt removes the child at position pos, preserving order of the
// remaining children (used for Sequence.Remove; Map removal uses the
// swap-and-pop path in index.go to keep the map index valid in O(1)).
func (c *Context) RemoveSubAt(parent uint32, pos int) uint32 {
	e := c.get(parent)
	removed := e.subs[pos]
	e.subs = append(e.subs[:pos], e.subs[pos+1:]...)
	return removed
}

// PopBack removes and returns the last child of a container, or (0, false)
// if it has none.
func (c *Context) PopBack(parent uint32) (uint32, bool) {
	e := c.get(parent)
	n := len(e.subs)
	if n == 0 {
		return 0, false
	}
	child := e.subs[n-1]
	e.subs = e.subs[:n-1]
	return child, true
}

// SetSubAt overwrites the child index stored at position pos, used by the
// map swap-and-pop removal algorithm.
func (c *Context) SetSubAt(parent uint32, pos int, child uint32) {
	c.get(parent).subs[pos] = child
}
