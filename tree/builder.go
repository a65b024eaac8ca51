package tree

import "github.com/styml-go/styml/arena"

// This file exposes the low-level mutation surface of Context that a tree
// builder (the parse package's pushdown automaton) needs but that
// application code should never call directly — application code uses
// Node. Keeping it in one file makes the builder/application boundary
// explicit, the same split styml.h draws between detail::Context and the
// public Node class.

// Arena exposes the document's string arena so the tokenizer can commit
// multi-chunk scalar sessions directly into it.
func (c *Context) Arena() *arena.Arena { return c.arena }

// NewUnknown allocates a fresh Unknown placeholder, returning its index.
func (c *Context) NewUnknown() uint32 { return c.newUnknown() }

// NewKey allocates a Key element with the given name and no value child.
func (c *Context) NewKey(name string) uint32 { return c.newKey(name) }

// NewValue allocates a Value element from an already-materialized string.
func (c *Context) NewValue(s string) uint32 { return c.newValue(s) }

// NewValueFromHandle allocates a Value element from an arena handle
// already committed by the tokenizer (e.g. via an arena session).
func (c *Context) NewValueFromHandle(off, length uint32) uint32 {
	return c.newValueHandle(off, length)
}

// NewComment allocates a Comment element from an arena handle.
func (c *Context) NewComment(off, length uint32, standalone bool) uint32 {
	return c.newCommentHandle(off, length, standalone)
}

// NewContainer allocates an empty Map or Sequence element.
func (c *Context) NewContainer(t Type) uint32 { return c.newContainer(t) }

// RootKeyNode returns the element-0 root as a raw Key Node.
func (c *Context) RootKeyNode() Node { return Node{ctx: c, idx: RootIdx} }

// NodeAt wraps an already-resolved element index as a Node.
func (c *Context) NodeAt(idx uint32) Node { return Node{ctx: c, idx: idx} }
