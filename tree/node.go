package tree

// slotKind distinguishes an ordinary Node (backed by a real element) from
// the two pending-handle shapes: a map key that doesn't exist yet, and a
// Key element that exists but has no value child yet. Both behave as
// "absent" for reads and materialize their backing element on first write,
// exactly like the pending-key handle described in spec.md's glossary,
// generalized to the one other spot the tree allows a missing child.
type slotKind int

const (
	slotNone slotKind = iota
	slotPendingMapKey
	slotPendingKeyChild
)

// Node is a non-owning reference to a tree element, or a pending handle
// that has not yet materialized one. Node is a small value type, cheap to
// copy and pass by value the way the original's Node wraps a raw element
// index plus a Context pointer.
type Node struct {
	ctx  *Context
	idx  uint32 // element index (slotNone), or parent/key-owner index otherwise
	kind slotKind
	key  string // key name, meaningful only for slotPendingMapKey
}

// Present reports whether the node refers to a real, already-materialized
// element. A pending-key handle is never present.
func (n Node) Present() bool {
	return n.ctx != nil && n.kind == slotNone
}

// Type reports the node's element type, or Unknown for a pending handle.
func (n Node) Type() Type {
	if n.ctx == nil || n.kind != slotNone {
		return Unknown
	}
	return n.ctx.Type(n.idx)
}

func (n Node) IsValue() bool    { return n.Type() == Value }
func (n Node) IsKey() bool      { return n.Type() == Key }
func (n Node) IsMap() bool      { return n.Type() == Map }
func (n Node) IsSequence() bool { return n.Type() == Sequence }
func (n Node) IsComment() bool  { return n.Type() == Comment }

// KeyName returns the name of a Key node.
func (n Node) KeyName() (string, error) {
	if n.Type() != Key {
		return "", newAccessError("KeyName", "node is a %s, not a Key", n.Type())
	}
	return n.ctx.String(n.idx), nil
}

// Value unwraps a Key to its value child. If the key has no child yet, the
// result is a pending handle that materializes on first write, the same
// way an absent map key does.
func (n Node) Value() (Node, error) {
	if n.Type() != Key {
		return Node{}, newAccessError("Value", "node is a %s, not a Key", n.Type())
	}
	child := n.ctx.ChildIdx(n.idx)
	if child == noChild {
		return Node{ctx: n.ctx, idx: n.idx, kind: slotPendingKeyChild}, nil
	}
	return Node{ctx: n.ctx, idx: child}, nil
}

// Size returns the number of children of a Map or Sequence node.
func (n Node) Size() (int, error) {
	t := n.Type()
	if t != Map && t != Sequence {
		return 0, newAccessError("Size", "node is a %s, not a Map or Sequence", t)
	}
	return n.ctx.Size(n.idx), nil
}

// Bytes returns the raw scalar bytes of a Value node.
func (n Node) Bytes() ([]byte, error) {
	if !n.Present() {
		return nil, newAccessError("Bytes", "node is absent")
	}
	if n.Type() != Value {
		return nil, newAccessError("Bytes", "node is a %s, not a Value", n.Type())
	}
	return []byte(n.ctx.String(n.idx)), nil
}

// SetBytes assigns raw scalar bytes to the node: it rewrites an existing
// Value in place, materializes a pending handle into a new Value (creating
// the owning Key too, for a pending map key), or turns an Unknown
// placeholder into a Value.
func (n Node) SetBytes(b []byte) error {
	switch n.kind {
	case slotPendingMapKey:
		valIdx := n.ctx.newValue(string(b))
		keyIdx := n.ctx.newKey(n.key)
		n.ctx.SetChildIdx(keyIdx, valIdx)
		pos := uint32(n.ctx.Size(n.idx))
		n.ctx.AppendSub(n.idx, keyIdx)
		n.ctx.IndexInsertOrReplace(n.idx, n.key, pos)
		return nil
	case slotPendingKeyChild:
		valIdx := n.ctx.newValue(string(b))
		n.ctx.SetChildIdx(n.idx, valIdx)
		return nil
	default:
		switch n.ctx.Type(n.idx) {
		case Value:
			n.ctx.SetString(n.idx, string(b))
			return nil
		case Unknown:
			n.ctx.Reset(n.idx, Value)
			n.ctx.SetString(n.idx, string(b))
			return nil
		default:
			return newAccessError("SetBytes", "cannot assign a scalar to a %s node", n.ctx.Type(n.idx))
		}
	}
}

// Reshape assigns a structural kind (Map or Sequence) to the node,
// materializing a pending handle or resetting an Unknown/empty container
// in place. No other kind may be assigned this way.
func (n Node) Reshape(t Type) error {
	if t != Map && t != Sequence {
		return newAccessError("Reshape", "only Map or Sequence may be assigned structurally, got %s", t)
	}
	switch n.kind {
	case slotPendingMapKey:
		idx := n.ctx.newContainer(t)
		keyIdx := n.ctx.newKey(n.key)
		n.ctx.SetChildIdx(keyIdx, idx)
		pos := uint32(n.ctx.Size(n.idx))
		n.ctx.AppendSub(n.idx, keyIdx)
		n.ctx.IndexInsertOrReplace(n.idx, n.key, pos)
		return nil
	case slotPendingKeyChild:
		idx := n.ctx.newContainer(t)
		n.ctx.SetChildIdx(n.idx, idx)
		return nil
	default:
		cur := n.ctx.Type(n.idx)
		if cur != Unknown && cur != Map && cur != Sequence {
			return newAccessError("Reshape", "cannot reshape a %s node", cur)
		}
		n.ctx.Reset(n.idx, t)
		return nil
	}
}

func (n Node) requireSequence(op string) error {
	if n.kind != slotNone || n.ctx == nil || n.ctx.Type(n.idx) != Sequence {
		return newAccessError(op, "node is not a Sequence")
	}
	return nil
}

func (n Node) requireMap(op string) error {
	if n.kind != slotNone || n.ctx == nil || n.ctx.Type(n.idx) != Map {
		return newAccessError(op, "node is not a Map")
	}
	return nil
}

// PushBack appends a new Value child to a Sequence.
func (n Node) PushBack(b []byte) (Node, error) {
	if err := n.requireSequence("PushBack"); err != nil {
		return Node{}, err
	}
	idx := n.ctx.newValue(string(b))
	n.ctx.AppendSub(n.idx, idx)
	return Node{ctx: n.ctx, idx: idx}, nil
}

// PushBackKind appends a new empty Map or Sequence child to a Sequence.
func (n Node) PushBackKind(t Type) (Node, error) {
	if err := n.requireSequence("PushBackKind"); err != nil {
		return Node{}, err
	}
	if t != Map && t != Sequence {
		return Node{}, newAccessError("PushBackKind", "only Map or Sequence may be pushed structurally, got %s", t)
	}
	idx := n.ctx.newContainer(t)
	n.ctx.AppendSub(n.idx, idx)
	return Node{ctx: n.ctx, idx: idx}, nil
}

// Insert inserts a new Value child at position i (0 <= i <= size).
func (n Node) Insert(i int, b []byte) (Node, error) {
	if err := n.requireSequence("Insert"); err != nil {
		return Node{}, err
	}
	if i < 0 || i > n.ctx.Size(n.idx) {
		return Node{}, newAccessError("Insert", "index %d out of bounds", i)
	}
	idx := n.ctx.newValue(string(b))
	n.ctx.InsertSub(n.idx, i, idx)
	return Node{ctx: n.ctx, idx: idx}, nil
}

// Remove removes the child at position i from a Sequence, preserving the
// order of the rest.
func (n Node) Remove(i int) error {
	if err := n.requireSequence("Remove"); err != nil {
		return err
	}
	if i < 0 || i >= n.ctx.Size(n.idx) {
		return newAccessError("Remove", "index %d out of bounds", i)
	}
	n.ctx.RemoveSubAt(n.idx, i)
	return nil
}

// PopBack removes the last child of a Sequence.
func (n Node) PopBack() error {
	if err := n.requireSequence("PopBack"); err != nil {
		return err
	}
	if _, ok := n.ctx.PopBack(n.idx); !ok {
		return newAccessError("PopBack", "sequence is empty")
	}
	return nil
}

// HasKey reports whether a Map has a Key child named k.
func (n Node) HasKey(k string) (bool, error) {
	if err := n.requireMap("HasKey"); err != nil {
		return false, err
	}
	_, ok := n.ctx.IndexFind(n.idx, k)
	return ok, nil
}

// Key returns the value node for k, or a pending handle if k is absent.
func (n Node) Key(k string) (Node, error) {
	if err := n.requireMap("Key"); err != nil {
		return Node{}, err
	}
	pos, ok := n.ctx.IndexFind(n.idx, k)
	if !ok {
		return Node{ctx: n.ctx, idx: n.idx, kind: slotPendingMapKey, key: k}, nil
	}
	keyIdx := n.ctx.Subs(n.idx)[pos]
	child := n.ctx.ChildIdx(keyIdx)
	if child == noChild {
		return Node{ctx: n.ctx, idx: keyIdx, kind: slotPendingKeyChild}, nil
	}
	return Node{ctx: n.ctx, idx: child}, nil
}

// InsertKey inserts a brand-new Key named k with a Value child. It is an
// error for k to already exist; use Key(k) for assign-if-absent semantics.
func (n Node) InsertKey(k string, b []byte) (Node, error) {
	if err := n.requireMap("InsertKey"); err != nil {
		return Node{}, err
	}
	if k == "" {
		return Node{}, newAccessError("InsertKey", "key must not be empty")
	}
	if _, ok := n.ctx.IndexFind(n.idx, k); ok {
		return Node{}, newAccessError("InsertKey", "duplicate key %q", k)
	}
	valIdx := n.ctx.newValue(string(b))
	keyIdx := n.ctx.newKey(k)
	n.ctx.SetChildIdx(keyIdx, valIdx)
	pos := uint32(n.ctx.Size(n.idx))
	n.ctx.AppendSub(n.idx, keyIdx)
	n.ctx.IndexInsertOrReplace(n.idx, k, pos)
	return Node{ctx: n.ctx, idx: valIdx}, nil
}

// InsertKeyKind inserts a brand-new Key named k with an empty Map or
// Sequence child.
func (n Node) InsertKeyKind(k string, t Type) (Node, error) {
	if err := n.requireMap("InsertKeyKind"); err != nil {
		return Node{}, err
	}
	if t != Map && t != Sequence {
		return Node{}, newAccessError("InsertKeyKind", "only Map or Sequence may be inserted structurally, got %s", t)
	}
	if k == "" {
		return Node{}, newAccessError("InsertKeyKind", "key must not be empty")
	}
	if _, ok := n.ctx.IndexFind(n.idx, k); ok {
		return Node{}, newAccessError("InsertKeyKind", "duplicate key %q", k)
	}
	childIdx := n.ctx.newContainer(t)
	keyIdx := n.ctx.newKey(k)
	n.ctx.SetChildIdx(keyIdx, childIdx)
	pos := uint32(n.ctx.Size(n.idx))
	n.ctx.AppendSub(n.idx, keyIdx)
	n.ctx.IndexInsertOrReplace(n.idx, k, pos)
	return Node{ctx: n.ctx, idx: childIdx}, nil
}

// RemoveKey removes the Key named k from a Map, reporting whether it was
// present. Removal uses the swap-and-pop algorithm so map children stay
// dense while the index remains accurate.
func (n Node) RemoveKey(k string) (bool, error) {
	if err := n.requireMap("RemoveKey"); err != nil {
		return false, err
	}
	pos, ok := n.ctx.IndexFind(n.idx, k)
	if !ok {
		return false, nil
	}
	n.ctx.RemoveMapChild(n.idx, int(pos))
	return true, nil
}

// CommentText returns a Comment node's text.
func (n Node) CommentText() (string, error) {
	if n.Type() != Comment {
		return "", newAccessError("CommentText", "node is a %s, not a Comment", n.Type())
	}
	return n.ctx.String(n.idx), nil
}

// Standalone reports whether a Comment node started at column 0 (and so is
// written on its own line rather than trailing the previous construct).
func (n Node) Standalone() (bool, error) {
	if n.Type() != Comment {
		return false, newAccessError("Standalone", "node is a %s, not a Comment", n.Type())
	}
	return n.ctx.Standalone(n.idx), nil
}

// TrailingComments walks n's piggybacked next-comment chain and returns
// every linked Comment node in order. n itself may be any element type
// (Key, Value, or Comment); the chain is empty if nothing is attached.
func (n Node) TrailingComments() []Node {
	if n.kind != slotNone || n.ctx == nil {
		return nil
	}
	var out []Node
	cur := n.ctx.NextComment(n.idx)
	for cur != noComment {
		out = append(out, Node{ctx: n.ctx, idx: cur})
		cur = n.ctx.NextComment(cur)
	}
	return out
}

// Children returns one Node per child of a Map or Sequence, in document
// order. For a Map this includes both Key and Comment children, exactly as
// stored.
func (n Node) Children() ([]Node, error) {
	t := n.Type()
	if t != Map && t != Sequence {
		return nil, newAccessError("Children", "node is a %s, not a Map or Sequence", t)
	}
	subs := n.ctx.Subs(n.idx)
	out := make([]Node, len(subs))
	for i, idx := range subs {
		out[i] = Node{ctx: n.ctx, idx: idx}
	}
	return out, nil
}
