package tree

// Document exclusively owns one Context (arena + element store + map
// index). Node handles borrow from it and are invalidated once the
// Document is no longer referenced; Go's garbage collector, rather than an
// explicit destructor, reclaims the arena and element store.
type Document struct {
	ctx *Context
}

// NewDocument allocates an empty Document, its arena pre-reserved to
// roughly reserveBytes (parse pre-reserves to the input's byte length, the
// same allocation discipline as the original).
func NewDocument(reserveBytes int) *Document {
	return &Document{ctx: NewContext(reserveBytes)}
}

// NewDocumentFromContext adopts an already-built Context, used by parse
// once building has succeeded and ownership transfers from its scoped
// holder to the returned Document.
func NewDocumentFromContext(ctx *Context) *Document {
	return &Document{ctx: ctx}
}

// Context exposes the underlying Context for packages (encode, parse) that
// need to walk or build the raw element graph rather than go through Node.
func (d *Document) Context() *Context { return d.ctx }

// RootKey returns the reserved index-0 element, always a Key with an empty
// name.
func (d *Document) RootKey() Node { return Node{ctx: d.ctx, idx: RootIdx} }

// Root returns the effective document root: the root Key's single value
// child, or a pending handle if the root Key has no child (as in a fresh
// NewDocument). A document parsed from empty input has an unresolved
// Unknown placeholder as its root, which is present but holds no value.
func (d *Document) Root() Node {
	n, _ := d.RootKey().Value()
	return n
}
