// Package arena implements the append-only byte buffer that backs every
// string stored in a styml document. Offsets handed out by Append and
// CommitSession remain valid for the lifetime of the Arena; nothing is ever
// moved or freed until the whole Arena is discarded.
package arena

// Arena is an append-only byte buffer. Every stored string is terminated
// with a trailing NUL so that the bytes can be viewed as a C string if
// needed, but the length returned to the caller is authoritative and
// includes that NUL.
type Arena struct {
	buf        []byte
	sessionOff uint32
}

// New returns an Arena pre-reserved to roughly reserveBytes, the idiomatic
// Go stand-in for the original's arena.reserve(arenaStartReserveSize) call
// at Context construction time.
func New(reserveBytes int) *Arena {
	if reserveBytes < 0 {
		reserveBytes = 0
	}
	return &Arena{buf: make([]byte, 0, reserveBytes)}
}

// Append copies text into the arena, followed by a trailing NUL, and
// returns the (offset, length) handle. length includes the NUL.
func (a *Arena) Append(text string) (offset, length uint32) {
	offset = uint32(len(a.buf))
	a.buf = append(a.buf, text...)
	a.buf = append(a.buf, 0)
	length = uint32(len(a.buf)) - offset
	return offset, length
}

// StartSession begins a multi-chunk string assembly. AddToSession may be
// called any number of times before CommitSession writes the trailing NUL
// and returns the handle, bounding allocation to one grow per chunk instead
// of one grow per concatenation.
func (a *Arena) StartSession() {
	a.sessionOff = uint32(len(a.buf))
}

// AddToSession appends one more chunk to the string started by StartSession.
func (a *Arena) AddToSession(chunk string) {
	a.buf = append(a.buf, chunk...)
}

// AddByteToSession appends a single raw byte to the in-progress session,
// used by the tokenizer to splice in line-join separators (space or '\n')
// between chunks of a multi-line scalar.
func (a *Arena) AddByteToSession(b byte) {
	a.buf = append(a.buf, b)
}

// CommitSession writes the trailing NUL and returns the (offset, length)
// handle for everything appended since StartSession.
func (a *Arena) CommitSession() (offset, length uint32) {
	offset = a.sessionOff
	a.buf = append(a.buf, 0)
	length = uint32(len(a.buf)) - offset
	return offset, length
}

// SessionLen reports how many bytes have been added to the in-progress
// session so far, not counting the NUL CommitSession will add. Useful for
// callers that need to know whether a session is currently empty.
func (a *Arena) SessionLen() uint32 {
	return uint32(len(a.buf)) - a.sessionOff
}

// View returns the length-1 content bytes (the NUL is not included) for the
// given handle. length must be the value returned alongside offset by
// Append or CommitSession.
func (a *Arena) View(offset, length uint32) []byte {
	if length == 0 {
		return nil
	}
	return a.buf[offset : offset+length-1]
}

// ViewString is View, converted to a string. The conversion copies, since
// callers may hold the result past further arena growth.
func (a *Arena) ViewString(offset, length uint32) string {
	return string(a.View(offset, length))
}

// Len reports the number of bytes currently stored, including every
// trailing NUL written so far. Used by the "arena growth" property test.
func (a *Arena) Len() int {
	return len(a.buf)
}
