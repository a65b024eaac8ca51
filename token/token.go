// Package token implements the line-oriented, stateful scalar/indent
// tokenizer: it lifts raw bytes into a stream of (indent, token) events for
// the tree builder in package parse.
package token

import "github.com/styml-go/styml/arena"

// Kind identifies what a Token represents.
type Kind int

const (
	Newline Kind = iota
	Caret
	Key
	StringValue
	Comment
	Eos
)

func (k Kind) String() string {
	switch k {
	case Newline:
		return "Newline"
	case Caret:
		return "Caret"
	case Key:
		return "Key"
	case StringValue:
		return "StringValue"
	case Comment:
		return "Comment"
	case Eos:
		return "Eos"
	default:
		return "Kind(?)"
	}
}

// Token is one lexical event. Column is meaningful for every kind except
// Newline/Eos. Off/Len is an arena handle valid for Key, StringValue, and
// Comment; it refers to the same arena the tree builder commits elements
// into, so no copy is needed to hand a scalar off to the tree.
type Token struct {
	Kind   Kind
	Line   int
	Column int
	Off    uint32
	Len    uint32
}

// Text resolves a scalar-bearing token's payload against the arena it was
// tokenized into.
func (t Token) Text(ar *arena.Arena) string {
	return ar.ViewString(t.Off, t.Len)
}
