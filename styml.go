// Package styml is a parser and emitter for a restricted, strongly-typed
// subset of YAML. Every scalar value is a string at the tree level; typed
// access goes through a user-supplied or built-in encode/decode pair, the
// same extension point the node façade documents.
package styml

import (
	"github.com/styml-go/styml/convert"
	"github.com/styml-go/styml/encode"
	"github.com/styml-go/styml/parse"
	"github.com/styml-go/styml/tree"
)

// Re-exported so callers never need to import package tree directly for
// the common cases.
type (
	Document = tree.Document
	Node     = tree.Node
	Type     = tree.Type
)

const (
	Unknown  = tree.Unknown
	Key      = tree.Key
	Value    = tree.Value
	Sequence = tree.Sequence
	Map      = tree.Map
	Comment  = tree.Comment
)

// Parse ingests raw bytes and returns the resulting document, or the first
// structural or tokenizer error encountered. Parser failures release all
// partially built state; nothing is returned on error.
func Parse(data []byte) (*Document, error) {
	return parse.Parse(data)
}

// AsYaml renders doc's root as round-trippable YAML. WithColor styles key
// names and comments for a terminal destination.
func AsYaml(doc *Document, opts ...encode.Option) []byte {
	return encode.AsYaml(doc, opts...)
}

// WithColor enables ANSI styling in AsYaml's output.
func WithColor(enabled bool) encode.Option {
	return encode.WithColor(enabled)
}

// AsStructured renders doc's root as the structural comparison form.
// withIndent inserts newline-plus-indent before each element of a
// multi-child container.
func AsStructured(doc *Document, withIndent bool) []byte {
	return encode.AsStructured(doc, withIndent)
}

// Get decodes n's raw bytes with decode, returning a Convert-class error
// wrapped as an access error if n is absent or decode fails.
func Get[T any](n Node, decode func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := n.Bytes()
	if err != nil {
		return zero, err
	}
	v, err := decode(b)
	if err != nil {
		return zero, &tree.AccessError{Op: "Get", Message: err.Error(), Wrapped: err}
	}
	return v, nil
}

// GetDefault decodes n's raw bytes with decode, returning def instead of an
// error when n is absent (a pending-key handle, or an Unknown placeholder)
// or decode fails.
func GetDefault[T any](n Node, decode func([]byte) (T, error), def T) T {
	b, err := n.Bytes()
	if err != nil {
		return def
	}
	v, err := decode(b)
	if err != nil {
		return def
	}
	return v
}

// Assign encodes v with encode and writes the result into n, materializing
// a pending handle or rewriting an existing Value in place.
func Assign[T any](n Node, v T, enc func(T) ([]byte, error)) error {
	b, err := enc(v)
	if err != nil {
		return err
	}
	return n.SetBytes(b)
}

// GetString, GetInt, GetUint, GetFloat, and GetBool are Get specialized to
// the built-in codecs in package convert, the common case of reading a
// scalar without a user-defined type.
func GetString(n Node) (string, error) { return Get(n, convert.DecodeString) }
func GetInt(n Node) (int64, error)     { return Get(n, convert.DecodeInt) }
func GetUint(n Node) (uint64, error)   { return Get(n, convert.DecodeUint) }
func GetFloat(n Node) (float64, error) { return Get(n, convert.DecodeFloat) }
func GetBool(n Node) (bool, error)     { return Get(n, convert.DecodeBool) }

// AssignString, AssignInt, AssignUint, AssignFloat, and AssignBool are
// Assign specialized to the built-in codecs.
func AssignString(n Node, v string) error { return Assign(n, v, convert.EncodeString) }
func AssignInt(n Node, v int64) error     { return Assign(n, v, convert.EncodeInt) }
func AssignUint(n Node, v uint64) error   { return Assign(n, v, convert.EncodeUint) }
func AssignFloat(n Node, v float64) error { return Assign(n, v, convert.EncodeFloat) }
func AssignBool(n Node, v bool) error     { return Assign(n, v, convert.EncodeBool) }
