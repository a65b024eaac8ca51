package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styml-go/styml/parse"
)

// TestSimpleMap covers spec scenario S1: a flat two-key map.
func TestSimpleMap(t *testing.T) {
	doc, err := parse.Parse([]byte("foo: 1\nbar: John Doe\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsMap())

	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)

	fooKey := children[0]
	require.True(t, fooKey.IsKey())
	name, err := fooKey.KeyName()
	require.NoError(t, err)
	assert.Equal(t, "foo", name)
	fooVal, err := fooKey.Value()
	require.NoError(t, err)
	b, err := fooVal.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))

	barKey := children[1]
	name, err = barKey.KeyName()
	require.NoError(t, err)
	assert.Equal(t, "bar", name)
	barVal, err := barKey.Value()
	require.NoError(t, err)
	b, err = barVal.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", string(b))
}

// TestNestedSequenceOfMaps covers spec scenario S2: a map whose value is a
// sequence of length 2, where the second item is itself a two-key map.
func TestNestedSequenceOfMaps(t *testing.T) {
	doc, err := parse.Parse([]byte("1234:\n  - a\n  - 5678: abc\n    9101112: def\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsMap())

	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 1)

	key := children[0]
	name, err := key.KeyName()
	require.NoError(t, err)
	assert.Equal(t, "1234", name)

	seq, err := key.Value()
	require.NoError(t, err)
	require.True(t, seq.IsSequence())

	size, err := seq.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)

	items, err := seq.Children()
	require.NoError(t, err)

	b, err := items[0].Bytes()
	require.NoError(t, err)
	assert.Equal(t, "a", string(b))

	require.True(t, items[1].IsMap())
	innerChildren, err := items[1].Children()
	require.NoError(t, err)
	require.Len(t, innerChildren, 2)

	n0, _ := innerChildren[0].KeyName()
	assert.Equal(t, "5678", n0)
	v0, _ := innerChildren[0].Value()
	bv0, _ := v0.Bytes()
	assert.Equal(t, "abc", string(bv0))

	n1, _ := innerChildren[1].KeyName()
	assert.Equal(t, "9101112", n1)
	v1, _ := innerChildren[1].Value()
	bv1, _ := v1.Bytes()
	assert.Equal(t, "def", string(bv1))
}

// TestDuplicateKeyFails covers spec scenario S3.
func TestDuplicateKeyFails(t *testing.T) {
	_, err := parse.Parse([]byte("a: b\nc: d\na: f\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicated key")
}

// TestTabIndentFails covers spec scenario S4.
func TestTabIndentFails(t *testing.T) {
	_, err := parse.Parse([]byte("- |+\n\tb\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabulation")
}

func TestTopLevelSequence(t *testing.T) {
	doc, err := parse.Parse([]byte("- a\n- b\n- c\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsSequence())
	size, err := root.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestTopLevelScalar(t *testing.T) {
	doc, err := parse.Parse([]byte("hello\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsValue())
	b, err := root.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestValueDirectlyUnderMapIsRejected(t *testing.T) {
	_, err := parse.Parse([]byte("foo: 1\nbareword\n"))
	require.Error(t, err)
}

func TestCaretIdiomKeyThenNestedSequence(t *testing.T) {
	doc, err := parse.Parse([]byte("- k:\n  - item\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsSequence())
	size, err := root.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	items, err := root.Children()
	require.NoError(t, err)
	require.True(t, items[0].IsMap())

	inner, err := items[0].Children()
	require.NoError(t, err)
	require.Len(t, inner, 1)
	name, _ := inner[0].KeyName()
	assert.Equal(t, "k", name)

	val, err := inner[0].Value()
	require.NoError(t, err)
	require.True(t, val.IsSequence())
	sz, _ := val.Size()
	assert.Equal(t, 1, sz)
}

func TestTrailingCommentAttachesToValueNotContainer(t *testing.T) {
	doc, err := parse.Parse([]byte("foo: 1 # hello\n# standalone\nbar: 2\n"))
	require.NoError(t, err)

	root := doc.Root()
	require.True(t, root.IsMap())

	// Comments piggyback on a next-comment chain; they are never stored as
	// Map/Sequence children, so the map still has exactly its two keys.
	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)

	fooKey := children[0]
	fooVal, err := fooKey.Value()
	require.NoError(t, err)
	trailing := fooVal.TrailingComments()
	require.Len(t, trailing, 1)
	text, err := trailing[0].CommentText()
	require.NoError(t, err)
	assert.Equal(t, " hello", text)
	standalone, err := trailing[0].Standalone()
	require.NoError(t, err)
	assert.False(t, standalone)

	rootTrailing := root.TrailingComments()
	require.Len(t, rootTrailing, 1)
	text, err = rootTrailing[0].CommentText()
	require.NoError(t, err)
	assert.Equal(t, " standalone", text)
	standalone, err = rootTrailing[0].Standalone()
	require.NoError(t, err)
	assert.True(t, standalone)
}
