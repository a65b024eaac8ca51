package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styml-go/styml/arena"
)

func TestAppendRoundTrips(t *testing.T) {
	a := arena.New(0)

	off1, len1 := a.Append("foo")
	off2, len2 := a.Append("barbaz")

	assert.Equal(t, "foo", a.ViewString(off1, len1))
	assert.Equal(t, "barbaz", a.ViewString(off2, len2))
}

func TestAppendEmptyString(t *testing.T) {
	a := arena.New(0)

	off, length := a.Append("")
	assert.Equal(t, "", a.ViewString(off, length))
	assert.Equal(t, uint32(1), length, "empty string still costs the trailing NUL")
}

func TestSessionAssemblesChunks(t *testing.T) {
	a := arena.New(0)

	a.StartSession()
	a.AddToSession("hello")
	a.AddByteToSession(' ')
	a.AddToSession("world")
	off, length := a.CommitSession()

	assert.Equal(t, "hello world", a.ViewString(off, length))
}

func TestSessionLenExcludesNUL(t *testing.T) {
	a := arena.New(0)

	a.StartSession()
	require.Equal(t, uint32(0), a.SessionLen())
	a.AddToSession("abc")
	assert.Equal(t, uint32(3), a.SessionLen())
}

func TestLenGrowsByStoredLengthPlusNUL(t *testing.T) {
	a := arena.New(0)
	require.Equal(t, 0, a.Len())

	_, len1 := a.Append("foo")
	assert.Equal(t, int(len1), a.Len())

	_, len2 := a.Append("barbaz")
	assert.Equal(t, int(len1+len2), a.Len())
}

func TestHandlesFromDifferentWritesStayIndependent(t *testing.T) {
	a := arena.New(0)

	off1, len1 := a.Append("one")
	off2, len2 := a.Append("two")
	off3, len3 := a.Append("three")

	assert.Equal(t, "one", a.ViewString(off1, len1))
	assert.Equal(t, "two", a.ViewString(off2, len2))
	assert.Equal(t, "three", a.ViewString(off3, len3))
}
