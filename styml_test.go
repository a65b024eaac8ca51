package styml_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styml-go/styml"
	"github.com/styml-go/styml/convert"
)

func TestGetTypedScalars(t *testing.T) {
	doc, err := styml.Parse([]byte("n: 42\nf: 3.5\nb: true\ns: hello\n"))
	require.NoError(t, err)

	root := doc.Root()

	n, err := root.Key("n")
	require.NoError(t, err)
	iv, err := styml.GetInt(n)
	require.NoError(t, err)
	assert.Equal(t, int64(42), iv)

	f, err := root.Key("f")
	require.NoError(t, err)
	fv, err := styml.GetFloat(f)
	require.NoError(t, err)
	assert.Equal(t, 3.5, fv)

	bNode, err := root.Key("b")
	require.NoError(t, err)
	bv, err := styml.GetBool(bNode)
	require.NoError(t, err)
	assert.True(t, bv)

	s, err := root.Key("s")
	require.NoError(t, err)
	sv, err := styml.GetString(s)
	require.NoError(t, err)
	assert.Equal(t, "hello", sv)
}

func TestGetDefaultOnAbsentKey(t *testing.T) {
	doc, err := styml.Parse([]byte("n: 1\n"))
	require.NoError(t, err)

	root := doc.Root()
	missing, err := root.Key("missing")
	require.NoError(t, err)

	decode := func(b []byte) (int64, error) { return convert.DecodeInt(b) }
	v := styml.GetDefault(missing, decode, int64(-1))
	assert.Equal(t, int64(-1), v)
}

func TestAssignOnPendingHandleAndRoundTripYaml(t *testing.T) {
	doc, err := styml.Parse([]byte("a: 1\n"))
	require.NoError(t, err)

	root := doc.Root()
	missing, err := root.Key("b")
	require.NoError(t, err)
	require.NoError(t, styml.AssignInt(missing, 99))

	out := string(styml.AsYaml(doc))
	assert.Equal(t, "a: 1\nb: 99\n", out)
}

func TestParseEmitParseIsStructurallyIdentical(t *testing.T) {
	src := []byte("1234:\n  - a\n  - 5678: abc\n    9101112: def\n")
	doc1, err := styml.Parse(src)
	require.NoError(t, err)

	yaml1 := styml.AsYaml(doc1)
	doc2, err := styml.Parse(yaml1)
	require.NoError(t, err)

	struct1 := styml.AsStructured(doc1, false)
	struct2 := styml.AsStructured(doc2, false)
	if diff := cmp.Diff(string(struct1), string(struct2)); diff != "" {
		t.Fatalf("structural form changed across a parse/emit/parse round trip (-want +got):\n%s", diff)
	}
}
