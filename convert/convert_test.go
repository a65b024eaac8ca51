package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styml-go/styml/convert"
)

func TestStringRoundTrip(t *testing.T) {
	b, err := convert.EncodeString("hello")
	require.NoError(t, err)
	s, err := convert.DecodeString(b)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestIntRoundTripAndBasePrefixes(t *testing.T) {
	v, err := convert.DecodeInt([]byte("-42"))
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)

	v, err = convert.DecodeInt([]byte("0x2a"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	b, err := convert.EncodeInt(42)
	require.NoError(t, err)
	assert.Equal(t, "42", string(b))
}

func TestIntDecodeRejectsTrailingGarbage(t *testing.T) {
	_, err := convert.DecodeInt([]byte("42abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42abc")
}

func TestUintRoundTrip(t *testing.T) {
	v, err := convert.DecodeUint([]byte("18446744073709551615"))
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), v)

	b, err := convert.EncodeUint(7)
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))
}

func TestUintDecodeRejectsNegative(t *testing.T) {
	_, err := convert.DecodeUint([]byte("-1"))
	require.Error(t, err)
}

func TestFloatRoundTrip(t *testing.T) {
	v, err := convert.DecodeFloat([]byte("3.5"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	b, err := convert.EncodeFloat(3.5)
	require.NoError(t, err)
	assert.Equal(t, "3.5", string(b))
}

func TestBoolDecodeAcceptsStrconvTokenSet(t *testing.T) {
	for _, tok := range []string{"1", "t", "T", "TRUE", "true", "True"} {
		v, err := convert.DecodeBool([]byte(tok))
		require.NoError(t, err, tok)
		assert.True(t, v, tok)
	}
	for _, tok := range []string{"0", "f", "F", "FALSE", "false", "False"} {
		v, err := convert.DecodeBool([]byte(tok))
		require.NoError(t, err, tok)
		assert.False(t, v, tok)
	}
}

func TestBoolEncode(t *testing.T) {
	b, err := convert.EncodeBool(true)
	require.NoError(t, err)
	assert.Equal(t, "true", string(b))

	b, err = convert.EncodeBool(false)
	require.NoError(t, err)
	assert.Equal(t, "false", string(b))
}

func TestConvertErrorUnwraps(t *testing.T) {
	_, err := convert.DecodeInt([]byte("notanumber"))
	require.Error(t, err)
	var ce *convert.ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "decode", ce.Kind)
	assert.NotNil(t, ce.Unwrap())
}
