package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styml-go/styml/arena"
	"github.com/styml-go/styml/token"
)

func tokenize(t *testing.T, text string) ([]token.Token, *arena.Arena) {
	t.Helper()
	ar := arena.New(len(text))
	tz := token.New([]byte(text), ar)
	var out []token.Token
	for {
		tok, err := tz.Next(-1)
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == token.Eos {
			return out, ar
		}
	}
}

func TestKeyReclassification(t *testing.T) {
	toks, ar := tokenize(t, "foo: 1\n")
	require.Equal(t, token.Key, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].Text(ar))
	require.Equal(t, token.StringValue, toks[1].Kind)
	assert.Equal(t, "1", toks[1].Text(ar))
}

func TestCaretRequiresSpaceOrEOL(t *testing.T) {
	toks, ar := tokenize(t, "- a\n")
	require.Equal(t, token.Caret, toks[0].Kind)
	require.Equal(t, token.StringValue, toks[1].Kind)
	assert.Equal(t, "a", toks[1].Text(ar))
}

func TestHyphenatedWordIsNotACaret(t *testing.T) {
	toks, ar := tokenize(t, "foo-bar: 1\n")
	require.Equal(t, token.Key, toks[0].Kind)
	assert.Equal(t, "foo-bar", toks[0].Text(ar))
}

func TestSingleQuotedEscapesDoubledQuote(t *testing.T) {
	toks, ar := tokenize(t, "'it''s'\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "it's", toks[0].Text(ar))
}

func TestDoubleQuotedStandardEscapes(t *testing.T) {
	toks, ar := tokenize(t, `"a\nb\tc"`+"\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a\nb\tc", toks[0].Text(ar))
}

func TestDoubleQuotedUnknownEscapeIsPreserved(t *testing.T) {
	toks, ar := tokenize(t, `"\x41"`+"\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, `\x41`, toks[0].Text(ar))
}

func TestDoubleQuotedUnterminatedIsError(t *testing.T) {
	ar := arena.New(8)
	tz := token.New([]byte(`"abc`), ar)
	_, err := tz.Next(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestCommentToken(t *testing.T) {
	toks, ar := tokenize(t, "# hello\n")
	require.Equal(t, token.Comment, toks[0].Kind)
	assert.Equal(t, " hello", toks[0].Text(ar))
}

func TestLiteralBlockScalarClipsToOneNewline(t *testing.T) {
	toks, ar := tokenize(t, "|\n  a\n  b\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a\nb\n", toks[0].Text(ar))
}

func TestLiteralBlockScalarStripChomp(t *testing.T) {
	toks, ar := tokenize(t, "|-\n  a\n  b\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a\nb", toks[0].Text(ar))
}

func TestLiteralBlockScalarKeepChomp(t *testing.T) {
	toks, ar := tokenize(t, "|+\n  a\n\n\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a\n\n", toks[0].Text(ar))
}

func TestFoldedBlockScalarJoinsWithSpace(t *testing.T) {
	toks, ar := tokenize(t, ">\n  a\n  b\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a b\n", toks[0].Text(ar))
}

func TestTabInLeadingIndentIsHardError(t *testing.T) {
	ar := arena.New(8)
	tz := token.New([]byte("\tfoo: 1\n"), ar)
	_, err := tz.Next(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabulation")
}

func TestTabInBlockScalarBodyIsHardError(t *testing.T) {
	ar := arena.New(8)
	tz := token.New([]byte("|+\n\tb\n"), ar)
	_, err := tz.Next(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabulation")
}

func TestPlainScalarContinuationAcrossBlankLines(t *testing.T) {
	toks, ar := tokenize(t, "a\n\n\n  b\n")
	require.Equal(t, token.StringValue, toks[0].Kind)
	assert.Equal(t, "a\n\nb", toks[0].Text(ar))
}

func TestEosIsTerminal(t *testing.T) {
	toks, _ := tokenize(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Eos, toks[0].Kind)
}
