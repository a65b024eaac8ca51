package token

import "fmt"

// maxSnippet bounds the offending-line snippet a ParseError carries, per
// the tokenizer's error-reporting contract.
const maxSnippet = 128

// ParseError is a tokenizer-level input error: a tab in leading
// indentation, an unterminated quoted scalar, a repeated chomp/indent
// indicator, and so on. It carries the line number and a snippet of the
// offending line so a caller can report it without needing the original
// source text. Structural errors raised by the tree builder in package
// parse (duplicated key, misaligned indent, value without a key in a map)
// are not ParseErrors: they are plain errors whose message holds the line
// number but no snippet.
type ParseError struct {
	Line    int
	Snippet string
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error: line %d: %s (near %q)", e.Line, e.Msg, e.Snippet)
}

func newParseError(line int, lineBytes []byte, format string, args ...any) *ParseError {
	snippet := lineBytes
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	return &ParseError{
		Line:    line,
		Snippet: string(snippet),
		Msg:     fmt.Sprintf(format, args...),
	}
}
