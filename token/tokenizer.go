package token

import (
	"bytes"

	"github.com/styml-go/styml/arena"
)

// Tokenizer is a stateful, non-streaming scanner over an in-memory byte
// slice. It shares an Arena with the tree it feeds so scalar payloads land
// directly where the tree builder will reference them, with no intervening
// copy beyond the per-line scratch buffer a multi-line scalar needs.
type Tokenizer struct {
	text      []byte
	pos       int
	line      int
	lineStart int

	// lineHasContent is false while still scanning leading indentation on
	// the current line; a tab encountered while it is false is a hard
	// error, while a tab after real content is ordinary whitespace.
	lineHasContent bool

	ar *arena.Arena
}

// New returns a Tokenizer over text, committing scalar payloads into ar.
func New(text []byte, ar *arena.Arena) *Tokenizer {
	return &Tokenizer{text: text, line: 1, ar: ar}
}

func (t *Tokenizer) eof() bool { return t.pos >= len(t.text) }

func (t *Tokenizer) currentLineBytes() []byte {
	end := t.lineStart
	for end < len(t.text) && t.text[end] != '\n' {
		end++
	}
	return t.text[t.lineStart:end]
}

func (t *Tokenizer) errorHere(format string, args ...any) error {
	return newParseError(t.line, t.currentLineBytes(), format, args...)
}

func (t *Tokenizer) errorAtLine(line int, lineBytes []byte, format string, args ...any) error {
	return newParseError(line, lineBytes, format, args...)
}

// skipSpacesAndCheckTab advances past spaces (and, once real content has
// appeared on the line, tabs too), raising a hard error for a tab seen
// while still inside leading indentation.
func (t *Tokenizer) skipSpacesAndCheckTab() error {
	for !t.eof() {
		c := t.text[t.pos]
		switch c {
		case ' ':
			t.pos++
		case '\t':
			if !t.lineHasContent {
				return t.errorHere("using tabulation is not accepted for indentation")
			}
			t.pos++
		default:
			return nil
		}
	}
	return nil
}

func isSpaceOrEOLByte(b byte, has bool) bool {
	if !has {
		return true
	}
	return b == ' ' || b == '\n' || b == '\r'
}

// Next produces the next token. parentIndent is the indent column of the
// nearest enclosing container, forwarded by the tree builder so a block
// scalar's explicit-digit indent indicator can be resolved relative to it.
func (t *Tokenizer) Next(parentIndent int) (Token, error) {
	if err := t.skipSpacesAndCheckTab(); err != nil {
		return Token{}, err
	}
	if t.eof() {
		return Token{Kind: Eos, Line: t.line}, nil
	}
	column := t.pos - t.lineStart
	c := t.text[t.pos]

	switch {
	case c == '\n':
		line := t.line
		t.pos++
		t.line++
		t.lineStart = t.pos
		t.lineHasContent = false
		return Token{Kind: Newline, Line: line, Column: column}, nil

	case c == '-' && isSpaceOrEOLByte(t.peek(1), t.has(1)):
		t.lineHasContent = true
		t.pos++
		return Token{Kind: Caret, Line: t.line, Column: column}, nil

	case c == '#':
		t.lineHasContent = true
		return t.scanComment(column)

	case c == '\'':
		t.lineHasContent = true
		return t.scanSingleQuoted(column)

	case c == '"':
		t.lineHasContent = true
		return t.scanDoubleQuoted(column)

	case c == '|' || c == '>':
		t.lineHasContent = true
		return t.scanBlockScalar(column, c, parentIndent)

	default:
		t.lineHasContent = true
		return t.scanPlain(column)
	}
}

func (t *Tokenizer) has(off int) bool { return t.pos+off < len(t.text) }
func (t *Tokenizer) peek(off int) byte {
	if !t.has(off) {
		return 0
	}
	return t.text[t.pos+off]
}

// finishScalar checks whether the just-scanned scalar is immediately
// followed by ": " (or ':' at end-of-line/input), reclassifying it from
// StringValue to Key and consuming the colon.
func (t *Tokenizer) finishScalar(column int, off, length uint32) Token {
	if !t.eof() && t.text[t.pos] == ':' {
		if isSpaceOrEOLByte(t.peek(1), t.has(1)) {
			t.pos++
			return Token{Kind: Key, Line: t.line, Column: column, Off: off, Len: length}
		}
	}
	return Token{Kind: StringValue, Line: t.line, Column: column, Off: off, Len: length}
}

func (t *Tokenizer) scanComment(column int) (Token, error) {
	t.pos++ // consume '#'
	start := t.pos
	for !t.eof() && t.text[t.pos] != '\n' {
		t.pos++
	}
	text := bytes.TrimSuffix(t.text[start:t.pos], []byte("\r"))
	off, length := t.ar.Append(string(text))
	return Token{Kind: Comment, Line: t.line, Column: column, Off: off, Len: length}, nil
}

func (t *Tokenizer) scanSingleQuoted(column int) (Token, error) {
	startLine := t.line
	t.pos++ // consume opening quote
	t.ar.StartSession()
	for {
		if t.eof() {
			return Token{}, t.errorAtLine(startLine, t.currentLineBytes(), "unterminated single-quoted scalar")
		}
		c := t.text[t.pos]
		switch {
		case c == '\'' && t.peek(1) == '\'':
			t.ar.AddByteToSession('\'')
			t.pos += 2
		case c == '\'':
			t.pos++
			off, length := t.ar.CommitSession()
			return t.finishScalar(column, off, length), nil
		case c == '\n':
			t.pos++
			t.line++
			t.lineStart = t.pos
			if !t.eof() && t.text[t.pos] == '\n' {
				t.ar.AddByteToSession('\n')
			} else {
				t.ar.AddByteToSession(' ')
			}
		default:
			t.ar.AddByteToSession(c)
			t.pos++
		}
	}
}

func (t *Tokenizer) scanDoubleQuoted(column int) (Token, error) {
	startLine := t.line
	t.pos++ // consume opening quote
	t.ar.StartSession()
	for {
		if t.eof() {
			return Token{}, t.errorAtLine(startLine, t.currentLineBytes(), "unterminated double-quoted scalar")
		}
		c := t.text[t.pos]
		switch {
		case c == '\\':
			if !t.has(1) {
				return Token{}, t.errorAtLine(startLine, t.currentLineBytes(), "unterminated double-quoted scalar")
			}
			nc := t.text[t.pos+1]
			switch nc {
			case 'n':
				t.ar.AddByteToSession('\n')
				t.pos += 2
			case 'r':
				t.ar.AddByteToSession('\r')
				t.pos += 2
			case 't':
				t.ar.AddByteToSession('\t')
				t.pos += 2
			case '"':
				t.ar.AddByteToSession('"')
				t.pos += 2
			case '\\':
				t.ar.AddByteToSession('\\')
				t.pos += 2
			case '\n':
				t.pos += 2
				t.line++
				t.lineStart = t.pos
				for !t.eof() && t.text[t.pos] == ' ' {
					t.pos++
				}
			default:
				// \x, \u, \U and anything else are not required escapes;
				// preserved verbatim as documented.
				t.ar.AddByteToSession('\\')
				t.ar.AddByteToSession(nc)
				t.pos += 2
			}
		case c == '"':
			t.pos++
			off, length := t.ar.CommitSession()
			return t.finishScalar(column, off, length), nil
		case c == '\n':
			t.ar.AddByteToSession('\n')
			t.pos++
			t.line++
			t.lineStart = t.pos
		default:
			t.ar.AddByteToSession(c)
			t.pos++
		}
	}
}

func trimTrailingSpaceTab(b []byte) []byte {
	return bytes.TrimRight(b, " \t")
}

// scanPlain scans an unquoted scalar. It may span multiple physical lines:
// a continuation line is accepted when, after skipping any run of blank
// lines (each contributing a literal '\n' to the joined result), the next
// non-blank line is indented strictly deeper than the scalar's own
// starting column; otherwise the scalar ends at the newline and normal
// tokenization resumes on the next line.
func (t *Tokenizer) scanPlain(column int) (Token, error) {
	targetIndent := column
	t.ar.StartSession()
	for {
		chunkStart := t.pos
		for !t.eof() {
			c := t.text[t.pos]
			if c == '\n' {
				break
			}
			if c == ' ' && t.peek(1) == '#' {
				break
			}
			if c == ':' && isSpaceOrEOLByte(t.peek(1), t.has(1)) {
				break
			}
			t.pos++
		}
		chunk := trimTrailingSpaceTab(t.text[chunkStart:t.pos])
		t.ar.AddToSession(string(chunk))

		if t.eof() || t.text[t.pos] != '\n' {
			break
		}

		lookPos := t.pos + 1
		blanks := 0
		cont := false
		for {
			lineStart := lookPos
			p := lookPos
			for p < len(t.text) && t.text[p] == ' ' {
				p++
			}
			if p >= len(t.text) || t.text[p] == '\t' {
				break
			}
			if t.text[p] == '\n' {
				blanks++
				lookPos = p + 1
				continue
			}
			if p-lineStart > targetIndent {
				cont = true
				lookPos = p
			}
			break
		}
		if !cont {
			break
		}
		for t.pos < lookPos {
			if t.text[t.pos] == '\n' {
				t.line++
				t.lineStart = t.pos + 1
			}
			t.pos++
		}
		if blanks > 0 {
			for i := 0; i < blanks; i++ {
				t.ar.AddByteToSession('\n')
			}
		} else {
			t.ar.AddByteToSession(' ')
		}
	}
	off, length := t.ar.CommitSession()
	return t.finishScalar(column, off, length), nil
}

// scanBlockScalar scans a literal ('|') or folded ('>') block scalar,
// including its chomp/explicit-indent indicator line.
func (t *Tokenizer) scanBlockScalar(column int, indicator byte, parentIndent int) (Token, error) {
	startLine := t.line
	t.pos++ // consume '|' or '>'

	var chomp byte
	chompSeen, indentSeen := false, false
	explicitIndent := -1
	for !t.eof() {
		c := t.text[t.pos]
		if c == '+' || c == '-' {
			if chompSeen {
				return Token{}, t.errorAtLine(startLine, t.currentLineBytes(), "chomp indicator specified twice")
			}
			chomp = c
			chompSeen = true
			t.pos++
			continue
		}
		if c >= '1' && c <= '9' {
			if indentSeen {
				return Token{}, t.errorAtLine(startLine, t.currentLineBytes(), "explicit indent indicator specified twice")
			}
			explicitIndent = int(c - '0')
			indentSeen = true
			t.pos++
			continue
		}
		break // trailing garbage on the indicator line is tolerated
	}
	for !t.eof() && t.text[t.pos] != '\n' {
		t.pos++
	}
	if !t.eof() {
		t.pos++
		t.line++
		t.lineStart = t.pos
	}

	targetIndent := -1
	if explicitIndent >= 0 {
		targetIndent = parentIndent + explicitIndent
	}

	var buf bytes.Buffer
	linesAdded := 0
	for !t.eof() {
		lineStart := t.pos
		p := t.pos
		for p < len(t.text) && t.text[p] == ' ' {
			p++
		}
		if p < len(t.text) && t.text[p] == '\t' {
			return Token{}, t.errorAtLine(t.line, t.text[lineStart:min(lineStart+maxSnippet, len(t.text))], "using tabulation is not accepted for indentation")
		}
		isBlank := p >= len(t.text) || t.text[p] == '\n'
		lineCol := p - lineStart

		if !isBlank {
			if targetIndent < 0 {
				targetIndent = lineCol
			}
			if lineCol < targetIndent {
				break
			}
		}

		lineEnd := p
		for lineEnd < len(t.text) && t.text[lineEnd] != '\n' {
			lineEnd++
		}

		if linesAdded > 0 {
			if indicator == '|' {
				buf.WriteByte('\n')
			} else if isBlank || lineCol > targetIndent {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		if !isBlank {
			buf.Write(t.text[lineStart+targetIndent : lineEnd])
		}
		linesAdded++

		t.pos = lineEnd
		if t.eof() {
			break
		}
		t.pos++
		t.line++
		t.lineStart = t.pos
	}

	result := buf.Bytes()
	switch chomp {
	case '-':
		result = bytes.TrimRight(result, "\n")
	case '+':
		// keep: leave trailing newlines exactly as accumulated.
	default:
		result = bytes.TrimRight(result, "\n")
		if linesAdded > 0 {
			result = append(result, '\n')
		}
	}

	t.ar.StartSession()
	t.ar.AddToSession(string(result))
	off, length := t.ar.CommitSession()
	return Token{Kind: StringValue, Line: startLine, Column: column, Off: off, Len: length}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
