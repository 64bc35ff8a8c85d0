// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Low-level scanning primitives for the event parser: cursor movement with
// position tracking, whitespace and comment handling, and scalar token
// scanning in the plain, quoted and block styles.

package doctree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// scalarToken is one scanned scalar with its presentation style and the
// marks bounding it in the source.
type scalarToken struct {
	value      string
	style      Style
	start, end Mark
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) cur() byte {
	return p.src[p.pos]
}

func (p *parser) at(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

// nextIsBreakOrSpace reports whether the byte at the given offset from the
// cursor is whitespace, a line break, or past the end of the stream.
func (p *parser) nextIsBreakOrSpace(off int) bool {
	if p.pos+off >= len(p.src) {
		return true
	}
	c := p.src[p.pos+off]
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (p *parser) mark() Mark {
	return Mark{Index: p.pos, Line: p.line, Column: p.col}
}

// indent is the column of the cursor counted from zero; it is meaningful
// when the cursor sits on the first content character of a line.
func (p *parser) indent() int {
	return p.col - 1
}

// advance moves the cursor n bytes forward, tracking line and column.
// Columns count runes, not bytes.
func (p *parser) advance(n int) {
	for i := 0; i < n && p.pos < len(p.src); i++ {
		c := p.src[p.pos]
		if c == '\n' {
			p.line++
			p.col = 1
		} else if c&0xC0 != 0x80 {
			p.col++
		}
		p.pos++
	}
}

// skipInline advances past spaces and tabs within the current line.
func (p *parser) skipInline() {
	for !p.eof() {
		switch p.cur() {
		case ' ', '\t', '\r':
			p.advance(1)
		default:
			return
		}
	}
}

// skipToEOL advances to the next line break without consuming it.
func (p *parser) skipToEOL() {
	for !p.eof() && p.cur() != '\n' {
		p.advance(1)
	}
}

// skipBlank advances past whitespace, comments and line breaks, leaving the
// cursor on the first character of the next content token.
func (p *parser) skipBlank() {
	for !p.eof() {
		switch p.cur() {
		case ' ', '\t', '\r', '\n':
			p.advance(1)
		case '#':
			p.skipToEOL()
		default:
			return
		}
	}
}

// atLineEnd reports whether the cursor sits at the end of the current
// line's content: a break, a comment, or the end of the stream.
func (p *parser) atLineEnd() bool {
	if p.eof() {
		return true
	}
	c := p.cur()
	return c == '\n' || c == '\r' || c == '#'
}

// expectLineEnd requires that nothing but whitespace or a comment follows
// on the current line.
func (p *parser) expectLineEnd() {
	p.skipInline()
	if !p.atLineEnd() {
		p.failf("unexpected content after node")
	}
}

// aheadWord reports whether the source at the cursor starts with s followed
// by whitespace, a line break, or the end of the stream.
func (p *parser) aheadWord(s string) bool {
	if p.pos+len(s) > len(p.src) || string(p.src[p.pos:p.pos+len(s)]) != s {
		return false
	}
	if p.pos+len(s) == len(p.src) {
		return true
	}
	c := p.src[p.pos+len(s)]
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// atDocBoundary reports whether the cursor sits on a document start or end
// indicator in the first column.
func (p *parser) atDocBoundary() bool {
	return p.col == 1 && (p.aheadWord("---") || p.aheadWord("..."))
}

// atSeqDash reports whether the cursor sits on a block sequence entry
// indicator.
func (p *parser) atSeqDash() bool {
	return p.at('-') && p.nextIsBreakOrSpace(1)
}

// failf aborts the parse with a ParserError at the cursor position.
func (p *parser) failf(format string, args ...any) {
	m := p.mark()
	panic(&ParserError{
		Message: "could not parse the input stream",
		Problem: fmt.Sprintf(format, args...),
		Offset:  m.Index,
		Mark:    m,
		Context: p.contextAt(m.Index),
	})
}

// contextAt returns the source line containing the given offset, with
// trailing whitespace removed.
func (p *parser) contextAt(index int) string {
	if index > len(p.src) {
		index = len(p.src)
	}
	start := index
	for start > 0 && p.src[start-1] != '\n' {
		start--
	}
	end := index
	for end < len(p.src) && p.src[end] != '\n' {
		end++
	}
	return strings.TrimRight(string(p.src[start:end]), " \t\r")
}

// scanAnchorName scans the name following an '&' or '*' indicator.
func (p *parser) scanAnchorName() string {
	start := p.pos
	for !p.eof() {
		c := p.cur()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' || c == '-' || c == '_' {
			p.advance(1)
			continue
		}
		break
	}
	if p.pos == start {
		p.failf("did not find expected alphabetic or numeric character")
	}
	return string(p.src[start:p.pos])
}

// scanTagToken scans a tag starting at a '!' indicator and returns it
// verbatim, including the indicator ("!", "!local", "!!str").
func (p *parser) scanTagToken() string {
	start := p.pos
	p.advance(1)
	for !p.eof() {
		switch p.cur() {
		case ' ', '\t', '\r', '\n', ',', '[', ']', '{', '}':
			return string(p.src[start:p.pos])
		}
		p.advance(1)
	}
	return string(p.src[start:p.pos])
}

// scanPlainBlock scans a plain scalar restricted to one line of a block
// context. In key context the scan also stops at a ':' indicator followed
// by whitespace or a break, which is what distinguishes a mapping key from
// a plain value.
func (p *parser) scanPlainBlock(keyContext bool) scalarToken {
	start := p.mark()
	i := p.pos
	lastNS := p.pos - 1
	for i < len(p.src) {
		c := p.src[i]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '#' && i > p.pos && (p.src[i-1] == ' ' || p.src[i-1] == '\t') {
			break
		}
		if keyContext && c == ':' {
			if i+1 == len(p.src) {
				break
			}
			if n := p.src[i+1]; n == ' ' || n == '\t' || n == '\n' || n == '\r' {
				break
			}
		}
		if c != ' ' && c != '\t' {
			lastNS = i
		}
		i++
	}
	value := string(p.src[p.pos : lastNS+1])
	end := Mark{
		Index:  lastNS + 1,
		Line:   start.Line,
		Column: start.Column + utf8.RuneCountInString(value),
	}
	p.advance(i - p.pos)
	return scalarToken{value: value, start: start, end: end}
}

// scanFlowPlain scans a plain scalar inside a flow collection, stopping at
// flow indicators and at ':' separators.
func (p *parser) scanFlowPlain() scalarToken {
	start := p.mark()
	i := p.pos
	lastNS := p.pos - 1
scan:
	for i < len(p.src) {
		c := p.src[i]
		switch c {
		case '\n', '\r', ',', '[', ']', '{', '}':
			break scan
		case '#':
			if i > p.pos && (p.src[i-1] == ' ' || p.src[i-1] == '\t') {
				break scan
			}
		case ':':
			if i+1 == len(p.src) {
				break scan
			}
			switch p.src[i+1] {
			case ' ', '\t', '\n', '\r', ',', ']', '}':
				break scan
			}
		}
		if c != ' ' && c != '\t' {
			lastNS = i
		}
		i++
	}
	value := string(p.src[p.pos : lastNS+1])
	end := Mark{
		Index:  lastNS + 1,
		Line:   start.Line,
		Column: start.Column + utf8.RuneCountInString(value),
	}
	p.advance(i - p.pos)
	return scalarToken{value: value, start: start, end: end}
}

// scanSingleQuoted scans a single-quoted scalar. The only escape form is
// the doubled quote. Quoted scalars do not span lines.
func (p *parser) scanSingleQuoted() scalarToken {
	start := p.mark()
	p.advance(1)
	var b strings.Builder
	for {
		if p.eof() || p.cur() == '\n' {
			p.failf("found unexpected end of line while scanning a single-quoted scalar")
		}
		if p.cur() == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.advance(2)
				continue
			}
			p.advance(1)
			break
		}
		b.WriteByte(p.cur())
		p.advance(1)
	}
	return scalarToken{value: b.String(), style: SingleQuotedStyle, start: start, end: p.mark()}
}

// scanDoubleQuoted scans a double-quoted scalar with backslash escapes.
// Quoted scalars do not span lines.
func (p *parser) scanDoubleQuoted() scalarToken {
	start := p.mark()
	p.advance(1)
	var b strings.Builder
	for {
		if p.eof() || p.cur() == '\n' {
			p.failf("found unexpected end of line while scanning a double-quoted scalar")
		}
		c := p.cur()
		if c == '"' {
			p.advance(1)
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			p.advance(1)
			continue
		}
		p.advance(1)
		if p.eof() {
			p.failf("found unexpected end of stream while scanning an escape sequence")
		}
		e := p.cur()
		p.advance(1)
		switch e {
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'e':
			b.WriteByte(0x1b)
		case ' ':
			b.WriteByte(' ')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'x':
			b.WriteRune(rune(p.scanHex(2)))
		case 'u':
			b.WriteRune(rune(p.scanHex(4)))
		case 'U':
			b.WriteRune(rune(p.scanHex(8)))
		default:
			p.failf("found unknown escape character %q", string(rune(e)))
		}
	}
	return scalarToken{value: b.String(), style: DoubleQuotedStyle, start: start, end: p.mark()}
}

// scanHex reads exactly n hexadecimal digits.
func (p *parser) scanHex(n int) int {
	v := 0
	for i := 0; i < n; i++ {
		if p.eof() {
			p.failf("did not find expected hexadecimal number")
		}
		c := p.cur()
		switch {
		case c >= '0' && c <= '9':
			v = v*16 + int(c-'0')
		case c >= 'a' && c <= 'f':
			v = v*16 + int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = v*16 + int(c-'A') + 10
		default:
			p.failf("did not find expected hexadecimal number")
		}
		p.advance(1)
	}
	return v
}

// scanBlockScalar scans a literal ('|') or folded ('>') block scalar whose
// header sits at the cursor, and emits the resulting scalar event. The
// block's content must be indented deeper than parentIndent.
func (p *parser) scanBlockScalar(parentIndent int, props nodeProps) {
	start := p.mark()
	style := LiteralStyle
	if p.cur() == '>' {
		style = FoldedStyle
	}
	p.advance(1)

	base := parentIndent
	if base < 0 {
		base = 0
	}
	chomp := 0
	blockIndent := -1
	for !p.atLineEnd() {
		switch c := p.cur(); {
		case c == '+':
			chomp = 1
			p.advance(1)
		case c == '-':
			chomp = -1
			p.advance(1)
		case c >= '1' && c <= '9':
			blockIndent = base + int(c-'0')
			p.advance(1)
		case c == ' ' || c == '\t':
			p.advance(1)
		default:
			p.failf("unexpected character in block scalar header")
		}
	}
	if p.at('#') {
		p.skipToEOL()
	}
	if !p.eof() {
		p.advance(1) // line break after the header
	}

	var raw []string
	for !p.eof() {
		for !p.eof() && p.cur() == ' ' && (blockIndent < 0 || p.indent() < blockIndent) {
			p.advance(1)
		}
		if p.eof() {
			break
		}
		if p.cur() == '\n' {
			p.advance(1)
			raw = append(raw, "")
			continue
		}
		if p.indent() <= parentIndent || p.atDocBoundary() {
			break
		}
		if blockIndent < 0 {
			// The first non-empty line fixes the block's indentation.
			blockIndent = p.indent()
		} else if p.indent() < blockIndent {
			break
		}
		ls := p.pos
		p.skipToEOL()
		raw = append(raw, string(p.src[ls:p.pos]))
		if !p.eof() {
			p.advance(1)
		}
	}
	end := p.mark()

	content := raw
	trail := 0
	for len(content) > 0 && content[len(content)-1] == "" {
		content = content[:len(content)-1]
		trail++
	}
	var value string
	if len(content) > 0 {
		if style == LiteralStyle {
			value = strings.Join(content, "\n")
		} else {
			value = foldLines(content)
		}
		switch {
		case chomp < 0:
			// strip: no trailing break
		case chomp > 0:
			value += strings.Repeat("\n", 1+trail)
		default:
			value += "\n"
		}
	} else if chomp > 0 {
		value = strings.Repeat("\n", trail)
	}
	p.emitScalar(scalarToken{value: value, style: style, start: start, end: end}, props)
}

// foldLines joins folded block scalar lines: adjacent content lines are
// joined with a space, and each empty line becomes a line break.
func foldLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		if i == 0 {
			b.WriteString(l)
			continue
		}
		if l == "" {
			b.WriteByte('\n')
			continue
		}
		if lines[i-1] != "" {
			b.WriteByte(' ')
		}
		b.WriteString(l)
	}
	return b.String()
}
