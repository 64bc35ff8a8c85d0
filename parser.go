// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package doctree

// parser turns a byte stream of YAML text into the event sequence consumed
// by the Loader. It handles the block and flow styles, multi-document
// streams, anchors, aliases, tags and comments. The whole input is parsed
// on the first call to Next and the events are then replayed one at a time.
type parser struct {
	src  []byte
	pos  int
	line int // 1-based
	col  int // 1-based, counted in runes

	events []Event
	head   int
	err    error
	parsed bool

	streamStart bool
	streamEnd   bool
}

var _ EventSource = (*parser)(nil)

func newParser(src []byte) *parser {
	return &parser{src: src, line: 1, col: 1}
}

// NewEventSource returns the built-in event source reading YAML text from
// src. It is the source LoadBytes drives the loader with; exposing it lets
// callers inspect the raw event stream or run the loader over part of a
// multi-document stream.
func NewEventSource(src []byte) EventSource {
	return newParser(src)
}

func (p *parser) StreamStartProduced() bool { return p.streamStart }
func (p *parser) StreamEndProduced() bool   { return p.streamEnd }

// Next fills in the next event from the stream. A syntax error is reported
// only after every event produced before the error has been handed out.
func (p *parser) Next(e *Event) error {
	if !p.parsed {
		p.parsed = true
		p.run()
	}
	if p.head >= len(p.events) {
		if p.err != nil {
			return p.err
		}
		panic("internal error: event requested past end of stream (please report)")
	}
	*e = p.events[p.head]
	p.head++
	switch e.Type {
	case STREAM_START_EVENT:
		p.streamStart = true
	case STREAM_END_EVENT:
		p.streamEnd = true
	}
	return nil
}

// run parses the whole input, converting syntax error panics raised by the
// scanner into the parser's error state.
func (p *parser) run() {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParserError); ok {
				p.err = pe
				return
			}
			panic(r)
		}
	}()
	start := p.mark()
	p.emit(Event{Type: STREAM_START_EVENT, StartMark: start, EndMark: start})
	p.skipBlank()
	for !p.eof() {
		p.parseDocument()
		p.skipBlank()
	}
	m := p.mark()
	p.emit(Event{Type: STREAM_END_EVENT, StartMark: m, EndMark: m})
}

func (p *parser) emit(e Event) {
	p.events = append(p.events, e)
}

func (p *parser) emitScalar(tok scalarToken, props nodeProps) {
	start := tok.start
	if props.ok {
		start = props.mark
	}
	p.emit(Event{
		Type:      SCALAR_EVENT,
		StartMark: start,
		EndMark:   tok.end,
		Anchor:    props.anchor,
		Tag:       props.tag,
		Value:     tok.value,
		Style:     tok.style,
	})
}

func (p *parser) emitEmptyScalar(props nodeProps, m Mark) {
	start := m
	if props.ok {
		start = props.mark
	}
	p.emit(Event{
		Type:      SCALAR_EVENT,
		StartMark: start,
		EndMark:   m,
		Anchor:    props.anchor,
		Tag:       props.tag,
	})
}

// nodeProps carries the anchor and tag properties read ahead of a node,
// along with the mark of the first property.
type nodeProps struct {
	anchor string
	tag    string
	mark   Mark
	ok     bool
}

// parseProps scans any run of anchor and tag properties at the cursor.
func (p *parser) parseProps() nodeProps {
	var props nodeProps
	for !p.eof() {
		switch p.cur() {
		case '&':
			if !props.ok {
				props.mark = p.mark()
				props.ok = true
			}
			p.advance(1)
			props.anchor = p.scanAnchorName()
			p.skipInline()
		case '!':
			if !props.ok {
				props.mark = p.mark()
				props.ok = true
			}
			props.tag = p.scanTagToken()
			p.skipInline()
		default:
			return props
		}
	}
	return props
}

// mergeProps combines properties read in an outer position (before a line
// break) with ones read directly in front of the node.
func mergeProps(outer, inner nodeProps) nodeProps {
	if !outer.ok {
		return inner
	}
	if !inner.ok {
		return outer
	}
	m := outer
	if inner.anchor != "" {
		m.anchor = inner.anchor
	}
	if inner.tag != "" {
		m.tag = inner.tag
	}
	return m
}

// parseDocument parses one document, including its optional "---" and
// "..." indicators, and emits the surrounding document events.
func (p *parser) parseDocument() {
	start := p.mark()
	if p.col == 1 && p.aheadWord("---") {
		p.advance(3)
		p.skipInline()
	}
	p.emit(Event{Type: DOCUMENT_START_EVENT, StartMark: start, EndMark: p.mark()})

	p.skipBlank()
	if p.eof() || p.atDocBoundary() {
		// A document with no content still has a root: an empty scalar.
		m := p.mark()
		p.emit(Event{Type: SCALAR_EVENT, StartMark: m, EndMark: m})
	} else {
		p.parseBlockNode(-1, nodeProps{})
	}

	p.skipBlank()
	endStart := p.mark()
	end := endStart
	if p.col == 1 && p.aheadWord("...") {
		p.advance(3)
		end = p.mark()
		p.skipToEOL()
	}
	p.emit(Event{Type: DOCUMENT_END_EVENT, StartMark: endStart, EndMark: end})
}

// parseBlockNode parses a node in block context whose first token sits at
// the cursor. ctxIndent is the indentation the node must exceed; outer
// carries properties read on an earlier line. A scalar token followed by a
// ':' indicator opens a block mapping instead.
func (p *parser) parseBlockNode(ctxIndent int, outer nodeProps) {
	inner := p.parseProps()
	if p.atLineEnd() {
		// Properties alone on the line: the node follows on the next
		// deeper-indented line, or is an empty scalar.
		props := mergeProps(outer, inner)
		m := p.mark()
		p.skipBlank()
		if p.eof() || p.atDocBoundary() || p.indent() <= ctxIndent {
			p.emitEmptyScalar(props, m)
			return
		}
		p.parseBlockNode(ctxIndent, props)
		return
	}
	props := mergeProps(outer, inner)
	switch c := p.cur(); {
	case c == '*':
		p.scanAlias(props)
		p.expectLineEnd()
	case c == '-' && p.nextIsBreakOrSpace(1):
		p.parseBlockSequence(p.indent(), props)
	case c == '[' || c == '{':
		p.parseFlowNode(props)
		p.expectLineEnd()
	case c == '|' || c == '>':
		p.scanBlockScalar(ctxIndent, props)
	default:
		var tok scalarToken
		switch c {
		case '"':
			tok = p.scanDoubleQuoted()
		case '\'':
			tok = p.scanSingleQuoted()
		default:
			tok = p.scanPlainBlock(true)
		}
		p.skipInline()
		if p.at(':') && p.nextIsBreakOrSpace(1) {
			keyStart := tok.start
			if inner.ok {
				keyStart = inner.mark
			}
			p.parseBlockMapping(keyStart.Column-1, outer, inner, tok)
			return
		}
		if !p.atLineEnd() {
			p.failf("could not find expected ':'")
		}
		p.emitScalar(tok, props)
	}
}

// scanAlias scans an '*' alias at the cursor and emits its event. Aliases
// cannot carry anchor or tag properties.
func (p *parser) scanAlias(props nodeProps) {
	if props.ok {
		p.failf("an alias node cannot have anchor or tag properties")
	}
	start := p.mark()
	p.advance(1)
	name := p.scanAnchorName()
	p.emit(Event{Type: ALIAS_EVENT, StartMark: start, EndMark: p.mark(), Anchor: name})
}

// parseBlockSequence parses a block sequence whose first '-' indicator
// sits at the cursor at the given indentation.
func (p *parser) parseBlockSequence(indent int, props nodeProps) {
	start := p.mark()
	if props.ok {
		start = props.mark
	}
	p.emit(Event{
		Type:      SEQUENCE_START_EVENT,
		StartMark: start,
		EndMark:   p.mark(),
		Anchor:    props.anchor,
		Tag:       props.tag,
	})
	for {
		// cursor is on the '-' indicator
		p.advance(1)
		p.skipInline()
		if p.atLineEnd() {
			m := p.mark()
			p.skipBlank()
			if p.eof() || p.atDocBoundary() || p.indent() <= indent {
				p.emitEmptyScalar(nodeProps{}, m)
			} else {
				p.parseBlockNode(indent, nodeProps{})
			}
		} else {
			p.parseBlockNode(indent, nodeProps{})
		}
		p.skipBlank()
		if p.eof() || p.atDocBoundary() {
			break
		}
		ind := p.indent()
		if ind < indent {
			break
		}
		if ind > indent {
			p.failf("bad indentation of a sequence entry")
		}
		if !p.atSeqDash() {
			break
		}
	}
	m := p.mark()
	p.emit(Event{Type: SEQUENCE_END_EVENT, StartMark: m, EndMark: m})
}

// parseBlockMapping parses a block mapping given its already-scanned first
// key. mapProps are properties binding to the mapping itself (read on an
// earlier line); keyProps bind to the first key.
func (p *parser) parseBlockMapping(indent int, mapProps, keyProps nodeProps, key scalarToken) {
	start := key.start
	if keyProps.ok {
		start = keyProps.mark
	}
	if mapProps.ok {
		start = mapProps.mark
	}
	p.emit(Event{
		Type:      MAPPING_START_EVENT,
		StartMark: start,
		EndMark:   key.end,
		Anchor:    mapProps.anchor,
		Tag:       mapProps.tag,
	})
	for {
		p.emitScalar(key, keyProps)
		// cursor is on the ':' indicator
		p.advance(1)
		p.skipInline()
		if p.atLineEnd() {
			m := p.mark()
			p.skipBlank()
			switch {
			case p.eof() || p.atDocBoundary():
				p.emitEmptyScalar(nodeProps{}, m)
			case p.indent() > indent:
				p.parseBlockNode(indent, nodeProps{})
			case p.indent() == indent && p.atSeqDash():
				// A block sequence may sit at the same indentation
				// as its key.
				p.parseBlockSequence(indent, nodeProps{})
			default:
				p.emitEmptyScalar(nodeProps{}, m)
			}
		} else {
			p.parseInlineValue(indent)
		}
		p.skipBlank()
		if p.eof() || p.atDocBoundary() {
			break
		}
		ind := p.indent()
		if ind < indent {
			break
		}
		if ind > indent {
			p.failf("bad indentation of a mapping entry")
		}
		if p.atSeqDash() {
			p.failf("did not find expected key")
		}
		keyProps = p.parseProps()
		if p.atLineEnd() {
			p.failf("did not find expected key")
		}
		switch p.cur() {
		case '"':
			key = p.scanDoubleQuoted()
		case '\'':
			key = p.scanSingleQuoted()
		default:
			key = p.scanPlainBlock(true)
		}
		p.skipInline()
		if !p.at(':') || !p.nextIsBreakOrSpace(1) {
			p.failf("could not find expected ':'")
		}
	}
	m := p.mark()
	p.emit(Event{Type: MAPPING_END_EVENT, StartMark: m, EndMark: m})
}

// parseInlineValue parses a mapping value that starts on the same line as
// its key. parentIndent is the mapping's indentation.
func (p *parser) parseInlineValue(parentIndent int) {
	props := p.parseProps()
	if p.atLineEnd() {
		m := p.mark()
		p.skipBlank()
		switch {
		case p.eof() || p.atDocBoundary():
			p.emitEmptyScalar(props, m)
		case p.indent() > parentIndent:
			p.parseBlockNode(parentIndent, props)
		case p.indent() == parentIndent && p.atSeqDash():
			p.parseBlockSequence(parentIndent, props)
		default:
			p.emitEmptyScalar(props, m)
		}
		return
	}
	switch c := p.cur(); {
	case c == '*':
		p.scanAlias(props)
		p.expectLineEnd()
	case c == '[' || c == '{':
		p.parseFlowNode(props)
		p.expectLineEnd()
	case c == '|' || c == '>':
		p.scanBlockScalar(parentIndent, props)
	case c == '"':
		p.emitScalar(p.scanDoubleQuoted(), props)
		p.expectLineEnd()
	case c == '\'':
		p.emitScalar(p.scanSingleQuoted(), props)
		p.expectLineEnd()
	default:
		p.emitScalar(p.scanPlainBlock(false), props)
	}
}

// parseFlowNode parses a node in flow context. Line breaks and comments
// may separate any flow tokens.
func (p *parser) parseFlowNode(outer nodeProps) {
	p.skipFlow()
	props := mergeProps(outer, p.parseProps())
	p.skipFlow()
	if p.eof() {
		p.failf("found unexpected end of stream while parsing a flow node")
	}
	switch c := p.cur(); c {
	case '[':
		p.parseFlowSequence(props)
	case '{':
		p.parseFlowMapping(props)
	case '*':
		p.scanAlias(props)
	case '"':
		p.emitScalar(p.scanDoubleQuoted(), props)
	case '\'':
		p.emitScalar(p.scanSingleQuoted(), props)
	default:
		tok := p.scanFlowPlain()
		if tok.value == "" {
			p.failf("unexpected character %q while parsing a flow node", string(rune(c)))
		}
		p.emitScalar(tok, props)
	}
}

// skipFlow advances past whitespace, comments and line breaks between flow
// tokens.
func (p *parser) skipFlow() {
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

// parseFlowSequence parses a '[' ... ']' sequence at the cursor. A
// trailing comma before the closing bracket is accepted.
func (p *parser) parseFlowSequence(props nodeProps) {
	start := p.mark()
	if props.ok {
		start = props.mark
	}
	p.advance(1) // '['
	p.emit(Event{
		Type:      SEQUENCE_START_EVENT,
		StartMark: start,
		EndMark:   p.mark(),
		Anchor:    props.anchor,
		Tag:       props.tag,
		Style:     FlowStyle,
	})
	p.skipFlow()
	for !p.at(']') {
		if p.eof() {
			p.failf("did not find expected ',' or ']'")
		}
		p.parseFlowNode(nodeProps{})
		p.skipFlow()
		if p.at(',') {
			p.advance(1)
			p.skipFlow()
			continue
		}
		if !p.at(']') {
			p.failf("did not find expected ',' or ']'")
		}
	}
	m := p.mark()
	p.advance(1)
	p.emit(Event{Type: SEQUENCE_END_EVENT, StartMark: m, EndMark: p.mark()})
}

// parseFlowMapping parses a '{' ... '}' mapping at the cursor. A key with
// no ':' separator, or a ':' with no value, yields an empty scalar.
func (p *parser) parseFlowMapping(props nodeProps) {
	start := p.mark()
	if props.ok {
		start = props.mark
	}
	p.advance(1) // '{'
	p.emit(Event{
		Type:      MAPPING_START_EVENT,
		StartMark: start,
		EndMark:   p.mark(),
		Anchor:    props.anchor,
		Tag:       props.tag,
		Style:     FlowStyle,
	})
	p.skipFlow()
	for !p.at('}') {
		if p.eof() {
			p.failf("did not find expected ',' or '}'")
		}
		p.parseFlowNode(nodeProps{})
		p.skipFlow()
		if p.at(':') {
			p.advance(1)
			p.skipFlow()
			if p.at(',') || p.at('}') {
				p.emitEmptyScalar(nodeProps{}, p.mark())
			} else {
				p.parseFlowNode(nodeProps{})
				p.skipFlow()
			}
		} else {
			p.emitEmptyScalar(nodeProps{}, p.mark())
		}
		if p.at(',') {
			p.advance(1)
			p.skipFlow()
			continue
		}
		if !p.at('}') {
			p.failf("did not find expected ',' or '}'")
		}
	}
	m := p.mark()
	p.advance(1)
	p.emit(Event{Type: MAPPING_END_EVENT, StartMark: m, EndMark: p.mark()})
}
