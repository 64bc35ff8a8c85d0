// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Loader stage: builds a Document out of an event stream and resolves
// aliases once the whole document has been read.

package doctree

import (
	"fmt"
	"io"
)

// A Loader reads exactly one document per Load call from an event source.
//
// The loader keeps one event of lookahead and is not safe for concurrent
// use. For multi-document streams, drive a fresh Loader (or call Load
// repeatedly) against the same still-positioned source; each call consumes
// one DOCUMENT-START/DOCUMENT-END pair.
type Loader struct {
	src      EventSource
	event    Event
	doc      *Document
	doneInit bool
}

// NewLoader returns a Loader reading from src.
func NewLoader(src EventSource) *Loader {
	return &Loader{src: src}
}

// Load reads the next document from src.
//
// On success the returned Document is fully populated and every alias node
// carries a resolved target; a Document with a nil Root means the stream
// ended where a document was expected, which is not an error. On failure
// the partially built document is discarded and only the error is
// returned.
func Load(src EventSource) (*Document, error) {
	return NewLoader(src).Load()
}

// LoadBytes loads a single document from an in-memory buffer.
func LoadBytes(b []byte) (*Document, error) {
	return Load(newParser(b))
}

// LoadReader loads a single document from r. The reader is drained but
// never closed; the caller keeps ownership of it and must keep it alive
// for the duration of the call.
func LoadReader(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadBytes(b)
}

// Load reads the next document from the loader's source.
func (l *Loader) Load() (doc *Document, err error) {
	defer handleErr(&err)
	return l.load(), nil
}

func (l *Loader) init() {
	if l.doneInit {
		return
	}
	if !l.src.StreamStartProduced() {
		l.expect(STREAM_START_EVENT)
	}
	l.doneInit = true
}

// expect consumes an event from the event stream and checks that it is of
// the expected type. A mismatch cannot occur against a well-formed event
// stream and is treated as a defect, not a loadable condition.
func (l *Loader) expect(e EventType) {
	if l.event.Type == NO_EVENT {
		l.peek()
	}
	if l.event.Type != e {
		panic(fmt.Sprintf("internal error: expected %s event but got %s (please report)", e, l.event.Type))
	}
	l.event = Event{}
}

// peek reads the next event into the one-event lookahead, if it is not
// already filled, and returns its type.
func (l *Loader) peek() EventType {
	if l.event.Type != NO_EVENT {
		return l.event.Type
	}
	if l.src.StreamEndProduced() {
		panic("internal error: attempted to go past the end of stream (please report)")
	}
	if err := l.src.Next(&l.event); err != nil {
		fail(err)
	}
	return l.event.Type
}

func (l *Loader) load() *Document {
	l.init()
	l.doc = &Document{Anchors: make(map[string]*Node)}
	if l.peek() == STREAM_END_EVENT {
		// A stream with no (further) documents loads successfully
		// as an empty document.
		return l.doc
	}
	l.doc.StartMark = l.event.StartMark
	l.expect(DOCUMENT_START_EVENT)
	l.doc.Root = l.loadNode()
	if l.peek() == DOCUMENT_END_EVENT {
		l.doc.EndMark = l.event.EndMark
	}
	l.expect(DOCUMENT_END_EVENT)
	l.resolveAliases()
	return l.doc
}

// loadNode dispatches on the lookahead event to one of the four
// node-building procedures.
func (l *Loader) loadNode() *Node {
	switch l.peek() {
	case SCALAR_EVENT:
		return l.scalar()
	case ALIAS_EVENT:
		return l.alias()
	case SEQUENCE_START_EVENT:
		return l.sequence()
	case MAPPING_START_EVENT:
		return l.mapping()
	default:
		panic("internal error: attempted to load unexpected event (please report): " + l.event.Type.String())
	}
}

// node builds the shared header of a node from the lookahead event,
// normalizes its tag, and appends it to the document's node list. Nodes
// are appended before their children are read, so the list is in document
// order when the load completes.
func (l *Loader) node(kind Kind, defaultTag string) *Node {
	tag := l.event.Tag
	if tag == "" || tag == "!" {
		tag = defaultTag
	}
	n := &Node{
		Kind:      kind,
		Tag:       tag,
		StartMark: l.event.StartMark,
		EndMark:   l.event.EndMark,
	}
	l.doc.Nodes = append(l.doc.Nodes, n)
	return n
}

// anchor registers the lookahead event's anchor, if any, as n's binding.
func (l *Loader) anchor(n *Node) {
	if l.event.Anchor != "" {
		n.Anchor = l.event.Anchor
		l.doc.Anchors[n.Anchor] = n
	}
}

func (l *Loader) scalar() *Node {
	n := l.node(ScalarNode, ScalarTag)
	n.Value = l.event.Value
	n.Style = l.event.Style
	l.anchor(n)
	l.expect(SCALAR_EVENT)
	return n
}

// alias records the referenced anchor name only. An alias has no binding
// of its own and its target stays unset until the alias sweep runs.
func (l *Loader) alias() *Node {
	n := l.node(AliasNode, "")
	n.Anchor = l.event.Anchor
	l.expect(ALIAS_EVENT)
	return n
}

func (l *Loader) sequence() *Node {
	n := l.node(SequenceNode, SequenceTag)
	n.Style = l.event.Style
	l.anchor(n)
	l.expect(SEQUENCE_START_EVENT)
	for l.peek() != SEQUENCE_END_EVENT {
		n.Items = append(n.Items, l.loadNode())
	}
	n.EndMark = l.event.EndMark
	l.expect(SEQUENCE_END_EVENT)
	return n
}

func (l *Loader) mapping() *Node {
	n := l.node(MappingNode, MappingTag)
	n.Style = l.event.Style
	n.Pairs = make(map[*Node]*Node)
	l.anchor(n)
	l.expect(MAPPING_START_EVENT)
	for l.peek() != MAPPING_END_EVENT {
		k := l.loadNode()
		v := l.loadNode()
		n.Keys = append(n.Keys, k)
		n.Pairs[k] = v
	}
	n.EndMark = l.event.EndMark
	l.expect(MAPPING_END_EVENT)
	return n
}

// resolveAliases runs once, after the closing document event has been
// consumed, and points every alias node at the node owning its anchor.
// Resolving after the full pass is what lets aliases refer to anchors
// defined later in the text.
func (l *Loader) resolveAliases() {
	for _, n := range l.doc.Nodes {
		if n.Kind != AliasNode {
			continue
		}
		target, ok := l.doc.Anchors[n.Anchor]
		if !ok {
			fail(&UnresolvedAliasError{Anchor: n.Anchor, Mark: n.StartMark})
		}
		n.Target = target
	}
}
