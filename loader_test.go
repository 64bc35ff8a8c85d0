// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package doctree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yamlkit/doctree/internal/testutil/assert"
)

// scriptedSource replays a fixed event sequence, for driving the loader
// without the parser.
type scriptedSource struct {
	events []Event
	next   int
	errAt  int // index at which Next fails, or -1
	err    error

	start, end bool
}

func newScriptedSource(events ...Event) *scriptedSource {
	return &scriptedSource{events: events, errAt: -1}
}

func (s *scriptedSource) StreamStartProduced() bool { return s.start }
func (s *scriptedSource) StreamEndProduced() bool   { return s.end }

func (s *scriptedSource) Next(e *Event) error {
	if s.next == s.errAt {
		return s.err
	}
	if s.next >= len(s.events) {
		return fmt.Errorf("scripted source exhausted")
	}
	*e = s.events[s.next]
	s.next++
	switch e.Type {
	case STREAM_START_EVENT:
		s.start = true
	case STREAM_END_EVENT:
		s.end = true
	}
	return nil
}

func TestLoadScalarDocument(t *testing.T) {
	doc, err := LoadBytes([]byte("hello\n"))
	assert.NoError(t, err)
	assert.NotNil(t, doc.Root)
	assert.Equal(t, ScalarNode, doc.Root.Kind)
	assert.Equal(t, "hello", doc.Root.Value)
	assert.Equal(t, ScalarTag, doc.Root.Tag)
	assert.Equal(t, 1, len(doc.Nodes))
	assert.Equal(t, doc.Root, doc.Nodes[0])
}

func TestLoadMapping(t *testing.T) {
	doc, err := LoadBytes([]byte("a: 1\nb: 2\n"))
	assert.NoError(t, err)
	root := doc.Root
	assert.Equal(t, MappingNode, root.Kind)
	assert.Equal(t, MappingTag, root.Tag)
	assert.Equal(t, 2, len(root.Keys))
	assert.Equal(t, "a", root.Keys[0].Value)
	assert.Equal(t, "1", root.Pairs[root.Keys[0]].Value)
	assert.Equal(t, "b", root.Keys[1].Value)
	assert.Equal(t, "2", root.Pairs[root.Keys[1]].Value)

	// Keys and the key set of Pairs are the same set
	assert.Equal(t, len(root.Keys), len(root.Pairs))
	for _, k := range root.Keys {
		if _, ok := root.Pairs[k]; !ok {
			t.Fatalf("key %q missing from Pairs", k.Value)
		}
	}
}

func TestLoadSequence(t *testing.T) {
	doc, err := LoadBytes([]byte("- x\n- y\n"))
	assert.NoError(t, err)
	root := doc.Root
	assert.Equal(t, SequenceNode, root.Kind)
	assert.Equal(t, SequenceTag, root.Tag)
	assert.Equal(t, 2, len(root.Items))
	assert.Equal(t, "x", root.Items[0].Value)
	assert.Equal(t, "y", root.Items[1].Value)
}

// Nodes must appear in document (preorder) position, with the root first.
func TestLoadDocumentOrder(t *testing.T) {
	doc, err := LoadBytes([]byte("a:\n  - b\n  - c: d\n"))
	assert.NoError(t, err)

	var got []string
	for _, n := range doc.Nodes {
		if n.Kind == ScalarNode {
			got = append(got, "scalar:"+n.Value)
		} else {
			got = append(got, n.Kind.String())
		}
	}
	want := []string{
		"mapping",
		"scalar:a",
		"sequence",
		"scalar:b",
		"mapping",
		"scalar:c",
		"scalar:d",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, doc.Root, doc.Nodes[0])
}

// An alias may appear before the anchor it refers to; resolution happens
// after the whole document has been read.
func TestLoadForwardAlias(t *testing.T) {
	doc, err := LoadBytes([]byte("[*a, &a x]\n"))
	assert.NoError(t, err)
	root := doc.Root
	assert.Equal(t, 2, len(root.Items))

	alias := root.Items[0]
	assert.Equal(t, AliasNode, alias.Kind)
	assert.Equal(t, "a", alias.Anchor)
	assert.Equal(t, root.Items[1], alias.Target)
	assert.Equal(t, "x", alias.Resolved().Value)
	assert.Equal(t, root.Items[1], doc.Anchors["a"])
}

func TestLoadAnchoredMapping(t *testing.T) {
	doc, err := LoadBytes([]byte("base: &b\n  x: 1\nref: *b\n"))
	assert.NoError(t, err)
	root := doc.Root
	assert.Equal(t, 2, len(root.Keys))
	base := root.Pairs[root.Keys[0]]
	assert.Equal(t, MappingNode, base.Kind)
	assert.Equal(t, "b", base.Anchor)
	ref := root.Pairs[root.Keys[1]]
	assert.Equal(t, AliasNode, ref.Kind)
	assert.Equal(t, base, ref.Target)
	assert.Equal(t, base, ref.Resolved())
}

func TestLoadUnresolvedAlias(t *testing.T) {
	doc, err := LoadBytes([]byte("- *missing\n"))
	assert.IsNil(t, doc)
	var ua *UnresolvedAliasError
	assert.ErrorAs(t, err, &ua)
	assert.Equal(t, "missing", ua.Anchor)
	assert.Equal(t, 1, ua.Mark.Line)
	assert.ErrorMatches(t, `yaml: line 1, column 3: unknown anchor 'missing' referenced`, err)
}

// When an anchor name is bound twice, the later binding wins for every
// alias in the document, including aliases written before it.
func TestLoadDuplicateAnchorLatestWins(t *testing.T) {
	doc, err := LoadBytes([]byte("- *a\n- &a 1\n- &a 2\n"))
	assert.NoError(t, err)
	items := doc.Root.Items
	assert.Equal(t, "2", items[0].Resolved().Value)
	assert.Equal(t, items[2], doc.Anchors["a"])
}

func TestLoadEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n", "# just a comment\n"} {
		doc, err := LoadBytes([]byte(src))
		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.IsNil(t, doc.Root)
		assert.Equal(t, 0, len(doc.Nodes))
	}
}

func TestLoadMultiDocumentStream(t *testing.T) {
	p := newParser([]byte("one\n---\ntwo\n"))

	doc, err := Load(p)
	assert.NoError(t, err)
	assert.Equal(t, "one", doc.Root.Value)

	doc, err = Load(p)
	assert.NoError(t, err)
	assert.Equal(t, "two", doc.Root.Value)

	// past the last document, loads keep succeeding with empty documents
	doc, err = Load(p)
	assert.NoError(t, err)
	assert.IsNil(t, doc.Root)
}

func TestLoadTagNormalization(t *testing.T) {
	doc, err := LoadBytes([]byte("- plain\n- !!int 5\n- ! odd\n- !local x\n"))
	assert.NoError(t, err)
	items := doc.Root.Items
	assert.Equal(t, ScalarTag, items[0].Tag)
	assert.Equal(t, "!!int", items[1].Tag)
	assert.Equal(t, ScalarTag, items[2].Tag) // "!" normalizes to the default
	assert.Equal(t, "!local", items[3].Tag)
}

// A collection's end mark comes from its own closing event, past the last
// child's extent.
func TestLoadEndMarks(t *testing.T) {
	doc, err := LoadBytes([]byte("[1, 2]\n"))
	assert.NoError(t, err)
	root := doc.Root
	assert.Equal(t, Mark{Index: 6, Line: 1, Column: 7}, root.EndMark)
	last := root.Items[1]
	assert.True(t, last.EndMark.Index < root.EndMark.Index)

	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 1}, doc.StartMark)
	assert.Equal(t, 2, doc.EndMark.Line)
}

func TestLoadStyles(t *testing.T) {
	doc, err := LoadBytes([]byte("- plain\n- 'single'\n- \"double\"\n- |\n  lit\n- [f]\n"))
	assert.NoError(t, err)
	items := doc.Root.Items
	assert.Equal(t, Style(0), items[0].Style)
	assert.Equal(t, SingleQuotedStyle, items[1].Style)
	assert.Equal(t, DoubleQuotedStyle, items[2].Style)
	assert.Equal(t, LiteralStyle, items[3].Style)
	assert.Equal(t, FlowStyle, items[4].Style)
}

func TestLoadReader(t *testing.T) {
	doc, err := LoadReader(strings.NewReader("a: 1\n"))
	assert.NoError(t, err)
	assert.Equal(t, MappingNode, doc.Root.Kind)
}

func TestLoadParserErrorPropagates(t *testing.T) {
	doc, err := LoadBytes([]byte("a: [1, 2\n"))
	assert.IsNil(t, doc)
	var pe *ParserError
	assert.ErrorAs(t, err, &pe)
	assert.ErrorMatches(t, `did not find expected ',' or ']'`, err)
}

// summarize flattens a document into comparable per-node lines.
func summarize(doc *Document) []string {
	out := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		out = append(out, fmt.Sprintf("%s %q tag=%q anchor=%q %v-%v",
			n.Kind, n.Value, n.Tag, n.Anchor, n.StartMark, n.EndMark))
	}
	return out
}

// Two loads of the same input produce structurally identical documents.
func TestLoadDeterministic(t *testing.T) {
	src := []byte("a: &x 1\nb: [*x, {c: d}]\nc: |\n  text\n")
	d1, err := LoadBytes(src)
	assert.NoError(t, err)
	d2, err := LoadBytes(src)
	assert.NoError(t, err)
	if diff := cmp.Diff(summarize(d1), summarize(d2)); diff != "" {
		t.Fatalf("documents differ between loads (-first +second):\n%s", diff)
	}
}

func TestLoadFromScriptedSource(t *testing.T) {
	src := newScriptedSource(
		Event{Type: STREAM_START_EVENT},
		Event{Type: DOCUMENT_START_EVENT},
		Event{Type: SEQUENCE_START_EVENT},
		Event{Type: SCALAR_EVENT, Value: "v", Anchor: "a"},
		Event{Type: ALIAS_EVENT, Anchor: "a"},
		Event{Type: SEQUENCE_END_EVENT},
		Event{Type: DOCUMENT_END_EVENT},
		Event{Type: STREAM_END_EVENT},
	)
	doc, err := Load(src)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Root.Items))
	assert.Equal(t, "v", doc.Root.Items[1].Resolved().Value)
}

func TestLoadSourceErrorPropagates(t *testing.T) {
	src := newScriptedSource(
		Event{Type: STREAM_START_EVENT},
		Event{Type: DOCUMENT_START_EVENT},
	)
	src.errAt = 2
	src.err = fmt.Errorf("transport broke")
	doc, err := Load(src)
	assert.IsNil(t, doc)
	assert.ErrorMatches(t, `transport broke`, err)
}

// A structurally impossible event stream is a defect in the source, not a
// loadable condition: the loader panics instead of returning an error.
func TestLoadMalformedStreamPanics(t *testing.T) {
	src := newScriptedSource(
		Event{Type: STREAM_START_EVENT},
		Event{Type: DOCUMENT_START_EVENT},
		Event{Type: SEQUENCE_END_EVENT},
	)
	assert.PanicMatches(t, `internal error: attempted to load unexpected event`, func() {
		_, _ = Load(src)
	})
}

func TestLoadPastStreamEndPanics(t *testing.T) {
	src := newScriptedSource(
		Event{Type: STREAM_START_EVENT},
		Event{Type: STREAM_END_EVENT},
	)
	doc, err := Load(src)
	assert.NoError(t, err)
	assert.IsNil(t, doc.Root)

	// the scripted source keeps no lookahead, so another load would have
	// to read past the end of the stream
	assert.PanicMatches(t, `internal error: attempted to go past the end of stream`, func() {
		_, _ = Load(src)
	})
}
