// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package doctree

// Kind identifies the variant of a Node.
type Kind int8

const (
	ScalarNode Kind = 1 + iota
	SequenceNode
	MappingNode
	AliasNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	case AliasNode:
		return "alias"
	}
	return "unknown"
}

// Style describes how a node was presented in the source. The zero value
// means plain (scalars) or block (collections).
type Style uint8

const (
	DoubleQuotedStyle Style = 1 << iota
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle
)

// Default tags assigned to nodes whose source carried no tag, or only the
// non-specific "!" marker.
const (
	ScalarTag   = "tag:yaml.org,2002:str" // The default scalar tag.
	SequenceTag = "tag:yaml.org,2002:seq" // The default sequence tag.
	MappingTag  = "tag:yaml.org,2002:map" // The default mapping tag.
)

// Node is a single element of a loaded document tree.
//
// The Kind field discriminates the variant, and the variant determines which
// payload fields are meaningful:
//
//	Kind      Payload
//	Scalar    Value, Style
//	Sequence  Items, Style
//	Mapping   Keys, Pairs, Style
//	Alias     Target (nil until the document's alias sweep has run)
//
// Tag, StartMark and EndMark are set for every node. Anchor holds the node's
// own binding name, except for alias nodes, where it holds the name of the
// anchor being referenced.
//
// Nodes are owned by their Document and must be treated as immutable after a
// successful load; the attachment slot is the only caller-mutable field.
type Node struct {
	// Kind is the node variant.
	Kind Kind

	// Tag is the node's type tag. Untagged nodes receive the per-kind
	// default (ScalarTag, SequenceTag or MappingTag); alias nodes carry
	// no tag of their own.
	Tag string

	// Anchor is the node's binding name, or the referenced anchor name
	// for alias nodes. Empty when the node is unanchored.
	Anchor string

	// Value is the scalar content (scalar nodes only).
	Value string

	// Style is a presentation hint, never semantic.
	Style Style

	// Items holds the children of a sequence node in document order.
	Items []*Node

	// Keys holds the keys of a mapping node in source order. Pairs maps
	// each key to its value; key identity is by node reference, so Keys
	// is the canonical iteration order.
	Keys  []*Node
	Pairs map[*Node]*Node

	// Target is the node an alias resolves to. It is set exactly once,
	// by the alias sweep at the end of a load, and is never itself an
	// alias node.
	Target *Node

	// StartMark and EndMark bound the node's lexical extent. A
	// collection's EndMark is the position of its own closing event, not
	// of its last child.
	StartMark, EndMark Mark

	attachment any
	release    func(any)
	attached   bool
}

// Resolved follows alias links until it reaches a non-alias node.
// Calling it on a non-alias node returns the node itself. It returns nil
// for an alias whose document has not been successfully loaded.
func (n *Node) Resolved() *Node {
	r := n
	for r != nil && r.Kind == AliasNode {
		r = r.Target
	}
	return r
}

// Attach binds an opaque application value to the node, with an optional
// release callback. If the slot is already occupied, the previous value's
// release callback is invoked before the value is replaced. The callback
// also runs when the owning Document is discarded; in either case it runs
// at most once per attachment.
func (n *Node) Attach(v any, release func(any)) {
	n.releaseAttachment()
	n.attachment = v
	n.release = release
	n.attached = true
}

// Attachment returns the currently attached value, or nil.
func (n *Node) Attachment() any {
	return n.attachment
}

// Detach removes and returns the attached value without invoking its
// release callback; ownership of the value returns to the caller.
func (n *Node) Detach() any {
	v := n.attachment
	n.attachment, n.release, n.attached = nil, nil, false
	return v
}

func (n *Node) releaseAttachment() {
	if n.attached && n.release != nil {
		n.release(n.attachment)
	}
	n.attachment, n.release, n.attached = nil, nil, false
}
