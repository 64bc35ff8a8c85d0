// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package doctree

// Document is the root aggregate of one loaded YAML document.
//
// A Document exclusively owns every node created while loading it, through
// Nodes. Root, Anchors and the structural links between nodes (Items, Keys,
// Pairs, Target) are non-owning references into that same set; discarding
// the Document invalidates all of them.
type Document struct {
	// Nodes lists every node of the document, alias nodes included, in
	// document (textual) order.
	Nodes []*Node

	// Anchors maps each anchor name to the node bound to it. Anchors are
	// unique in a well-formed document; when a name is bound twice the
	// most recent definition wins.
	Anchors map[string]*Node

	// Root is the top-level node, or nil for an empty load.
	Root *Node

	// StartMark and EndMark bound the document, as reported by the
	// document start and end events.
	StartMark, EndMark Mark
}

// Discard releases every node's attachment slot and clears the document.
// Each attachment's release callback runs at most once. The document and
// its nodes must not be used afterwards.
func (d *Document) Discard() {
	for _, n := range d.Nodes {
		n.releaseAttachment()
	}
	d.Nodes = nil
	d.Anchors = nil
	d.Root = nil
}
