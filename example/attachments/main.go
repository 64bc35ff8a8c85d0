// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/yamlkit/doctree"
)

// annotation is application state hung off a node.
type annotation struct {
	note string
}

func main() {
	fmt.Println("Example 3: Per-node attachments with release callbacks")

	doc, err := doctree.LoadBytes([]byte("a: 1\nb: 2\n"))
	if err != nil {
		panic(err)
	}

	release := func(v any) {
		fmt.Printf("released %v\n", v.(*annotation).note)
	}
	for _, k := range doc.Root.Keys {
		doc.Root.Pairs[k].Attach(&annotation{note: "value of " + k.Value}, release)
	}

	// detaching hands the value back without running the callback
	b := doc.Root.Pairs[doc.Root.Keys[1]]
	kept := b.Detach().(*annotation)
	fmt.Printf("detached %q\n", kept.note)

	// discarding the document releases everything still attached
	doc.Discard()
}
