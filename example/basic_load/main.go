// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/yamlkit/doctree"
)

func main() {
	fmt.Println("Example 1: Loading a document tree")

	src := `name: app1
version: 1.0.0
tags:
  - stable
  - server
`

	doc, err := doctree.LoadBytes([]byte(src))
	if err != nil {
		panic(err)
	}

	root := doc.Root
	fmt.Printf("root: %s with %d keys\n", root.Kind, len(root.Keys))
	for _, k := range root.Keys {
		v := doc.Root.Pairs[k]
		fmt.Printf("  %s (%s, %s)\n", k.Value, v.Kind, v.Tag)
	}

	// every node, in document order
	for i, n := range doc.Nodes {
		fmt.Printf("node %d: %s at %s\n", i, n.Kind, n.StartMark)
	}
}
