// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/yamlkit/doctree"
)

func main() {
	fmt.Println("Example 2: Aliases referring forward to their anchor")

	// The alias *shared appears before &shared is defined. Aliases are
	// resolved after the whole document has been read, so this loads.
	src := `first: *shared
second: &shared
  host: localhost
  port: 8080
`

	doc, err := doctree.LoadBytes([]byte(src))
	if err != nil {
		panic(err)
	}

	first := doc.Root.Pairs[doc.Root.Keys[0]]
	fmt.Printf("first is a %s referring to %q\n", first.Kind, first.Anchor)
	fmt.Printf("resolved: %s defined at %s\n", first.Resolved().Kind, first.Resolved().StartMark)

	// an alias to a missing anchor fails the whole load
	_, err = doctree.LoadBytes([]byte("a: *nowhere\n"))
	fmt.Printf("missing anchor: %v\n", err)
}
