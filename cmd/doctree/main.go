// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Doctree inspects YAML documents as loaded node trees.
//
// Usage:
//
//	# Print the node tree of a file
//	doctree tree config.yaml
//
//	# Read from stdin
//	cat config.yaml | doctree tree
//
//	# Show the raw event stream the loader consumes
//	doctree events config.yaml
//
//	# List anchors and the aliases referring to them
//	doctree anchors config.yaml
//
//	# Show version information
//	doctree version
package main

func main() {
	Execute()
}
