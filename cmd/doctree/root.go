// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yamlkit/doctree"
)

var (
	// Global flags
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "doctree",
	Short: "Inspect YAML documents as loaded node trees",
	Long: `Doctree loads YAML text into a document tree and shows what the loader
saw: the node tree with tags, anchors and positions, the underlying event
stream, and the document's anchor table.

Input is read from a file argument, or from stdin when no file is given.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")
}

// configureColor applies the --color flag against the output writer. In
// auto mode color is enabled only for terminals.
func configureColor(w io.Writer) {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		f, ok := w.(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	}
}

// readInput returns the YAML text named by args, or stdin when empty.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// loadAll loads every document of a stream. An empty load (nil root) marks
// the end of the stream.
func loadAll(data []byte) ([]*doctree.Document, error) {
	src := doctree.NewEventSource(data)
	var docs []*doctree.Document
	for {
		doc, err := doctree.Load(src)
		if err != nil {
			return nil, err
		}
		if doc.Root == nil {
			return docs, nil
		}
		docs = append(docs, doc)
	}
}
