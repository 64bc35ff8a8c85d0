// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yamlkit/doctree"
)

var treeMarks bool

var (
	kindColor   = color.New(color.FgCyan).SprintFunc()
	anchorColor = color.New(color.FgYellow).SprintFunc()
	tagColor    = color.New(color.FgMagenta).SprintFunc()
	markColor   = color.New(color.FgHiBlack).SprintFunc()
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the node tree of every document in the input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		configureColor(out)
		docs, err := loadAll(data)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			if len(docs) > 1 {
				fmt.Fprintf(out, "--- document %d\n", i+1)
			}
			printNode(out, doc.Root, 0)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeMarks, "marks", false, "include source positions")
	rootCmd.AddCommand(treeCmd)
}

func printNode(w io.Writer, n *doctree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s", indent, kindColor(n.Kind.String()))
	if n.Anchor != "" {
		if n.Kind == doctree.AliasNode {
			fmt.Fprintf(w, " %s", anchorColor("*"+n.Anchor))
		} else {
			fmt.Fprintf(w, " %s", anchorColor("&"+n.Anchor))
		}
	}
	if n.Tag != "" {
		fmt.Fprintf(w, " %s", tagColor(n.Tag))
	}
	if n.Kind == doctree.ScalarNode {
		fmt.Fprintf(w, " %q", n.Value)
	}
	if treeMarks {
		fmt.Fprintf(w, " %s", markColor(fmt.Sprintf("[%s]", n.StartMark)))
	}
	fmt.Fprintln(w)

	switch n.Kind {
	case doctree.SequenceNode:
		for _, item := range n.Items {
			printNode(w, item, depth+1)
		}
	case doctree.MappingNode:
		for _, k := range n.Keys {
			printNode(w, k, depth+1)
			printNode(w, n.Pairs[k], depth+2)
		}
	case doctree.AliasNode:
		if t := n.Resolved(); t != nil && treeMarks {
			fmt.Fprintf(w, "%s  %s\n", indent, markColor(fmt.Sprintf("-> %s", t.StartMark)))
		}
	}
}
