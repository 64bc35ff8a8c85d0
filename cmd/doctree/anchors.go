// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yamlkit/doctree"
)

var anchorsCmd = &cobra.Command{
	Use:   "anchors [file]",
	Short: "List anchors and the aliases referring to them",
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
			refs := make(map[string]int)
			for _, n := range doc.Nodes {
				if n.Kind == doctree.AliasNode {
					refs[n.Anchor]++
				}
			}
			names := make([]string, 0, len(doc.Anchors))
			for name := range doc.Anchors {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				n := doc.Anchors[name]
				fmt.Fprintf(out, "%s %s %s, %d reference(s)\n",
					anchorColor("&"+name), kindColor(n.Kind.String()),
					markColor(n.StartMark.String()), refs[name])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(anchorsCmd)
}
