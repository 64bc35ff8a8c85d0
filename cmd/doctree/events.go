// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamlkit/doctree"
)

var eventsCmd = &cobra.Command{
	Use:   "events [file]",
	Short: "Print the raw event stream the loader consumes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		configureColor(out)
		src := doctree.NewEventSource(data)
		for {
			var e doctree.Event
			if err := src.Next(&e); err != nil {
				return err
			}
			fmt.Fprintf(out, "%-15s %s", kindColor(e.Type.String()), markColor(e.StartMark.String()))
			if e.Anchor != "" {
				fmt.Fprintf(out, " %s", anchorColor(e.Anchor))
			}
			if e.Tag != "" {
				fmt.Fprintf(out, " %s", tagColor(e.Tag))
			}
			if e.Type == doctree.SCALAR_EVENT {
				fmt.Fprintf(out, " %q", e.Value)
			}
			fmt.Fprintln(out)
			if e.Type == doctree.STREAM_END_EVENT {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
