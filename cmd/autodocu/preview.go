// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd009-technology-stack R4.10 (preview command).
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newPreviewCmd creates the "preview" command, which renders a generated
// document in the terminal.
func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <document.md>",
		Short: "Render a generated document in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			width, _ := cmd.Flags().GetInt("width")
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("creating renderer: %w", err)
			}

			out, err := renderer.Render(string(data))
			if err != nil {
				return fmt.Errorf("rendering %s: %w", args[0], err)
			}

			cmd.Print(out)
			return nil
		},
	}

	cmd.Flags().Int("width", 100, "Word wrap width")
	return cmd
}
