// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd009-technology-stack R4.3-R4.9.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gitpkg "github.com/petar-djukic/autodocu/internal/git"
	"github.com/petar-djukic/autodocu/pkg/autodocu"
	"github.com/petar-djukic/autodocu/pkg/types"
)

// newRunCmd creates the "run" command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <directory>",
		Short: "Document a source tree",
		Long:  "Run walks the directory, summarizes every source file via the model backend, flags undocumented functions, and writes Markdown documentation under the output directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumenter(cmd, args[0], func(ctx context.Context, d autodocu.Documenter) (*autodocu.Result, error) {
				return d.Run(ctx)
			})
		},
	}
}

// newSuggestCmd creates the "suggest" command.
func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <directory>",
		Short: "Suggest doc comments for undocumented Go functions",
		Long:  "Suggest asks the model backend for a doc comment for every undocumented Go function and writes regenerated source copies under the output directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumenter(cmd, args[0], func(ctx context.Context, d autodocu.Documenter) (*autodocu.Result, error) {
				return d.Suggest(ctx)
			})
		},
	}
}

// runDocumenter builds the Documenter from configuration and executes one
// pass, printing the result.
func runDocumenter(cmd *cobra.Command, root string, pass func(context.Context, autodocu.Documenter) (*autodocu.Result, error)) error {
	cfg := autodocu.Config{
		Root:        root,
		OutDir:      viper.GetString("out-dir"),
		Model:       viper.GetString("model"),
		Region:      viper.GetString("region"),
		Profile:     viper.GetString("profile"),
		Excludes:    viper.GetStringSlice("exclude"),
		Extensions:  viper.GetStringSlice("ext"),
		MaxTokens:   viper.GetInt("max-tokens"),
		Timeout:     viper.GetDuration("timeout"),
		Concurrency: viper.GetInt("concurrency"),
		Depth:       viper.GetInt("depth"),
		Clean:       viper.GetBool("clean"),
		Git:         viper.GetBool("git"),
		NoReadme:    viper.GetBool("no-readme"),
	}

	d, err := autodocu.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := pass(ctx, d)
	if result != nil {
		printResult(cmd, result)
	}
	if err != nil {
		return err
	}
	return nil
}

// printResult outputs the result, as JSON when requested, otherwise as a
// per-file table with a totals footer.
func printResult(cmd *cobra.Command, result *autodocu.Result) {
	if viper.GetBool("json") {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
			return
		}
		cmd.Println(string(out))
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Path", "Status", "Undocumented", "Detail"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, f := range result.Files {
		detail := f.DocPath
		if f.Status == types.StatusSkipped {
			detail = f.Error
		}
		table.Append([]string{f.Path, string(f.Status), strconv.Itoa(len(f.Findings)), detail})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d files", len(result.Files)),
		fmt.Sprintf("%d ok / %d skipped", result.Succeeded, result.Skipped),
		"",
		fmt.Sprintf("%d documents", len(result.Docs)),
	})

	table.Render()
	cmd.Printf("Tokens used: %d in / %d out\n", result.TokensUsed.InputTokens, result.TokensUsed.OutputTokens)
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [directory]",
		Short: "Revert the last autodocu commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by autodocu. The repository defaults to the current directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir := "."
			if len(args) == 1 {
				workDir = args[0]
			}

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: workDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			cmd.Println("Successfully reverted last autodocu commit.")
			return nil
		},
	}
}
