// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command autodocu documents a source tree with an LLM backend: it
// summarizes every file, flags undocumented functions, and writes
// Markdown mirroring the source layout.
// Implements: prd009-technology-stack R4.1-R4.12;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "autodocu",
		Short: "LLM-backed source tree documenter",
		Long:  "autodocu walks a source tree, asks a language model to summarize each file, flags functions missing docstrings, and writes Markdown documentation mirroring the source layout.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogger(viper.GetString("log-level"), viper.GetString("log-file"))
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().String("out-dir", "autodocu_output", "Output directory name under the project root")
	rootCmd.PersistentFlags().String("model", "", "Bedrock model ID")
	rootCmd.PersistentFlags().String("region", "", "AWS region for Bedrock")
	rootCmd.PersistentFlags().String("profile", "", "AWS credential profile")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Directory names to exclude at any depth")
	rootCmd.PersistentFlags().StringSlice("ext", nil, "Source extensions to document (default .go,.py)")
	rootCmd.PersistentFlags().Int("max-tokens", 1024, "Maximum tokens per backend response")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request backend timeout (default 2m)")
	rootCmd.PersistentFlags().Int("concurrency", 4, "Parallel file workers")
	rootCmd.PersistentFlags().Int("depth", 3, "Directory structure description depth")
	rootCmd.PersistentFlags().Bool("clean", false, "Remove the output directory before the run")
	rootCmd.PersistentFlags().Bool("git", false, "Commit the output directory after the run")
	rootCmd.PersistentFlags().Bool("no-readme", false, "Skip the generated SUMMARY.md and README.md")
	rootCmd.PersistentFlags().Bool("json", false, "Print the run result as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Log to this file with rotation instead of stderr")

	// Bind flags to viper.
	for _, name := range []string{
		"out-dir", "model", "region", "profile", "exclude", "ext",
		"max-tokens", "timeout", "concurrency", "depth", "clean", "git",
		"no-readme", "json", "log-level", "log-file",
	} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: AUTODOCU_MODEL, AUTODOCU_REGION, etc.
	viper.SetEnvPrefix("AUTODOCU")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".autodocu")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print autodocu version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("autodocu %s\n", version)
		},
	}
}
