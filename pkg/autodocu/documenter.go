// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package autodocu defines the public interface for autodocu, an
// LLM-backed source tree documenter.
// Implements: prd001-documenter-interface R1, R2, R3, R5;
//
//	docs/ARCHITECTURE § Documenter Interface.
package autodocu

import (
	"context"
	"errors"
	"time"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// Error types for the Documenter API.
//
// Implements: prd001-documenter-interface R5.1-R5.4.
var (
	// ErrInvalidConfig is fatal: it aborts the run before any file is
	// processed.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrBackend indicates the backend client could not be initialized.
	ErrBackend = errors.New("backend initialization failed")
	// ErrNoFiles indicates the run finished with zero successful
	// documents.
	ErrNoFiles = errors.New("no files were successfully documented")
)

// Config configures a Documenter instance.
//
// Implements: prd001-documenter-interface R1.1-R1.12.
type Config struct {
	Root        string        // Project root directory (required)
	OutDir      string        // Output directory name under the root (default "autodocu_output")
	Model       string        // Bedrock model ID (required)
	Region      string        // AWS region (required)
	Profile     string        // AWS credential profile (optional)
	Excludes    []string      // Directory names skipped at any depth (default .git, vendor, ...)
	Extensions  []string      // Source extensions to document (default .go, .py)
	MaxTokens   int           // Maximum tokens per backend response (default 1024)
	Timeout     time.Duration // Per-request backend timeout (default 120s)
	Concurrency int           // Parallel file workers (default 4)
	Depth       int           // Structure description depth (default 3)
	Clean       bool          // Remove the output directory before the run
	Git         bool          // Commit the output directory after the run
	NoReadme    bool          // Skip the backend-generated SUMMARY.md and README.md
}

// Result holds the outcome of a Documenter invocation.
//
// Implements: prd001-documenter-interface R3.1-R3.5.
type Result struct {
	Files      []types.FileReport `json:"files"`       // Per-file outcomes, sorted by path
	Docs       []string           `json:"docs"`        // Documents written, relative to the output root
	Succeeded  int                `json:"succeeded"`   // Files documented
	Skipped    int                `json:"skipped"`     // Files skipped with a warning
	TokensUsed types.TokenUsage   `json:"tokens_used"` // Total tokens consumed
}

// Documenter runs documentation passes over a source tree.
//
// Implements: prd001-documenter-interface R2.1-R2.3.
type Documenter interface {
	// Run walks the tree, summarizes every candidate file, flags
	// undocumented definitions, and writes Markdown documentation
	// mirroring the source layout under the output directory.
	Run(ctx context.Context) (*Result, error)

	// Suggest asks the backend for doc comments for every undocumented
	// Go function and writes regenerated copies under the output
	// directory.
	Suggest(ctx context.Context) (*Result, error)
}
