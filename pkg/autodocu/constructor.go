// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-documenter-interface R4;
//
//	docs/ARCHITECTURE § Documenter Interface.
package autodocu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/petar-djukic/autodocu/internal/docu"
	"github.com/petar-djukic/autodocu/internal/llm"
)

const (
	defaultOutDir      = "autodocu_output"
	defaultMaxTokens   = 1024
	defaultTimeout     = 120 * time.Second
	defaultConcurrency = 4
	defaultDepth       = 3
)

// DefaultExcludes are the directory names skipped when Config.Excludes is
// empty. They cover version control, dependency, cache, and virtual
// environment directories.
var DefaultExcludes = []string{".git", "vendor", "node_modules", "testdata", "venv", ".venv", "__pycache__"}

// DefaultExtensions are the source extensions documented when
// Config.Extensions is empty.
var DefaultExtensions = []string{".go", ".py"}

// New validates the config, initializes the backend client, and returns a
// ready-to-use Documenter. It does not touch the source tree; that
// happens in Run or Suggest.
//
// Implements: prd001-documenter-interface R4.1-R4.3.
func New(cfg Config) (Documenter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	client, err := llm.NewClient(context.Background(), llm.ClientConfig{
		ModelID:   cfg.Model,
		Region:    cfg.Region,
		Profile:   cfg.Profile,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	runner := docu.NewRunner(docu.Deps{
		Summarizer: client,
		Config: docu.Config{
			Root:        cfg.Root,
			OutDir:      cfg.OutDir,
			Excludes:    cfg.Excludes,
			Extensions:  cfg.Extensions,
			Concurrency: cfg.Concurrency,
			Depth:       cfg.Depth,
			Clean:       cfg.Clean,
			Git:         cfg.Git,
			NoReadme:    cfg.NoReadme,
		},
	})

	return &documenterAdapter{runner: runner}, nil
}

// documenterAdapter adapts internal/docu.Runner to the public Documenter
// interface.
type documenterAdapter struct {
	runner *docu.Runner
}

func (a *documenterAdapter) Run(ctx context.Context) (*Result, error) {
	return convert(a.runner.Run(ctx))
}

func (a *documenterAdapter) Suggest(ctx context.Context) (*Result, error) {
	return convert(a.runner.Suggest(ctx))
}

// convert maps the internal result and error onto the public types.
func convert(ir *docu.RunResult, err error) (*Result, error) {
	if errors.Is(err, docu.ErrNoFiles) {
		err = ErrNoFiles
	}
	if ir == nil {
		return &Result{}, err
	}
	return &Result{
		Files:      ir.Files,
		Docs:       ir.Docs,
		Succeeded:  ir.Succeeded,
		Skipped:    ir.Skipped,
		TokensUsed: ir.TokensUsed,
	}, err
}

// validateConfig checks that required fields are present.
//
// Implements: prd001-documenter-interface R1.10-R1.12.
func validateConfig(cfg Config) error {
	if cfg.Root == "" {
		return fmt.Errorf("Root is required")
	}
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return fmt.Errorf("Root %q does not exist or is not a directory", cfg.Root)
	}
	if cfg.Model == "" {
		return fmt.Errorf("Model is required")
	}
	if cfg.Region == "" {
		return fmt.Errorf("Region is required")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.OutDir == "" {
		cfg.OutDir = defaultOutDir
	}
	if len(cfg.Excludes) == 0 {
		cfg.Excludes = DefaultExcludes
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Depth == 0 {
		cfg.Depth = defaultDepth
	}
}
