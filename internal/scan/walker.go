// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan discovers candidate source files and detects definitions
// missing documentation.
// Implements: prd002-source-scanner R1 (File Walker), R2 (Docstring Scanner);
//
//	docs/ARCHITECTURE § Source Scanner.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// WalkConfig controls candidate file discovery.
type WalkConfig struct {
	Root       string   // Project root (required)
	Extensions []string // Source extensions to include, e.g. ".go", ".py"
	Excludes   []string // Directory names skipped at any depth
}

// Walk enumerates candidate source files under the root in lexical order.
// Excluded directory names are never descended into, no matter how deeply
// they are nested. Paths listed in the root's .gitignore are dropped.
//
// The returned order is deterministic: filepath.WalkDir visits entries
// lexically, so repeated runs over the same tree yield the same sequence.
//
// Implements: prd002-source-scanner R1.1-R1.6.
func Walk(cfg WalkConfig) ([]types.SourceFile, error) {
	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}

	excluded := make(map[string]bool, len(cfg.Excludes))
	for _, name := range cfg.Excludes {
		excluded[name] = true
	}

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts[ext] = true
	}

	ignorer := loadGitignore(absRoot)

	var files []types.SourceFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if excluded[d.Name()] && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[filepath.Ext(d.Name())] {
			return nil
		}
		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		if ignorer.isIgnored(relPath) {
			return nil
		}
		files = append(files, types.SourceFile{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	// WalkDir already visits lexically; the sort pins the contract down
	// against platform-specific readdir behavior.
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	return files, nil
}

// gitignorer provides simple .gitignore matching.
type gitignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from the root directory. If no .gitignore
// exists or it cannot be read, returns an ignorer that matches nothing.
func loadGitignore(root string) gitignorer {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return gitignorer{patterns: patterns}
}

// isIgnored checks whether a relative path matches any .gitignore pattern.
// This implements a simplified subset of gitignore: directory prefixes and
// simple glob patterns via filepath.Match.
func (g gitignorer) isIgnored(relPath string) bool {
	for _, pattern := range g.patterns {
		dirPattern := strings.TrimSuffix(pattern, "/")

		parts := strings.Split(relPath, "/")
		for _, part := range parts {
			if matched, _ := filepath.Match(dirPattern, part); matched {
				return true
			}
		}

		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}
