// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-markdown-output R3;
//
//	docs/ARCHITECTURE § Markdown Output.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// StructureConfig controls the directory description.
type StructureConfig struct {
	Root     string          // Directory to describe (required)
	Excludes map[string]bool // Directory names to omit
	MaxDepth int             // Levels below the root to descend (default 3)
}

// DescribeStructure renders a depth-limited, indented listing of the
// directory tree. Hidden entries and excluded directory names are omitted.
// Entries are sorted, so the description is deterministic.
//
// Implements: prd003-markdown-output R3.1-R3.3.
func DescribeStructure(cfg StructureConfig) (string, error) {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# Directory structure for `%s`\n\n", filepath.Base(absRoot))

	if err := describeDir(&buf, absRoot, 0, maxDepth, cfg.Excludes); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func describeDir(buf *strings.Builder, dir string, depth, maxDepth int, excludes map[string]bool) error {
	if depth > maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			if excludes[name] {
				continue
			}
			fmt.Fprintf(buf, "%s- %s/\n", indent, name)
			if err := describeDir(buf, filepath.Join(dir, name), depth+1, maxDepth, excludes); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(buf, "%s- %s\n", indent, name)
	}
	return nil
}
