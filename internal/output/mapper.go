// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output computes destination paths under the output directory and
// writes documents atomically.
// Implements: prd004-output-layer R1 (Path Mapper), R2 (Writer);
//
//	docs/ARCHITECTURE § Output Layer.
package output

import "path/filepath"

// docExt is the extension appended to generated documentation files.
const docExt = ".md"

// Mapper computes output paths that mirror the source layout under the
// output directory. Same inputs always yield the same path, and distinct
// source paths never collide: the source extension stays in the name, so
// util.go and util.py map to util.go.md and util.py.md.
type Mapper struct {
	Root   string // Project root
	OutDir string // Output directory name, relative to the root
}

// OutRoot returns the absolute output directory.
func (m Mapper) OutRoot() string {
	return filepath.Join(m.Root, m.OutDir)
}

// DocPath maps a relative source path to its documentation file.
//
// Implements: prd004-output-layer R1.1-R1.3.
func (m Mapper) DocPath(rel string) string {
	return filepath.Join(m.OutRoot(), filepath.FromSlash(rel)+docExt)
}

// SourcePath maps a relative source path to its regenerated copy under the
// output directory, keeping the source extension. Used by suggest mode.
func (m Mapper) SourcePath(rel string) string {
	return filepath.Join(m.OutRoot(), filepath.FromSlash(rel))
}

// AuxPath maps a run-level document name (structure.md, README.md) into
// the output directory root.
func (m Mapper) AuxPath(name string) string {
	return filepath.Join(m.OutRoot(), name)
}
