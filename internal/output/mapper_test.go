// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapper_DocPath(t *testing.T) {
	m := Mapper{Root: "/project", OutDir: "autodocu_output"}

	assert.Equal(t,
		filepath.Join("/project", "autodocu_output", "pkg", "util.go.md"),
		m.DocPath("pkg/util.go"))
	assert.Equal(t,
		filepath.Join("/project", "autodocu_output", "main.go.md"),
		m.DocPath("main.go"))
}

func TestMapper_Deterministic(t *testing.T) {
	m := Mapper{Root: "/project", OutDir: "docs"}
	assert.Equal(t, m.DocPath("a/b.go"), m.DocPath("a/b.go"))
}

// Distinct source paths must never share an output path, even when only
// the extension differs.
func TestMapper_Injective(t *testing.T) {
	m := Mapper{Root: "/project", OutDir: "docs"}

	rels := []string{"util.go", "util.py", "a/util.go", "a/b.go", "a_b.go"}
	seen := make(map[string]string)
	for _, rel := range rels {
		p := m.DocPath(rel)
		prev, dup := seen[p]
		assert.False(t, dup, "%s and %s both map to %s", prev, rel, p)
		seen[p] = rel
	}
}

func TestMapper_SourcePath(t *testing.T) {
	m := Mapper{Root: "/project", OutDir: "out"}
	assert.Equal(t,
		filepath.Join("/project", "out", "pkg", "util.go"),
		m.SourcePath("pkg/util.go"))
}

func TestMapper_AuxPath(t *testing.T) {
	m := Mapper{Root: "/project", OutDir: "out"}
	assert.Equal(t, filepath.Join("/project", "out", "README.md"), m.AuxPath("README.md"))
}
