// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docu

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/autodocu/pkg/types"
)

func TestSuggest_InsertsDocComments(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "calc.go", `package calc

func Add(a, b int) int {
	return a + b
}
`)

	summarizer := &fakeSummarizer{reply: "Add returns the sum of a and b."}
	runner := newTestRunner(testConfig(root), summarizer)

	result, err := runner.Suggest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Findings, 1)
	assert.Equal(t, "Add", result.Files[0].Findings[0].Name)

	fixed, err := os.ReadFile(filepath.Join(root, "autodocu_output", "calc.go"))
	require.NoError(t, err)
	assert.Contains(t, string(fixed), "// Add returns the sum of a and b.\nfunc Add(a, b int) int {")

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "calc.go", fixed, parser.ParseComments)
	assert.NoError(t, err)
}

func TestSuggest_FullyDocumentedFileNotRewritten(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "done.go", `package done

// F is already documented.
func F() {}
`)

	summarizer := &fakeSummarizer{}
	runner := newTestRunner(testConfig(root), summarizer)

	result, err := runner.Suggest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, types.StatusOK, result.Files[0].Status)
	assert.Zero(t, summarizer.calls)
	assert.NoFileExists(t, filepath.Join(root, "autodocu_output", "done.go"))
}

func TestSuggest_SkipsNonGoFiles(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "script.py", "def f():\n    pass\n")
	writeFixture(t, root, "code.go", "package code\n\nfunc G() {}\n")

	runner := newTestRunner(testConfig(root), &fakeSummarizer{reply: "G does a thing."})

	result, err := runner.Suggest(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "code.go", result.Files[0].Path)
}

func TestSuggest_BackendFailureSkipsFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "bad.go", "package bad\n\nfunc B() {}\n")
	writeFixture(t, root, "good.go", "package good\n\nfunc G() {}\n")

	summarizer := &fakeSummarizer{failOn: "func B() {}"}
	runner := newTestRunner(testConfig(root), summarizer)

	result, err := runner.Suggest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, types.StatusSkipped, result.Files[0].Status)
	assert.Contains(t, result.Files[0].Error, "suggestion failed for B")
	assert.NoFileExists(t, filepath.Join(root, "autodocu_output", "bad.go"))
}

func TestSuggest_ParseFailureSkipsFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "broken.go", "package x\n\nfunc broken( {\n")

	runner := newTestRunner(testConfig(root), &fakeSummarizer{})

	result, err := runner.Suggest(context.Background())
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.Equal(t, 1, result.Skipped)
}
