// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSystemPrompt(t *testing.T) {
	system, err := RenderSystemPrompt()
	require.NoError(t, err)
	assert.NotEmpty(t, system)
	assert.Contains(t, system, "code fence")
}

func TestSummaryPrompt(t *testing.T) {
	prompt, err := SummaryPrompt("pkg/util.go", "package util\n\nfunc F() {}\n")
	require.NoError(t, err)

	assert.Contains(t, prompt, "pkg/util.go")
	assert.Contains(t, prompt, "func F() {}")
}

func TestSummaryPrompt_TruncatesLargeContent(t *testing.T) {
	content := strings.Repeat("é", maxPromptContent)

	prompt, err := SummaryPrompt("big.go", content)
	require.NoError(t, err)

	assert.Less(t, len(prompt), len(content)+1024)
	assert.True(t, utf8.ValidString(prompt))
}

func TestProcessPrompt(t *testing.T) {
	prompt, err := ProcessPrompt("cmd/main.go", "package main\n")
	require.NoError(t, err)

	assert.Contains(t, prompt, "cmd/main.go")
	assert.Contains(t, prompt, "package main")
}

func TestDocstringPrompt(t *testing.T) {
	prompt, err := DocstringPrompt("Go", "func Add(a, b int) int { return a + b }")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Go")
	assert.Contains(t, prompt, "func Add")
}

func TestDirectorySummaryPrompt(t *testing.T) {
	prompt, err := DirectorySummaryPrompt("- a.go: parses input\n- b.go: writes output\n")
	require.NoError(t, err)

	assert.Contains(t, prompt, "a.go: parses input")
	assert.Contains(t, prompt, "b.go: writes output")
}

func TestReadmePrompt(t *testing.T) {
	prompt, err := ReadmePrompt("- main.go: entry point\n")
	require.NoError(t, err)
	assert.Contains(t, prompt, "main.go: entry point")
}

func TestTruncate_RuneSafe(t *testing.T) {
	s := "héllo"
	for n := 0; n <= len(s); n++ {
		assert.True(t, utf8.ValidString(truncate(s, n)), "n=%d", n)
	}
	assert.Equal(t, s, truncate(s, len(s)))
	assert.Equal(t, "h", truncate(s, 2)) // cutting mid-rune backs up
}
