// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llm wraps the AWS Bedrock ConverseStream API behind the
// Summarizer capability used by the orchestrator.
// Implements: prd005-llm-client R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § LLM Client.
package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// maxPromptContent caps the file content embedded into a prompt. Large
// files are truncated rather than rejected.
const maxPromptContent = 8192

// promptData holds the values injected into the prompt templates.
type promptData struct {
	Path     string
	Language string
	Content  string
}

// RenderSystemPrompt renders the fixed system prompt.
//
// Implements: prd005-llm-client R3.1.
func RenderSystemPrompt() (string, error) {
	return renderTemplate("system.tmpl", promptData{})
}

// SummaryPrompt builds the high-level file summary request.
//
// Implements: prd005-llm-client R3.2.
func SummaryPrompt(path, content string) (string, error) {
	return renderTemplate("summary.tmpl", promptData{Path: path, Content: truncate(content, maxPromptContent)})
}

// ProcessPrompt builds the call-flow description request for a file.
func ProcessPrompt(path, content string) (string, error) {
	return renderTemplate("process.tmpl", promptData{Path: path, Content: truncate(content, maxPromptContent)})
}

// DocstringPrompt builds the documentation-comment suggestion request for
// a single function.
func DocstringPrompt(language, funcSource string) (string, error) {
	return renderTemplate("docstring.tmpl", promptData{Language: language, Content: truncate(funcSource, maxPromptContent)})
}

// DirectorySummaryPrompt builds the holistic directory summary request
// from the collected per-file summaries.
func DirectorySummaryPrompt(summaries string) (string, error) {
	return renderTemplate("dirsummary.tmpl", promptData{Content: truncate(summaries, 4*maxPromptContent)})
}

// ReadmePrompt builds the README generation request from the collected
// file descriptions.
func ReadmePrompt(descriptions string) (string, error) {
	return renderTemplate("readme.tmpl", promptData{Content: truncate(descriptions, 4*maxPromptContent)})
}

func renderTemplate(name string, data promptData) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
