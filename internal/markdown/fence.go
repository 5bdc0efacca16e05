// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package markdown assembles and cleans the generated documentation text.
// Implements: prd003-markdown-output R1 (Fence Cleaner), R2 (Document
// Rendering), R3 (Structure Description);
//
//	docs/ARCHITECTURE § Markdown Output.
package markdown

import "strings"

// CleanFences removes a wrapping Markdown code fence from the text: one
// leading line of triple backticks (with an optional language tag) paired
// with one trailing line of triple backticks. The enclosed content is not
// altered. Text without a wrapping fence pair is returned unchanged.
//
// Stripping repeats until no wrapping pair remains, so the function is a
// fixpoint: CleanFences(CleanFences(x)) == CleanFences(x).
//
// Implements: prd003-markdown-output R1.1-R1.4.
func CleanFences(text string) string {
	for {
		stripped, changed := stripFencePair(text)
		if !changed {
			return text
		}
		text = stripped
	}
}

// stripFencePair removes one leading/trailing fence pair. Both ends must
// be fence lines; a lone fence at either end is content, not a wrapper.
func stripFencePair(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	last := len(lines) - 1
	for last >= 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if first >= last {
		return text, false
	}

	if !isOpeningFence(lines[first]) || !isClosingFence(lines[last]) {
		return text, false
	}

	kept := lines[first+1 : last]
	return strings.Join(kept, "\n"), true
}

// isOpeningFence matches "```" optionally followed by a language tag.
func isOpeningFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return false
	}
	tag := strings.TrimPrefix(trimmed, "```")
	// A language tag is a single bare word; anything with spaces or more
	// backticks is regular content.
	return !strings.ContainsAny(tag, " \t`")
}

// isClosingFence matches a line that is exactly "```".
func isClosingFence(line string) bool {
	return strings.TrimSpace(line) == "```"
}
