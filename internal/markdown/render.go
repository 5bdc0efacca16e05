// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-markdown-output R2;
//
//	docs/ARCHITECTURE § Markdown Output.
package markdown

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// Document holds the pieces assembled into one output file.
type Document struct {
	Path      string          // Source path relative to the project root
	Summary   string          // High-level description from the backend
	Processes string          // Call-flow description from the backend, optional
	Findings  []types.Finding // Definitions missing documentation
}

// Render produces the final Markdown text for one source file: the backend
// summary followed by the listing of undocumented definitions.
//
// Implements: prd003-markdown-output R2.1-R2.4.
func Render(doc Document) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# %s\n\n", doc.Path)

	buf.WriteString("## Summary\n\n")
	buf.WriteString(strings.TrimSpace(doc.Summary))
	buf.WriteString("\n")

	if p := strings.TrimSpace(doc.Processes); p != "" {
		buf.WriteString("\n## Processes\n\n")
		buf.WriteString(p)
		buf.WriteString("\n")
	}

	buf.WriteString("\n## Undocumented functions\n\n")
	if len(doc.Findings) == 0 {
		buf.WriteString("All functions are documented.\n")
		return buf.String()
	}
	for _, f := range doc.Findings {
		name := f.Name
		if f.Receiver != "" {
			name = f.Receiver + "." + f.Name
		}
		fmt.Fprintf(&buf, "- `%s` (line %d) is missing a docstring\n", name, f.Line)
	}
	return buf.String()
}

// RenderSummaryIndex concatenates the per-file summaries into the codebase
// summary document, with the holistic directory summary on top when the
// backend produced one.
func RenderSummaryIndex(directorySummary string, reports []types.FileReport) string {
	var buf strings.Builder

	buf.WriteString("# Codebase Summary\n\n")

	if s := strings.TrimSpace(directorySummary); s != "" {
		buf.WriteString(s)
		buf.WriteString("\n\n")
	}

	for _, r := range reports {
		if r.Status != types.StatusOK {
			continue
		}
		fmt.Fprintf(&buf, "### %s\n\n%s\n\n", r.Path, strings.TrimSpace(r.Summary))
	}
	return buf.String()
}
