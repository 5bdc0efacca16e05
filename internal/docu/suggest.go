// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-orchestrator R5 (suggest mode);
//
//	docs/ARCHITECTURE § Docstring Suggestions.
package docu

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/petar-djukic/autodocu/internal/fix"
	"github.com/petar-djukic/autodocu/internal/llm"
	"github.com/petar-djukic/autodocu/internal/markdown"
	"github.com/petar-djukic/autodocu/internal/output"
	"github.com/petar-djukic/autodocu/internal/scan"
	"github.com/petar-djukic/autodocu/pkg/types"
)

// Suggest walks the tree and, for every Go file with undocumented
// functions, asks the backend for doc comments, inserts them, and writes
// the regenerated copy under the output directory. Files whose functions
// are all documented are reported but not rewritten.
//
// The same skip-and-continue policy as Run applies: parse or backend
// failures skip the file, and the run fails only when nothing succeeds.
//
// Implements: prd006-orchestrator R5.1-R5.5.
func (r *Runner) Suggest(ctx context.Context) (*RunResult, error) {
	cfg := r.deps.Config
	result := &RunResult{}

	// Suggestion rewrites Go source only; other languages have no
	// comment inserter.
	files, err := scan.Walk(scan.WalkConfig{
		Root:       cfg.Root,
		Extensions: []string{".go"},
		Excludes:   r.excludes(),
	})
	if err != nil {
		return result, fmt.Errorf("walking %s: %w", cfg.Root, err)
	}

	slog.Info("starting suggest run", "root", cfg.Root, "files", len(files))

	result.Files = r.processAll(ctx, files, r.suggestFile)
	r.tally(result)

	result.TokensUsed = r.deps.Summarizer.Usage()

	if result.Succeeded == 0 {
		return result, ErrNoFiles
	}
	return result, nil
}

// suggestFile handles one Go file: scan, request a doc comment per
// undocumented function, insert, write the copy.
func (r *Runner) suggestFile(ctx context.Context, sf types.SourceFile) types.FileReport {
	report := types.FileReport{Path: sf.RelPath, Status: types.StatusSkipped}

	content, err := os.ReadFile(sf.AbsPath)
	if err != nil {
		report.Error = fmt.Sprintf("read failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	findings, err := scan.ScanGoSource(sf.RelPath, content)
	if err != nil {
		report.Error = fmt.Sprintf("scan failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	if len(findings) == 0 {
		report.Status = types.StatusOK
		slog.Info("all functions documented", "path", sf.RelPath)
		return report
	}

	lines := strings.Split(string(content), "\n")
	docs := make(map[string]string, len(findings))
	for i := range findings {
		findings[i].FilePath = sf.RelPath

		snippet := functionSource(lines, findings[i])
		prompt, err := llm.DocstringPrompt("Go", snippet)
		if err != nil {
			report.Error = fmt.Sprintf("building prompt: %v", err)
			slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
			return report
		}

		text, err := r.deps.Summarizer.Summarize(ctx, prompt)
		if err != nil {
			report.Error = fmt.Sprintf("suggestion failed for %s: %v", findings[i].Name, err)
			slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
			return report
		}

		docs[fix.Key(findings[i].Receiver, findings[i].Name)] = markdown.CleanFences(text)
	}

	fixed, err := fix.InsertDocComments(sf.RelPath, content, docs)
	if err != nil {
		report.Error = fmt.Sprintf("inserting doc comments: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	destPath := r.mapper.SourcePath(sf.RelPath)
	if err := output.WriteDoc(destPath, fixed); err != nil {
		report.Error = fmt.Sprintf("write failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	report.Status = types.StatusOK
	report.DocPath = sf.RelPath
	report.Findings = findings
	slog.Info("suggested doc comments", "path", sf.RelPath, "functions", len(findings))
	return report
}

// functionSource returns the source lines of one definition.
func functionSource(lines []string, f types.Finding) string {
	start := f.Line - 1
	end := f.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) || end <= start {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
