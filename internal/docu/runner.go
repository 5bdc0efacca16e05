// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docu implements the documentation run: walk the tree, summarize
// each file, flag undocumented definitions, and write the Markdown output.
// Implements: prd006-orchestrator R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Orchestrator.
package docu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/petar-djukic/autodocu/internal/git"
	"github.com/petar-djukic/autodocu/internal/llm"
	"github.com/petar-djukic/autodocu/internal/markdown"
	"github.com/petar-djukic/autodocu/internal/output"
	"github.com/petar-djukic/autodocu/internal/scan"
	"github.com/petar-djukic/autodocu/pkg/types"
)

const defaultConcurrency = 4

// ErrNoFiles is returned when a run produces no successful documents.
// This is the only per-run failure; everything per-file is a warning.
var ErrNoFiles = errors.New("no files were successfully documented")

// Config holds the orchestrator settings. The public facade validates and
// defaults these before construction.
type Config struct {
	Root        string   // Project root directory
	OutDir      string   // Output directory name under the root
	Excludes    []string // Directory names skipped at any depth
	Extensions  []string // Source extensions to document
	Concurrency int      // Parallel file workers (default 4)
	Depth       int      // Structure description depth
	Clean       bool     // Remove the output directory before the run
	Git         bool     // Commit the output directory after the run
	NoReadme    bool     // Skip the backend-generated SUMMARY.md and README.md
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Summarizer llm.Summarizer
	Config     Config
}

// Runner orchestrates the documentation lifecycle.
type Runner struct {
	deps   Deps
	mapper output.Mapper
}

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/autodocu converts it to the public Result.
type RunResult struct {
	Files      []types.FileReport
	Docs       []string // Written documents, relative to the output root
	Succeeded  int
	Skipped    int
	TokensUsed types.TokenUsage
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	return &Runner{
		deps:   deps,
		mapper: output.Mapper{Root: deps.Config.Root, OutDir: deps.Config.OutDir},
	}
}

// Run executes the full documentation lifecycle: discover files, process
// each one through the summarize-scan-render pipeline, write the
// structure/summary/README epilogue, and optionally commit the output.
//
// Per-file failures are logged and skipped; the run fails only when no
// file succeeds.
//
// Implements: prd006-orchestrator R1.1-R1.6, R3.1-R3.4.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	cfg := r.deps.Config
	result := &RunResult{}

	if cfg.Clean {
		if err := os.RemoveAll(r.mapper.OutRoot()); err != nil {
			return result, fmt.Errorf("cleaning output directory: %w", err)
		}
	}

	files, err := scan.Walk(scan.WalkConfig{
		Root:       cfg.Root,
		Extensions: cfg.Extensions,
		Excludes:   r.excludes(),
	})
	if err != nil {
		return result, fmt.Errorf("walking %s: %w", cfg.Root, err)
	}

	slog.Info("starting run", "root", cfg.Root, "files", len(files))

	result.Files = r.processAll(ctx, files, r.processFile)
	r.tally(result)

	if result.Succeeded > 0 {
		r.writeEpilogue(ctx, result)
		r.commitDocs(result)
	}

	result.TokensUsed = r.deps.Summarizer.Usage()

	if result.Succeeded == 0 {
		return result, ErrNoFiles
	}
	return result, nil
}

// excludes returns the configured exclusion list with the output directory
// appended, so a second run never documents its own output.
func (r *Runner) excludes() []string {
	return append(append([]string{}, r.deps.Config.Excludes...), r.deps.Config.OutDir)
}

// processAll fans the files out to a bounded worker pool and returns the
// reports sorted by path, so the output set and report order stay
// deterministic regardless of scheduling.
//
// Implements: prd006-orchestrator R2.1-R2.3.
func (r *Runner) processAll(ctx context.Context, files []types.SourceFile, process func(context.Context, types.SourceFile) types.FileReport) []types.FileReport {
	concurrency := r.deps.Config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if len(files) == 0 {
		return nil
	}

	jobs := make(chan types.SourceFile, len(files))
	reports := make(chan types.FileReport, len(files))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				reports <- process(ctx, sf)
			}
		}()
	}

	for _, sf := range files {
		jobs <- sf
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(reports)
	}()

	collected := make([]types.FileReport, 0, len(files))
	for rep := range reports {
		collected = append(collected, rep)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].Path < collected[j].Path })
	return collected
}

// processFile runs the per-file pipeline: read, scan, summarize, render,
// clean, write. Any failure turns the file into a skip.
//
// Implements: prd006-orchestrator R3.1-R3.4.
func (r *Runner) processFile(ctx context.Context, sf types.SourceFile) types.FileReport {
	report := types.FileReport{Path: sf.RelPath, Status: types.StatusSkipped}

	content, err := os.ReadFile(sf.AbsPath)
	if err != nil {
		report.Error = fmt.Sprintf("read failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	findings, err := scan.ScanSource(ctx, sf.RelPath, content)
	if err != nil {
		report.Error = fmt.Sprintf("scan failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}
	for i := range findings {
		findings[i].FilePath = sf.RelPath
	}

	summary, err := r.summarize(ctx, llm.SummaryPrompt, sf.RelPath, string(content))
	if err != nil {
		report.Error = fmt.Sprintf("summarize failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	processes, err := r.summarize(ctx, llm.ProcessPrompt, sf.RelPath, string(content))
	if err != nil {
		report.Error = fmt.Sprintf("summarize failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	text := markdown.Render(markdown.Document{
		Path:      sf.RelPath,
		Summary:   summary,
		Processes: processes,
		Findings:  findings,
	})

	docPath := r.mapper.DocPath(sf.RelPath)
	if err := output.WriteDoc(docPath, []byte(text)); err != nil {
		report.Error = fmt.Sprintf("write failed: %v", err)
		slog.Warn("skipping file", "path", sf.RelPath, "reason", report.Error)
		return report
	}

	report.Status = types.StatusOK
	report.DocPath = sf.RelPath + ".md"
	report.Findings = findings
	report.Summary = summary
	slog.Info("documented file", "path", sf.RelPath, "undocumented", len(findings))
	return report
}

// summarize renders a prompt and sends it through the backend, cleaning
// any code fence the model wrapped around its answer.
func (r *Runner) summarize(ctx context.Context, build func(string, string) (string, error), path, content string) (string, error) {
	prompt, err := build(path, content)
	if err != nil {
		return "", err
	}
	text, err := r.deps.Summarizer.Summarize(ctx, prompt)
	if err != nil {
		return "", err
	}
	return markdown.CleanFences(text), nil
}

// writeEpilogue produces the run-level documents: the directory structure
// description, the codebase summary, and the generated README. Each is
// best-effort; a failure is logged and the rest still run.
//
// Implements: prd006-orchestrator R4.1-R4.4.
func (r *Runner) writeEpilogue(ctx context.Context, result *RunResult) {
	cfg := r.deps.Config

	excludes := make(map[string]bool)
	for _, name := range r.excludes() {
		excludes[name] = true
	}

	structure, err := markdown.DescribeStructure(markdown.StructureConfig{
		Root:     cfg.Root,
		Excludes: excludes,
		MaxDepth: cfg.Depth,
	})
	if err != nil {
		slog.Warn("structure description failed", "error", err)
	} else if err := r.writeAux(result, "structure.md", structure); err != nil {
		slog.Warn("writing structure.md failed", "error", err)
		structure = ""
	}

	if cfg.NoReadme {
		return
	}

	combined := combineSummaries(result.Files)

	dirSummary := ""
	if prompt, err := llm.DirectorySummaryPrompt(combined); err == nil {
		if text, err := r.deps.Summarizer.Summarize(ctx, prompt); err != nil {
			slog.Warn("directory summary failed", "error", err)
		} else {
			dirSummary = markdown.CleanFences(text)
		}
	}

	index := markdown.RenderSummaryIndex(dirSummary, result.Files)
	if err := r.writeAux(result, "SUMMARY.md", index); err != nil {
		slog.Warn("writing SUMMARY.md failed", "error", err)
	}

	if prompt, err := llm.ReadmePrompt(structure + "\n\n" + index); err == nil {
		if text, err := r.deps.Summarizer.Summarize(ctx, prompt); err != nil {
			slog.Warn("README generation failed", "error", err)
		} else if err := r.writeAux(result, "README.md", markdown.CleanFences(text)); err != nil {
			slog.Warn("writing README.md failed", "error", err)
		}
	}
}

// writeAux writes a run-level document into the output root and records it.
func (r *Runner) writeAux(result *RunResult, name, text string) error {
	if err := output.WriteDoc(r.mapper.AuxPath(name), []byte(text)); err != nil {
		return err
	}
	result.Docs = append(result.Docs, name)
	return nil
}

// commitDocs commits the output directory when git integration is on.
// A missing repository disables the feature silently. Unrelated
// uncommitted changes skip the commit: Commit would sweep the whole
// index, and the documentation commit must carry documentation only.
func (r *Runner) commitDocs(result *RunResult) {
	cfg := r.deps.Config
	if !cfg.Git {
		return
	}

	repo, err := git.Open(git.Config{WorkDir: cfg.Root})
	if err != nil {
		slog.Warn("git integration disabled", "error", err)
		return
	}

	dirty, err := repo.IsDirty(cfg.OutDir)
	if err != nil {
		slog.Warn("git status check failed", "error", err)
		return
	}
	if dirty {
		slog.Warn("skipping auto-commit: working tree has unrelated uncommitted changes", "outdir", cfg.OutDir)
		return
	}

	if err := repo.CommitDocs(cfg.OutDir, len(result.Docs)); err != nil {
		slog.Warn("committing documentation failed", "error", err)
	}
}

// tally counts successes and skips and records the written documents.
func (r *Runner) tally(result *RunResult) {
	for _, rep := range result.Files {
		switch rep.Status {
		case types.StatusOK:
			result.Succeeded++
			if rep.DocPath != "" {
				result.Docs = append(result.Docs, rep.DocPath)
			}
		default:
			result.Skipped++
		}
	}
}

// combineSummaries concatenates the per-file summaries for the directory
// level prompts.
func combineSummaries(reports []types.FileReport) string {
	var buf strings.Builder
	for _, rep := range reports {
		if rep.Status != types.StatusOK {
			continue
		}
		fmt.Fprintf(&buf, "### %s\n%s\n\n", rep.Path, strings.TrimSpace(rep.Summary))
	}
	return buf.String()
}
