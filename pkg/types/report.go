// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared value types exchanged between the
// autodocu packages.
// Implements: prd001-documenter-interface R3, prd002-source-scanner R2;
//
//	docs/ARCHITECTURE § Data Model.
package types

// TokenUsage tracks cumulative input and output tokens across LLM calls.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates another usage record into this one.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// SourceFile is one candidate file discovered by the directory walk.
// It is immutable and discarded after the file has been processed.
type SourceFile struct {
	AbsPath string // Absolute path on disk
	RelPath string // Path relative to the project root, slash-separated
}

// Finding identifies a function or method definition that lacks
// documentation. Findings are ordered by source position.
type Finding struct {
	Name     string `json:"name"`               // Function or method name
	Receiver string `json:"receiver,omitempty"` // Receiver type for Go methods
	Line     int    `json:"line"`               // 1-based line of the definition
	EndLine  int    `json:"end_line,omitempty"` // 1-based last line of the definition
	FilePath string `json:"file,omitempty"`     // Enclosing file, relative to the root
}

// FileStatus describes the outcome of processing one source file.
type FileStatus string

const (
	StatusOK      FileStatus = "ok"
	StatusSkipped FileStatus = "skipped"
)

// FileReport records what happened to one source file during a run.
type FileReport struct {
	Path     string     `json:"path"`               // Relative source path
	Status   FileStatus `json:"status"`             // ok or skipped
	DocPath  string     `json:"doc,omitempty"`      // Written document, relative to the root
	Findings []Finding  `json:"findings,omitempty"` // Undocumented definitions
	Summary  string     `json:"-"`                  // Backend summary, kept for the run epilogue
	Error    string     `json:"error,omitempty"`    // Skip reason
}

// StreamResponse holds the accumulated result of one streamed backend call.
type StreamResponse struct {
	FullText string
	Usage    TokenUsage
	Retries  int
}
