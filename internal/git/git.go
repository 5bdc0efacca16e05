// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git commits generated documentation and reverts autodocu
// commits.
// Implements: prd008-git-integration R1, R2, R3;
//
//	docs/ARCHITECTURE § Git Integration.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "autodocu"
	authorEmail = "noreply@autodocu"

	// generatedTrailer marks commits made by autodocu so Undo can
	// recognize them.
	generatedTrailer = "Generated-by: autodocu"
)

// ErrNoGit is returned when the working directory is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// ErrNotAutodocuCommit is returned when undo targets a commit not made by
// autodocu.
var ErrNotAutodocuCommit = errors.New("not an autodocu commit")

// Config configures git integration behavior.
type Config struct {
	WorkDir string // Repository working directory
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens an existing git repository at the configured work directory.
// Returns ErrNoGit if the directory is not a git repository; callers
// treat that as "git integration disabled", not as a failure.
//
// Implements: prd008-git-integration R1.1.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpen(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged) outside the ignored directory. Pass an
// empty ignoreDir to consider the whole tree. Commit sweeps the index,
// so unrelated staged changes would end up inside the documentation
// commit; callers use this to refuse that.
func (r *Repo) IsDirty(ignoreDir string) (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	prefix := ""
	if ignoreDir != "" {
		prefix = strings.TrimSuffix(filepath.ToSlash(ignoreDir), "/") + "/"
	}
	for path, fs := range status {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			continue
		}
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// CommitDocs stages the output directory and commits it with a generated
// message carrying the autodocu trailer.
//
// Implements: prd008-git-integration R2.1-R2.4.
func (r *Repo) CommitDocs(outDir string, docCount int) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if _, err := wt.Add(outDir); err != nil {
		return fmt.Errorf("staging %s: %w", outDir, err)
	}

	_, err = wt.Commit(BuildMessage(outDir, docCount), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("committing documentation: %w", err)
	}

	return nil
}

// Undo reverts the last commit if it was made by autodocu (identified by
// the trailer). Uses a soft reset so the generated files stay on disk.
//
// Implements: prd008-git-integration R3.1-R3.4.
func (r *Repo) Undo() error {
	ours, err := r.IsAutodocuCommit()
	if err != nil {
		return err
	}
	if !ours {
		return ErrNotAutodocuCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("getting commit: %w", err)
	}

	if commit.NumParents() == 0 {
		return fmt.Errorf("cannot undo: HEAD is the initial commit")
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return fmt.Errorf("getting parent commit: %w", err)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	err = wt.Reset(&gogit.ResetOptions{
		Commit: parent.Hash,
		Mode:   gogit.SoftReset,
	})
	if err != nil {
		return fmt.Errorf("resetting to parent: %w", err)
	}

	return nil
}

// IsAutodocuCommit checks whether the HEAD commit was made by autodocu
// by looking for the trailer.
func (r *Repo) IsAutodocuCommit() (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("getting commit: %w", err)
	}

	return strings.Contains(commit.Message, generatedTrailer), nil
}

// BuildMessage creates the documentation commit message.
func BuildMessage(outDir string, docCount int) string {
	subject := fmt.Sprintf("docs: regenerate %s (%d documents)", outDir, docCount)
	return subject + "\n\n" + generatedTrailer
}
