// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitpkg "github.com/petar-djukic/autodocu/internal/git"
)

// initRepoWithDocsCommit builds a repository whose HEAD is an autodocu
// documentation commit on top of an initial commit.
func initRepoWithDocsCommit(t *testing.T) (string, *gogit.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	docDir := filepath.Join(dir, "autodocu_output")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "main.go.md"), []byte("# main.go\n"), 0o644))

	docsRepo, err := gitpkg.Open(gitpkg.Config{WorkDir: dir})
	require.NoError(t, err)
	require.NoError(t, docsRepo.CommitDocs("autodocu_output", 1))

	return dir, repo
}

func TestUndoCmd_DirectoryArgument(t *testing.T) {
	dir, repo := initRepoWithDocsCommit(t)

	cmd := newUndoCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "initial commit", commit.Message)
}

func TestUndoCmd_NotARepository(t *testing.T) {
	cmd := newUndoCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir()})

	assert.Error(t, cmd.Execute())
}
