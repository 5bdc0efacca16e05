// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-output-layer R2.1-R2.4.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFilesystem indicates a document could not be written. Callers treat
// this as skip-this-file, never as a fatal condition.
var ErrFilesystem = errors.New("filesystem failure")

// WriteDoc writes a document to disk, creating any missing intermediate
// directories. It uses an atomic write strategy: write to a temp file in
// the destination directory, then rename. This prevents readers from
// observing partial documents.
func WriteDoc(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrFilesystem, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".autodocu-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrFilesystem, err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error.
	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing temp file: %v", ErrFilesystem, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrFilesystem, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: setting permissions: %v", ErrFilesystem, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: renaming temp file to %s: %v", ErrFilesystem, path, err)
	}

	success = true
	return nil
}
