// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-scanner R2 (Go docstring detection);
//
//	docs/ARCHITECTURE § Source Scanner.
package scan

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// ErrParse indicates the source text is not syntactically valid. Callers
// treat this as skip-this-file, never as a fatal condition.
var ErrParse = errors.New("parse failure")

// ErrUnsupported indicates no scanner exists for the file's extension.
var ErrUnsupported = errors.New("unsupported source language")

// ScanSource dispatches to the language scanner for the file's extension
// and returns the definitions missing documentation, in source order.
//
// Implements: prd002-source-scanner R2.1.
func ScanSource(ctx context.Context, filename string, src []byte) ([]types.Finding, error) {
	switch filepath.Ext(filename) {
	case ".go":
		return ScanGoSource(filename, src)
	case ".py":
		return ScanPythonSource(ctx, filename, src)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
}

// ScanGoSource parses Go source and returns every function and method
// declaration that carries no doc comment. A Go definition counts as
// documented when a non-empty comment group is attached directly above it.
//
// Implements: prd002-source-scanner R2.2-R2.4.
func ScanGoSource(filename string, src []byte) ([]types.Finding, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var findings []types.Finding
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fn.Doc != nil && len(fn.Doc.List) > 0 {
			continue
		}
		findings = append(findings, types.Finding{
			Name:     fn.Name.Name,
			Receiver: receiverType(fn),
			Line:     fset.Position(fn.Pos()).Line,
			EndLine:  fset.Position(fn.End()).Line,
		})
	}
	return findings, nil
}

// receiverType returns the bare receiver type name of a method, or "" for
// plain functions. Pointer receivers are reported without the star.
func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	switch t := fn.Recv.List[0].Type.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
		if idx, ok := t.X.(*ast.IndexExpr); ok {
			if id, ok := idx.X.(*ast.Ident); ok {
				return id.Name
			}
		}
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}
