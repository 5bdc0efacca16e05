// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fix inserts suggested documentation comments into Go source.
// Implements: prd007-docfix R1 (comment insertion), R2 (normalization);
//
//	docs/ARCHITECTURE § Docstring Suggestions.
package fix

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

// Key identifies a function for doc insertion. Methods are keyed by
// receiver type and name, plain functions by name alone.
func Key(receiver, name string) string {
	if receiver == "" {
		return name
	}
	return receiver + "." + name
}

// insertion is one pending doc comment, anchored at the declaration line.
type insertion struct {
	line   int
	indent string
	doc    string
}

// InsertDocComments attaches the given doc comments to the matching
// undocumented function declarations and returns the gofmt-formatted
// result. Declarations that already carry a doc comment are left alone.
// Keys with no matching declaration are ignored.
//
// Implements: prd007-docfix R1.1-R1.4.
func InsertDocComments(filename string, src []byte, docs map[string]string) ([]byte, error) {
	if len(docs) == 0 {
		return src, nil
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	lines := strings.Split(string(src), "\n")

	var pending []insertion
	astutil.Apply(file, func(c *astutil.Cursor) bool {
		fn, ok := c.Node().(*ast.FuncDecl)
		if !ok {
			return true
		}
		if fn.Doc != nil && len(fn.Doc.List) > 0 {
			return true
		}

		doc, ok := docs[Key(declReceiver(fn), fn.Name.Name)]
		if !ok || strings.TrimSpace(doc) == "" {
			return true
		}

		line := fset.Position(fn.Pos()).Line
		pending = append(pending, insertion{
			line:   line,
			indent: leadingWhitespace(lines, line),
			doc:    doc,
		})
		return true
	}, nil)

	if len(pending) == 0 {
		return src, nil
	}

	// Insert bottom-up so earlier line numbers stay valid.
	sort.Slice(pending, func(i, j int) bool { return pending[i].line > pending[j].line })

	for _, ins := range pending {
		comment := NormalizeDoc(ins.doc)
		var block []string
		for _, l := range strings.Split(comment, "\n") {
			block = append(block, ins.indent+l)
		}
		idx := ins.line - 1
		lines = append(lines[:idx], append(block, lines[idx:]...)...)
	}

	out, err := format.Source([]byte(strings.Join(lines, "\n")))
	if err != nil {
		return nil, fmt.Errorf("formatting %s after insertion: %w", filename, err)
	}
	return out, nil
}

// NormalizeDoc converts backend-suggested text into Go comment lines.
// Stray comment markers and docstring quotes from the suggestion are
// stripped before the "// " prefix is applied.
//
// Implements: prd007-docfix R2.1-R2.3.
func NormalizeDoc(doc string) string {
	doc = strings.TrimSpace(doc)
	doc = strings.Trim(doc, `"'`)

	var out []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "///")
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "#")
		line = strings.TrimSpace(line)
		if line == "" && len(out) == 0 {
			continue
		}
		if line == "" {
			out = append(out, "//")
			continue
		}
		out = append(out, "// "+line)
	}
	// Drop trailing blank comment lines.
	for len(out) > 0 && out[len(out)-1] == "//" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "//"
	}
	return strings.Join(out, "\n")
}

// declReceiver mirrors the scanner's receiver naming so keys line up.
func declReceiver(fn *ast.FuncDecl) string {
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

// leadingWhitespace returns the indentation of the given 1-based line.
func leadingWhitespace(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}
