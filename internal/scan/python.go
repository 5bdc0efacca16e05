// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-scanner R3 (Python docstring detection);
//
//	docs/ARCHITECTURE § Source Scanner.
package scan

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// pyFuncQuery captures every function definition together with its body,
// including methods and nested functions.
const pyFuncQuery = `(function_definition name: (identifier) @name body: (block) @body) @def`

// ScanPythonSource parses Python source with tree-sitter and returns every
// function definition whose body does not start with a string expression.
// A Python definition counts as documented when the first statement of its
// body is a string literal (the docstring).
//
// Implements: prd002-source-scanner R3.1-R3.4.
func ScanPythonSource(ctx context.Context, filename string, src []byte) ([]types.Finding, error) {
	lang := python.GetLanguage()

	root, err := sitter.ParseCtx(ctx, src, lang)
	if err != nil || root == nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, filename, err)
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s: invalid syntax", ErrParse, filename)
	}

	q, err := sitter.NewQuery([]byte(pyFuncQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var findings []types.Finding
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		var def, body *sitter.Node
		var name string
		for _, c := range m.Captures {
			switch q.CaptureNameForId(c.Index) {
			case "def":
				def = c.Node
			case "body":
				body = c.Node
			case "name":
				name = c.Node.Content(src)
			}
		}
		if def == nil || body == nil || name == "" {
			continue
		}
		if hasDocstring(body) {
			continue
		}
		findings = append(findings, types.Finding{
			Name:    name,
			Line:    int(def.StartPoint().Row) + 1,
			EndLine: int(def.EndPoint().Row) + 1,
		})
	}

	// Query matches arrive per pattern, not strictly by position; order by
	// source line to honor the source-order contract.
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Line < findings[j].Line })

	return findings, nil
}

// hasDocstring reports whether the first statement of a block is a string
// expression.
func hasDocstring(body *sitter.Node) bool {
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return false
	}
	expr := first.NamedChild(0)
	if expr == nil {
		return false
	}
	switch expr.Type() {
	case "string", "concatenated_string":
		return true
	}
	return false
}
