// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPythonSource_FlagsUndocumentedOnly(t *testing.T) {
	src := `def documented():
    """Does something."""
    return 1


def undocumented():
    return 2


class Widget:
    def render(self):
        """Renders the widget."""
        pass

    def resize(self):
        pass
`
	findings, err := ScanPythonSource(context.Background(), "sample.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, findings, 2)
	assert.Equal(t, "undocumented", findings[0].Name)
	assert.Equal(t, 6, findings[0].Line)
	assert.Equal(t, "resize", findings[1].Name)
}

func TestScanPythonSource_NestedFunctions(t *testing.T) {
	src := `def outer():
    """Outer is documented."""
    def inner():
        return 1
    return inner
`
	findings, err := ScanPythonSource(context.Background(), "sample.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, "inner", findings[0].Name)
}

func TestScanPythonSource_ConcatenatedDocstring(t *testing.T) {
	src := `def f():
    "part one " "part two"
    return 1
`
	findings, err := ScanPythonSource(context.Background(), "sample.py", []byte(src))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestScanPythonSource_StringNotFirstStatement(t *testing.T) {
	src := `def f():
    x = 1
    "not a docstring"
    return x
`
	findings, err := ScanPythonSource(context.Background(), "sample.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, "f", findings[0].Name)
}

func TestScanPythonSource_ParseError(t *testing.T) {
	_, err := ScanPythonSource(context.Background(), "broken.py", []byte("def broken(:\n"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestScanPythonSource_SourceOrder(t *testing.T) {
	src := `def zeta():
    pass


def alpha():
    pass


def mid():
    pass
`
	findings, err := ScanPythonSource(context.Background(), "sample.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, findings, 3)
	assert.Equal(t, "zeta", findings[0].Name)
	assert.Equal(t, "alpha", findings[1].Name)
	assert.Equal(t, "mid", findings[2].Name)
}
