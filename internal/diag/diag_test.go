package diag

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginanjarn/cmaketools/parser"
)

func TestRender(t *testing.T) {
	color.NoColor = true

	source := "project(demo)\nfoo("
	_, err := parser.Parse(source)
	require.Error(t, err)
	syntaxErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)

	got := Render("CMakeLists.txt", source, syntaxErr)

	want := `error: expected ')' to close argument list
 --> CMakeLists.txt:2:5
  |
2 | foo(
  |     ^ expected ')' to close argument list
`
	assert.Equal(t, want, got)
}

func TestRenderRowOutOfRange(t *testing.T) {
	color.NoColor = true

	syntaxErr := &parser.SyntaxError{Pos: parser.TextPos{Row: 99, Col: 1}, Msg: "unexpected character"}
	got := Render("x.cmake", "a()\n", syntaxErr)

	assert.Contains(t, got, "error: unexpected character")
	assert.Contains(t, got, "x.cmake:99:1")
	assert.NotContains(t, got, "^")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "a       b", expandTabs("a\tb"))
}

func TestVisualColumn(t *testing.T) {
	// caret under 'x' in "\tx" lands after the expanded tab
	assert.Equal(t, 8, visualColumn("\tx", 2))
	assert.Equal(t, 2, visualColumn("abc", 3))
}
