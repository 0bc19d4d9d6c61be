package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginanjarn/cmaketools/parser"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "collapse argument spaces",
			source: "command(   a    b )\n",
			want:   "command(a b)\n",
		},
		{
			name:   "space after open paren dropped",
			source: "command( a)\n",
			want:   "command(a)\n",
		},
		{
			name:   "single space between identifier and paren",
			source: "if   (WIN32)\n",
			want:   "if (WIN32)\n",
		},
		{
			name:   "trailing whitespace stripped",
			source: "project(demo)   \n",
			want:   "project(demo)\n",
		},
		{
			name:   "trailing newline added",
			source: "project(demo)",
			want:   "project(demo)\n",
		},
		{
			name:   "grouped arguments preserved",
			source: "command(a (b c) d)\n",
			want:   "command(a (b c) d)\n",
		},
		{
			name:   "grouped arguments normalized",
			source: "command(a ( b   c ) d)\n",
			want:   "command(a (b c) d)\n",
		},
		{
			name:   "indentation kept",
			source: "add_executable(app\n    main.c\n    util.c\n)\n",
			want:   "add_executable(app\n    main.c\n    util.c\n)\n",
		},
		{
			name:   "trailing space inside arguments removed",
			source: "add_executable(app   \n    main.c\n)\n",
			want:   "add_executable(app\n    main.c\n)\n",
		},
		{
			name:   "comments kept verbatim",
			source: "# heading\nadd_library(x a.c) # impl\n",
			want:   "# heading\nadd_library(x a.c) # impl\n",
		},
		{
			name:   "bracket comment kept verbatim",
			source: "#[[multi\nline]]\n",
			want:   "#[[multi\nline]]\n",
		},
		{
			name:   "quoted argument untouched",
			source: "message(  \"two  spaces  inside\"  )\n",
			want:   "message(\"two  spaces  inside\")\n",
		},
		{
			name:   "empty file",
			source: "",
			want:   "",
		},
		{
			name:   "command arguments blank lines clamped to one",
			source: "set(a\n\n\n\n\nb)\n",
			want:   "set(a\n\nb)\n",
		},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBlankLineClamp(t *testing.T) {
	t.Parallel()

	source := "a()" + strings.Repeat("\n", 11) + "b()\n"
	got, err := New().Format(source)
	require.NoError(t, err)

	assert.Equal(t, "a()\n\n\n\nb()\n", got, "ten blank lines clamp to three")
}

func TestFormatCustomBlankLineClamp(t *testing.T) {
	t.Parallel()

	f := &Formatter{MaxBlankLines: 1}
	source := "a()\n\n\n\nb()\n"
	got, err := f.Format(source)
	require.NoError(t, err)

	assert.Equal(t, "a()\n\nb()\n", got)
}

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	sources := []string{
		"command(   a    b )\n",
		"command(a (b c) d)",
		"add_executable(app\n    main.c   \n    util.c\n)\n",
		"a()" + strings.Repeat("\n", 11) + "b()\n",
		"# comment only\n",
		"if   (WIN32)\nendif()\n",
		"set(a\n\n\n\nb)\n",
	}

	f := New()
	for _, source := range sources {
		once, err := f.Format(source)
		require.NoError(t, err)

		twice, err := f.Format(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice, "formatting must be idempotent for %q", source)
	}
}

func TestFormatSyntaxErrorPassthrough(t *testing.T) {
	t.Parallel()

	_, err := New().Format("foo(")
	require.Error(t, err)

	syntaxErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, parser.TextPos{Row: 1, Col: 5}, syntaxErr.Pos)
}

func TestFormatTreePure(t *testing.T) {
	t.Parallel()

	source := "command(  a  b  )\n"
	tree, err := parser.Parse(source)
	require.NoError(t, err)

	_ = New().FormatTree(tree)
	assert.Equal(t, source, tree.Text(), "formatting must not mutate the tree")
}

func TestFormatTreeRejectsForeignElements(t *testing.T) {
	t.Parallel()

	// a file-level identifier token can only come from a parser that has
	// drifted out of sync with the formatter over the grammar's kinds
	broken := &parser.Node{
		Kind: parser.NodeFile,
		Children: []parser.Elem{
			parser.Token{Pos: 0, Kind: parser.TokenIdentifier, Lit: "oops"},
		},
	}

	assert.Panics(t, func() { New().FormatTree(broken) })
}
