package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowCol(t *testing.T) {
	t.Parallel()

	source := "a\nbc\n"
	tests := []struct {
		name   string
		text   string
		offset int
		want   TextPos
	}{
		{name: "start of text", text: source, offset: 0, want: TextPos{Row: 1, Col: 1}},
		{name: "second char of first line", text: source, offset: 1, want: TextPos{Row: 1, Col: 2}},
		{name: "start of second line", text: source, offset: 2, want: TextPos{Row: 2, Col: 1}},
		{name: "second char of second line", text: source, offset: 3, want: TextPos{Row: 2, Col: 2}},
		{name: "end of text", text: source, offset: 5, want: TextPos{Row: 3, Col: 1}},
		{name: "empty text", text: "", offset: 0, want: TextPos{Row: 1, Col: 1}},
		{name: "offset clamped to length", text: "ab", offset: 99, want: TextPos{Row: 1, Col: 3}},
		{name: "negative offset clamped", text: "ab", offset: -1, want: TextPos{Row: 1, Col: 1}},
		{name: "no newlines", text: "abcdef", offset: 4, want: TextPos{Row: 1, Col: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowCol(tt.text, tt.offset))
		})
	}
}

func TestTextPosString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2:7", TextPos{Row: 2, Col: 7}.String())
}
