package parser

import (
	"fmt"
	"strings"
)

// TextPos is a 1-based row and column pair derived from a byte offset.
type TextPos struct {
	Row int
	Col int
}

func (p TextPos) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// RowCol converts a 0-based byte offset into a 1-based row and column by
// scanning the prefix text[:offset]. O(offset); intended for error reporting
// and cursor queries, never for the per-token parse loop.
func RowCol(text string, offset int) TextPos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	row := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return TextPos{Row: row, Col: offset - lineStart + 1}
}
