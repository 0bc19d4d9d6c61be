// Package diag renders parser syntax errors as annotated source snippets for
// terminal output.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ginanjarn/cmaketools/parser"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgYellow, color.Bold)
)

// Render formats one syntax error as an arrow-annotated snippet:
//
//	error: expected ')' to close argument list
//	 --> CMakeLists.txt:2:5
//	  |
//	2 | foo(
//	  |     ^ expected ')' to close argument list
func Render(filename, source string, err *parser.SyntaxError) string {
	var sb strings.Builder

	sb.WriteString(errorStyle.Sprintf("error: %s\n", err.Msg))
	sb.WriteString(lineStyle.Sprint(" --> "))
	sb.WriteString(fileStyle.Sprintf("%s:%s\n", filename, err.Pos))

	line, ok := sourceLine(source, err.Pos.Row)
	if !ok {
		return sb.String()
	}

	expanded := expandTabs(line)
	lineNum := fmt.Sprintf("%d", err.Pos.Row)
	gutter := strings.Repeat(" ", len(lineNum))

	sb.WriteString(lineStyle.Sprintf("%s |\n", gutter))
	sb.WriteString(lineStyle.Sprintf("%s | ", lineNum))
	sb.WriteString(expanded)
	sb.WriteString("\n")
	sb.WriteString(lineStyle.Sprintf("%s | ", gutter))
	sb.WriteString(strings.Repeat(" ", visualColumn(line, err.Pos.Col)))
	sb.WriteString(messageStyle.Sprintf("^ %s\n", err.Msg))

	return sb.String()
}

func sourceLine(source string, row int) (string, bool) {
	lines := strings.Split(source, "\n")
	if row < 1 || row > len(lines) {
		return "", false
	}
	return lines[row-1], true
}

func expandTabs(line string) string {
	var sb strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - (column % tabWidth)
			sb.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		sb.WriteRune(ch)
		column++
	}
	return sb.String()
}

// visualColumn maps a 1-based source column onto the tab-expanded line.
func visualColumn(line string, col int) int {
	visual := 0
	for i, ch := range line {
		if i+1 >= col {
			break
		}
		if ch == '\t' {
			visual += tabWidth - (visual % tabWidth)
			continue
		}
		visual++
	}
	return visual
}
