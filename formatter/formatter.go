// Package formatter re-emits a parsed CMake tree as normalized text. It
// collapses inter-argument whitespace to single spaces, strips trailing
// whitespace, clamps blank-line runs and guarantees a single trailing newline,
// while leaving semantic content and intentional indentation untouched.
package formatter

import (
	"fmt"
	"strings"

	"github.com/ginanjarn/cmaketools/parser"
)

// DefaultMaxBlankLines is the blank-line clamp applied at file scope.
const DefaultMaxBlankLines = 3

// argument lists allow at most one blank line between arguments
const argMaxBlankLines = 1

// Formatter formats CMake source. The zero value formats with
// DefaultMaxBlankLines; use New for the common case.
type Formatter struct {
	// MaxBlankLines is the maximum run of consecutive blank lines kept at
	// file scope.
	MaxBlankLines int
}

func New() *Formatter {
	return &Formatter{MaxBlankLines: DefaultMaxBlankLines}
}

// Format parses the source and returns the formatted replacement text. The
// returned error is the parser's *SyntaxError when the source is invalid.
func (f *Formatter) Format(source string) (string, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return f.FormatTree(tree), nil
}

// FormatTree formats an already-parsed File tree. Pure: the tree is only
// read, never mutated.
func (f *Formatter) FormatTree(file *parser.Node) string {
	maxBlank := f.MaxBlankLines
	if maxBlank <= 0 {
		maxBlank = DefaultMaxBlankLines
	}

	var sb strings.Builder
	children := file.Children

	for i, child := range children {
		switch v := child.(type) {
		case parser.Token:
			switch v.Kind {
			case parser.TokenEOF:
				// nothing after EOF
			case parser.TokenNewline:
				sb.WriteString(v.Lit)
			case parser.TokenSpace:
				// drop trailing space before a newline or at end of file
				if !spaceSignificantAt(children, i) {
					continue
				}
				sb.WriteString(v.Lit)
			default:
				panic(fmt.Sprintf("formatter: unhandled file-level token %s", v.Kind))
			}
		case *parser.Node:
			if v.Kind != parser.NodeCommandInvocation {
				panic(fmt.Sprintf("formatter: unhandled node %s at file level", v.Kind))
			}
			sb.WriteString(f.formatCommand(v))
		case *parser.Leaf:
			// comments are kept verbatim
			sb.WriteString(v.Text())
		default:
			panic(fmt.Sprintf("formatter: unhandled file element %T", child))
		}
	}

	return normalizeNewlines(sb.String(), maxBlank, true)
}

// spaceSignificantAt reports whether the file-level space at index i should
// survive: it is dropped when it is the last sibling or directly precedes a
// newline or the EOF token.
func spaceSignificantAt(children []parser.Elem, i int) bool {
	if i+1 >= len(children) {
		return false
	}
	next, ok := children[i+1].(parser.Token)
	if !ok {
		return true
	}
	return next.Kind != parser.TokenNewline && next.Kind != parser.TokenEOF
}

// formatCommand re-emits `identifier space? arguments` with the optional
// space collapsed to exactly one.
func (f *Formatter) formatCommand(cmd *parser.Node) string {
	children := cmd.Children

	ident, ok := children[0].(parser.Token)
	if !ok || ident.Kind != parser.TokenIdentifier {
		panic("formatter: command invocation must start with an identifier token")
	}

	var sb strings.Builder
	sb.WriteString(ident.Lit)

	argIndex := 1
	if tok, ok := children[1].(parser.Token); ok && tok.Kind == parser.TokenSpace {
		argIndex = 2
		sb.WriteString(" ")
	}

	args, ok := children[argIndex].(*parser.List)
	if !ok {
		panic("formatter: command invocation must end with an argument list")
	}
	sb.WriteString(f.formatArguments(args))

	return sb.String()
}

// formatArguments re-emits a parenthesized argument list. Recursive:
// grouped arguments nest the same rule.
func (f *Formatter) formatArguments(args *parser.List) string {
	var sb strings.Builder
	elems := args.Elems

	for i, el := range elems {
		switch v := el.(type) {
		case parser.Token:
			switch v.Kind {
			case parser.TokenLParen, parser.TokenRParen, parser.TokenNewline:
				sb.WriteString(v.Lit)
			case parser.TokenSpace:
				sb.WriteString(normalizedArgSpace(elems, i, v))
			default:
				panic(fmt.Sprintf("formatter: unhandled argument token %s", v.Kind))
			}
		case *parser.Leaf:
			sb.WriteString(v.Text())
		case *parser.List:
			sb.WriteString(f.formatArguments(v))
		default:
			panic(fmt.Sprintf("formatter: unhandled argument element %T", el))
		}
	}

	return normalizeNewlines(sb.String(), argMaxBlankLines, false)
}

// normalizedArgSpace decides what an inter-argument space collapses to:
// indentation after a newline is kept as-is, space adjacent to parens or
// other space disappears, anything else becomes a single space.
func normalizedArgSpace(elems []parser.Elem, i int, space parser.Token) string {
	if prev, ok := tokenAt(elems, i-1); ok {
		switch prev.Kind {
		case parser.TokenNewline:
			return space.Lit
		case parser.TokenLParen, parser.TokenSpace:
			return ""
		}
	}
	if next, ok := tokenAt(elems, i+1); ok && next.Kind == parser.TokenRParen {
		return ""
	}
	return " "
}

func tokenAt(elems []parser.Elem, i int) (parser.Token, bool) {
	if i < 0 || i >= len(elems) {
		return parser.Token{}, false
	}
	tok, ok := elems[i].(parser.Token)
	return tok, ok
}

// splitLines splits text on '\n' without keeping terminators; a trailing
// newline does not produce a trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalizeNewlines strips trailing whitespace per line and collapses runs of
// blank lines beyond maxBlank. With normalizeEOF the result ends with exactly
// one newline; without it the text is left open so it can be re-embedded
// inside a larger command text.
func normalizeNewlines(text string, maxBlank int, normalizeEOF bool) string {
	lines := splitLines(text)

	kept := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		stripped := strings.TrimRight(line, " \t")
		if stripped == "" {
			blank++
			if blank > maxBlank {
				continue
			}
		} else {
			blank = 0
		}
		kept = append(kept, stripped)
	}

	out := strings.Join(kept, "\n")
	if len(kept) == 0 || !normalizeEOF {
		return out
	}
	return out + "\n"
}
