// Package parser implements a hand-written recursive-descent parser for the
// CMake scripting language. The produced tree keeps every character of the
// input, whitespace and comments included, so that tree.Text() reproduces the
// source exactly.
//
// Grammar (see the CMake language manual):
//
//	file                ::= file_element*
//	file_element        ::= command_invocation | comment | newline | space | eof
//	command_invocation  ::= identifier space? '(' arguments ')'
//	arguments           ::= (argument | grouped | space | newline | comment)*
//	grouped             ::= '(' arguments ')'
//	argument            ::= bracket_argument | quoted_argument | unquoted_argument
//	comment             ::= '#' (bracket | line_text)
//	bracket             ::= '[' '='* '[' text ']' '='* ']'
//
// The bracket body is matched as a run of non-']' characters and the closer as
// ']' '='* ']' with any number of '=', looser than real CMake's equal-count
// matching. `#[==[text]=]` therefore closes successfully here.
package parser

import (
	"fmt"
	"regexp"
)

// Terminal patterns, anchored so a match can only start at the current offset.
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	spaceRe       = regexp.MustCompile(`^[ \t]+`)
	newlineRe     = regexp.MustCompile(`^\n`)
	lparenRe      = regexp.MustCompile(`^\(`)
	rparenRe      = regexp.MustCompile(`^\)`)
	lbracketRe    = regexp.MustCompile(`^\[=*\[`)
	rbracketRe    = regexp.MustCompile(`^\]=*\]`)
	bracketTextRe = regexp.MustCompile(`^[^\]]*`)
	quoteRe       = regexp.MustCompile(`^"`)
	commentRe     = regexp.MustCompile(`^#`)
	quotedTextRe  = regexp.MustCompile(`^(?:\\"|[^"])+`)
	unquotedRe    = regexp.MustCompile(`^(?:[^()#"\\\s]|\\[^A-Za-z0-9;]|\\[trn;])+`)
	lineTextRe    = regexp.MustCompile(`^[^\n]*`)
	eofRe         = regexp.MustCompile(`^$`)
)

// SyntaxError reports a required construct missing at a source position.
type SyntaxError struct {
	Pos TextPos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// Parser parses one CMake source buffer. The zero value is not usable; use
// NewParser. A Parser holds a single offset register and performs no
// backtracking beyond ordered trial of productions.
type Parser struct {
	source string
	offset int
}

// NewParser returns a parser over the given source text.
func NewParser(source string) *Parser {
	return &Parser{source: source}
}

// Parse consumes the whole source and returns the File tree. The returned
// error, if any, is a *SyntaxError carrying a 1-based row and column.
func Parse(source string) (*Node, error) {
	return NewParser(source).Parse()
}

// Parse builds the File tree from the start of the source.
func (p *Parser) Parse() (*Node, error) {
	p.offset = 0

	var children []Elem
	for {
		child, err := p.fileElement()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if tok, ok := child.(Token); ok && tok.Kind == TokenEOF {
			break
		}
	}
	return &Node{Kind: NodeFile, Children: children}, nil
}

// eat attempts an anchored match at the current offset. On success the offset
// advances past the match; on failure the offset is unchanged. Strict
// anchoring is what keeps the parser from silently skipping invalid input.
func (p *Parser) eat(re *regexp.Regexp) (start int, text string, ok bool) {
	loc := re.FindStringIndex(p.source[p.offset:])
	if loc == nil {
		return 0, "", false
	}
	start = p.offset
	text = p.source[start+loc[0] : start+loc[1]]
	p.offset += loc[1]
	return start, text, true
}

func (p *Parser) syntaxError(msg string) *SyntaxError {
	return &SyntaxError{Pos: RowCol(p.source, p.offset), Msg: msg}
}

// fileElement tries each file-level production in order. The EOF production
// matches the empty string at end of input and is deliberately last so real
// content is consumed first.
func (p *Parser) fileElement() (Elem, error) {
	cmd, err := p.commandInvocation()
	if err != nil {
		return nil, err
	}
	if cmd != nil {
		return cmd, nil
	}

	comment, err := p.comment()
	if err != nil {
		return nil, err
	}
	if comment != nil {
		return comment, nil
	}

	if tok, ok := p.newline(); ok {
		return tok, nil
	}
	if tok, ok := p.space(); ok {
		return tok, nil
	}
	if start, text, ok := p.eat(eofRe); ok {
		return Token{Pos: start, Kind: TokenEOF, Lit: text}, nil
	}

	return nil, p.syntaxError("unexpected character")
}

func (p *Parser) space() (Token, bool) {
	if start, text, ok := p.eat(spaceRe); ok {
		return Token{Pos: start, Kind: TokenSpace, Lit: text}, true
	}
	return Token{}, false
}

func (p *Parser) newline() (Token, bool) {
	if start, text, ok := p.eat(newlineRe); ok {
		return Token{Pos: start, Kind: TokenNewline, Lit: text}, true
	}
	return Token{}, false
}

// commandInvocation parses `identifier space? '(' arguments ')'`. It returns
// (nil, nil) when no identifier starts at the current offset.
func (p *Parser) commandInvocation() (*Node, error) {
	start, name, ok := p.eat(identRe)
	if !ok {
		return nil, nil
	}

	children := []Elem{Token{Pos: start, Kind: TokenIdentifier, Lit: name}}
	if sp, ok := p.space(); ok {
		children = append(children, sp)
	}

	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if args == nil {
		return nil, p.syntaxError("expected '(' after command identifier")
	}
	children = append(children, args)

	return &Node{Kind: NodeCommandInvocation, Children: children}, nil
}

// arguments parses a parenthesized argument list including both paren tokens.
// It returns (nil, nil) when no '(' starts at the current offset.
func (p *Parser) arguments() (*List, error) {
	start, open, ok := p.eat(lparenRe)
	if !ok {
		return nil, nil
	}

	elems := []Elem{Token{Pos: start, Kind: TokenLParen, Lit: open}}
	for {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		if arg == nil {
			break
		}
		elems = append(elems, arg)
	}

	pos, closer, ok := p.eat(rparenRe)
	if !ok {
		return nil, p.syntaxError("expected ')' to close argument list")
	}
	elems = append(elems, Token{Pos: pos, Kind: TokenRParen, Lit: closer})

	return &List{Kind: ListArguments, Elems: elems}, nil
}

// argument tries each argument-level production in order; the first non-nil
// result wins. A nil, nil return signals the end of the argument list, at
// which point the caller expects the closing ')'.
func (p *Parser) argument() (Elem, error) {
	group, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if group != nil {
		return &List{Kind: ListGroupedArguments, Elems: group.Elems}, nil
	}

	bracket, err := p.bracketArgument()
	if err != nil {
		return nil, err
	}
	if bracket != nil {
		return bracket, nil
	}

	quoted, err := p.quotedArgument()
	if err != nil {
		return nil, err
	}
	if quoted != nil {
		return quoted, nil
	}

	if unquoted, ok := p.unquotedArgument(); ok {
		return unquoted, nil
	}
	if sp, ok := p.space(); ok {
		return sp, nil
	}
	if nl, ok := p.newline(); ok {
		return nl, nil
	}

	comment, err := p.comment()
	if err != nil {
		return nil, err
	}
	if comment != nil {
		return comment, nil
	}

	return nil, nil
}

// bracket parses `[=*[ text ]=*]` and returns its tokens. The text token is
// always present, possibly empty. Returns (nil, nil) when no opener starts at
// the current offset.
func (p *Parser) bracket() ([]Token, error) {
	start, open, ok := p.eat(lbracketRe)
	if !ok {
		return nil, nil
	}
	tokens := []Token{{Pos: start, Kind: TokenLBracket, Lit: open}}

	pos, text, _ := p.eat(bracketTextRe)
	tokens = append(tokens, Token{Pos: pos, Kind: TokenText, Lit: text})

	pos, closer, ok := p.eat(rbracketRe)
	if !ok {
		return nil, p.syntaxError("expected ']=*]' to close bracket")
	}
	tokens = append(tokens, Token{Pos: pos, Kind: TokenRBracket, Lit: closer})

	return tokens, nil
}

func (p *Parser) bracketArgument() (*Leaf, error) {
	tokens, err := p.bracket()
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, nil
	}
	return NewLeaf(LeafBracketArgument, tokens...), nil
}

// quotedArgument parses `"..."` with `\"` escapes kept verbatim. Escape
// sequences are not decoded; tokenizing structure is this parser's whole job.
func (p *Parser) quotedArgument() (*Leaf, error) {
	start, open, ok := p.eat(quoteRe)
	if !ok {
		return nil, nil
	}
	tokens := []Token{{Pos: start, Kind: TokenQuote, Lit: open}}

	if pos, text, ok := p.eat(quotedTextRe); ok {
		tokens = append(tokens, Token{Pos: pos, Kind: TokenText, Lit: text})
	}

	pos, closer, ok := p.eat(quoteRe)
	if !ok {
		return nil, p.syntaxError("expected closing '\"'")
	}
	tokens = append(tokens, Token{Pos: pos, Kind: TokenQuote, Lit: closer})

	return NewLeaf(LeafQuotedArgument, tokens...), nil
}

// unquotedArgument parses a maximal run of bare argument characters. The
// excluded punctuation `()#"\` and whitespace may appear backslash-escaped.
// Variable and generator-expression punctuation (`${}<>;:`) passes through as
// literal text.
func (p *Parser) unquotedArgument() (*Leaf, bool) {
	start, text, ok := p.eat(unquotedRe)
	if !ok {
		return nil, false
	}
	return NewLeaf(LeafUnquotedArgument, Token{Pos: start, Kind: TokenText, Lit: text}), true
}

// comment parses `#` followed by either a bracket body or the rest of the
// line. The line text token may be empty. Returns (nil, nil) when no '#'
// starts at the current offset.
func (p *Parser) comment() (*Leaf, error) {
	start, mark, ok := p.eat(commentRe)
	if !ok {
		return nil, nil
	}
	markTok := Token{Pos: start, Kind: TokenCommentMark, Lit: mark}

	bracket, err := p.bracket()
	if err != nil {
		return nil, err
	}
	if bracket != nil {
		tokens := append([]Token{markTok}, bracket...)
		return NewLeaf(LeafBracketComment, tokens...), nil
	}

	pos, text, _ := p.eat(lineTextRe)
	return NewLeaf(LeafLineComment, markTok, Token{Pos: pos, Kind: TokenText, Lit: text}), nil
}
