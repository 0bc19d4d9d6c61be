package parser

import (
	"fmt"
	"strings"
)

// Elem is implemented by every member of the syntax tree: tokens, leaves,
// nodes and nested element lists. Start and End are offsets into the source
// text; Text reconstructs the exact source slice the element covers.
type Elem interface {
	Start() int
	End() int
	Text() string
}

var (
	_ Elem = Token{}
	_ Elem = (*Leaf)(nil)
	_ Elem = (*Node)(nil)
	_ Elem = (*List)(nil)
)

// LeafKind defines the leaf variants of the grammar.
type LeafKind int

const (
	LeafBracketArgument LeafKind = iota // [=*[ ... ]=*]
	LeafQuotedArgument                  // "..."
	LeafUnquotedArgument                // bare argument
	LeafBracketComment                  // #[=*[ ... ]=*]
	LeafLineComment                     // # ...
)

var leafKindNames = map[LeafKind]string{
	LeafBracketArgument:  "bracket_argument",
	LeafQuotedArgument:   "quoted_argument",
	LeafUnquotedArgument: "unquoted_argument",
	LeafBracketComment:   "bracket_comment",
	LeafLineComment:      "line_comment",
}

func (k LeafKind) String() string {
	if name, ok := leafKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsComment reports whether the leaf kind is one of the comment variants.
func (k LeafKind) IsComment() bool {
	return k == LeafBracketComment || k == LeafLineComment
}

// Leaf is an ordered, non-empty token sequence forming one grammatical unit
// with no exposed substructure.
type Leaf struct {
	Kind   LeafKind
	Tokens []Token
}

// NewLeaf builds a leaf from one or more tokens. A leaf without tokens has no
// position, so constructing one is a programming error.
func NewLeaf(kind LeafKind, tokens ...Token) *Leaf {
	if len(tokens) == 0 {
		panic("parser: leaf requires at least one token")
	}
	return &Leaf{Kind: kind, Tokens: tokens}
}

func (l *Leaf) Start() int { return l.Tokens[0].Start() }
func (l *Leaf) End() int   { return l.Tokens[len(l.Tokens)-1].End() }

func (l *Leaf) Text() string {
	var sb strings.Builder
	for _, tok := range l.Tokens {
		sb.WriteString(tok.Lit)
	}
	return sb.String()
}

func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf(%s, %q)", l.Kind, l.Text())
}

// NodeKind defines the composite node variants.
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeCommandInvocation
)

var nodeKindNames = map[NodeKind]string{
	NodeFile:              "file",
	NodeCommandInvocation: "command_invocation",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is an ordered sequence of child elements. A File node holds the
// top-level file elements; a CommandInvocation holds the identifier token, an
// optional space token and the argument list.
type Node struct {
	Kind     NodeKind
	Children []Elem
}

// Start returns the start offset of the first child, or -1 for an empty node.
func (n *Node) Start() int {
	if len(n.Children) == 0 {
		return -1
	}
	return n.Children[0].Start()
}

// End returns the end offset of the last child, or -1 for an empty node.
func (n *Node) End() int {
	if len(n.Children) == 0 {
		return -1
	}
	return n.Children[len(n.Children)-1].End()
}

func (n *Node) Text() string {
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.Text())
	}
	return sb.String()
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s, %d children)", n.Kind, len(n.Children))
}

// ListKind defines the grouped child-list variants.
type ListKind int

const (
	ListArguments        ListKind = iota // '(' ... ')' of a command
	ListGroupedArguments                 // nested '(' ... ')' inside arguments
)

var listKindNames = map[ListKind]string{
	ListArguments:        "arguments",
	ListGroupedArguments: "grouped_arguments",
}

func (k ListKind) String() string {
	if name, ok := listKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// List is a plain ordered child list used for parenthesized argument
// sequences. Nested parenthesized groups appear as GroupedArguments lists so
// that `command(a (b c) d)` keeps its grouping through a round trip.
type List struct {
	Kind  ListKind
	Elems []Elem
}

// Start returns the start offset of the first element, or -1 for an empty list.
func (l *List) Start() int {
	if len(l.Elems) == 0 {
		return -1
	}
	return l.Elems[0].Start()
}

// End returns the end offset of the last element, or -1 for an empty list.
func (l *List) End() int {
	if len(l.Elems) == 0 {
		return -1
	}
	return l.Elems[len(l.Elems)-1].End()
}

func (l *List) Text() string {
	var sb strings.Builder
	for _, el := range l.Elems {
		sb.WriteString(el.Text())
	}
	return sb.String()
}

func (l *List) String() string {
	return fmt.Sprintf("List(%s, %d elems)", l.Kind, len(l.Elems))
}
