package parser

// TokenKind defines the terminal kinds produced by the grammar.
type TokenKind int

const (
	TokenEOF         TokenKind = iota // zero-width end of input
	TokenIdentifier                   // command name
	TokenText                         // raw text run
	TokenNewline                      // '\n'
	TokenSpace                        // run of spaces and tabs
	TokenLParen                       // '('
	TokenRParen                       // ')'
	TokenLBracket                     // '[=*['
	TokenRBracket                     // ']=*]'
	TokenQuote                        // '"'
	TokenCommentMark                  // '#'
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "eof",
	TokenIdentifier:  "identifier",
	TokenText:        "text",
	TokenNewline:     "newline",
	TokenSpace:       "space",
	TokenLParen:      "lparen",
	TokenRParen:      "rparen",
	TokenLBracket:    "lbracket",
	TokenRBracket:    "rbracket",
	TokenQuote:       "quote",
	TokenCommentMark: "commentmark",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single terminal with its starting offset and literal text.
// Tokens are immutable once produced by the parser.
type Token struct {
	Pos  int
	Kind TokenKind
	Lit  string
}

func (t Token) Start() int   { return t.Pos }
func (t Token) End() int     { return t.Pos + len(t.Lit) }
func (t Token) Text() string { return t.Lit }
