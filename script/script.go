// Package script answers cursor-context questions over raw CMake source:
// which identifier sits under the cursor, what syntactic role the cursor is
// in, and which registry names are candidates there. Classification is a
// lightweight ordered-regex heuristic, not a parse: completion has to stay
// cheap and tolerant of syntactically invalid in-progress text.
package script

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ginanjarn/cmaketools/parser"
)

// Scope is the syntactic role of the cursor position.
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeCommand       // command-name position
	ScopeSetter        // inside `set(NAME`
	ScopeAccess        // inside `${NAME`
	ScopeInclude       // inside `include(NAME`
	ScopeParams        // generic first-argument position
	ScopeValue         // later-argument position
)

var scopeNames = map[Scope]string{
	ScopeUnknown: "unknown",
	ScopeCommand: "command",
	ScopeSetter:  "setter",
	ScopeAccess:  "access",
	ScopeInclude: "include",
	ScopeParams:  "params",
	ScopeValue:   "value",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Ordered: the first pattern matching the text before the cursor wins.
var scopePatterns = []struct {
	scope Scope
	re    *regexp.Regexp
}{
	{ScopeCommand, regexp.MustCompile(`(?i)^\s*(\w*)$`)},
	{ScopeSetter, regexp.MustCompile(`(?i)set\((\w*)$`)},
	{ScopeAccess, regexp.MustCompile(`(?i)\$\{(\w*)$`)},
	{ScopeInclude, regexp.MustCompile(`(?i)include\((\w*)$`)},
	{ScopeParams, regexp.MustCompile(`(?i)\w+\((\w*)$`)},
	{ScopeValue, regexp.MustCompile(`(?i)\w+\(\w+ (?:\w+ )*(\w*)$`)},
}

var wordRe = regexp.MustCompile(`\w+`)

// Script answers identifier and completion queries over one source buffer.
// Rows and columns are 0-based; offsets are byte offsets into the source.
type Script struct {
	source   string
	registry Registry
}

func NewScript(source string, registry Registry) *Script {
	return &Script{source: source, registry: registry}
}

// ScopeAt classifies the cursor's syntactic role from the text before it and
// returns the role together with the in-progress identifier prefix.
func (s *Script) ScopeAt(row, col int) (Scope, string) {
	lines := strings.Split(s.source, "\n")
	if row < 0 || row >= len(lines) {
		return ScopeUnknown, ""
	}

	line := lines[row]
	if col < 0 {
		return ScopeUnknown, ""
	}
	if col > len(line) {
		col = len(line)
	}
	prefix := line[:col]

	for _, sp := range scopePatterns {
		if found := sp.re.FindStringSubmatch(prefix); found != nil {
			return sp.scope, found[1]
		}
	}
	return ScopeUnknown, ""
}

// WordAt returns the maximal identifier run whose span contains the cursor.
// A cursor on punctuation or whitespace with no adjacent run is a plain miss,
// not an error.
func (s *Script) WordAt(row, col int) (string, bool) {
	lines := strings.Split(s.source, "\n")
	if row < 0 || row >= len(lines) {
		return "", false
	}

	line := lines[row]
	for _, span := range wordRe.FindAllStringIndex(line, -1) {
		if span[0] <= col && col <= span[1] {
			return line[span[0]:span[1]], true
		}
	}
	return "", false
}

// WordAtOffset is WordAt keyed by byte offset instead of row and column.
func (s *Script) WordAtOffset(offset int) (string, bool) {
	pos := parser.RowCol(s.source, offset)
	return s.WordAt(pos.Row-1, pos.Col-1)
}

// candidateKinds maps a scope to the registry kinds completed there.
func candidateKinds(scope Scope) []NameKind {
	switch scope {
	case ScopeCommand:
		return []NameKind{KindCommand}
	case ScopeSetter, ScopeAccess, ScopeValue:
		return []NameKind{KindVariable, KindProperty}
	case ScopeInclude:
		return []NameKind{KindModule}
	case ScopeParams:
		return []NameKind{KindModule, KindVariable, KindProperty}
	default:
		return nil
	}
}

func (s *Script) candidates(ctx context.Context, kinds []NameKind) ([]Name, error) {
	var out []Name
	for _, kind := range kinds {
		names, err := s.registry.Names(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s names: %w", kind, err)
		}
		out = append(out, names...)
	}
	return out, nil
}

// Complete returns the ordered candidate names for the cursor position. An
// unclassifiable position completes to nothing.
func (s *Script) Complete(ctx context.Context, row, col int) ([]Name, error) {
	scope, _ := s.ScopeAt(row, col)
	return s.candidates(ctx, candidateKinds(scope))
}

// Help resolves the identifier under the cursor against the scope's candidate
// pool, falling back to every kind when classification fails. A nil result
// with nil error means there is nothing to show.
func (s *Script) Help(ctx context.Context, row, col int) (*Name, error) {
	word, ok := s.WordAt(row, col)
	if !ok {
		return nil, nil
	}

	scope, _ := s.ScopeAt(row, col)
	kinds := candidateKinds(scope)
	if kinds == nil {
		kinds = AllKinds()
	}

	pool, err := s.candidates(ctx, kinds)
	if err != nil {
		return nil, err
	}
	for _, name := range pool {
		if name.Name == word {
			found := name
			return &found, nil
		}
	}
	return nil, nil
}
