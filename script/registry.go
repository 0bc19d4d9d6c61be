package script

import "context"

// NameKind classifies a registry entry the way `cmake --help-<kind>-list`
// partitions its documentation.
type NameKind int

const (
	KindCommand NameKind = iota
	KindModule
	KindPolicy
	KindProperty
	KindVariable
)

var nameKindNames = map[NameKind]string{
	KindCommand:  "command",
	KindModule:   "module",
	KindPolicy:   "policy",
	KindProperty: "property",
	KindVariable: "variable",
}

func (k NameKind) String() string {
	if name, ok := nameKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a kind's string form back to its NameKind.
func ParseKind(s string) (NameKind, bool) {
	for kind, name := range nameKindNames {
		if name == s {
			return kind, true
		}
	}
	return 0, false
}

// AllKinds lists every name kind in presentation order.
func AllKinds() []NameKind {
	return []NameKind{KindCommand, KindModule, KindPolicy, KindProperty, KindVariable}
}

// Name is one completion or hover candidate.
type Name struct {
	Name string
	Kind NameKind
}

// Registry supplies CMake name lists and per-name documentation. The concrete
// implementation shells out to the cmake executable; tests substitute fakes.
type Registry interface {
	Names(ctx context.Context, kind NameKind) ([]Name, error)
	Documentation(ctx context.Context, kind NameKind, name string) (string, error)
}
