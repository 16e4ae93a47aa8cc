package qb

import "golang.org/x/text/cases"

// Suffixes stripped from type names when deriving an alias. Order matters:
// the first match wins, so ViewModel comes before Model.
var Suffixes = []string{"ViewModel", "Dto", "Entity", "Model"}

// ResolveAlias derives the short alias for an entity type name.
func ResolveAlias(name string) string {
	fold := cases.Fold()
	for _, suffix := range Suffixes {
		n := len(name) - len(suffix)
		if n > 0 && fold.String(name[n:]) == fold.String(suffix) {
			return name[:n]
		}
	}
	return name
}

// Aliases caches resolved aliases for the lifetime of one builder so a type
// renders the same everywhere in a statement.
type Aliases struct {
	m map[string]string
}

func NewAliases() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

func (a *Aliases) Resolve(name string) string {
	if alias, ok := a.m[name]; ok {
		return alias
	}
	alias := ResolveAlias(name)
	a.m[name] = alias
	return alias
}
