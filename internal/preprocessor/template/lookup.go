package template

import "strings"

// Lookup indexes the definitions of a single file by full (scoped) name
// and by bare name, and resolves use-site tokens against them.
type Lookup struct {
	byFull map[string]*Definition
	byName map[string][]*Definition
}

// NewLookup creates an empty lookup.
func NewLookup() *Lookup {
	return &Lookup{
		byFull: make(map[string]*Definition),
		byName: make(map[string][]*Definition),
	}
}

// Register adds a definition under both indices.
func (l *Lookup) Register(def *Definition) {
	l.byFull[def.FullName()] = def
	l.byName[def.Name] = append(l.byName[def.Name], def)
}

// Resolve selects the definition a use-site token refers to. A qualified
// token is first tried as an exact full name; otherwise candidates sharing
// the bare name are scored: an exact prefix match on the candidate's
// scope wins outright, then the current scope, suffix-aligned prefixes,
// enclosing scopes and finally file scope. Returns nil when nothing
// matches.
func (l *Lookup) Resolve(token, currentScope string) *Definition {
	prefix := ""
	base := token

	if dot := strings.LastIndexByte(token, '.'); dot >= 0 {
		prefix = token[:dot]
		base = token[dot+1:]

		if def, ok := l.byFull[token]; ok {
			return def
		}
	}

	candidates, ok := l.byName[base]
	if !ok {
		return nil
	}

	var best *Definition
	bestScore := 0

	for _, def := range candidates {
		score := scoreCandidate(def, prefix, currentScope)

		if score > bestScore {
			bestScore = score
			best = def
		}

		if score >= 1000 {
			break
		}
	}

	return best
}

func scoreCandidate(def *Definition, prefix, currentScope string) int {
	if prefix != "" {
		if def.ScopePath == prefix {
			return 1000 + len(def.ScopePath)
		}

		if len(def.ScopePath) >= len(prefix) && strings.HasSuffix(def.ScopePath, prefix) {
			boundary := len(def.ScopePath) - len(prefix)
			if boundary == 0 || def.ScopePath[boundary-1] == '.' {
				return 700 + len(prefix)
			}
		}
	}

	if def.ScopePath == currentScope {
		return 800 + len(def.ScopePath)
	}

	if def.ScopePath != "" && currentScope != "" && strings.HasPrefix(currentScope, def.ScopePath) {
		if len(currentScope) == len(def.ScopePath) || currentScope[len(def.ScopePath)] == '.' {
			return 400 + len(def.ScopePath)
		}
	}

	if def.ScopePath == "" {
		return 100
	}

	return 0
}
