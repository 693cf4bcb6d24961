package rules

// DefaultIgnored lists rules too weak to produce a meaningful failing case
var DefaultIgnored = []string{"nullable", "string", "numeric"}

// IgnoreSet is a set of rule tokens that never produce data provider rows
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds a set from tokens
func NewIgnoreSet(tokens ...string) IgnoreSet {
	set := make(IgnoreSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// DefaultIgnoreSet returns a fresh set holding DefaultIgnored
func DefaultIgnoreSet() IgnoreSet {
	return NewIgnoreSet(DefaultIgnored...)
}

// Ignores reports whether the token is matched exactly by the set.
// Object tokens are never matched.
func (s IgnoreSet) Ignores(tok Token) bool {
	if !tok.IsText() {
		return false
	}
	_, ok := s[tok.Raw]
	return ok
}
