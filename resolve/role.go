package resolve

import "reflect"

// Role is a logical purpose that must be bound to a concrete host member,
// e.g. "the far-plane distance slot" or "the vertex color multiplier array"
//
// Resolution order:
//  1. Exact name: Candidates in order; the first declared member of the right
//     Kind (and Type, when set) wins
//  2. Structural: members of the right Kind in declaration order, filtered by
//     Type and Match; the Nth (0-based) match wins
//  3. Failure: the role is absent for the rest of the process
//
// The structural pass only runs when Match is set; use Any to select purely
// by Type and position
type Role struct {
	Name       string
	Kind       Kind
	Type       reflect.Type
	Candidates []string
	Match      Predicate
	Nth        int
}

// accepts reports whether m may serve the role regardless of pass
func (r Role) accepts(m Member) bool {
	return r.Type == nil || m.Type == r.Type
}

func (r Role) structural() bool {
	return r.Match != nil
}

// exactPass tries candidate names in order
func (r Role) exactPass(ms []Member) (Member, bool) {
	for _, name := range r.Candidates {
		for _, m := range ms {
			if m.Name == name && r.accepts(m) {
				return m, true
			}
		}
	}
	return Member{}, false
}

// structuralPass takes the Nth member matching Type and Match
func (r Role) structuralPass(ms []Member) (Member, bool) {
	if !r.structural() {
		return Member{}, false
	}
	seen := 0
	for _, m := range ms {
		if !r.accepts(m) || !r.Match(m) {
			continue
		}
		if seen == r.Nth {
			return m, true
		}
		seen++
	}
	return Member{}, false
}
