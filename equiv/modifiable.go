package equiv

import "github.com/ctypealg/ctype/term"

// IsModifiable reports whether t is complete, not an array, not itself
// const-qualified, and contains no const-qualified member at any recursive
// compound depth.
func IsModifiable(t *term.Term) bool {
	if !term.IsComplete(t) {
		return false
	}
	if term.Classify(t) == term.Array {
		return false
	}
	if term.IsConst(t) {
		return false
	}
	return !containsConstMember(t)
}

func containsConstMember(t *term.Term) bool {
	if term.Classify(t) != term.Struct && term.Classify(t) != term.Union {
		return false
	}
	if !term.IsComplete(t) {
		return false
	}
	n := term.MemberCount(t)
	for i := 0; i < n; i++ {
		m := term.MemberType(t, i)
		if term.IsConst(m) {
			return true
		}
		if containsConstMember(m) {
			return true
		}
	}
	return false
}
