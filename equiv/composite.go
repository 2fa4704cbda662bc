package equiv

import "github.com/ctypealg/ctype/term"

// Composite builds the most-specific common refinement of two compatible
// types a and b. It borrows both operands (neither is consumed) and
// returns a freshly owned term the caller must eventually Free. Composite
// panics if a and b are not compatible.
func Composite(a, b *term.Term) *term.Term {
	if !Compatible(a, b) {
		fail("equiv: Composite: operands are not compatible")
	}
	if Identical(a, b) {
		return a.Ref()
	}
	if term.CategoryOf(a) == term.CategoryAtomic {
		fail("equiv: Composite: atomic operands are compatible but not identical; composite is undefined here")
	}
	switch term.Classify(a) {
	case term.Array:
		return compositeArray(a, b)
	case term.Function:
		return compositeFunction(a, b)
	default:
		fail("equiv: Composite: %s operands are compatible but not identical; composite is undefined for this category", term.Classify(a))
		return nil
	}
}

func compositeArray(a, b *term.Term) *term.Term {
	elem := Composite(term.ArrayElement(a), term.ArrayElement(b))
	aKnown := term.IsKnownConstSize(a)
	bKnown := term.IsKnownConstSize(b)
	switch {
	case aKnown:
		return term.ArrayOf(term.ArrayLength(a), elem)
	case bKnown:
		return term.ArrayOf(term.ArrayLength(b), elem)
	case term.IsArrayVLA(a) && term.IsArrayVLA(b):
		fail("equiv: Composite: both array operands are variable-length")
		return nil
	default:
		return term.IncompleteArrayOf(elem)
	}
}

func compositeFunction(a, b *term.Term) *term.Term {
	ret := Composite(term.FunctionReturn(a), term.FunctionReturn(b))
	argsA, argsB := term.FunctionArguments(a), term.FunctionArguments(b)
	switch {
	case argsA == nil && argsB == nil:
		return term.FunctionUnprototypedOf(ret)
	case argsA == nil:
		return term.FunctionNamedOf(ret, cloneParamTypes(argsB), paramNames(argsB))
	case argsB == nil:
		return term.FunctionNamedOf(ret, cloneParamTypes(argsA), paramNames(argsA))
	default:
		n := term.MemberCount(argsA)
		params := make([]*term.Term, n)
		names := make([]string, n)
		for i := 0; i < n; i++ {
			pa := term.Unqualified(term.MemberType(argsA, i))
			pb := term.Unqualified(term.MemberType(argsB, i))
			params[i] = Composite(pa, pb)
			names[i] = term.MemberName(argsA, i)
		}
		return term.FunctionNamedOf(ret, params, names)
	}
}

// cloneParamTypes returns a freshly Ref'd slice of args' parameter types,
// for handing to a new function constructor that takes ownership of each
// element while args itself keeps its own reference.
func cloneParamTypes(args *term.Term) []*term.Term {
	n := term.MemberCount(args)
	out := make([]*term.Term, n)
	for i := 0; i < n; i++ {
		out[i] = term.MemberType(args, i).Ref()
	}
	return out
}

func paramNames(args *term.Term) []string {
	n := term.MemberCount(args)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = term.MemberName(args, i)
	}
	return out
}
