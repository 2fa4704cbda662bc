package equiv

import "github.com/ctypealg/ctype/term"

// Identical reports whether a and b denote the same type. Reflexive on
// pointer equality; otherwise requires identical flag sets, identical
// classification, and structural agreement dictated by category. Struct,
// union, and enum terms are nominal: never identical unless the same node.
func Identical(a, b *term.Term) bool {
	if a == b {
		return true
	}
	if term.Flags(a) != term.Flags(b) {
		return false
	}
	if bitsA, okA := term.BitfieldBits(a); okA {
		bitsB, okB := term.BitfieldBits(b)
		if !okB || bitsA != bitsB {
			return false
		}
	}
	ka, kb := term.Classify(a), term.Classify(b)
	if ka != kb {
		return false
	}
	if term.Flags(a)&term.Atomic != 0 {
		// Atomic is a flag, not a structural variant: once the flag sets
		// (already compared above) and kind agree, identity reduces to
		// the identity of the unwrapped bases.
		return Identical(term.Base(a), term.Base(b))
	}
	switch ka {
	case term.Pointer:
		return Identical(term.PointerReferenced(a), term.PointerReferenced(b))
	case term.Array:
		return identicalArray(a, b)
	case term.Function:
		return identicalFunction(a, b)
	case term.Struct, term.Union, term.Enum:
		// Nominal: pointer equality (checked above) is the only route.
		return false
	default:
		// Self: arithmetic and void kinds carry no payload beyond kind
		// and flags, both already compared equal above.
		return true
	}
}

func identicalArray(a, b *term.Term) bool {
	if term.IsArrayVLA(a) != term.IsArrayVLA(b) {
		return false
	}
	if term.IsComplete(a) != term.IsComplete(b) {
		return false
	}
	if !Identical(term.ArrayElement(a), term.ArrayElement(b)) {
		return false
	}
	if term.IsKnownConstSize(a) && term.IsKnownConstSize(b) {
		return term.ArrayLength(a) == term.ArrayLength(b)
	}
	return true
}

func identicalFunction(a, b *term.Term) bool {
	if !Identical(term.FunctionReturn(a), term.FunctionReturn(b)) {
		return false
	}
	argsA, argsB := term.FunctionArguments(a), term.FunctionArguments(b)
	if (argsA == nil) != (argsB == nil) {
		return false
	}
	if argsA == nil {
		return true
	}
	na, nb := term.MemberCount(argsA), term.MemberCount(argsB)
	if na != nb {
		return false
	}
	for i := 0; i < na; i++ {
		if !Identical(term.MemberType(argsA, i), term.MemberType(argsB, i)) {
			return false
		}
	}
	return true
}
