package equiv

import (
	"github.com/ctypealg/ctype/internal/pairset"
	"github.com/ctypealg/ctype/term"
)

// Compatible reports whether a and b are compatible types: a superset of
// Identical capturing the standard's looser rule. The recursive descent
// through struct members carries a visited-pair set to cut cycles
// introduced by self-referential structs reached through a pointer member:
// once a pair has been seen on the current descent, it is assumed
// compatible (the coinductive fixpoint).
func Compatible(a, b *term.Term) bool {
	return compatibleRec(a, b, nil)
}

func compatibleRec(a, b *term.Term, seen *pairset.Frame[*term.Term]) bool {
	if Identical(a, b) {
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
	if term.Flags(a)&term.Atomic != 0 {
		// Atomic terms (both sides: flag sets already matched) get no
		// structural recursion beyond what Identical covered; only the
		// enum bridge below remains.
		return enumIntBridge(ka, kb)
	}
	switch {
	case ka == term.Pointer && kb == term.Pointer:
		// Referents need only be compatible, not identical: this is what
		// lets two independently built self-referential structs reach
		// their own tag again through a pointer member without the
		// stricter identity check failing the whole comparison.
		return compatibleRec(term.PointerReferenced(a), term.PointerReferenced(b), seen)
	case ka == term.Array && kb == term.Array:
		return compatibleArray(a, b)
	case ka == term.Function && kb == term.Function:
		return compatibleFunction(a, b, seen)
	case ka == term.Struct && kb == term.Struct:
		return compatibleStruct(a, b, seen)
	case ka == term.Union && kb == term.Union:
		return compatibleUnion(a, b)
	default:
		return enumIntBridge(ka, kb)
	}
}

// enumIntBridge is the one rule left to Atomic and Self category pairs (and
// to pairs of differing kinds) once identity has already failed: an enum
// type bridges to Int. Pointer pairs recurse on their referents instead.
func enumIntBridge(ka, kb term.Kind) bool {
	return (ka == term.Enum && kb == term.Int) || (ka == term.Int && kb == term.Enum)
}

func compatibleArray(a, b *term.Term) bool {
	if !Identical(term.ArrayElement(a), term.ArrayElement(b)) {
		return false
	}
	if term.IsKnownConstSize(a) && term.IsKnownConstSize(b) {
		return term.ArrayLength(a) == term.ArrayLength(b)
	}
	return true
}

func compatibleFunction(a, b *term.Term, seen *pairset.Frame[*term.Term]) bool {
	retA := term.Unqualified(term.FunctionReturn(a))
	retB := term.Unqualified(term.FunctionReturn(b))
	if !compatibleRec(retA, retB, seen) {
		return false
	}
	argsA, argsB := term.FunctionArguments(a), term.FunctionArguments(b)
	if argsA == nil || argsB == nil {
		return true
	}
	na, nb := term.MemberCount(argsA), term.MemberCount(argsB)
	if na != nb {
		return false
	}
	for i := 0; i < na; i++ {
		pa := term.Unqualified(term.MemberType(argsA, i))
		pb := term.Unqualified(term.MemberType(argsB, i))
		if !compatibleRec(pa, pb, seen) {
			return false
		}
	}
	return true
}

func compatibleStruct(a, b *term.Term, seen *pairset.Frame[*term.Term]) bool {
	tagA, _ := term.CompoundTag(a)
	tagB, _ := term.CompoundTag(b)
	if tagA != tagB {
		return false
	}
	if !term.IsComplete(a) && !term.IsComplete(b) {
		return true
	}
	if seen.Seen(a, b) {
		return true
	}
	seen = seen.Push(a, b)
	n := term.MemberCount(a)
	if n != term.MemberCount(b) {
		return false
	}
	for i := 0; i < n; i++ {
		if term.MemberName(a, i) != term.MemberName(b, i) {
			return false
		}
		if !compatibleRec(term.MemberType(a, i), term.MemberType(b, i), seen) {
			return false
		}
	}
	return true
}

func compatibleUnion(a, b *term.Term) bool {
	tagA, _ := term.CompoundTag(a)
	tagB, _ := term.CompoundTag(b)
	return tagA == tagB
}
