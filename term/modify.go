package term

// Modifier constructors each take ownership of t and return a term with the
// named flag set. Applying a flag that is already set is a no-op: the same
// term is returned, not a nested wrapper. BitfieldOf is the exception: it
// always builds a new term carrying the given width.
//
// Adding a flag on top of an existing Modified term yields a new Modified
// term whose base is t's original base, never Modified(Modified(x)).

// UnsignedOf sets the Unsigned flag. Meaningful only on an integer kind; not
// enforced at construction. The guard is on the flag itself, not on
// IsUnsigned: the predicate reports Bool unsigned without the flag and
// ignores the flag on non-signed kinds, but the flag still round-trips.
func UnsignedOf(t *Term) *Term {
	if modFlags(t)&Unsigned != 0 {
		return t
	}
	return modify(t, Unsigned, 0, false)
}

// ComplexOf sets the Complex flag. t must classify as a floating kind.
func ComplexOf(t *Term) *Term {
	if !IsFloat(t) {
		fail("term: ComplexOf: %s is not a floating type", Classify(t))
	}
	if IsComplex(t) {
		return t
	}
	return modify(t, Complex, 0, false)
}

// AtomicOf sets the Atomic flag.
func AtomicOf(t *Term) *Term {
	if IsAtomic(t) {
		return t
	}
	return modify(t, Atomic, 0, false)
}

// ConstOf sets the Const flag.
func ConstOf(t *Term) *Term {
	if IsConst(t) {
		return t
	}
	return modify(t, Const, 0, false)
}

// VolatileOf sets the Volatile flag.
func VolatileOf(t *Term) *Term {
	if IsVolatile(t) {
		return t
	}
	return modify(t, Volatile, 0, false)
}

// RestrictOf sets the Restrict flag. Meaningful only on pointers; not
// enforced at construction.
func RestrictOf(t *Term) *Term {
	if IsRestrict(t) {
		return t
	}
	return modify(t, Restrict, 0, false)
}

// WideOf sets the Wide flag. Meaningful only on pointers; not enforced at
// construction.
func WideOf(t *Term) *Term {
	if IsWide(t) {
		return t
	}
	return modify(t, Wide, 0, false)
}

// BitfieldOf sets the Bitfield flag with the given bit width. t must
// classify as an integer kind.
func BitfieldOf(t *Term, bits int) *Term {
	if !IsInteger(t) {
		fail("term: BitfieldOf: %s is not an integer type", Classify(t))
	}
	return modify(t, Bitfield, bits, true)
}

// modify builds the merged Modified term. If t is already Modified, the new
// term's base is t's original base (flags merged), and the wrapper t is
// consumed without its base being released: ownership of base moves
// directly into the new node.
func modify(t *Term, add ModFlag, bits int, hasBits bool) *Term {
	base := t
	flags := add
	resultBits := bits
	if mp, ok := t.p.(modifiedPayload); ok {
		base = mp.base
		flags |= mp.flags
		if !hasBits && mp.flags&Bitfield != 0 {
			resultBits = mp.bits
		}
		// One reference to the wrapper is consumed here. If that was the
		// last one, its base reference moves directly into the new node;
		// if the caller retained the wrapper, the base gains a reference
		// for the new node instead.
		t.refcount--
		if t.refcount > 0 {
			base.Ref()
		}
	}
	return newTerm(modifiedPayload{base: base, flags: flags, bits: resultBits})
}

// Unqualified strips {Const, Volatile, Restrict, Wide} from t but preserves
// {Unsigned, Complex, Atomic, Bitfield}. Unlike the modifier constructors
// above, Unqualified is a read-only projection: it borrows t and, when there
// is nothing to strip, returns t (or t's base) directly rather than
// allocating a new wrapper.
func Unqualified(t *Term) *Term {
	mp, ok := t.p.(modifiedPayload)
	if !ok || mp.flags&qualifierFlags == 0 {
		return t
	}
	remaining := mp.flags &^ qualifierFlags
	if remaining == 0 {
		return mp.base
	}
	bits := 0
	if remaining&Bitfield != 0 {
		bits = mp.bits
	}
	return newTerm(modifiedPayload{base: mp.base, flags: remaining, bits: bits})
}

// Real returns the non-complex version of the complex floating term t. t
// must classify as a floating kind.
func Real(t *Term) *Term {
	if !IsFloat(t) {
		fail("term: Real: %s is not a floating type", Classify(t))
	}
	mp, ok := t.p.(modifiedPayload)
	if !ok || mp.flags&Complex == 0 {
		return t
	}
	remaining := mp.flags &^ Complex
	if remaining == 0 {
		return mp.base
	}
	return newTerm(modifiedPayload{base: mp.base, flags: remaining, bits: mp.bits})
}
