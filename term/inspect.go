package term

// Classify returns t's Kind, unwrapping one Modified layer: modifiers are
// transparent to classification, so a Modified term classifies as its
// base's kind, never as Modified itself.
func Classify(t *Term) Kind {
	if mp, ok := t.p.(modifiedPayload); ok {
		return mp.base.p.kind()
	}
	return t.p.kind()
}

// Base strips one layer of Modified, returning t's underlying base term. If
// t is not Modified, t is returned unchanged.
func Base(t *Term) *Term {
	if mp, ok := t.p.(modifiedPayload); ok {
		return mp.base
	}
	return t
}

// CategoryOf returns the coarse category used by the equivalence and ABI
// algebras, classifying through any Modified wrapper. The Atomic flag takes
// precedence over structural shape: an _Atomic struct is still CategoryAtomic,
// not CategoryStruct. Every arithmetic or void kind falls into CategorySelf.
func CategoryOf(t *Term) Category {
	if modFlags(t)&Atomic != 0 {
		return CategoryAtomic
	}
	switch Classify(Base(t)) {
	case Struct:
		return CategoryStruct
	case Union:
		return CategoryUnion
	case Pointer:
		return CategoryPointer
	case Array:
		return CategoryArray
	case Function:
		return CategoryFunction
	default:
		return CategorySelf
	}
}

func modFlags(t *Term) ModFlag {
	if mp, ok := t.p.(modifiedPayload); ok {
		return mp.flags
	}
	return 0
}

// Flags returns the full modifier flag set carried by t, or 0 if t is not
// Modified. Used by the equivalence algebra to compare qualifier sets
// exactly.
func Flags(t *Term) ModFlag { return modFlags(t) }

// IsConst reports whether t carries the Const qualifier.
func IsConst(t *Term) bool { return modFlags(t)&Const != 0 }

// IsVolatile reports whether t carries the Volatile qualifier.
func IsVolatile(t *Term) bool { return modFlags(t)&Volatile != 0 }

// IsRestrict reports whether t carries the Restrict qualifier.
func IsRestrict(t *Term) bool { return modFlags(t)&Restrict != 0 }

// IsAtomic reports whether t carries the Atomic qualifier.
func IsAtomic(t *Term) bool { return modFlags(t)&Atomic != 0 }

// IsWide reports whether t carries the Wide qualifier.
func IsWide(t *Term) bool { return modFlags(t)&Wide != 0 }

// IsUnsigned reports whether t denotes an unsigned integer type. Bool is
// always unsigned regardless of the flag; for the signed kinds (SChar,
// Short, Int, Long, LongLong) the Unsigned flag decides; every other kind
// is never reported unsigned.
func IsUnsigned(t *Term) bool {
	switch Classify(Base(t)) {
	case Bool:
		return true
	case SChar, Short, Int, Long, LongLong:
		return modFlags(t)&Unsigned != 0
	default:
		return false
	}
}

// IsSigned reports whether t is one of the signed kinds (SChar, Short, Int,
// Long, LongLong) without the Unsigned flag. Bool, Char, and Enum are never
// reported signed.
func IsSigned(t *Term) bool {
	switch Classify(Base(t)) {
	case SChar, Short, Int, Long, LongLong:
		return modFlags(t)&Unsigned == 0
	default:
		return false
	}
}

// IsComplex reports whether t carries the Complex flag.
func IsComplex(t *Term) bool { return modFlags(t)&Complex != 0 }

// IsBitfield reports whether t carries the Bitfield flag.
func IsBitfield(t *Term) bool { return modFlags(t)&Bitfield != 0 }

// IsQualified reports whether t carries any of the cv-qualifiers (Const,
// Volatile, Restrict, Wide).
func IsQualified(t *Term) bool { return modFlags(t)&qualifierFlags != 0 }

// BitfieldBits returns the declared bit width of a bitfield term, and
// whether t is in fact a bitfield.
func BitfieldBits(t *Term) (int, bool) {
	mp, ok := t.p.(modifiedPayload)
	if !ok || mp.flags&Bitfield == 0 {
		return 0, false
	}
	return mp.bits, true
}

// IsFloat reports whether t's base kind is a floating kind.
func IsFloat(t *Term) bool {
	switch Classify(Base(t)) {
	case Float, Double, LongDouble:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t's base kind is an integer kind, including
// Bool, Char, and the signed/unsigned family, and Enum.
func IsInteger(t *Term) bool {
	switch Classify(Base(t)) {
	case Bool, Char, SChar, Short, Int, Long, LongLong, Enum:
		return true
	default:
		return false
	}
}

// IsCharacter reports whether t's base kind is one of the three distinct
// character kinds (char, signed char, unsigned char is char+Unsigned).
func IsCharacter(t *Term) bool {
	switch Classify(Base(t)) {
	case Char, SChar:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether t is an integer or floating kind.
func IsArithmetic(t *Term) bool { return IsInteger(t) || IsFloat(t) }

// IsScalar reports whether t is arithmetic or a pointer.
func IsScalar(t *Term) bool { return IsArithmetic(t) || Classify(Base(t)) == Pointer }

// IsCompound reports whether t is a struct or union.
func IsCompound(t *Term) bool {
	switch Classify(Base(t)) {
	case Struct, Union:
		return true
	default:
		return false
	}
}

// IsAggregate reports whether t is an array or a struct, the kinds usable
// in an aggregate initializer. Unions are compound but not aggregate.
func IsAggregate(t *Term) bool {
	switch Classify(Base(t)) {
	case Struct, Array:
		return true
	default:
		return false
	}
}

// IsBasic reports whether t's base kind was constructed by Basic.
func IsBasic(t *Term) bool {
	switch Classify(Base(t)) {
	case Void, Bool, Char, SChar, Short, Int, Long, LongLong, Float, Double, LongDouble:
		return true
	default:
		return false
	}
}

// IsDerivedDecl reports whether t's base kind is one of the derived
// declarator kinds: pointer, array, or function.
func IsDerivedDecl(t *Term) bool {
	switch Classify(Base(t)) {
	case Pointer, Array, Function:
		return true
	default:
		return false
	}
}

// IsArrayVLA reports whether t is a variable-length array.
func IsArrayVLA(t *Term) bool {
	ap, ok := kindOf[arrayPayload](t)
	return ok && ap.length == LengthVariable
}

// IsComplete reports whether t denotes a complete type: every kind except
// Void, an incomplete array, or an incomplete struct/union/enum.
func IsComplete(t *Term) bool {
	b := Base(t)
	switch p := b.p.(type) {
	case basicPayload:
		return p.k != Void
	case arrayPayload:
		return p.length != LengthIncomplete
	case compoundPayload:
		if p.k == ArgList {
			return true
		}
		return p.complete
	default:
		return true
	}
}

// IsKnownConstSize reports whether t has a size computable without
// reference to runtime state: complete, not a VLA, and, if a struct or
// union, every member is itself known-const-size. A struct terminated by a
// flexible array member is still known-const-size; sizeof simply excludes
// the trailing incomplete array.
func IsKnownConstSize(t *Term) bool {
	b := Base(t)
	if !IsComplete(b) {
		return false
	}
	switch p := b.p.(type) {
	case arrayPayload:
		if p.length == LengthVariable {
			return false
		}
		return IsKnownConstSize(p.element)
	case compoundPayload:
		if p.k != Struct && p.k != Union {
			return true
		}
		var famKey string
		if IsStructHasFAM(b) && len(p.order) > 0 {
			famKey = p.order[len(p.order)-1]
		}
		ok := true
		p.members.All()(func(key string, m Member) bool {
			if key == famKey && famKey != "" {
				return true
			}
			ok = IsKnownConstSize(m.Type)
			return ok
		})
		return ok
	default:
		return true
	}
}

// IsStructHasFAM reports whether t is a struct whose last member is an
// incomplete array (a flexible array member).
func IsStructHasFAM(t *Term) bool {
	b := Base(t)
	cp, ok := b.p.(compoundPayload)
	if !ok || cp.k != Struct || !cp.complete || len(cp.order) == 0 {
		return false
	}
	last, ok := cp.members.GetOK(cp.order[len(cp.order)-1])
	if !ok {
		return false
	}
	ap, ok := last.Type.p.(arrayPayload)
	return ok && ap.length == LengthIncomplete
}

// PointerReferenced returns the referent of a pointer term t.
func PointerReferenced(t *Term) *Term {
	pp, ok := kindOf[pointerPayload](t)
	if !ok {
		fail("term: PointerReferenced: %s is not a pointer", Classify(Base(t)))
	}
	return pp.referent
}

// ArrayElement returns the element type of an array term t.
func ArrayElement(t *Term) *Term {
	ap, ok := kindOf[arrayPayload](t)
	if !ok {
		fail("term: ArrayElement: %s is not an array", Classify(Base(t)))
	}
	return ap.element
}

// ArrayLength returns the declared length of a complete array term t. For
// an incomplete or variable-length array, use IsComplete/IsArrayVLA first;
// ArrayLength panics on either.
func ArrayLength(t *Term) int64 {
	ap, ok := kindOf[arrayPayload](t)
	if !ok {
		fail("term: ArrayLength: %s is not an array", Classify(Base(t)))
	}
	if ap.length < 0 {
		fail("term: ArrayLength: array does not have a constant length")
	}
	return ap.length
}

// ArrayDependency returns the opaque dependency handle of a variable-length
// array term t.
func ArrayDependency(t *Term) any {
	ap, ok := kindOf[arrayPayload](t)
	if !ok || ap.length != LengthVariable {
		fail("term: ArrayDependency: %s is not a variable-length array", Classify(Base(t)))
	}
	return ap.dep
}

// FunctionReturn returns the return type of a function term t.
func FunctionReturn(t *Term) *Term {
	fp, ok := kindOf[functionPayload](t)
	if !ok {
		fail("term: FunctionReturn: %s is not a function", Classify(Base(t)))
	}
	return fp.ret
}

// FunctionArguments returns the ArgList term describing t's parameters, or
// nil if t is an unprototyped (old-style) function.
func FunctionArguments(t *Term) *Term {
	fp, ok := kindOf[functionPayload](t)
	if !ok {
		fail("term: FunctionArguments: %s is not a function", Classify(Base(t)))
	}
	return fp.args
}

func compoundOf(t *Term, op string) compoundPayload {
	cp, ok := kindOf[compoundPayload](t)
	if !ok {
		fail("term: %s: %s is not a compound type", op, Classify(Base(t)))
	}
	return cp
}

// MemberCount returns the number of members of a struct, union, arglist, or
// enum term t. An incomplete struct/union/enum has no member table and a
// count of zero; that is an ordinary answer, not an error.
func MemberCount(t *Term) int {
	cp := compoundOf(t, "MemberCount")
	if cp.members == nil {
		return 0
	}
	return cp.members.Len()
}

// MemberType returns the type of the i'th member (declaration order) of a
// struct, union, or arglist term t. It panics for an Enum term; use
// EnumValue there instead.
func MemberType(t *Term, i int) *Term {
	cp := compoundOf(t, "MemberType")
	if cp.k == Enum {
		fail("term: MemberType: enum members carry values, not types")
	}
	_, m, ok := cp.members.At(i)
	if !ok {
		fail("term: MemberType: index %d out of range", i)
	}
	return m.Type
}

// MemberName returns the name of the i'th member (declaration order) of a
// struct, union, arglist, or enum term t. The empty string means the
// member was declared unnamed.
func MemberName(t *Term, i int) string {
	cp := compoundOf(t, "MemberName")
	_, m, ok := cp.members.At(i)
	if !ok {
		fail("term: MemberName: index %d out of range", i)
	}
	return m.Name
}

// EnumValue returns the value of the i'th enumerator (declaration order) of
// an enum term t.
func EnumValue(t *Term, i int) int64 {
	cp := compoundOf(t, "EnumValue")
	if cp.k != Enum {
		fail("term: EnumValue: %s is not an enum", cp.k)
	}
	_, m, ok := cp.members.At(i)
	if !ok {
		fail("term: EnumValue: index %d out of range", i)
	}
	return m.Value
}

// CompoundTag returns the tag name of a struct, union, or enum term t, and
// whether t was declared with a tag at all.
func CompoundTag(t *Term) (string, bool) {
	cp := compoundOf(t, "CompoundTag")
	return cp.tag, cp.hasTag
}

// Rank orders the integer conversion ranks of the standard integer kinds,
// ignoring signedness, for use by the usual arithmetic conversions. Panics
// if t is not an integer kind.
func Rank(t *Term) int {
	return RankOfKind(Classify(Base(t)))
}

// RankOfKind is Rank without requiring a Term, for callers (such as the
// equivalence algebra) that only need to compare against a well-known kind
// like Int without allocating a throwaway basic term.
func RankOfKind(k Kind) int {
	switch k {
	case Bool:
		return 1
	case Char, SChar:
		return 2
	case Short:
		return 3
	case Int, Enum:
		return 4
	case Long:
		return 5
	case LongLong:
		return 6
	default:
		fail("term: RankOfKind: %s is not an integer type", k)
		return 0
	}
}

// kindOf narrows t's base payload to the variant K, saving each structural
// projection the two-step unwrap-then-assert dance.
func kindOf[K payload](t *Term) (K, bool) {
	k, ok := Base(t).p.(K)
	return k, ok
}
