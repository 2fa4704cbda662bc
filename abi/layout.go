package abi

import "github.com/ctypealg/ctype/term"

// Sizeof returns the size in bytes of t, which must be known-const-size
// (term.IsKnownConstSize). Complex floating types are twice the size of
// their real component. Function and Atomic-category types have no size
// under this engine and fail fast.
func (tg *Target) Sizeof(t *term.Term) uintptr {
	if !term.IsKnownConstSize(t) {
		fail("abi: Sizeof: %s is not a known-constant-size type", term.Classify(t))
	}
	return tg.sizeofKnown(t)
}

func (tg *Target) sizeofKnown(t *term.Term) uintptr {
	if term.CategoryOf(t) == term.CategoryAtomic {
		fail("abi: Sizeof: atomic types are not supported by this ABI table")
	}
	if term.IsComplex(t) {
		return 2 * tg.sizeofKnown(term.Real(t))
	}
	switch term.Classify(t) {
	case term.Union:
		return tg.maxMemberSize(t)
	case term.Struct:
		n := term.MemberCount(t)
		if n == 0 {
			return 0
		}
		last := term.MemberType(t, n-1)
		if term.IsStructHasFAM(t) {
			return tg.OffsetOfN(t, n-1)
		}
		return tg.OffsetOfN(t, n-1) + tg.sizeofKnown(last)
	case term.Array:
		return uintptr(term.ArrayLength(t)) * tg.sizeofKnown(term.ArrayElement(t))
	case term.Pointer:
		size, _ := tg.Entry(term.Pointer)
		if term.IsWide(term.PointerReferenced(t)) {
			size *= 2
		}
		return size
	case term.Function:
		fail("abi: Sizeof: function types have no size")
		return 0
	default:
		size, _ := tg.Entry(term.Classify(t))
		return size
	}
}

// Alignof returns the alignment in bytes of t. Atomic-category types are
// not representable in the table and fail fast, as in Sizeof.
func (tg *Target) Alignof(t *term.Term) uintptr {
	if term.CategoryOf(t) == term.CategoryAtomic {
		fail("abi: Alignof: atomic types are not supported by this ABI table")
	}
	switch term.Classify(t) {
	case term.Union, term.Struct:
		return tg.maxMemberAlign(t)
	case term.Array:
		return tg.Alignof(term.ArrayElement(t))
	case term.Pointer:
		_, align := tg.Entry(term.Pointer)
		return align
	case term.Function:
		fail("abi: Alignof: function types have no alignment")
		return 0
	default:
		_, align := tg.Entry(term.Classify(t))
		return align
	}
}

func (tg *Target) maxMemberSize(t *term.Term) uintptr {
	n := term.MemberCount(t)
	var max uintptr
	for i := 0; i < n; i++ {
		if s := tg.sizeofKnown(term.MemberType(t, i)); s > max {
			max = s
		}
	}
	return max
}

func (tg *Target) maxMemberAlign(t *term.Term) uintptr {
	n := term.MemberCount(t)
	var max uintptr
	for i := 0; i < n; i++ {
		if a := tg.Alignof(term.MemberType(t, i)); a > max {
			max = a
		}
	}
	return max
}

// OffsetOfN returns the byte offset of the i'th member (0-indexed,
// declaration order) of struct or union t. Unions always return 0.
//
// For structs, members are traversed in declaration order maintaining a
// running byte sum and a bitfield "remaining bits" accumulator for the
// currently open storage unit:
//
//  1. A bitfield of k>0 bits that fits in the open unit's remaining bits
//     is assigned the unit's start offset and deducts k from the
//     accumulator; it occupies zero additional storage and the running
//     sum is not advanced.
//  2. Otherwise a new unit is opened: any previously open unit's reserved
//     bytes are first folded into the running sum, the sum is padded to
//     this member's alignment, and that padded sum is the member's
//     offset. A bitfield of width 0 opens a unit that reserves no bytes
//     and cannot be reused by a later bitfield (the accumulator is not
//     reused); a bitfield of width k>0 reserves sizeof(member) bytes,
//     available to later bitfields via step 1. A non-bitfield member
//     instead commits its own sizeof(member) bytes to the sum
//     immediately.
func (tg *Target) OffsetOfN(t *term.Term, i int) uintptr {
	if term.Classify(t) == term.Union {
		return 0
	}
	if term.Classify(t) != term.Struct {
		fail("abi: OffsetOfN: %s is not a struct or union", term.Classify(t))
	}
	n := term.MemberCount(t)
	if i < 0 || i >= n {
		fail("abi: OffsetOfN: index %d out of range", i)
	}

	var sum uintptr
	var bitsRemaining uintptr
	var unitBytes uintptr

	for idx := 0; idx < n; idx++ {
		m := term.MemberType(t, idx)
		bits, isBitfield := term.BitfieldBits(m)

		if isBitfield && bits > 0 && bitsRemaining >= uintptr(bits) {
			bitsRemaining -= uintptr(bits)
			if idx == i {
				return sum
			}
			continue
		}

		sum += unitBytes
		unitBytes, bitsRemaining = 0, 0
		align := tg.Alignof(m)
		sum += (align - sum%align) % align

		if idx == i {
			return sum
		}

		if isBitfield {
			unitSize := tg.sizeofKnown(m)
			if bits == 0 {
				continue // no bytes reserved; next bitfield cannot reuse
			}
			unitBytes = unitSize
			bitsRemaining = unitSize*8 - uintptr(bits)
			continue
		}

		sum += tg.sizeofKnown(m)
	}
	fail("abi: OffsetOfN: index %d out of range", i)
	return 0
}

// OffsetOf is a by-name convenience over OffsetOfN: a linear scan of
// member names followed by delegation to OffsetOfN.
func (tg *Target) OffsetOf(t *term.Term, name string) uintptr {
	n := term.MemberCount(t)
	for i := 0; i < n; i++ {
		if term.MemberName(t, i) == name {
			return tg.OffsetOfN(t, i)
		}
	}
	fail("abi: OffsetOf: no member named %q", name)
	return 0
}

// WidthOf returns the bit width of t: the declared width for a bitfield,
// exactly 1 for Bool, otherwise sizeof(t)*8.
func (tg *Target) WidthOf(t *term.Term) uintptr {
	if bits, ok := term.BitfieldBits(t); ok {
		return uintptr(bits)
	}
	if term.Classify(t) == term.Bool {
		return 1
	}
	return tg.Sizeof(t) * 8
}
