package equiv

import "github.com/ctypealg/ctype/term"

// IntPromotion applies integer promotion to t, returning a freshly owned
// term the caller must Free. t must be an unqualified, non-bitfield
// integer term; promotion is never applied to qualified types, and
// bitfield terms are rejected at this level (the caller is responsible for
// resolving a bitfield's promoted type itself).
func IntPromotion(t *term.Term) *term.Term {
	if term.IsQualified(t) {
		fail("equiv: IntPromotion: operand must be unqualified")
	}
	if term.IsBitfield(t) {
		fail("equiv: IntPromotion: bitfield operands are rejected; caller must handle")
	}
	if !term.IsInteger(t) {
		fail("equiv: IntPromotion: %s is not an integer type", term.Classify(t))
	}
	intRank := term.RankOfKind(term.Int)
	switch {
	case term.Rank(t) < intRank:
		return term.Basic(term.Int)
	case term.Rank(t) == intRank:
		if term.IsUnsigned(t) {
			return term.UnsignedOf(term.Basic(term.Int))
		}
		return term.Basic(term.Int)
	default:
		return t.Ref()
	}
}

// UsualConversion computes the usual arithmetic conversion of a and b,
// returning a freshly owned term the caller must Free. Both operands must
// be arithmetic.
func UsualConversion(a, b *term.Term) *term.Term {
	if !term.IsArithmetic(a) || !term.IsArithmetic(b) {
		fail("equiv: UsualConversion: operands must be arithmetic")
	}
	if term.IsFloat(a) || term.IsFloat(b) {
		return term.Basic(highestFloatKind(a, b))
	}
	pa := IntPromotion(term.Unqualified(a))
	pb := IntPromotion(term.Unqualified(b))
	defer pa.Free()
	defer pb.Free()

	if Identical(pa, pb) {
		return pa.Ref()
	}

	aUnsigned, bUnsigned := term.IsUnsigned(pa), term.IsUnsigned(pb)
	rankA, rankB := term.Rank(pa), term.Rank(pb)

	if aUnsigned == bUnsigned {
		if rankA >= rankB {
			return pa.Ref()
		}
		return pb.Ref()
	}

	unsigned, signed := pa, pb
	rankU, rankS := rankA, rankB
	if bUnsigned {
		unsigned, signed = pb, pa
		rankU, rankS = rankB, rankA
	}
	switch {
	case rankU >= rankS:
		return unsigned.Ref()
	case rankS > rankU:
		return signed.Ref()
	default:
		return term.UnsignedOf(signed.Ref())
	}
}

func highestFloatKind(a, b *term.Term) term.Kind {
	ra, ka := floatRank(a)
	rb, kb := floatRank(b)
	if ra == 0 && rb == 0 {
		fail("equiv: UsualConversion: neither operand is floating")
	}
	if ra >= rb {
		return ka
	}
	return kb
}

func floatRank(t *term.Term) (int, term.Kind) {
	switch term.Classify(t) {
	case term.LongDouble:
		return 3, term.LongDouble
	case term.Double:
		return 2, term.Double
	case term.Float:
		return 1, term.Float
	default:
		return 0, 0
	}
}
