package abi

import (
	"testing"

	"github.com/ctypealg/ctype/term"
)

func lp64(t *testing.T) *Target {
	t.Helper()
	tg, err := NewTarget("lp64")
	if err != nil {
		t.Fatalf("NewTarget(lp64): %v", err)
	}
	return tg
}

// 32-bit int, 8-byte pointer target.
func TestSimpleStructLayout(t *testing.T) {
	tg := lp64(t)
	s := term.StructOf("S", []term.Member{
		{Name: "a", Type: term.Basic(term.Int)},
		{Name: "b", Type: term.Basic(term.Char)},
		{Name: "c", Type: term.PointerTo(term.Basic(term.Void))},
	})
	defer s.Free()

	cases := []struct {
		name string
		want uintptr
	}{
		{"a", 0}, {"b", 4}, {"c", 8},
	}
	for _, c := range cases {
		if got := tg.OffsetOf(s, c.name); got != c.want {
			t.Errorf("OffsetOf(%s) = %d, want %d", c.name, got, c.want)
		}
	}
	if got := tg.Sizeof(s); got != 16 {
		t.Errorf("Sizeof(S) = %d, want 16", got)
	}
	if got := tg.Alignof(s); got != 8 {
		t.Errorf("Alignof(S) = %d, want 8", got)
	}
}

func TestFlexibleArrayMemberSize(t *testing.T) {
	tg := lp64(t)
	v := term.StructOf("V", []term.Member{
		{Name: "n", Type: term.Basic(term.Int)},
		{Name: "data", Type: term.IncompleteArrayOf(term.Basic(term.Char))},
	})
	defer v.Free()

	if !term.IsStructHasFAM(v) {
		t.Fatal("IsStructHasFAM(V) should be true")
	}
	if !term.IsKnownConstSize(v) {
		t.Fatal("IsKnownConstSize(V) should be true")
	}
	if got := tg.Sizeof(v); got != 4 {
		t.Fatalf("Sizeof(V) = %d, want 4 (excludes the trailing array)", got)
	}
}

func TestBitfieldPacking(t *testing.T) {
	tg := lp64(t)
	b := term.StructOf("B", []term.Member{
		{Name: "a", Type: term.BitfieldOf(term.Basic(term.Int), 3)},
		{Name: "b", Type: term.BitfieldOf(term.Basic(term.Int), 5)},
		{Name: "c", Type: term.BitfieldOf(term.Basic(term.Int), 1)},
		{Name: "", Type: term.BitfieldOf(term.Basic(term.Int), 0)},
		{Name: "d", Type: term.BitfieldOf(term.Basic(term.Int), 4)},
	})
	defer b.Free()

	for i, want := range []uintptr{0, 0, 0} {
		if got := tg.OffsetOfN(b, i); got != want {
			t.Errorf("OffsetOfN(b, %d) = %d, want %d", i, got, want)
		}
	}
	if got := tg.OffsetOfN(b, 4); got != 4 {
		t.Errorf("OffsetOfN(d) = %d, want sizeof(unsigned) = 4", got)
	}
}

func TestUnionOffsetsAreAlwaysZero(t *testing.T) {
	tg := lp64(t)
	u := term.UnionOf("U", []term.Member{
		{Name: "i", Type: term.Basic(term.Int)},
		{Name: "d", Type: term.Basic(term.Double)},
	})
	defer u.Free()

	for i := 0; i < term.MemberCount(u); i++ {
		if got := tg.OffsetOfN(u, i); got != 0 {
			t.Errorf("union member %d offset = %d, want 0", i, got)
		}
	}
	if got := tg.Sizeof(u); got != 8 {
		t.Errorf("Sizeof(U) = %d, want 8 (max member size)", got)
	}
}

func TestWidthOfBitfieldAndBool(t *testing.T) {
	tg := lp64(t)
	bf := term.BitfieldOf(term.Basic(term.Int), 5)
	defer bf.Free()
	if got := tg.WidthOf(bf); got != 5 {
		t.Errorf("WidthOf(bitfield) = %d, want 5", got)
	}
	bl := term.Basic(term.Bool)
	defer bl.Free()
	if got := tg.WidthOf(bl); got != 1 {
		t.Errorf("WidthOf(Bool) = %d, want 1", got)
	}
}

func TestSizeofAtomicFails(t *testing.T) {
	tg := lp64(t)
	a := term.AtomicOf(term.Basic(term.Int))
	defer a.Free()
	defer func() {
		if recover() == nil {
			t.Fatal("Sizeof on an atomic type did not panic")
		}
	}()
	tg.Sizeof(a)
}

func TestNestedStructLayout(t *testing.T) {
	tg := lp64(t)
	inner := term.StructOf("inner", []term.Member{
		{Name: "x", Type: term.Basic(term.Char)},
		{Name: "y", Type: term.Basic(term.Long)},
	})
	outer := term.StructOf("outer", []term.Member{
		{Name: "flag", Type: term.Basic(term.Char)},
		{Name: "in", Type: inner},
	})
	defer outer.Free()

	if got := tg.Sizeof(inner); got != 16 {
		t.Errorf("Sizeof(inner) = %d, want 16", got)
	}
	if got := tg.OffsetOf(outer, "in"); got != 8 {
		t.Errorf("OffsetOf(in) = %d, want 8 (padded to inner's alignment)", got)
	}
	if got := tg.Alignof(outer); got != 8 {
		t.Errorf("Alignof(outer) = %d, want 8", got)
	}
}

func TestAlignofArrayIsElementAlign(t *testing.T) {
	tg := lp64(t)
	arr := term.ArrayOf(3, term.Basic(term.Double))
	defer arr.Free()
	if got := tg.Alignof(arr); got != 8 {
		t.Errorf("Alignof(double[3]) = %d, want 8", got)
	}
	if got := tg.Sizeof(arr); got != 24 {
		t.Errorf("Sizeof(double[3]) = %d, want 24", got)
	}
}

func TestSizeofComplexDoublesReal(t *testing.T) {
	tg := lp64(t)
	c := term.ComplexOf(term.Basic(term.Double))
	defer c.Free()
	if got := tg.Sizeof(c); got != 16 {
		t.Errorf("Sizeof(double _Complex) = %d, want 16", got)
	}
}

func TestSizeofWidePointerDoubles(t *testing.T) {
	tg := lp64(t)
	p := term.PointerTo(term.WideOf(term.Basic(term.Char)))
	defer p.Free()
	if got := tg.Sizeof(p); got != 16 {
		t.Errorf("Sizeof(wide pointer) = %d, want 16 (two pointer slots)", got)
	}
}

func TestOffsetsRespectMemberAlignment(t *testing.T) {
	tg := lp64(t)
	s := term.StructOf("mix", []term.Member{
		{Name: "c", Type: term.Basic(term.Char)},
		{Name: "s", Type: term.Basic(term.Short)},
		{Name: "d", Type: term.Basic(term.Double)},
		{Name: "c2", Type: term.Basic(term.Char)},
		{Name: "p", Type: term.PointerTo(term.Basic(term.Char))},
	})
	defer s.Free()

	n := term.MemberCount(s)
	for i := 0; i < n; i++ {
		m := term.MemberType(s, i)
		if off, al := tg.OffsetOfN(s, i), tg.Alignof(m); off%al != 0 {
			t.Errorf("member %d: offset %d not a multiple of its alignment %d", i, off, al)
		}
	}
	last := term.MemberType(s, n-1)
	if size, min := tg.Sizeof(s), tg.OffsetOfN(s, n-1)+tg.Sizeof(last); size < min {
		t.Errorf("Sizeof = %d, want at least last offset plus last size = %d", size, min)
	}
}

func TestTargetCompareAndVersion(t *testing.T) {
	a := lp64(t)
	b := lp64(t)
	if a.Compare(b) != 0 {
		t.Fatal("two lp64 targets built from the same revision should compare equal")
	}
	if a.Version().String() != "1.0.0" {
		t.Fatalf("Version() = %s, want 1.0.0", a.Version().String())
	}
}

func TestWithOverrideLeavesOriginalUnchanged(t *testing.T) {
	tg := lp64(t)
	custom := tg.WithOverride(term.Long, 4, 4)
	size, align := tg.Entry(term.Long)
	if size != 8 || align != 8 {
		t.Fatal("WithOverride must not mutate the receiver")
	}
	size, align = custom.Entry(term.Long)
	if size != 4 || align != 4 {
		t.Fatal("WithOverride did not apply to the returned table")
	}
}
