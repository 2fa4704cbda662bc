package abi

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ctypealg/ctype/term"
)

// memberLayout and layoutReport are exported-field snapshots of a struct or
// union's ABI layout, pretty-printed for human-readable test failure output.
type memberLayout struct {
	Name   string
	Offset uintptr
	Size   uintptr
	Align  uintptr
}

type layoutReport struct {
	Type    string
	Size    uintptr
	Align   uintptr
	Members []memberLayout
}

func buildReport(tg *Target, typeName string, t *term.Term) layoutReport {
	n := term.MemberCount(t)
	members := make([]memberLayout, n)
	for i := 0; i < n; i++ {
		mt := term.MemberType(t, i)
		ml := memberLayout{
			Name:   term.MemberName(t, i),
			Offset: tg.OffsetOfN(t, i),
			Align:  tg.Alignof(mt),
		}
		if term.IsKnownConstSize(mt) {
			ml.Size = tg.sizeofKnown(mt)
		}
		members[i] = ml
	}
	return layoutReport{Type: typeName, Size: tg.Sizeof(t), Align: tg.Alignof(t), Members: members}
}

// assertReport pretty-prints both the computed and the expected report and
// compares the two renderings, reporting a diffmatchpatch diff on mismatch.
// Comparing two renderings of the same exported-field struct (rather than a
// checked-in golden file) sidesteps pinning kr/pretty's exact output format.
func assertReport(t *testing.T, got, want layoutReport) {
	t.Helper()
	gotText := pretty.Sprint(got)
	wantText := pretty.Sprint(want)
	if gotText == wantText {
		return
	}
	dmp := diffmatchpatch.New()
	dmp.PatchMargin = 3
	diffs := dmp.DiffMain(wantText, gotText, false)
	t.Errorf("layout report for %s did not match expected:\n%s", want.Type, dmp.DiffPrettyText(diffs))
}

// TestStructLayoutReport diffs a whole layout report at once instead of
// asserting individual fields.
func TestStructLayoutReport(t *testing.T) {
	tg := lp64(t)
	s := term.StructOf("S", []term.Member{
		{Name: "a", Type: term.Basic(term.Int)},
		{Name: "b", Type: term.Basic(term.Char)},
		{Name: "c", Type: term.PointerTo(term.Basic(term.Void))},
	})
	defer s.Free()

	want := layoutReport{
		Type:  "S",
		Size:  16,
		Align: 8,
		Members: []memberLayout{
			{Name: "a", Offset: 0, Size: 4, Align: 4},
			{Name: "b", Offset: 4, Size: 1, Align: 1},
			{Name: "c", Offset: 8, Size: 8, Align: 8},
		},
	}
	assertReport(t, buildReport(tg, "S", s), want)
}

// TestBitfieldLayoutReport is the same whole-report treatment applied to a
// struct packing several bitfields into shared storage units.
func TestBitfieldLayoutReport(t *testing.T) {
	tg := lp64(t)
	b := term.StructOf("B", []term.Member{
		{Name: "a", Type: term.BitfieldOf(term.Basic(term.Int), 3)},
		{Name: "b", Type: term.BitfieldOf(term.Basic(term.Int), 5)},
		{Name: "c", Type: term.BitfieldOf(term.Basic(term.Int), 1)},
		{Name: "", Type: term.BitfieldOf(term.Basic(term.Int), 0)},
		{Name: "d", Type: term.BitfieldOf(term.Basic(term.Int), 4)},
	})
	defer b.Free()

	want := layoutReport{
		Type:  "B",
		Size:  8,
		Align: 4,
		Members: []memberLayout{
			{Name: "a", Offset: 0, Size: 4, Align: 4},
			{Name: "b", Offset: 0, Size: 4, Align: 4},
			{Name: "c", Offset: 0, Size: 4, Align: 4},
			{Name: "", Offset: 4, Size: 4, Align: 4},
			{Name: "d", Offset: 4, Size: 4, Align: 4},
		},
	}
	assertReport(t, buildReport(tg, "B", b), want)
}
