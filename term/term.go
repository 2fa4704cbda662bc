package term

import (
	"strconv"

	"github.com/ctypealg/ctype/internal/ordered"
)

// Member is one entry of a Struct, Union, ArgList, or Enum member table.
// Struct/Union/ArgList members carry Type; Enum members carry Value instead
// (Type is nil for an enum member).
type Member struct {
	Name  string
	Type  *Term
	Value int64
}

// payload is the kind-specific shape of a Term. Its concrete dynamic type is
// the variant discriminator: exactly one of basicPayload, pointerPayload,
// arrayPayload, functionPayload, compoundPayload, or modifiedPayload.
type payload interface {
	kind() Kind
}

type basicPayload struct{ k Kind }

func (p basicPayload) kind() Kind { return p.k }

type pointerPayload struct{ referent *Term }

func (pointerPayload) kind() Kind { return Pointer }

// Array length discriminators. A complete array has length >= 0.
const (
	LengthIncomplete int64 = -1
	LengthVariable   int64 = -2
)

type arrayPayload struct {
	element *Term
	length  int64
	dep     any // dependency handle; non-nil only when length == LengthVariable
}

func (arrayPayload) kind() Kind { return Array }

type functionPayload struct {
	ret  *Term
	args *Term // an ArgList Term, or nil for an absent (old-style) parameter list
}

func (functionPayload) kind() Kind { return Function }

type compoundPayload struct {
	k        Kind // ArgList, Struct, Union, or Enum
	tag      string
	hasTag   bool
	members  *ordered.Map[string, Member]
	order    []string // member keys in declaration order, for index-based access
	complete bool
}

func (p compoundPayload) kind() Kind { return p.k }

type modifiedPayload struct {
	base  *Term
	flags ModFlag
	bits  int
}

func (modifiedPayload) kind() Kind { return Modified }

// Term is an immutable, reference-counted node of the type graph. Terms are
// only ever handled through *Term; pointer identity is meaningful (struct
// and union identity is nominal).
type Term struct {
	refcount int32
	p        payload
}

func newTerm(p payload) *Term {
	return &Term{refcount: 1, p: p}
}

// Ref increments t's reference count and returns t, for callers that wish
// to retain a term passed to a constructor (which otherwise takes
// ownership).
func (t *Term) Ref() *Term {
	t.refcount++
	return t
}

// Free releases one reference to t. When the last reference is released,
// owned children (referent, element, return+args, member table) are
// recursively released.
func (t *Term) Free() {
	t.refcount--
	if t.refcount > 0 {
		return
	}
	switch p := t.p.(type) {
	case pointerPayload:
		p.referent.Free()
	case arrayPayload:
		p.element.Free()
	case functionPayload:
		p.ret.Free()
		if p.args != nil {
			p.args.Free()
		}
	case compoundPayload:
		if p.k != Enum && p.members != nil {
			p.members.All()(func(_ string, m Member) bool {
				m.Type.Free()
				return true
			})
		}
	case modifiedPayload:
		p.base.Free()
	}
}

// Basic constructs a term of an arithmetic kind, Bool, or Void.
func Basic(k Kind) *Term {
	switch k {
	case Void, Bool, Char, SChar, Short, Int, Long, LongLong, Float, Double, LongDouble:
		return newTerm(basicPayload{k: k})
	default:
		fail("term: Basic: %s is not a basic kind", k)
		return nil
	}
}

// PointerTo constructs a pointer to t, taking ownership of t.
func PointerTo(t *Term) *Term {
	return newTerm(pointerPayload{referent: t})
}

// ArrayOf constructs a complete array of length n of element type t, taking
// ownership of t. n must be >= 0.
func ArrayOf(n int64, t *Term) *Term {
	if n < 0 {
		fail("term: ArrayOf: length %d must be >= 0", n)
	}
	return newTerm(arrayPayload{element: t, length: n})
}

// IncompleteArrayOf constructs an array of unknown length, taking ownership of t.
func IncompleteArrayOf(t *Term) *Term {
	return newTerm(arrayPayload{element: t, length: LengthIncomplete})
}

// VariableArrayOf constructs a variable-length array whose size depends on
// the opaque handle dep, taking ownership of t. dep must be non-nil.
func VariableArrayOf(t *Term, dep any) *Term {
	if dep == nil {
		fail("term: VariableArrayOf: dependency handle must not be nil")
	}
	return newTerm(arrayPayload{element: t, length: LengthVariable, dep: dep})
}

// ArgListOf constructs an argument-list term from parallel params/names
// slices, taking ownership of each params[i]. names may be nil, in which
// case every parameter is unnamed.
func ArgListOf(params []*Term, names []string) *Term {
	if names != nil && len(names) != len(params) {
		fail("term: ArgListOf: len(names)=%d != len(params)=%d", len(names), len(params))
	}
	members := ordered.New[string, Member]()
	order := make([]string, len(params))
	for i, pt := range params {
		name := ""
		if names != nil {
			name = names[i]
		}
		key := memberKey(name, i)
		order[i] = key
		if members.Set(key, Member{Name: name, Type: pt}) {
			fail("term: ArgListOf: duplicate parameter name %q", name)
		}
	}
	return newTerm(compoundPayload{k: ArgList, members: members, order: order, complete: true})
}

// memberKey gives each unnamed member a positional key so the ordered
// member table can still key every entry uniquely. Named members keep their
// name as the key; the constructors reject a duplicate name.
func memberKey(name string, i int) string {
	if name == "" {
		return "#" + strconv.Itoa(i)
	}
	return name
}

// FunctionOf constructs a function term with unnamed parameters, taking
// ownership of ret and of each element of params.
func FunctionOf(ret *Term, params []*Term) *Term {
	return functionWithArgs(ret, ArgListOf(params, nil))
}

// FunctionNamedOf constructs a function term with named parameters, taking
// ownership of ret and of each element of params.
func FunctionNamedOf(ret *Term, params []*Term, names []string) *Term {
	return functionWithArgs(ret, ArgListOf(params, names))
}

// FunctionUnprototypedOf constructs a function term with no parameter-list
// information at all (an old-style/K&R declarator), taking ownership of ret.
func FunctionUnprototypedOf(ret *Term) *Term {
	return functionWithArgs(ret, nil)
}

func functionWithArgs(ret, args *Term) *Term {
	return newTerm(functionPayload{ret: ret, args: args})
}

func newCompound(k Kind, tag string, hasTag bool, members []Member) *Term {
	p := compoundPayload{k: k, tag: tag, hasTag: hasTag}
	if members == nil {
		return newTerm(p)
	}
	m := ordered.New[string, Member]()
	order := make([]string, len(members))
	for i, mem := range members {
		key := memberKey(mem.Name, i)
		order[i] = key
		if m.Set(key, mem) {
			fail("term: %s: duplicate member name %q", k, mem.Name)
		}
	}
	p.members = m
	p.order = order
	p.complete = true
	return newTerm(p)
}

// StructOf constructs a complete struct term, taking ownership of each
// member's Type. The last member may be an incomplete array (a flexible
// array member); that is the only position an incomplete type may occupy
// inside a complete compound.
func StructOf(tag string, members []Member) *Term {
	return newCompound(Struct, tag, tag != "", members)
}

// StructIncompleteOf constructs an incomplete struct term (no member table).
func StructIncompleteOf(tag string) *Term {
	return newCompound(Struct, tag, tag != "", nil)
}

// UnionOf constructs a complete union term, taking ownership of each member's Type.
func UnionOf(tag string, members []Member) *Term {
	return newCompound(Union, tag, tag != "", members)
}

// UnionIncompleteOf constructs an incomplete union term (no member table).
func UnionIncompleteOf(tag string) *Term {
	return newCompound(Union, tag, tag != "", nil)
}

// EnumOf constructs a complete enum term from (name, value) members (each
// member's Type must be nil; its Value carries the enumerator's value).
func EnumOf(tag string, members []Member) *Term {
	return newCompound(Enum, tag, tag != "", members)
}

// EnumIncompleteOf constructs an incomplete enum term (no member table).
func EnumIncompleteOf(tag string) *Term {
	return newCompound(Enum, tag, tag != "", nil)
}
