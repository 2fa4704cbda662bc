// Package term implements the type representation, constructors, and
// inspection primitives of the type algebra. A Term is
// an immutable, reference-counted node of a possibly cyclic type graph, one
// of the closed set of Kinds below. Terms are never mutated after
// construction except for the refcount maintained by Ref and Free.
//
// The package is pure: no I/O, no global mutable state beyond a term's own
// refcount, no recoverable error path. Violated preconditions panic with a
// [ProgrammerError].
package term

import "fmt"

// Kind is the primary discriminator of a Term, drawn from a closed set.
type Kind int

const (
	Void Kind = iota
	Bool
	Char
	SChar
	Short
	Int
	Long
	LongLong
	Float
	Double
	LongDouble
	Enum
	Pointer
	Array
	Function
	ArgList
	Struct
	Union
	Modified
)

var kindNames = [...]string{
	Void: "void", Bool: "bool", Char: "char", SChar: "signed char",
	Short: "short", Int: "int", Long: "long", LongLong: "long long",
	Float: "float", Double: "double", LongDouble: "long double",
	Enum: "enum", Pointer: "pointer", Array: "array", Function: "function",
	ArgList: "arglist", Struct: "struct", Union: "union", Modified: "modified",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Category is a coarser grouping used by the equivalence and ABI algebras.
type Category int

const (
	CategoryStruct Category = iota
	CategoryUnion
	CategoryPointer
	CategoryArray
	CategoryFunction
	CategoryAtomic
	CategorySelf
)

var categoryNames = [...]string{
	CategoryStruct: "struct", CategoryUnion: "union", CategoryPointer: "pointer",
	CategoryArray: "array", CategoryFunction: "function", CategoryAtomic: "atomic",
	CategorySelf: "self",
}

func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ModFlag is a bit in the modifier flag set carried by a Modified term.
type ModFlag uint16

const (
	Unsigned ModFlag = 1 << iota
	Complex
	Const
	Volatile
	Restrict
	Atomic
	Bitfield
	Wide
)

// qualifierFlags is the subset of ModFlag stripped by Unqualified.
const qualifierFlags = Const | Volatile | Restrict | Wide

// ProgrammerError is the panic value raised when a core operation's
// precondition is violated. The library distinguishes programmer errors
// (fail fast, no recovery) from representable absences (ordinary values
// reported via inspectors such as IsComplete and FunctionArguments).
type ProgrammerError string

func (e ProgrammerError) Error() string { return string(e) }

func fail(format string, args ...any) {
	panic(ProgrammerError(fmt.Sprintf(format, args...)))
}
