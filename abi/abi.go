// Package abi implements the ABI layout engine: size, alignment, member
// offset (with bitfield packing), and bit width, parametrised by a target
// description table mapping each basic kind, enum, and pointer to a
// (size, alignment) pair. It is built entirely on term's public inspection
// surface.
package abi

import (
	"fmt"

	"github.com/ctypealg/ctype/term"
)

// fail panics with a term.ProgrammerError, matching the fail-fast
// precondition model the core algebra uses throughout.
func fail(format string, args ...any) {
	panic(term.ProgrammerError(fmt.Sprintf(format, args...)))
}

type entry struct {
	size, align uintptr
}
