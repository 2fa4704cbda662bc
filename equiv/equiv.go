// Package equiv implements the equivalence algebra over type terms:
// identity, compatibility (with cycle-aware struct recursion), composite
// construction, integer promotion, the usual arithmetic conversions, and
// modifiability. It is built entirely on term's public inspection surface;
// it never reaches into term's unexported payload fields.
package equiv

import (
	"fmt"

	"github.com/ctypealg/ctype/term"
)

// fail panics with a term.ProgrammerError, matching the fail-fast
// precondition model the core algebra uses throughout.
func fail(format string, args ...any) {
	panic(term.ProgrammerError(fmt.Sprintf(format, args...)))
}
