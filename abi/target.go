package abi

import (
	"fmt"
	"maps"
	"runtime"
	"strings"
	"unsafe"

	"github.com/coreos/go-semver/semver"
	xsemver "golang.org/x/mod/semver"

	"github.com/ctypealg/ctype/term"
)

// Target is an immutable ABI description: a map from basic kind, Enum, and
// Pointer to (size, alignment), plus a revision used to compare target
// descriptions loaded from different sources. Tables are built once and
// never mutated; WithOverride returns a new Target.
type Target struct {
	profile  string
	revision string // "vMAJOR.MINOR.PATCH", validated by x/mod/semver
	version  semver.Version
	entries  map[term.Kind]entry
}

// NewTarget looks up one of the named built-in profiles: "host" (the
// runtime.GOARCH-derived native table), "lp64" (64-bit long/pointer),
// "ilp32" (32-bit int/long/pointer), or "wasm32" (32-bit pointers with
// 8-byte long long/double).
func NewTarget(name string) (*Target, error) {
	switch name {
	case "host":
		return hostTarget(), nil
	case "lp64":
		return builtinTarget("lp64", map[term.Kind]entry{
			term.Bool: {1, 1}, term.Char: {1, 1}, term.SChar: {1, 1},
			term.Short: {2, 2}, term.Int: {4, 4}, term.Enum: {4, 4},
			term.Long: {8, 8}, term.LongLong: {8, 8},
			term.Float: {4, 4}, term.Double: {8, 8}, term.LongDouble: {16, 16},
			term.Pointer: {8, 8},
		}), nil
	case "ilp32":
		return builtinTarget("ilp32", map[term.Kind]entry{
			term.Bool: {1, 1}, term.Char: {1, 1}, term.SChar: {1, 1},
			term.Short: {2, 2}, term.Int: {4, 4}, term.Enum: {4, 4},
			term.Long: {4, 4}, term.LongLong: {8, 8},
			term.Float: {4, 4}, term.Double: {8, 8}, term.LongDouble: {12, 4},
			term.Pointer: {4, 4},
		}), nil
	case "wasm32":
		return builtinTarget("wasm32", map[term.Kind]entry{
			term.Bool: {1, 1}, term.Char: {1, 1}, term.SChar: {1, 1},
			term.Short: {2, 2}, term.Int: {4, 4}, term.Enum: {4, 4},
			term.Long: {4, 4}, term.LongLong: {8, 8},
			term.Float: {4, 4}, term.Double: {8, 8}, term.LongDouble: {8, 8},
			term.Pointer: {4, 4},
		}), nil
	default:
		return nil, fmt.Errorf("abi: unknown target profile %q", name)
	}
}

// ParseProfile validates a profile-selector string: either one of the
// named built-ins, or a "vMAJOR.MINOR.PATCH"-shaped revision string
// (validated with x/mod/semver) naming a revision of the host profile.
func ParseProfile(selector string) (*Target, error) {
	switch selector {
	case "host", "lp64", "ilp32", "wasm32":
		return NewTarget(selector)
	}
	if !xsemver.IsValid(selector) {
		return nil, fmt.Errorf("abi: %q is neither a named profile nor a valid semver revision", selector)
	}
	tg := hostTarget()
	tg.revision = selector
	v, err := semver.NewVersion(strings.TrimPrefix(selector, "v"))
	if err != nil {
		return nil, fmt.Errorf("abi: %q: %w", selector, err)
	}
	tg.version = *v
	return tg, nil
}

func hostTarget() *Target {
	ptrSize := uintptr(unsafe.Sizeof(uintptr(0)))
	longSize := ptrSize
	if runtime.GOOS == "windows" {
		longSize = 4
	}
	return builtinTarget("host", map[term.Kind]entry{
		term.Bool: {1, 1}, term.Char: {1, 1}, term.SChar: {1, 1},
		term.Short: {2, 2}, term.Int: {4, 4}, term.Enum: {4, 4},
		term.Long: {longSize, longSize}, term.LongLong: {8, 8},
		term.Float: {4, 4}, term.Double: {8, 8}, term.LongDouble: {16, ptrSize},
		term.Pointer: {ptrSize, ptrSize},
	})
}

func builtinTarget(profile string, entries map[term.Kind]entry) *Target {
	const revision = "v1.0.0"
	v, err := semver.NewVersion(strings.TrimPrefix(revision, "v"))
	if err != nil {
		panic(err)
	}
	return &Target{profile: profile, revision: revision, version: *v, entries: entries}
}

// Entry returns the (size, align) pair registered for kind k. It panics if
// k has no entry in this table (Function and Atomic categories are never
// populated; see Sizeof/Alignof).
func (tg *Target) Entry(k term.Kind) (size, align uintptr) {
	e, ok := tg.entries[k]
	if !ok {
		fail("abi: Entry: no ABI entry for kind %s", k)
	}
	return e.size, e.align
}

// WithOverride returns a new Target identical to tg except that kind k maps
// to (size, align). tg itself is left unmodified.
func (tg *Target) WithOverride(k term.Kind, size, align uintptr) *Target {
	out := &Target{profile: tg.profile, revision: tg.revision, version: tg.version}
	out.entries = maps.Clone(tg.entries)
	out.entries[k] = entry{size: size, align: align}
	return out
}

// Version returns the semantic version of tg's profile revision.
func (tg *Target) Version() semver.Version { return tg.version }

// Compare orders tg against other by their revision strings, delegating to
// x/mod/semver's "vMAJOR.MINOR.PATCH" comparison.
func (tg *Target) Compare(other *Target) int {
	return xsemver.Compare(tg.revision, other.revision)
}

// Profile returns the name tg was constructed from ("host", "lp64", and so
// on, or "host" for a ParseProfile-derived revision).
func (tg *Target) Profile() string { return tg.profile }
