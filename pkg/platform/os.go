// SPDX-License-Identifier: MPL-2.0

package platform

import "slices"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// FamilyUnsupported is returned for operating systems that are neither
	// unix-like nor Windows (plan9, js, wasip1, ...).
	FamilyUnsupported Family = ""
	// FamilyUnix covers every GOOS matched by the "unix" build constraint.
	FamilyUnix Family = "unix"
	// FamilyWindows is Windows.
	FamilyWindows Family = "windows"
)

// Family is the operating system family of a GOOS value.
type Family string

// unixOperatingSystems mirrors the GOOS list of the "unix" build constraint.
var unixOperatingSystems = []string{
	"aix", "android", Darwin, "dragonfly", "freebsd", "hurd", "illumos",
	"ios", Linux, "netbsd", "openbsd", "solaris",
}

// FamilyOf classifies a GOOS value.
func FamilyOf(goos string) Family {
	switch {
	case goos == Windows:
		return FamilyWindows
	case slices.Contains(unixOperatingSystems, goos):
		return FamilyUnix
	default:
		return FamilyUnsupported
	}
}

// String returns the string representation of the Family.
func (f Family) String() string { return string(f) }
