package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// WheelSuffix is the file extension every archive handled by wheelsync carries.
	WheelSuffix = ".whl"

	// WheelGlob matches every archive in a directory.
	WheelGlob = "*" + WheelSuffix

	nameSeparator = "-"
)

// Wheel is a binary package archive identified only by its file name,
// `<package>-<version>-<tags...>.whl`. Contents are never inspected.
type Wheel struct {
	Path    string // Path relative to the reconciled directory
	Package string // Text before the first "-"
	Version string // Text between the first and second "-", may be empty
}

// IsWheel reports whether the given path names a wheel archive.
func IsWheel(p string) bool {
	return strings.HasSuffix(p, WheelSuffix)
}

// ParseWheel splits a wheel file name into its package and version parts.
// A name without any "-" yields the whole base name (minus the suffix) as
// package and an empty version.
func ParseWheel(p string) Wheel {
	pkg, rest, found := strings.Cut(p, nameSeparator)
	if !found {
		return Wheel{Path: p, Package: strings.TrimSuffix(p, WheelSuffix)}
	}

	version, _, _ := strings.Cut(strings.TrimSuffix(rest, WheelSuffix), nameSeparator)
	return Wheel{Path: p, Package: pkg, Version: version}
}

// NormalizedPackage is the lower-cased package name used to group duplicates.
func (w Wheel) NormalizedPackage() string {
	return strings.ToLower(w.Package)
}

// CandidatePattern is the glob matching every wheel of the same package.
// Glob meta characters in the package name are escaped.
func (w Wheel) CandidatePattern() string {
	return escapeGlob(w.Package) + nameSeparator + WheelGlob
}

// FilterWheels keeps only wheel paths, preserving order.
func FilterWheels(paths []string) []string {
	wheels := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsWheel(p) {
			wheels = append(wheels, p)
		}
	}
	return wheels
}

// CompareVersions compares two wheel versions using semantic versioning.
// ok is false when either version is not a valid semantic version.
func CompareVersions(a, b string) (result int, ok bool) {
	va, vb := "v"+a, "v"+b
	if !semver.IsValid(va) || !semver.IsValid(vb) {
		return 0, false
	}
	return semver.Compare(va, vb), true
}

func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
