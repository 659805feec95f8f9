package releases

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion trims whitespace and one leading "v" or "V".
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		return v[1:]
	}
	return v
}

// HasUpdate reports whether latest is strictly newer than current.
// Both may carry a leading "v". Empty versions never produce an update.
// Pre-releases order below their release: 1.0.0-beta < 1.0.0.
func HasUpdate(current, latest string) bool {
	c := NormalizeVersion(current)
	l := NormalizeVersion(latest)
	if c == "" || l == "" {
		return false
	}
	return compareVersions(l, c) > 0
}

// compareVersions returns -1, 0 or 1. Semver ordering is used when both sides parse;
// anything else (e.g. four-part versions) falls back to compareLoose.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return compareLoose(a, b)
}

// compareLoose orders versions semver cannot parse. A version must start with a
// numeric part to be comparable; tags like "release-1.0" or "nightly" compare equal
// to everything so they never signal an update. A "-suffix" marks a pre-release,
// which orders below the same version without one.
func compareLoose(a, b string) int {
	baseA, preA := splitPrerelease(a)
	baseB, preB := splitPrerelease(b)

	if !hasNumericHead(baseA) || !hasNumericHead(baseB) {
		return 0
	}

	if c := compareDotted(baseA, baseB); c != 0 {
		return c
	}

	switch {
	case preA == preB:
		return 0
	case preA == "":
		return 1
	case preB == "":
		return -1
	}
	return compareDotted(preA, preB)
}

// splitPrerelease drops "+build" metadata and splits off a "-pre" suffix.
func splitPrerelease(v string) (base, pre string) {
	v, _, _ = strings.Cut(v, "+")
	base, pre, _ = strings.Cut(v, "-")
	return base, pre
}

func hasNumericHead(v string) bool {
	head, _, _ := strings.Cut(v, ".")
	return isDigits(head)
}

// compareDotted compares dot-separated versions part by part. Missing parts count as
// "0"; numeric parts compare numerically, anything else lexically.
func compareDotted(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}

	for i := 0; i < n; i++ {
		x, y := "0", "0"
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if c := comparePart(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func comparePart(x, y string) int {
	if isDigits(x) && isDigits(y) {
		x = strings.TrimLeft(x, "0")
		y = strings.TrimLeft(y, "0")
		if len(x) != len(y) {
			if len(x) < len(y) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(x, y)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
