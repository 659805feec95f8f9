package releases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasUpdate(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{name: "newer minor", current: "1.0.0", latest: "1.2.0", expected: true},
		{name: "v prefix both", current: "v1.0.0", latest: "v1.2.0", expected: true},
		{name: "v prefix latest only", current: "1.0.0", latest: "v1.2.0", expected: true},
		{name: "v prefix current only", current: "v1.0.0", latest: "1.2.0", expected: true},
		{name: "same", current: "1.0.0", latest: "1.0.0", expected: false},
		{name: "same mixed prefix", current: "v1.0.0", latest: "1.0.0", expected: false},
		{name: "older", current: "2.0.0", latest: "1.0.0", expected: false},
		{name: "empty current", current: "", latest: "1.0.0", expected: false},
		{name: "empty latest", current: "1.0.0", latest: "", expected: false},
		{name: "both empty", current: "", latest: "", expected: false},
		{name: "bare v", current: "v", latest: "1.0.0", expected: false},
		{name: "newer patch", current: "1.0.0", latest: "1.0.1", expected: true},
		{name: "older patch", current: "1.0.1", latest: "1.0.0", expected: false},
		{name: "pre-release to release", current: "1.0.0-beta", latest: "1.0.0", expected: true},
		{name: "release to its pre-release", current: "1.0.0", latest: "1.0.0-beta", expected: false},
		{name: "pre-release ordering", current: "1.0.0-alpha", latest: "1.0.0-beta", expected: true},
		{name: "numeric not lexical", current: "1.9.0", latest: "1.10.0", expected: true},
		{name: "short form", current: "1.2", latest: "1.2.1", expected: true},
		{name: "short form equal", current: "1.2", latest: "1.2.0", expected: false},
		{name: "four parts newer", current: "1.0.0.1", latest: "1.0.0.2", expected: true},
		{name: "four parts older", current: "1.0.0.2", latest: "1.0.0.1", expected: false},
		{name: "whitespace", current: " 1.0.0 ", latest: "\tv1.1.0", expected: true},
		{name: "non-numeric tag", current: "1.0.0", latest: "release-1.0.0", expected: false},
		{name: "non-numeric current", current: "nightly", latest: "1.0.0", expected: false},
		{name: "pre-release to four parts", current: "1.0.0-beta", latest: "1.0.0.1", expected: true},
		{name: "four parts to its pre-release", current: "1.0.0.1", latest: "1.0.0.1-rc1", expected: false},
		{name: "four parts pre-release to release", current: "1.0.0.1-rc1", latest: "1.0.0.1", expected: true},
		{name: "four parts with build metadata", current: "1.0.0.1+build5", latest: "1.0.0.1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasUpdate(tt.current, tt.latest))
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "1.2.0", NormalizeVersion("v1.2.0"))
	assert.Equal(t, "1.2.0", NormalizeVersion("V1.2.0"))
	assert.Equal(t, "1.2.0", NormalizeVersion("1.2.0"))
	assert.Equal(t, "v1.2.0", NormalizeVersion("vv1.2.0"))
	assert.Equal(t, "", NormalizeVersion(""))
}

func TestCompareDotted(t *testing.T) {
	assert.Equal(t, 0, compareDotted("1.0", "1.0.0"))
	assert.Equal(t, 1, compareDotted("1.0.10", "1.0.9"))
	assert.Equal(t, -1, compareDotted("1.0.0.1", "1.0.0.2"))
	assert.Equal(t, 1, compareDotted("007.1", "6.1"))
	assert.Equal(t, 1, compareDotted("99999999999999999999999", "1"))
}

func TestCompareLoose(t *testing.T) {
	assert.Equal(t, 0, compareLoose("release-1.0.0", "1.0.0"))
	assert.Equal(t, 0, compareLoose("1.0.0", "latest"))
	assert.Equal(t, -1, compareLoose("1.0.0-beta", "1.0.0.1"))
	assert.Equal(t, -1, compareLoose("1.0.0.1-alpha", "1.0.0.1"))
	assert.Equal(t, 1, compareLoose("1.0.0.1-rc.2", "1.0.0.1-rc.1"))
	assert.Equal(t, 0, compareLoose("1.2.3.4+a", "1.2.3.4+b"))
}
