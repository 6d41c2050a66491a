package version

import (
	"sort"

	"github.com/pkg/errors"
)

// Fork versions in activation order. Every version's containers carry a
// superset of the fields of the version before it.
const (
	Phase0 = iota
	Altair
	Bellatrix
	Capella
	Deneb
	Electra
)

var versionToString = map[int]string{
	Phase0:    "phase0",
	Altair:    "altair",
	Bellatrix: "bellatrix",
	Capella:   "capella",
	Deneb:     "deneb",
	Electra:   "electra",
}

// stringToVersion and allVersions are populated in init()
var stringToVersion = map[string]int{}
var allVersions []int

// ErrUnrecognizedVersionName means a string does not match the list of canonical version names.
var ErrUnrecognizedVersionName = errors.New("version name doesn't map to a known value in the enum")

// FromString translates a canonical version name to the version number.
func FromString(name string) (int, error) {
	v, ok := stringToVersion[name]
	if !ok {
		return 0, errors.Wrap(ErrUnrecognizedVersionName, name)
	}
	return v, nil
}

// String returns the canonical string form of a version.
// Unrecognized versions won't generate an error and are represented by the string "unknown version".
func String(version int) string {
	name, ok := versionToString[version]
	if !ok {
		return "unknown version"
	}
	return name
}

// All returns every known fork version in ascending order.
func All() []int {
	return allVersions
}

// Latest returns the newest known fork version.
func Latest() int {
	return allVersions[len(allVersions)-1]
}

// Next returns the version that follows v, and false when v is the latest
// or unknown.
func Next(v int) (int, bool) {
	if _, ok := versionToString[v]; !ok || v == Latest() {
		return 0, false
	}
	return v + 1, true
}

// IsKnown reports whether v is one of the enumerated versions.
func IsKnown(v int) bool {
	_, ok := versionToString[v]
	return ok
}

func init() {
	allVersions = make([]int, len(versionToString))
	i := 0
	for v, s := range versionToString {
		allVersions[i] = v
		stringToVersion[s] = v
		i++
	}
	sort.Ints(allVersions)
}
