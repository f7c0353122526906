package domain

import (
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a parsed package version in the dotted-release form used by
// Python package registries: a numeric release (e.g. "1.3.0") optionally
// followed by a pre-release tag ("a", "b", "c" or "rc"), a ".post" segment
// and a ".dev" segment.
type Version struct {
	// Release holds the numeric release segments, e.g. [1, 3, 0].
	Release []int

	// PreTag is the pre-release tag ("a", "b" or "rc"), empty for final releases.
	PreTag string
	// PreNum is the pre-release number, valid only when PreTag is set.
	PreNum int

	// Post is the post-release number, -1 when absent.
	Post int
	// Dev is the development-release number, -1 when absent.
	Dev int

	raw string
}

// ParseVersion parses a version string.
// Returns ErrMalformedVersion if the string does not follow the release form.
func ParseVersion(s string) (Version, error) {
	v := Version{Post: -1, Dev: -1, raw: strings.TrimSpace(s)}
	rest := strings.ToLower(v.raw)
	if rest == "" {
		return Version{}, zerr.With(ErrMalformedVersion, "version", s)
	}

	rest, ok := v.parseRelease(rest)
	if !ok {
		return Version{}, zerr.With(ErrMalformedVersion, "version", s)
	}

	rest = v.parsePre(rest)
	rest = v.parseSuffix(rest, "post", &v.Post)
	rest = v.parseSuffix(rest, "dev", &v.Dev)

	if rest != "" {
		return Version{}, zerr.With(zerr.With(ErrMalformedVersion, "version", s), "trailing", rest)
	}
	return v, nil
}

// MustParseVersion is a test helper that panics on malformed input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Version) parseRelease(s string) (string, bool) {
	for {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 {
			return s, false
		}
		n, err := strconv.Atoi(s[:i])
		if err != nil {
			return s, false
		}
		v.Release = append(v.Release, n)
		s = s[i:]

		// Another numeric segment follows only after a dot.
		if len(s) >= 2 && s[0] == '.' && s[1] >= '0' && s[1] <= '9' {
			s = s[1:]
			continue
		}
		return s, true
	}
}

func (v *Version) parsePre(s string) string {
	for _, tag := range []string{"rc", "a", "b", "c"} {
		rest, found := strings.CutPrefix(s, tag)
		if !found {
			continue
		}
		if tag == "c" {
			tag = "rc" // "c" is a legacy spelling of the release candidate tag
		}
		v.PreTag = tag
		v.PreNum, rest = cutNumber(rest)
		return rest
	}
	return s
}

func (v *Version) parseSuffix(s, name string, dst *int) string {
	rest, found := strings.CutPrefix(s, "."+name)
	if !found {
		return s
	}
	*dst, rest = cutNumber(rest)
	return rest
}

func cutNumber(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// IsPreRelease reports whether the version carries a pre-release or dev segment.
func (v Version) IsPreRelease() bool {
	return v.PreTag != "" || v.Dev >= 0
}

// preRank orders the phase of a version within the same release:
// dev-only < a < b < rc < final.
func (v Version) preRank() int {
	switch v.PreTag {
	case "a":
		return 1
	case "b":
		return 2
	case "rc":
		return 3
	}
	if v.Dev >= 0 {
		return 0
	}
	return 4
}

// Compare returns -1, 0 or 1 comparing v against o.
func (v Version) Compare(o Version) int {
	if c := compareRelease(v.Release, o.Release); c != 0 {
		return c
	}
	if c := cmpInt(v.preRank(), o.preRank()); c != 0 {
		return c
	}
	if c := cmpInt(v.PreNum, o.PreNum); c != 0 {
		return c
	}
	if c := cmpInt(v.Post, o.Post); c != 0 {
		return c
	}
	// A dev segment sorts before the same version without one.
	return cmpInt(devKey(v.Dev), devKey(o.Dev))
}

func devKey(dev int) int {
	if dev < 0 {
		return math.MaxInt
	}
	return dev
}

func compareRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := range n {
		// Missing segments compare as zero, so 1.3 == 1.3.0.
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
