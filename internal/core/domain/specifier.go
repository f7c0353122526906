package domain

import (
	"errors"
	"strings"

	"go.trai.ch/zerr"
)

// SpecifierOp is a version comparison operator.
type SpecifierOp string

const (
	OpEqual        SpecifierOp = "=="
	OpNotEqual     SpecifierOp = "!="
	OpGreaterEqual SpecifierOp = ">="
	OpLessEqual    SpecifierOp = "<="
	OpGreater      SpecifierOp = ">"
	OpLess         SpecifierOp = "<"
	OpCompatible   SpecifierOp = "~="
)

// specifierOps is ordered longest-first so that ">=" is matched before ">".
var specifierOps = []SpecifierOp{
	OpCompatible, OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual, OpGreater, OpLess,
}

// Specifier is a single version constraint, e.g. ">=1.3.0".
type Specifier struct {
	Op      SpecifierOp
	Version Version
}

// ParseSpecifier parses one "op version" clause.
func ParseSpecifier(s string) (Specifier, error) {
	s = strings.TrimSpace(s)
	for _, op := range specifierOps {
		rest, found := strings.CutPrefix(s, string(op))
		if !found {
			continue
		}
		v, err := ParseVersion(rest)
		if err != nil {
			// Join so callers can match either the specifier or the
			// underlying version sentinel.
			err = zerr.With(errors.Join(ErrMalformedSpecifier, err), "specifier", s)
			return Specifier{}, zerr.With(err, "version", strings.TrimSpace(rest))
		}
		if op == OpCompatible && len(v.Release) < 2 {
			err := zerr.With(ErrMalformedSpecifier, "specifier", s)
			return Specifier{}, zerr.With(err, "reason", "compatible-release requires at least two release segments")
		}
		return Specifier{Op: op, Version: v}, nil
	}
	return Specifier{}, zerr.With(ErrMalformedSpecifier, "specifier", s)
}

// Match reports whether the candidate version satisfies the specifier.
func (sp Specifier) Match(v Version) bool {
	c := v.Compare(sp.Version)
	switch sp.Op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpGreaterEqual:
		return c >= 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		// Exclusive comparison: a post-release of the boundary's release is
		// not "greater" unless the boundary itself is a post-release.
		if v.Post >= 0 && sp.Version.Post < 0 && compareRelease(v.Release, sp.Version.Release) == 0 {
			return false
		}
		return c > 0
	case OpLess:
		// Likewise "<" does not admit pre-releases of the boundary's release.
		if v.IsPreRelease() && !sp.Version.IsPreRelease() && compareRelease(v.Release, sp.Version.Release) == 0 {
			return false
		}
		return c < 0
	case OpCompatible:
		return c >= 0 && samePrefix(sp.Version.Release, v.Release)
	}
	return false
}

// samePrefix reports whether candidate shares all but the last release
// segment of the reference, i.e. ~=1.4.2 pins the 1.4 series.
func samePrefix(ref, candidate []int) bool {
	for i := range len(ref) - 1 {
		var cv int
		if i < len(candidate) {
			cv = candidate[i]
		}
		if cv != ref[i] {
			return false
		}
	}
	return true
}

// String renders the specifier in manifest syntax.
func (sp Specifier) String() string {
	return string(sp.Op) + sp.Version.String()
}

// SpecifierSet is the conjunction of zero or more specifiers.
// An empty set matches every version.
type SpecifierSet []Specifier

// ParseSpecifierSet parses a comma-joined specifier list, e.g. ">=1.3,<1.6".
func ParseSpecifierSet(s string) (SpecifierSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	set := make(SpecifierSet, 0, len(parts))
	for _, part := range parts {
		sp, err := ParseSpecifier(part)
		if err != nil {
			return nil, err
		}
		set = append(set, sp)
	}
	return set, nil
}

// Match reports whether the version satisfies every specifier in the set.
func (set SpecifierSet) Match(v Version) bool {
	for _, sp := range set {
		if !sp.Match(v) {
			return false
		}
	}
	return true
}

// String renders the set in manifest syntax.
func (set SpecifierSet) String() string {
	parts := make([]string, len(set))
	for i, sp := range set {
		parts[i] = sp.String()
	}
	return strings.Join(parts, ",")
}
