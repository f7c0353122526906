package domain

import (
	"strings"
	"unique"
)

// Name is a canonical package name backed by a unique.Handle.
// Manifests, caches and graphs repeat the same names many times, so the
// canonical form is interned once and compared by handle.
type Name struct {
	h unique.Handle[string]
}

// NewName canonicalizes and interns a package name. Registry names are
// case-insensitive and treat runs of "-", "_" and "." as equivalent, so
// "Django_CMS" and "django.cms" intern to the same handle.
func NewName(raw string) Name {
	return Name{h: unique.Make(canonicalizeName(raw))}
}

func canonicalizeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if r == '-' || r == '_' || r == '.' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// String returns the canonical name.
func (n Name) String() string {
	var zero unique.Handle[string]
	if n.h == zero {
		return ""
	}
	return n.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	n.h = unique.Make(canonicalizeName(string(text)))
	return nil
}
