package domain_test

import (
	"errors"
	"testing"

	"github.com/mrmachine/reqs/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParseSpecifier(t *testing.T) {
	sp, err := domain.ParseSpecifier(">=1.3.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.Op != domain.OpGreaterEqual {
		t.Errorf("op = %q, want >=", sp.Op)
	}
	if sp.Version.String() != "1.3.0" {
		t.Errorf("version = %q, want 1.3.0", sp.Version.String())
	}
	if sp.String() != ">=1.3.0" {
		t.Errorf("String() = %q, want >=1.3.0", sp.String())
	}
}

func TestParseSpecifier_Malformed(t *testing.T) {
	_, err := domain.ParseSpecifier("1.3.0") // missing operator
	if !errors.Is(err, domain.ErrMalformedSpecifier) {
		t.Fatalf("expected ErrMalformedSpecifier, got %v", err)
	}

	_, err = domain.ParseSpecifier(">=one.two")
	if err == nil {
		t.Fatal("expected error for bad version, got nil")
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if got := zErr.Metadata()["specifier"]; got != ">=one.two" {
		t.Errorf("expected specifier metadata, got %v", got)
	}
}

func TestParseSpecifier_CompatibleNeedsTwoSegments(t *testing.T) {
	_, err := domain.ParseSpecifier("~=2")
	if !errors.Is(err, domain.ErrMalformedSpecifier) {
		t.Fatalf("expected ErrMalformedSpecifier, got %v", err)
	}
}

func TestSpecifier_Match(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		want    bool
	}{
		{"==1.4", "1.4", true},
		{"==1.4", "1.4.0", true},
		{"==1.4", "1.4.1", false},
		{"!=1.4", "1.4.1", true},
		{">=1.3.0", "1.3.0", true},
		{">=1.3.0", "1.2.9", false},
		{">=1.3.0", "1.10", true},
		{"<=1.4", "1.4", true},
		{"<1.4", "1.4", false},
		{">1.4", "1.4.post1", false},
		{">1.4", "1.4.1", true},
		{">1.4.post1", "1.4.post2", true},
		{"<1.4", "1.4rc1", false},
		{"<1.4", "1.4.dev1", false},
		{"<1.4", "1.3.9", true},
		{"<1.4rc2", "1.4rc1", true},
		{"~=1.4.2", "1.4.9", true},
		{"~=1.4.2", "1.4.1", false},
		{"~=1.4.2", "1.5.0", false},
		{"~=1.4", "1.9", true},
		{"~=1.4", "2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec+"/"+tt.version, func(t *testing.T) {
			sp, err := domain.ParseSpecifier(tt.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sp.Match(domain.MustParseVersion(tt.version)); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.spec, tt.version, got, tt.want)
			}
		})
	}
}

func TestSpecifierSet(t *testing.T) {
	set, err := domain.ParseSpecifierSet(">=1.3,<1.6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(set))
	}
	if !set.Match(domain.MustParseVersion("1.4.2")) {
		t.Error("1.4.2 should satisfy >=1.3,<1.6")
	}
	if set.Match(domain.MustParseVersion("1.6")) {
		t.Error("1.6 should not satisfy >=1.3,<1.6")
	}
	if set.String() != ">=1.3,<1.6" {
		t.Errorf("String() = %q", set.String())
	}
}

func TestSpecifierSet_EmptyMatchesEverything(t *testing.T) {
	set, err := domain.ParseSpecifierSet("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Match(domain.MustParseVersion("0.0.1")) {
		t.Error("empty set should match any version")
	}
}
