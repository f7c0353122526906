package domain_test

import (
	"testing"

	"github.com/mrmachine/reqs/internal/core/domain"
)

func req(name, specs string) domain.Requirement {
	set, err := domain.ParseSpecifierSet(specs)
	if err != nil {
		panic(err)
	}
	return domain.Requirement{RawName: name, Specifiers: set}
}

func TestManifest_Fingerprint_Stable(t *testing.T) {
	m1 := &domain.Manifest{Requirements: []domain.Requirement{
		req("Django", ">=1.3.0"),
		req("Pygments", ">=1.4"),
	}}
	m2 := &domain.Manifest{Requirements: []domain.Requirement{
		req("Django", ">=1.3.0"),
		req("Pygments", ">=1.4"),
	}}

	if m1.Fingerprint() != m2.Fingerprint() {
		t.Error("identical manifests must share a fingerprint")
	}
}

func TestManifest_Fingerprint_SensitiveToEntries(t *testing.T) {
	base := &domain.Manifest{Requirements: []domain.Requirement{req("Django", ">=1.3.0")}}
	changed := &domain.Manifest{Requirements: []domain.Requirement{req("Django", ">=1.4.0")}}
	reordered := &domain.Manifest{Requirements: []domain.Requirement{
		req("Pygments", ">=1.4"),
		req("Django", ">=1.3.0"),
	}}
	both := &domain.Manifest{Requirements: []domain.Requirement{
		req("Django", ">=1.3.0"),
		req("Pygments", ">=1.4"),
	}}

	if base.Fingerprint() == changed.Fingerprint() {
		t.Error("changing a specifier must change the fingerprint")
	}
	if both.Fingerprint() == reordered.Fingerprint() {
		t.Error("entry order is part of the fingerprint")
	}
}

func TestManifest_Fingerprint_IgnoresComments(t *testing.T) {
	plain := &domain.Manifest{Requirements: []domain.Requirement{req("Django", ">=1.3.0")}}

	annotated := &domain.Manifest{Requirements: []domain.Requirement{req("Django", ">=1.3.0")}}
	annotated.Requirements[0].Comment = "the framework itself"
	annotated.Requirements[0].Line = 12

	if plain.Fingerprint() != annotated.Fingerprint() {
		t.Error("comments and line positions must not affect the fingerprint")
	}
}

func TestManifest_Find(t *testing.T) {
	m := &domain.Manifest{Requirements: []domain.Requirement{
		req("Django", ">=1.3.0"),
		req("django-mptt", ""),
	}}

	if got := m.Find(domain.NewName("DJANGO")); got == nil || got.RawName != "Django" {
		t.Errorf("Find(DJANGO) = %v", got)
	}
	if got := m.Find(domain.NewName("nonexistent")); got != nil {
		t.Errorf("Find(nonexistent) = %v, want nil", got)
	}
}

func TestRequirement_String(t *testing.T) {
	r := req("Django", ">=1.3.0")
	if r.String() != "Django>=1.3.0" {
		t.Errorf("String() = %q", r.String())
	}

	e := domain.Requirement{
		RawName: "django_form_designer-dev",
		Source: domain.Source{
			VCS:      "git",
			URL:      "https://github.com/philomat/django-form-designer.git",
			Editable: true,
		},
	}
	want := "-e git+https://github.com/philomat/django-form-designer.git#egg=django_form_designer-dev"
	if e.String() != want {
		t.Errorf("String() = %q, want %q", e.String(), want)
	}

	x := req("django-fluent-contents", ">=0.8")
	x.Extras = []string{"text", "code"}
	if x.String() != "django-fluent-contents[text,code]>=0.8" {
		t.Errorf("String() = %q", x.String())
	}
}

func TestLockfile_Matches(t *testing.T) {
	m := &domain.Manifest{Requirements: []domain.Requirement{req("Django", ">=1.3.0")}}
	l := &domain.Lockfile{
		Version:      domain.LockfileVersion,
		ManifestHash: m.Fingerprint(),
	}

	if !l.Matches(m.Fingerprint()) {
		t.Error("lockfile should match the manifest it was generated from")
	}
	if l.Matches("deadbeefdeadbeef") {
		t.Error("lockfile should not match a different fingerprint")
	}
}
