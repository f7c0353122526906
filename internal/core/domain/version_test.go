package domain_test

import (
	"errors"
	"testing"

	"github.com/mrmachine/reqs/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		release []int
		preTag  string
		preNum  int
		post    int
		dev     int
	}{
		{in: "1.3.0", release: []int{1, 3, 0}, post: -1, dev: -1},
		{in: "1.4", release: []int{1, 4}, post: -1, dev: -1},
		{in: "2", release: []int{2}, post: -1, dev: -1},
		{in: "1.4b1", release: []int{1, 4}, preTag: "b", preNum: 1, post: -1, dev: -1},
		{in: "1.0rc2", release: []int{1, 0}, preTag: "rc", preNum: 2, post: -1, dev: -1},
		{in: "1.0c1", release: []int{1, 0}, preTag: "rc", preNum: 1, post: -1, dev: -1},
		{in: "1.2.post3", release: []int{1, 2}, post: 3, dev: -1},
		{in: "1.2.dev4", release: []int{1, 2}, post: -1, dev: 4},
		{in: "1.0a1.dev1", release: []int{1, 0}, preTag: "a", preNum: 1, post: -1, dev: 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := domain.ParseVersion(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(v.Release) != len(tt.release) {
				t.Fatalf("release = %v, want %v", v.Release, tt.release)
			}
			for i := range tt.release {
				if v.Release[i] != tt.release[i] {
					t.Errorf("release = %v, want %v", v.Release, tt.release)
				}
			}
			if v.PreTag != tt.preTag || (tt.preTag != "" && v.PreNum != tt.preNum) {
				t.Errorf("pre = %q %d, want %q %d", v.PreTag, v.PreNum, tt.preTag, tt.preNum)
			}
			if v.Post != tt.post {
				t.Errorf("post = %d, want %d", v.Post, tt.post)
			}
			if v.Dev != tt.dev {
				t.Errorf("dev = %d, want %d", v.Dev, tt.dev)
			}
			if v.String() != tt.in {
				t.Errorf("String() = %q, want %q", v.String(), tt.in)
			}
		})
	}
}

func TestParseVersion_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1.x", "1.0-final", ">=1.0"} {
		t.Run(in, func(t *testing.T) {
			_, err := domain.ParseVersion(in)
			if err == nil {
				t.Fatalf("expected error for %q, got nil", in)
			}
			if !errors.Is(err, domain.ErrMalformedVersion) {
				t.Errorf("expected ErrMalformedVersion, got %v", err)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	// Ascending order; every version must sort strictly before the next.
	ordered := []string{
		"0.9",
		"1.0.dev1",
		"1.0a1.dev1",
		"1.0a1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0.post1",
		"1.0.1",
		"1.3.0",
		"1.4",
		"2.0",
	}

	for i := range ordered {
		for j := range ordered {
			a := domain.MustParseVersion(ordered[i])
			b := domain.MustParseVersion(ordered[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("Compare(%q, %q) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
}

func TestVersion_Compare_PaddedRelease(t *testing.T) {
	a := domain.MustParseVersion("1.3")
	b := domain.MustParseVersion("1.3.0")
	if a.Compare(b) != 0 {
		t.Errorf("expected 1.3 == 1.3.0")
	}
}

func TestVersion_IsPreRelease(t *testing.T) {
	if domain.MustParseVersion("1.0").IsPreRelease() {
		t.Error("1.0 should not be a pre-release")
	}
	if !domain.MustParseVersion("1.0b2").IsPreRelease() {
		t.Error("1.0b2 should be a pre-release")
	}
	if !domain.MustParseVersion("1.0.dev1").IsPreRelease() {
		t.Error("1.0.dev1 should be a pre-release")
	}
}
