package siteconfig

import (
	"strings"
	"testing"
)

func TestNormalizeAnchor(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Opening Hours", "opening-hours"},
		{"  Café Menu  ", "cafe-menu"},
		{"already-valid", "already-valid"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeAnchor(tc.input); got != tc.want {
			t.Errorf("NormalizeAnchor(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidateSiteSlug(t *testing.T) {
	valid := []string{"my-shop", "ab", strings.Repeat("a", 50)}
	for _, slug := range valid {
		if err := ValidateSiteSlug(slug); err != nil {
			t.Errorf("ValidateSiteSlug(%q) unexpected error: %v", slug, err)
		}
	}

	invalid := []string{"", "a", "My-Shop", "shop!", "shop space", strings.Repeat("a", 51)}
	for _, slug := range invalid {
		if err := ValidateSiteSlug(slug); err == nil {
			t.Errorf("ValidateSiteSlug(%q) expected error", slug)
		}
	}
}
