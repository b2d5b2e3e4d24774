package theme

import (
	"testing"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

func TestGenerateTypographyVariablesDefaults(t *testing.T) {
	vars := GenerateTypographyVariables(siteconfig.TypographyConfig{})

	if got := vars["--sb-font-hero"]; got != "clamp(44px, 5vw, 64px)" {
		t.Fatalf("unexpected hero size %q", got)
	}
	if got := vars["--sb-font-body"]; got != "clamp(16px, 1.5vw, 18px)" {
		t.Fatalf("unexpected body size %q", got)
	}
	if len(vars) != 7 {
		t.Fatalf("expected 7 font variables, got %d", len(vars))
	}
}

func TestGenerateTypographyVariablesUnknownScaleUsesStandard(t *testing.T) {
	standard := GenerateTypographyVariables(siteconfig.TypographyConfig{})
	unknown := GenerateTypographyVariables(siteconfig.TypographyConfig{
		DisplayScale: "enormous",
		TextScale:    "microscopic",
	})

	for key, want := range standard {
		if unknown[key] != want {
			t.Fatalf("unknown scales fall back to standard: %s = %q, want %q", key, unknown[key], want)
		}
	}
}

func TestDisplayScaleMultiplier(t *testing.T) {
	cases := map[string]float64{
		"compact":    0.85,
		"standard":   1,
		"expressive": 1.15,
		"dramatic":   1.3,
		"":           1,
		"mystery":    1,
	}
	for name, want := range cases {
		if got := DisplayScaleMultiplier(name); got != want {
			t.Errorf("DisplayScaleMultiplier(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTextScaleMultiplier(t *testing.T) {
	cases := map[string]float64{
		"compact":     0.9,
		"standard":    1,
		"comfortable": 1.1,
		"unknown":     1,
	}
	for name, want := range cases {
		if got := TextScaleMultiplier(name); got != want {
			t.Errorf("TextScaleMultiplier(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestAdaptiveTitlesEnabledDefaultsTrue(t *testing.T) {
	if !AdaptiveTitlesEnabled(siteconfig.TypographyConfig{}) {
		t.Fatal("adaptive titles default to enabled")
	}
	disabled := false
	if AdaptiveTitlesEnabled(siteconfig.TypographyConfig{AdaptiveTitles: &disabled}) {
		t.Fatal("explicit false must disable adaptive titles")
	}
}
