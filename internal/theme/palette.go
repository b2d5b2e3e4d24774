package theme

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Palette is the fully resolved accent color set for one color mode.
type Palette struct {
	Brand         string
	BrandHover    string
	BrandContrast string
	Accent        string
	Neutral       string
}

// fallbackAccent is used whenever the accent cannot be resolved; the fallback
// must be observable through a diagnostic, never an error.
const fallbackAccent = "blue"

const lightnessStep = 0.10

// namedPalettes holds the fixed table of named accents, each with distinct
// light and dark variants.
var namedPalettes = map[string]map[siteconfig.ColorMode]Palette{
	"blue": {
		siteconfig.ModeLight: {Brand: "#2563eb", BrandHover: "#1d4ed8", BrandContrast: "#ffffff", Accent: "#60a5fa", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#3b82f6", BrandHover: "#60a5fa", BrandContrast: "#ffffff", Accent: "#1d4ed8", Neutral: "#9ca3af"},
	},
	"green": {
		siteconfig.ModeLight: {Brand: "#16a34a", BrandHover: "#15803d", BrandContrast: "#ffffff", Accent: "#4ade80", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#22c55e", BrandHover: "#4ade80", BrandContrast: "#000000", Accent: "#15803d", Neutral: "#9ca3af"},
	},
	"purple": {
		siteconfig.ModeLight: {Brand: "#7c3aed", BrandHover: "#6d28d9", BrandContrast: "#ffffff", Accent: "#a78bfa", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#8b5cf6", BrandHover: "#a78bfa", BrandContrast: "#ffffff", Accent: "#6d28d9", Neutral: "#9ca3af"},
	},
	"orange": {
		siteconfig.ModeLight: {Brand: "#ea580c", BrandHover: "#c2410c", BrandContrast: "#ffffff", Accent: "#fb923c", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#f97316", BrandHover: "#fb923c", BrandContrast: "#000000", Accent: "#c2410c", Neutral: "#9ca3af"},
	},
	"red": {
		siteconfig.ModeLight: {Brand: "#dc2626", BrandHover: "#b91c1c", BrandContrast: "#ffffff", Accent: "#f87171", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#ef4444", BrandHover: "#f87171", BrandContrast: "#ffffff", Accent: "#b91c1c", Neutral: "#9ca3af"},
	},
	"neutral": {
		siteconfig.ModeLight: {Brand: "#374151", BrandHover: "#1f2937", BrandContrast: "#ffffff", Accent: "#9ca3af", Neutral: "#6b7280"},
		siteconfig.ModeDark:  {Brand: "#d1d5db", BrandHover: "#f3f4f6", BrandContrast: "#000000", Accent: "#4b5563", Neutral: "#9ca3af"},
	},
}

// neutralByMode supplies the neutral token for custom hex accents.
var neutralByMode = map[siteconfig.ColorMode]string{
	siteconfig.ModeLight: "#6b7280",
	siteconfig.ModeDark:  "#9ca3af",
}

// ResolveAccentPalette resolves an accent descriptor (palette name or hex
// string) into a complete palette for the given mode. Resolution is
// deterministic: the same accent and mode always yield the identical result.
// Unknown names and invalid hex values fall back to the blue palette with a
// single diagnostic; no input makes this function fail.
func ResolveAccentPalette(accent string, mode siteconfig.ColorMode, logger interfaces.Logger) Palette {
	if logger == nil {
		logger = logging.NoOp()
	}
	if mode != siteconfig.ModeDark {
		mode = siteconfig.ModeLight
	}

	name := strings.ToLower(strings.TrimSpace(accent))
	if variants, ok := namedPalettes[name]; ok {
		return variants[mode]
	}

	if color, ok := parseHex(name); ok {
		return customPalette(color, mode)
	}

	logger.Warn("theme.accent.fallback",
		"accent", accent,
		"fallback", fallbackAccent,
	)
	return namedPalettes[fallbackAccent][mode]
}

// customPalette derives hover and accent colors by lightness adjustment; the
// adjustment direction flips between modes. The contrast color is chosen by
// the relative luminance threshold (>0.5 reads black text, else white).
func customPalette(color rgb, mode siteconfig.ColorMode) Palette {
	direction := -1.0
	if mode == siteconfig.ModeDark {
		direction = 1.0
	}

	contrast := "#ffffff"
	if color.luminance() > 0.5 {
		contrast = "#000000"
	}

	return Palette{
		Brand:         color.hex(),
		BrandHover:    color.adjustLightness(direction * lightnessStep).hex(),
		BrandContrast: contrast,
		Accent:        color.adjustLightness(-direction * lightnessStep).hex(),
		Neutral:       neutralByMode[mode],
	}
}
