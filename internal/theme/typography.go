package theme

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const (
	scaleCompact     = "compact"
	scaleStandard    = "standard"
	scaleExpressive  = "expressive"
	scaleDramatic    = "dramatic"
	scaleComfortable = "comfortable"
)

type sizePair struct {
	base float64 // px
	max  float64 // px
}

type displaySizes struct {
	hero sizePair
	h1   sizePair
	h2   sizePair
	h3   sizePair
}

type textSizes struct {
	body     sizePair
	subtitle sizePair
	small    sizePair
}

var displayScales = map[string]displaySizes{
	scaleCompact:    {hero: sizePair{36, 48}, h1: sizePair{28, 36}, h2: sizePair{22, 28}, h3: sizePair{18, 22}},
	scaleStandard:   {hero: sizePair{44, 64}, h1: sizePair{32, 44}, h2: sizePair{24, 32}, h3: sizePair{20, 24}},
	scaleExpressive: {hero: sizePair{52, 76}, h1: sizePair{36, 52}, h2: sizePair{28, 36}, h3: sizePair{22, 28}},
	scaleDramatic:   {hero: sizePair{60, 92}, h1: sizePair{42, 60}, h2: sizePair{32, 42}, h3: sizePair{24, 32}},
}

var textScales = map[string]textSizes{
	scaleCompact:     {body: sizePair{14, 16}, subtitle: sizePair{16, 18}, small: sizePair{12, 13}},
	scaleStandard:    {body: sizePair{16, 18}, subtitle: sizePair{18, 21}, small: sizePair{13, 14}},
	scaleComfortable: {body: sizePair{17, 19}, subtitle: sizePair{19, 23}, small: sizePair{14, 15}},
}

// displayScaleMultipliers feeds section-level typography overrides layered on
// top of the theme defaults.
var displayScaleMultipliers = map[string]float64{
	scaleCompact:    0.85,
	scaleStandard:   1,
	scaleExpressive: 1.15,
	scaleDramatic:   1.3,
}

var textScaleMultipliers = map[string]float64{
	scaleCompact:     0.9,
	scaleStandard:    1,
	scaleComfortable: 1.1,
}

// viewport scaling factors per element used in the clamp middle term.
var viewportFactors = map[string]float64{
	"hero":     5,
	"h1":       4,
	"h2":       3,
	"h3":       2.5,
	"subtitle": 2,
	"body":     1.5,
	"small":    1.25,
}

// GenerateTypographyVariables maps the theme typography config into responsive
// font-size variables, one clamp() expression per element. Missing or unknown
// scales use the standard tables.
func GenerateTypographyVariables(cfg siteconfig.TypographyConfig) siteconfig.VariableSet {
	display, ok := displayScales[normalizeScale(cfg.DisplayScale)]
	if !ok {
		display = displayScales[scaleStandard]
	}
	text, ok := textScales[normalizeScale(cfg.TextScale)]
	if !ok {
		text = textScales[scaleStandard]
	}

	return siteconfig.VariableSet{
		"--sb-font-hero":     clampExpr("hero", display.hero),
		"--sb-font-h1":       clampExpr("h1", display.h1),
		"--sb-font-h2":       clampExpr("h2", display.h2),
		"--sb-font-h3":       clampExpr("h3", display.h3),
		"--sb-font-body":     clampExpr("body", text.body),
		"--sb-font-subtitle": clampExpr("subtitle", text.subtitle),
		"--sb-font-small":    clampExpr("small", text.small),
	}
}

// AdaptiveTitlesEnabled resolves the adaptive flag, defaulting to true.
func AdaptiveTitlesEnabled(cfg siteconfig.TypographyConfig) bool {
	if cfg.AdaptiveTitles == nil {
		return true
	}
	return *cfg.AdaptiveTitles
}

// DisplayScaleMultiplier returns the section-override multiplier for a named
// display scale, defaulting to 1 for unknown names.
func DisplayScaleMultiplier(name string) float64 {
	if m, ok := displayScaleMultipliers[normalizeScale(name)]; ok {
		return m
	}
	return 1
}

// TextScaleMultiplier returns the section-override multiplier for a named
// text scale, defaulting to 1 for unknown names.
func TextScaleMultiplier(name string) float64 {
	if m, ok := textScaleMultipliers[normalizeScale(name)]; ok {
		return m
	}
	return 1
}

func normalizeScale(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clampExpr(element string, sizes sizePair) string {
	vw := viewportFactors[element]
	return fmt.Sprintf("clamp(%spx, %svw, %spx)",
		formatNumber(sizes.base), formatNumber(vw), formatNumber(sizes.max))
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
