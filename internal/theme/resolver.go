package theme

import (
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// surfaceTokens pairs the background/foreground roles per color mode.
type surfaceTokens struct {
	surface    string
	surfaceAlt string
	text       string
}

var surfacesByMode = map[siteconfig.ColorMode]surfaceTokens{
	siteconfig.ModeLight: {surface: "#ffffff", surfaceAlt: "#f4f5f7", text: "#111827"},
	siteconfig.ModeDark:  {surface: "#111827", surfaceAlt: "#1f2937", text: "#f9fafb"},
}

// Resolved is the complete presentation-ready form of a SiteTheme: palette,
// typography and token defaults for one color mode.
type Resolved struct {
	Mode           siteconfig.ColorMode
	Palette        Palette
	AdaptiveTitles bool

	tokenDefaults siteconfig.VariableSet
	themeVars     siteconfig.VariableSet
}

// Resolver turns raw theme descriptors into resolved palettes and variables.
// Resolution never fails; unresolvable fields fall back to named defaults
// with a diagnostic.
type Resolver struct {
	tokens *TokenSource
	logger interfaces.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTokenSource installs the design-token defaults source.
func WithTokenSource(tokens *TokenSource) ResolverOption {
	return func(r *Resolver) {
		r.tokens = tokens
	}
}

// WithLogger installs the diagnostics logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a theme resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the resolved theme for a raw descriptor. The result is
// referentially transparent: the same descriptor always yields an identical
// resolved theme.
func (r *Resolver) Resolve(raw siteconfig.SiteTheme) Resolved {
	mode := raw.Mode
	if mode != siteconfig.ModeDark {
		mode = siteconfig.ModeLight
	}

	palette := ResolveAccentPalette(raw.Accent, mode, r.logger)
	surfaces := surfacesByMode[mode]

	themeVars := siteconfig.VariableSet{
		"--sb-color-brand":          palette.Brand,
		"--sb-color-brand-hover":    palette.BrandHover,
		"--sb-color-brand-contrast": palette.BrandContrast,
		"--sb-color-accent":         palette.Accent,
		"--sb-color-neutral":        palette.Neutral,
		"--sb-color-surface":        surfaces.surface,
		"--sb-color-surface-alt":    surfaces.surfaceAlt,
		"--sb-color-text":           surfaces.text,
	}
	themeVars = themeVars.Merge(GenerateTypographyVariables(raw.Typography))

	return Resolved{
		Mode:           mode,
		Palette:        palette,
		AdaptiveTitles: AdaptiveTitlesEnabled(raw.Typography),
		tokenDefaults:  r.tokens.Defaults(mode),
		themeVars:      themeVars,
	}
}

// DocumentVariables returns the document-root scope variable set: built-in
// token defaults overlaid by the theme-derived variables. Section-local
// variables layer on top at element scope, completing the cascade.
func (t Resolved) DocumentVariables() siteconfig.VariableSet {
	return t.tokenDefaults.Merge(t.themeVars)
}

// ThemeVariables returns only the theme-derived layer, without token defaults.
func (t Resolved) ThemeVariables() siteconfig.VariableSet {
	return t.themeVars.Clone()
}
