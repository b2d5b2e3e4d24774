package render

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/markdown"
	"github.com/goliatone/go-sitebuilder/internal/theme"
	"github.com/goliatone/go-sitebuilder/internal/variables"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Surface selects which consumer the pipeline renders for. The editor applies
// per-type render policies; published pages apply the links-only visibility
// filter instead.
type Surface string

const (
	SurfaceEditor    Surface = "editor"
	SurfacePublished Surface = "published"
)

// EvalContext carries the evaluation state for one render pass. The resolved
// theme travels inside the result, never through ambient globals, so embedded
// preview frames can render from the same snapshot.
type EvalContext struct {
	Surface       Surface
	SelectedIndex int
	IsPreview     bool
	// LinksOnly is the published-page visibility filter: when set, only the
	// links page renders; otherwise the links page is excluded. The two
	// presentations are mutually exclusive.
	LinksOnly bool
	// Audience filters sections that declare a target audience. Empty renders
	// everything.
	Audience string
}

// RenderedSection pairs a section with its element-scope variables and
// computed visibility.
type RenderedSection struct {
	Section   siteconfig.Section
	Variables siteconfig.VariableSet
	Visible   bool
	// BodyHTML holds the rendered markdown body for content blocks.
	BodyHTML string
}

// Result is the complete presentation form of a site config for one pass.
type Result struct {
	Theme siteconfig.SiteTheme
	// Resolved is the palette/typography resolution the variables came from.
	Resolved theme.Resolved
	// DocumentVariables apply at the document root: token defaults overlaid
	// by theme-derived variables. Section variables win by scope specificity.
	DocumentVariables siteconfig.VariableSet
	Sections          []RenderedSection
}

// Pipeline composes section normalization, theme resolution and per-section
// variable mapping into the ordered presentation list.
type Pipeline struct {
	resolver *theme.Resolver
	markdown *markdown.Renderer
	logger   interfaces.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger installs the diagnostics logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithResolver overrides the theme resolver.
func WithResolver(resolver *theme.Resolver) Option {
	return func(p *Pipeline) {
		if resolver != nil {
			p.resolver = resolver
		}
	}
}

// New constructs a render pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver: theme.NewResolver(),
		markdown: markdown.NewRenderer(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render produces the ordered, variable-annotated section list for a config.
// Normalization runs before anything else so downstream consumers never see
// duplicate singletons or a misplaced pinned section. The method never
// returns an error: malformed input degrades per section.
func (p *Pipeline) Render(cfg siteconfig.SiteConfig, ectx EvalContext) Result {
	sections := siteconfig.NormalizeSections(cfg.Sections)
	resolved := p.resolver.Resolve(cfg.Theme)

	out := Result{
		Theme:             cfg.Theme,
		Resolved:          resolved,
		DocumentVariables: resolved.DocumentVariables(),
		Sections:          make([]RenderedSection, 0, len(sections)),
	}

	for index, section := range sections {
		vars := variables.ForSection(section, p.logger)
		variables.ApplyTypography(vars, section, resolved.AdaptiveTitles)
		vars = variables.Sanitize(vars, p.logger)

		rendered := RenderedSection{
			Section:   section,
			Variables: vars,
			Visible:   p.visible(section, index, ectx),
		}
		if section.Type == siteconfig.SectionContentBlock && section.Body != "" {
			rendered.BodyHTML = p.markdown.Render(section.Body)
		}
		out.Sections = append(out.Sections, rendered)
	}

	return out
}

func (p *Pipeline) visible(section siteconfig.Section, index int, ectx EvalContext) bool {
	if !audienceMatches(section, ectx.Audience) {
		return false
	}

	if ectx.Surface == SurfacePublished {
		if ectx.LinksOnly {
			return section.Type == siteconfig.SectionLinksPage
		}
		return section.Type != siteconfig.SectionLinksPage
	}

	return siteconfig.ShouldRender(section, index, siteconfig.RenderOptions{
		SelectedIndex: ectx.SelectedIndex,
		IsPreview:     ectx.IsPreview,
	})
}

func audienceMatches(section siteconfig.Section, audience string) bool {
	target := strings.TrimSpace(section.Audience)
	if target == "" || audience == "" {
		return true
	}
	return strings.EqualFold(target, audience)
}
