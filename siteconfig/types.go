package siteconfig

import (
	"github.com/google/uuid"
)

// SectionType identifies one entry in the closed section catalog. The catalog
// is fixed; arbitrary user-defined section types are deliberately unsupported.
type SectionType string

const (
	SectionHero          SectionType = "hero"
	SectionContentBlock  SectionType = "content_block"
	SectionBusinessData  SectionType = "business_data"
	SectionSpecialOffers SectionType = "special_offers"
	SectionLinksPage     SectionType = "links_page"
	SectionSchedule      SectionType = "schedule"
)

// KnownSectionTypes lists the closed catalog in display order.
var KnownSectionTypes = []SectionType{
	SectionHero,
	SectionContentBlock,
	SectionBusinessData,
	SectionSpecialOffers,
	SectionLinksPage,
	SectionSchedule,
}

// Known reports whether the type belongs to the closed catalog.
func (t SectionType) Known() bool {
	switch t {
	case SectionHero, SectionContentBlock, SectionBusinessData,
		SectionSpecialOffers, SectionLinksPage, SectionSchedule:
		return true
	}
	return false
}

// HorizontalAlign positions content along the main axis.
type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

// VerticalAlign positions content along the cross axis.
type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "center"
	AlignBottom VerticalAlign = "bottom"
)

// BackgroundVariant selects the paired background/foreground token roles for a
// section. Inverse swaps the text and surface roles.
type BackgroundVariant string

const (
	BackgroundSurface BackgroundVariant = "surface"
	BackgroundAlt     BackgroundVariant = "alt"
	BackgroundInverse BackgroundVariant = "inverse"
)

// OverlayType selects the image overlay treatment.
type OverlayType string

const (
	OverlayNone     OverlayType = "none"
	OverlayDark     OverlayType = "dark"
	OverlayLight    OverlayType = "light"
	OverlayGradient OverlayType = "gradient"
	OverlayBlur     OverlayType = "blur"
	OverlayBrand    OverlayType = "brand"
)

// OverlayIntensity scales overlay opacity through a fixed alpha table.
type OverlayIntensity string

const (
	IntensityLight  OverlayIntensity = "light"
	IntensityMedium OverlayIntensity = "medium"
	IntensityHeavy  OverlayIntensity = "heavy"
)

// Overlay describes an image overlay treatment for media-backed sections.
type Overlay struct {
	Type              OverlayType      `json:"type"`
	Intensity         OverlayIntensity `json:"intensity,omitempty"`
	GradientDirection string           `json:"gradient_direction,omitempty"`
}

// MediaRef points at an asset managed by the external storage service.
type MediaRef struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// TypographyOverride layers per-section multipliers over the theme scale.
// Explicit per-element multipliers take precedence over the named scale.
type TypographyOverride struct {
	Scale    string   `json:"scale,omitempty"`
	Title    *float64 `json:"title,omitempty"`
	Subtitle *float64 `json:"subtitle,omitempty"`
	Body     *float64 `json:"body,omitempty"`
}

// Offer is one promoted item inside a special offers section.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Badge       string `json:"badge,omitempty"`
}

// LinkItem is one entry of a links page section.
type LinkItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// ScheduleEntry captures opening hours for a single day.
type ScheduleEntry struct {
	Day    string `json:"day"`
	Opens  string `json:"opens,omitempty"`
	Closes string `json:"closes,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Section is one content block of the site. The catalog is a closed tagged
// union; Type selects which fields are meaningful. IDs are assigned at
// creation and never change afterwards.
type Section struct {
	ID   uuid.UUID   `json:"id"`
	Type SectionType `json:"type"`
	// Slug is the optional anchor identifier; it must match [a-z0-9-]+ after
	// normalization or the value is dropped.
	Slug string `json:"slug,omitempty"`

	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
	Layout   string `json:"layout,omitempty"`
	Audience string `json:"audience,omitempty"`

	Align      HorizontalAlign   `json:"align,omitempty"`
	AlignY     VerticalAlign     `json:"align_y,omitempty"`
	Background BackgroundVariant `json:"background,omitempty"`
	Overlay    *Overlay          `json:"overlay,omitempty"`

	Media      []MediaRef          `json:"media,omitempty"`
	Typography *TypographyOverride `json:"typography,omitempty"`

	Offers   []Offer         `json:"offers,omitempty"`
	Links    []LinkItem      `json:"links,omitempty"`
	Schedule []ScheduleEntry `json:"schedule,omitempty"`

	Meta map[string]any `json:"meta,omitempty"`
}

// ColorMode selects between the light and dark palettes.
type ColorMode string

const (
	ModeLight ColorMode = "light"
	ModeDark  ColorMode = "dark"
)

// TypographyConfig holds the theme-level typographic scale selection.
type TypographyConfig struct {
	Preset         string `json:"preset,omitempty"`
	DisplayScale   string `json:"display_scale,omitempty"`
	TextScale      string `json:"text_scale,omitempty"`
	AdaptiveTitles *bool  `json:"adaptive_titles,omitempty"`
}

// SiteTheme is the global color-mode/accent/typography descriptor. The raw
// config may hold an unknown accent string; fallback happens at resolution
// time, never at storage time.
type SiteTheme struct {
	ThemeVersion string           `json:"theme_version,omitempty"`
	Mode         ColorMode        `json:"mode,omitempty"`
	Accent       string           `json:"accent,omitempty"`
	Typography   TypographyConfig `json:"typography,omitempty"`
}

// SiteConfig is the declarative description of a site: theme plus an ordered
// sequence of sections. After normalization at most one links_page section
// exists and, when present, it is the first element.
type SiteConfig struct {
	Version    string         `json:"version"`
	BusinessID string         `json:"business_id"`
	Theme      SiteTheme      `json:"theme"`
	Sections   []Section      `json:"sections"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// VariableSet maps reserved-namespace presentation variable keys to values.
type VariableSet map[string]string

// Clone returns a deep copy of the config so callers can hand out snapshots
// without exposing internal state to mutation.
func (c *SiteConfig) Clone() *SiteConfig {
	if c == nil {
		return nil
	}
	out := &SiteConfig{
		Version:    c.Version,
		BusinessID: c.BusinessID,
		Theme:      c.Theme,
	}
	if c.Theme.Typography.AdaptiveTitles != nil {
		adaptive := *c.Theme.Typography.AdaptiveTitles
		out.Theme.Typography.AdaptiveTitles = &adaptive
	}
	if len(c.Sections) > 0 {
		out.Sections = make([]Section, len(c.Sections))
		for i := range c.Sections {
			out.Sections[i] = cloneSection(c.Sections[i])
		}
	}
	out.Meta = cloneMeta(c.Meta)
	return out
}

func cloneSection(s Section) Section {
	out := s
	if s.Overlay != nil {
		overlay := *s.Overlay
		out.Overlay = &overlay
	}
	if s.Typography != nil {
		typ := *s.Typography
		if s.Typography.Title != nil {
			v := *s.Typography.Title
			typ.Title = &v
		}
		if s.Typography.Subtitle != nil {
			v := *s.Typography.Subtitle
			typ.Subtitle = &v
		}
		if s.Typography.Body != nil {
			v := *s.Typography.Body
			typ.Body = &v
		}
		out.Typography = &typ
	}
	if len(s.Media) > 0 {
		out.Media = append([]MediaRef(nil), s.Media...)
	}
	if len(s.Offers) > 0 {
		out.Offers = append([]Offer(nil), s.Offers...)
	}
	if len(s.Links) > 0 {
		out.Links = append([]LinkItem(nil), s.Links...)
	}
	if len(s.Schedule) > 0 {
		out.Schedule = append([]ScheduleEntry(nil), s.Schedule...)
	}
	out.Meta = cloneMeta(s.Meta)
	return out
}

func cloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// Clone returns a copy of the variable set.
func (v VariableSet) Clone() VariableSet {
	if v == nil {
		return nil
	}
	out := make(VariableSet, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Merge overlays other on top of v, returning a new set. Later layers win.
func (v VariableSet) Merge(other VariableSet) VariableSet {
	out := make(VariableSet, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}
