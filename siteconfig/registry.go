package siteconfig

// RenderPolicy controls when the editor renders a section.
type RenderPolicy string

const (
	// RenderAlways renders the section in every editor pass.
	RenderAlways RenderPolicy = "always"
	// RenderOnlySelected renders the section only while it is the selected
	// one. Published pages ignore this policy and apply the links-only
	// visibility filter instead.
	RenderOnlySelected RenderPolicy = "only_selected"
)

// Rule captures the static editing metadata for one section type.
type Rule struct {
	RenderPolicy    RenderPolicy
	Singleton       bool
	DefaultPosition int
	Addable         bool
}

// sectionRules is the fixed registry for the closed catalog. The default
// position -1 means "append at the end".
var sectionRules = map[SectionType]Rule{
	SectionHero: {
		RenderPolicy:    RenderAlways,
		Singleton:       true,
		DefaultPosition: 0,
		Addable:         true,
	},
	SectionContentBlock: {
		RenderPolicy:    RenderAlways,
		Singleton:       false,
		DefaultPosition: -1,
		Addable:         true,
	},
	SectionBusinessData: {
		RenderPolicy:    RenderAlways,
		Singleton:       true,
		DefaultPosition: -1,
		Addable:         true,
	},
	SectionSpecialOffers: {
		RenderPolicy:    RenderAlways,
		Singleton:       true,
		DefaultPosition: -1,
		Addable:         true,
	},
	SectionLinksPage: {
		RenderPolicy:    RenderOnlySelected,
		Singleton:       true,
		DefaultPosition: 0,
		Addable:         true,
	},
	SectionSchedule: {
		RenderPolicy:    RenderAlways,
		Singleton:       true,
		DefaultPosition: -1,
		Addable:         true,
	},
}

// permissiveRule is returned for unknown types so lookups stay total.
var permissiveRule = Rule{
	RenderPolicy:    RenderAlways,
	Singleton:       false,
	DefaultPosition: -1,
	Addable:         false,
}

// RuleFor returns the registry rule for a section type. Unknown types get a
// permissive default instead of an error.
func RuleFor(t SectionType) Rule {
	if rule, ok := sectionRules[t]; ok {
		return rule
	}
	return permissiveRule
}

// IsAddable reports whether the type appears in the "add new section" menu.
func IsAddable(t SectionType) bool {
	return RuleFor(t).Addable
}

// AddableTypes filters the catalog down to addable entries, preserving order.
func AddableTypes() []SectionType {
	out := make([]SectionType, 0, len(KnownSectionTypes))
	for _, t := range KnownSectionTypes {
		if IsAddable(t) {
			out = append(out, t)
		}
	}
	return out
}

// RenderOptions carries the editor state consulted by ShouldRender.
type RenderOptions struct {
	SelectedIndex int
	IsPreview     bool
}

// ShouldRender applies the per-type render policy for the editor surface.
// Sections with RenderOnlySelected render only while their index equals the
// selected index; preview mode renders everything.
func ShouldRender(section Section, index int, opts RenderOptions) bool {
	if opts.IsPreview {
		return true
	}
	if RuleFor(section.Type).RenderPolicy == RenderOnlySelected {
		return index == opts.SelectedIndex
	}
	return true
}
