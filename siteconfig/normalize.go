package siteconfig

// NormalizeSections enforces the structural invariants of a section list:
// singleton types keep only their first occurrence, and any links_page
// section is pinned to position 0 regardless of where it appeared.
//
// The function is idempotent: NormalizeSections(NormalizeSections(x)) yields
// the same list as NormalizeSections(x). Callers run it before any render or
// persistence step so downstream consumers never observe duplicate singletons
// or a misplaced pinned section.
func NormalizeSections(sections []Section) []Section {
	if len(sections) == 0 {
		return sections
	}

	seen := make(map[SectionType]bool, len(sections))
	kept := make([]Section, 0, len(sections))
	var pinned *Section

	for _, section := range sections {
		rule := RuleFor(section.Type)
		if rule.Singleton && seen[section.Type] {
			continue
		}
		seen[section.Type] = true

		if section.Type == SectionLinksPage {
			pinnedCopy := section
			pinned = &pinnedCopy
			continue
		}
		kept = append(kept, section)
	}

	if pinned == nil {
		return kept
	}

	out := make([]Section, 0, len(kept)+1)
	out = append(out, *pinned)
	out = append(out, kept...)
	return out
}

// InsertPosition resolves where a newly added section of the given type
// should land in the current list, honoring the registry default position.
func InsertPosition(t SectionType, current []Section) int {
	rule := RuleFor(t)
	if rule.DefaultPosition < 0 || rule.DefaultPosition > len(current) {
		return len(current)
	}
	return rule.DefaultPosition
}
