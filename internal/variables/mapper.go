package variables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Namespace is the reserved prefix every presentation variable key carries.
// Keys outside the namespace are dropped with a diagnostic, never applied.
const Namespace = "--sb-"

// fallbackKey/fallbackValue form the single safe variable emitted when a
// section cannot be mapped (unknown type, malformed payload).
const (
	fallbackKey   = Namespace + "section-padding"
	fallbackValue = "var(--sb-space-md)"
)

// ForSection maps one section into its element-scope variable set. The
// function is total: unknown section types and malformed sections degrade to
// the safe fallback set with a diagnostic instead of failing the render.
func ForSection(section siteconfig.Section, logger interfaces.Logger) siteconfig.VariableSet {
	if logger == nil {
		logger = logging.NoOp()
	}

	var vars siteconfig.VariableSet
	switch section.Type {
	case siteconfig.SectionHero:
		vars = varsForHero(section)
	case siteconfig.SectionContentBlock:
		vars = varsForContentBlock(section)
	case siteconfig.SectionBusinessData:
		vars = varsForBusinessData(section)
	case siteconfig.SectionSpecialOffers:
		vars = varsForSpecialOffers(section)
	case siteconfig.SectionLinksPage:
		vars = varsForLinksPage(section)
	case siteconfig.SectionSchedule:
		vars = varsForSchedule(section)
	default:
		logging.SectionLogger(logger, string(section.Type), section.ID.String()).
			Warn("variables.section.unknown_type")
		return fallbackSet()
	}

	if vars == nil {
		vars = siteconfig.VariableSet{}
	}
	return vars
}

func fallbackSet() siteconfig.VariableSet {
	return siteconfig.VariableSet{fallbackKey: fallbackValue}
}

func varsForHero(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyAlignment(vars, section)
	applyBackground(vars, section.Background)
	applyOverlay(vars, section.Overlay)
	applyMediaGrid(vars, len(section.Media))
	return vars
}

func varsForContentBlock(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyAlignment(vars, section)
	applyBackground(vars, section.Background)
	applyOverlay(vars, section.Overlay)
	applyMediaGrid(vars, len(section.Media))
	if layout := strings.TrimSpace(section.Layout); layout != "" {
		vars[Namespace+"content-layout"] = layout
	}
	return vars
}

func varsForBusinessData(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyAlignment(vars, section)
	applyBackground(vars, section.Background)
	return vars
}

func varsForSpecialOffers(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyAlignment(vars, section)
	applyBackground(vars, section.Background)
	vars[Namespace+"offer-count"] = strconv.Itoa(len(section.Offers))
	return vars
}

func varsForLinksPage(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyBackground(vars, section.Background)
	vars[Namespace+"link-count"] = strconv.Itoa(len(section.Links))
	return vars
}

func varsForSchedule(section siteconfig.Section) siteconfig.VariableSet {
	vars := siteconfig.VariableSet{}
	applyAlignment(vars, section)
	applyBackground(vars, section.Background)
	return vars
}

// applyAlignment maps the horizontal alignment onto justification and
// text-align keys and the vertical alignment onto the cross-axis key.
func applyAlignment(vars siteconfig.VariableSet, section siteconfig.Section) {
	switch section.Align {
	case siteconfig.AlignLeft:
		vars[Namespace+"justify"] = "flex-start"
		vars[Namespace+"text-align"] = "left"
	case siteconfig.AlignCenter:
		vars[Namespace+"justify"] = "center"
		vars[Namespace+"text-align"] = "center"
	case siteconfig.AlignRight:
		vars[Namespace+"justify"] = "flex-end"
		vars[Namespace+"text-align"] = "right"
	}

	switch section.AlignY {
	case siteconfig.AlignTop:
		vars[Namespace+"align-items"] = "flex-start"
	case siteconfig.AlignMiddle:
		vars[Namespace+"align-items"] = "center"
	case siteconfig.AlignBottom:
		vars[Namespace+"align-items"] = "flex-end"
	}
}

// applyBackground maps the background variant to paired background and
// foreground token references. Inverse swaps the text and surface roles.
func applyBackground(vars siteconfig.VariableSet, variant siteconfig.BackgroundVariant) {
	switch variant {
	case siteconfig.BackgroundSurface:
		vars[Namespace+"section-bg"] = "var(--sb-color-surface)"
		vars[Namespace+"section-fg"] = "var(--sb-color-text)"
	case siteconfig.BackgroundAlt:
		vars[Namespace+"section-bg"] = "var(--sb-color-surface-alt)"
		vars[Namespace+"section-fg"] = "var(--sb-color-text)"
	case siteconfig.BackgroundInverse:
		vars[Namespace+"section-bg"] = "var(--sb-color-text)"
		vars[Namespace+"section-fg"] = "var(--sb-color-surface)"
	}
}

// applyMediaGrid reflects the media item count as grid columns. Two items get
// a two-column grid, three or more a three-column grid; truncation beyond
// three is the caller's concern, the mapper only reflects the count.
func applyMediaGrid(vars siteconfig.VariableSet, count int) {
	switch {
	case count <= 0:
	case count == 1:
		vars[Namespace+"media-columns"] = "1fr"
	case count == 2:
		vars[Namespace+"media-columns"] = "repeat(2, 1fr)"
	default:
		vars[Namespace+"media-columns"] = "repeat(3, 1fr)"
	}
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
