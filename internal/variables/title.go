package variables

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/theme"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const titleScaleKey = Namespace + "title-scale"

// TitleScale computes the adaptive title multiplier from the visible
// character count; line breaks never count toward the length. Disabled
// adaptive titles and empty titles both yield the neutral multiplier.
func TitleScale(title string, adaptive bool) float64 {
	if !adaptive {
		return 1
	}

	stripped := strings.NewReplacer("\r", "", "\n", "").Replace(title)
	length := len([]rune(stripped))
	switch {
	case length == 0:
		return 1
	case length > 80:
		return 0.8
	case length > 50:
		return 0.9
	case length < 15:
		return 1.1
	default:
		return 1
	}
}

// ApplyTypography layers the section typography override on top of the theme
// scale and emits the adaptive title multiplier. Explicit per-element
// multipliers take precedence over the named scale multiplier. Multipliers
// equal to 1 are omitted so the theme defaults stay untouched.
func ApplyTypography(vars siteconfig.VariableSet, section siteconfig.Section, adaptiveTitles bool) {
	titleScale := TitleScale(section.Title, adaptiveTitles)

	var scaleMultiplier float64 = 1
	var titleOverride, subtitleOverride, bodyOverride *float64
	if section.Typography != nil {
		scaleMultiplier = theme.DisplayScaleMultiplier(section.Typography.Scale)
		titleOverride = section.Typography.Title
		subtitleOverride = section.Typography.Subtitle
		bodyOverride = section.Typography.Body
	}

	titleMultiplier := scaleMultiplier
	if titleOverride != nil {
		titleMultiplier = *titleOverride
	}
	titleMultiplier *= titleScale

	if titleMultiplier != 1 {
		vars[titleScaleKey] = formatFloat(titleMultiplier)
	}
	if subtitleOverride != nil && *subtitleOverride != 1 {
		vars[Namespace+"subtitle-scale"] = formatFloat(*subtitleOverride)
	} else if scaleMultiplier != 1 && subtitleOverride == nil {
		vars[Namespace+"subtitle-scale"] = formatFloat(scaleMultiplier)
	}
	if bodyOverride != nil && *bodyOverride != 1 {
		vars[Namespace+"body-scale"] = formatFloat(*bodyOverride)
	}
}
