package variables

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Fixed alpha tables per overlay intensity. Dark overlays run slightly
// heavier than light ones so text stays legible on bright imagery.
var (
	darkAlphas = map[siteconfig.OverlayIntensity]float64{
		siteconfig.IntensityLight:  0.2,
		siteconfig.IntensityMedium: 0.4,
		siteconfig.IntensityHeavy:  0.6,
	}
	lightAlphas = map[siteconfig.OverlayIntensity]float64{
		siteconfig.IntensityLight:  0.15,
		siteconfig.IntensityMedium: 0.3,
		siteconfig.IntensityHeavy:  0.5,
	}
	blurRadii = map[siteconfig.OverlayIntensity]string{
		siteconfig.IntensityLight:  "2px",
		siteconfig.IntensityMedium: "4px",
		siteconfig.IntensityHeavy:  "8px",
	}
)

const overlayKey = Namespace + "overlay"

// applyOverlay maps the overlay descriptor onto a background expression.
// An overlay of type none emits a transparent value; the key is never absent
// once an overlay block exists, so consumers can bind it unconditionally.
func applyOverlay(vars siteconfig.VariableSet, overlay *siteconfig.Overlay) {
	if overlay == nil {
		return
	}

	intensity := overlay.Intensity
	if _, ok := darkAlphas[intensity]; !ok {
		intensity = siteconfig.IntensityMedium
	}
	dark := darkAlphas[intensity]
	light := lightAlphas[intensity]

	switch overlay.Type {
	case siteconfig.OverlayNone:
		vars[overlayKey] = "transparent"
	case siteconfig.OverlayDark:
		vars[overlayKey] = fmt.Sprintf("rgba(0, 0, 0, %s)", formatFloat(dark))
	case siteconfig.OverlayLight:
		vars[overlayKey] = fmt.Sprintf("rgba(255, 255, 255, %s)", formatFloat(light))
	case siteconfig.OverlayGradient:
		vars[overlayKey] = gradientExpr(overlay.GradientDirection, dark)
	case siteconfig.OverlayBlur:
		vars[overlayKey] = fmt.Sprintf("rgba(0, 0, 0, %s)", formatFloat(light))
		vars[Namespace+"overlay-backdrop"] = "blur(" + blurRadii[intensity] + ")"
	case siteconfig.OverlayBrand:
		vars[overlayKey] = fmt.Sprintf(
			"color-mix(in srgb, var(--sb-color-brand) %d%%, transparent)",
			int(dark*100),
		)
	default:
		vars[overlayKey] = "transparent"
	}
}

// gradientExpr renders a linear gradient for directional values and a radial
// gradient for the radial direction.
func gradientExpr(direction string, alpha float64) string {
	rgba := fmt.Sprintf("rgba(0, 0, 0, %s)", formatFloat(alpha))

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "radial":
		return fmt.Sprintf("radial-gradient(circle, transparent, %s)", rgba)
	case "to-top", "to top":
		return fmt.Sprintf("linear-gradient(to top, transparent, %s)", rgba)
	case "to-left", "to left":
		return fmt.Sprintf("linear-gradient(to left, transparent, %s)", rgba)
	case "to-right", "to right":
		return fmt.Sprintf("linear-gradient(to right, transparent, %s)", rgba)
	default:
		return fmt.Sprintf("linear-gradient(to bottom, transparent, %s)", rgba)
	}
}
