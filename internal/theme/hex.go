package theme

import (
	"fmt"
	"math"
	"strings"
)

type rgb struct {
	r, g, b float64 // 0..1
}

// parseHex accepts #rgb and #rrggbb triplets. The leading # is optional.
func parseHex(value string) (rgb, bool) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "#")
	switch len(v) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = v[i]
			expanded[i*2+1] = v[i]
		}
		v = string(expanded)
	case 6:
	default:
		return rgb{}, false
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(v, "%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{}, false
	}
	return rgb{float64(r) / 255, float64(g) / 255, float64(b) / 255}, true
}

func (c rgb) hex() string {
	clamp := func(v float64) int {
		scaled := int(math.Round(v * 255))
		if scaled < 0 {
			return 0
		}
		if scaled > 255 {
			return 255
		}
		return scaled
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.r), clamp(c.g), clamp(c.b))
}

// luminance implements the standard linearized-sRGB relative luminance.
func (c rgb) luminance() float64 {
	linear := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*linear(c.r) + 0.7152*linear(c.g) + 0.0722*linear(c.b)
}

// adjustLightness shifts the HSL lightness channel by delta (-1..1).
func (c rgb) adjustLightness(delta float64) rgb {
	h, s, l := c.toHSL()
	l = math.Max(0, math.Min(1, l+delta))
	return fromHSL(h, s, l)
}

func (c rgb) toHSL() (h, s, l float64) {
	max := math.Max(c.r, math.Max(c.g, c.b))
	min := math.Min(c.r, math.Min(c.g, c.b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case c.r:
		h = (c.g - c.b) / d
		if c.g < c.b {
			h += 6
		}
	case c.g:
		h = (c.b-c.r)/d + 2
	default:
		h = (c.r-c.g)/d + 4
	}
	h /= 6
	return h, s, l
}

func fromHSL(h, s, l float64) rgb {
	if s == 0 {
		return rgb{l, l, l}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	return rgb{hue(h + 1.0/3), hue(h), hue(h - 1.0/3)}
}
