package rgb

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV holds hue in degrees [0,360) and saturation/value in percent [0,100].
type HSV struct{ H, S, V int }

// HSVToRGB converts through go-colorful. Hue wraps, S and V are clamped.
func HSVToRGB(h HSV) RGB {
	hue := math.Mod(float64(h.H), 360)
	if hue < 0 {
		hue += 360
	}
	s := float64(clamp(h.S, 0, 100)) / 100
	v := float64(clamp(h.V, 0, 100)) / 100
	r, g, b := colorful.Hsv(hue, s, v).RGB255()
	return RGB{int(r), int(g), int(b)}
}

// RGBToHSV converts a clamped colour to HSV. Greys report hue 0.
func RGBToHSV(c RGB) HSV {
	c = c.Clamp()
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := col.Hsv()
	hue := int(math.Round(h)) % 360
	return HSV{hue, int(math.Round(s * 100)), int(math.Round(v * 100))}
}
