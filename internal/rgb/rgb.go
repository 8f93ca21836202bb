package rgb

// RGB is an integer colour triple. Arithmetic does not saturate; call Limit
// to clamp into a channel window.
type RGB struct{ R, G, B int }

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Grey  = RGB{128, 128, 128}
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 255, 0}
	Blue  = RGB{0, 0, 255}
)

func (c RGB) Add(o RGB) RGB { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Sub(o RGB) RGB { return RGB{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c RGB) Mul(m int) RGB { return RGB{c.R * m, c.G * m, c.B * m} }

// Div truncates each channel of c/d. A zero divisor returns c unchanged.
func (c RGB) Div(d float64) RGB {
	if d == 0 {
		return c
	}
	return RGB{int(float64(c.R) / d), int(float64(c.G) / d), int(float64(c.B) / d)}
}

// Scale multiplies by f and truncates.
func (c RGB) Scale(f float64) RGB {
	return RGB{int(float64(c.R) * f), int(float64(c.G) * f), int(float64(c.B) * f)}
}

// Limit clamps every channel into [min, max].
func (c RGB) Limit(max, min int) RGB {
	return RGB{clamp(c.R, min, max), clamp(c.G, min, max), clamp(c.B, min, max)}
}

// Clamp is Limit(255, 0).
func (c RGB) Clamp() RGB { return c.Limit(255, 0) }

// Lerp blends a towards b by f in [0,1], truncating.
func Lerp(a, b RGB, f float64) RGB {
	return RGB{
		int(float64(a.R)*(1-f) + float64(b.R)*f),
		int(float64(a.G)*(1-f) + float64(b.G)*f),
		int(float64(a.B)*(1-f) + float64(b.B)*f),
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
