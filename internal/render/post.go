package render

// ClampFrames limits every channel to [0,255] and transition times to be
// non-negative.
func ClampFrames(buf []Frame) {
	for i := range buf {
		buf[i].SetColor(buf[i].Color())
		if buf[i].TransTime < 0 {
			buf[i].TransTime = 0
		}
	}
}

// DefaultLimiter applies two stages:
// 1) Per-panel "white cap": scales (R,G,B) so R+G+B <= WhiteCap (default 765 = no cap)
// 2) Global brightness: GlobalBrightness times the "Brightness" param (both default 1)
//
// "PreviewBypass" > 0.5 skips the white cap so the terminal preview shows
// what the effect asked for.
func DefaultLimiter(buf []Frame, u *Uniforms) {
	if u == nil {
		return
	}
	whiteCap := u.Param("WhiteCap", 765)
	if whiteCap > 0 && u.Param("PreviewBypass", 0) <= 0.5 {
		for i := range buf {
			s := float64(buf[i].R + buf[i].G + buf[i].B)
			if s > whiteCap {
				buf[i].SetColor(buf[i].Color().Scale(whiteCap / s))
			}
		}
	}

	b := u.GlobalBrightness * u.Param("Brightness", 1)
	if b < 0 {
		b = 0
	}
	if b >= 1 {
		return
	}
	for i := range buf {
		buf[i].SetColor(buf[i].Color().Scale(b))
	}
}
