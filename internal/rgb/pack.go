package rgb

import "image/color"

const (
	redOffset   uint8 = 0x10
	greenOffset uint8 = 0x08
	blueOffset  uint8 = 0x0
)

func setchan(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getchan(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

// Pack stores a clamped colour as 0x00RRGGBB.
func Pack(c RGB) uint32 {
	c = c.Clamp()
	var v uint32
	v = setchan(v, uint8(c.R), redOffset)
	v = setchan(v, uint8(c.G), greenOffset)
	v = setchan(v, uint8(c.B), blueOffset)
	return v
}

// Unpack is the inverse of Pack. Bits above 24 are ignored.
func Unpack(v uint32) RGB {
	return RGB{int(getchan(v, redOffset)), int(getchan(v, greenOffset)), int(getchan(v, blueOffset))}
}

// NRGBA converts to an opaque image colour, scaled so no channel exceeds
// maxBrightness.
func NRGBA(c RGB, maxBrightness uint8) color.NRGBA {
	c = c.Clamp()
	m := int(maxBrightness)
	return color.NRGBA{
		R: uint8(c.R * m / 255),
		G: uint8(c.G * m / 255),
		B: uint8(c.B * m / 255),
		A: 255,
	}
}
