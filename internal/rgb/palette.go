package rgb

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Palette is the ordered colour list supplied by the host. It may be empty.
type Palette []RGB

// At interpolates the palette at a fractional index. Below 0 it returns the
// first colour and at or past the last index the last colour. An empty
// palette yields Grey.
func (p Palette) At(colour float64) RGB {
	switch len(p) {
	case 0:
		return Grey
	case 1:
		return p[0]
	}
	if colour <= 0 {
		return p[0]
	}
	idx := int(colour)
	if idx >= len(p)-1 {
		return p[len(p)-1]
	}
	return Lerp(p[idx], p[idx+1], colour-float64(idx))
}

// AtByte maps a byte across the palette, 0 to the first colour and 255 close
// to the last. An empty palette yields Black.
func (p Palette) AtByte(colour uint8) RGB {
	switch len(p) {
	case 0:
		return Black
	case 1:
		return p[0]
	}
	f := float64(colour) / 256.0 * float64(len(p)-1)
	idx := int(f)
	return Lerp(p[idx], p[idx+1], f-float64(idx))
}

// Get returns p[i] or fallback when i is out of range.
func (p Palette) Get(i int, fallback RGB) RGB {
	if i < 0 || i >= len(p) {
		return fallback
	}
	return p[i]
}

// Pick returns a random entry and its index. An empty palette returns
// fallback and -1.
func (p Palette) Pick(r *rand.Rand, fallback RGB) (RGB, int) {
	if len(p) == 0 {
		return fallback, -1
	}
	i := r.Intn(len(p))
	return p[i], i
}

// Truncate keeps at most n colours.
func (p Palette) Truncate(n int) Palette {
	if len(p) <= n {
		return p
	}
	return p[:n]
}

// ParseHex reads colours written as "#rrggbb" or "rrggbb".
func ParseHex(in []string) (Palette, error) {
	out := make(Palette, 0, len(in))
	for _, s := range in {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "#"), 16, 32)
		if err != nil || len(strings.TrimPrefix(strings.TrimSpace(s), "#")) != 6 {
			return nil, fmt.Errorf("bad colour %q", s)
		}
		out = append(out, Unpack(uint32(v)))
	}
	return out, nil
}

// ParseStream reads a flat r,g,b int stream.
func ParseStream(stream []int) Palette {
	out := make(Palette, 0, len(stream)/3)
	for i := 0; i+2 < len(stream); i += 3 {
		out = append(out, RGB{stream[i], stream[i+1], stream[i+2]})
	}
	return out
}
