package render

import "github.com/coreman2200/panelfx/internal/rgb"

// Mix blends frame set a into b using alpha (0..1) and writes the result to
// dst in b's order, returning the number written. Records are matched by
// panel id since effects order their output differently; panels missing
// from a come straight from b. Ids and transition times come from b.
func Mix(dst, a, b []Frame, alpha float64) int {
	n := min(len(dst), len(b))
	from := make(map[int]rgb.RGB, len(a))
	for _, f := range a {
		from[f.PanelID] = f.Color()
	}
	alpha = max(0, min(alpha, 1))
	for i := 0; i < n; i++ {
		dst[i] = b[i]
		if c, ok := from[b[i].PanelID]; ok {
			dst[i].SetColor(rgb.Lerp(c, b[i].Color(), alpha))
		}
	}
	return n
}
