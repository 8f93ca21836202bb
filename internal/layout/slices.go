package layout

import (
	"errors"
	"math"
	"sort"
)

// ErrBadSpacing is returned when the grid spacing is not positive.
var ErrBadSpacing = errors.New("frame slice spacing must be positive")

// Grid spacing as a fraction of the side length. Triangles whose apexes sit
// along the sweep axis pack closer than ones whose bases do.
const (
	spacingAligned = 0.5
	spacingSkewed  = 0.288
)

// FrameSlice is one band of panels along the x axis.
type FrameSlice struct {
	Band     int
	PanelIDs []int
}

// SliceSpacing returns the band width for a layout rotated by rotation degrees.
func SliceSpacing(sideLength float64, rotation int) float64 {
	if mod360(rotation)%60 == 0 {
		return spacingAligned * sideLength
	}
	return spacingSkewed * sideLength
}

// FrameSlices quantizes the layout into bands along its current x axis.
// rotation is the total rotation applied to the layout and selects the
// spacing. Bands are returned in ascending order and every panel appears in
// exactly one band. The result must be rebuilt after every rotation.
func FrameSlices(l *Layout, rotation int) ([]FrameSlice, error) {
	if l == nil {
		return nil, ErrNilLayout
	}
	spacing := SliceSpacing(l.SideLength, rotation)
	if !(spacing > 0) {
		return nil, ErrBadSpacing
	}
	if len(l.Panels) == 0 {
		return []FrameSlice{}, nil
	}

	bands := map[int][]int{}
	for i := range l.Panels {
		b := int(math.Round(l.Panels[i].Shape.Centroid().X / spacing))
		bands[b] = append(bands[b], l.Panels[i].ID)
	}
	keys := make([]int, 0, len(bands))
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]FrameSlice, 0, len(keys))
	for _, k := range keys {
		out = append(out, FrameSlice{Band: k, PanelIDs: bands[k]})
	}
	return out, nil
}
