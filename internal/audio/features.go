// Package audio turns a sample stream into the per-tick sound features that
// the rhythm effects consume, and holds the beat detectors they share.
package audio

// Features is one tick worth of sound analysis.
type Features struct {
	Energy  uint16
	FFT     []uint8
	IsBeat  bool
	IsOnset bool
	Tempo   float64 // beats per minute, 0 until two beats have been seen
}

// DominantBin returns the index of the loudest bin, the lowest index on ties,
// or -1 for an empty spectrum.
func DominantBin(fft []uint8) int {
	best := -1
	for i, v := range fft {
		if best < 0 || v > fft[best] {
			best = i
		}
	}
	return best
}

// MeanPower is the arithmetic mean of the bins, 0 for an empty spectrum.
func MeanPower(fft []uint8) float64 {
	if len(fft) == 0 {
		return 0
	}
	sum := 0
	for _, v := range fft {
		sum += int(v)
	}
	return float64(sum) / float64(len(fft))
}

// Clone deep copies f so the caller may keep it across ticks.
func (f Features) Clone() Features {
	f.FFT = append([]uint8(nil), f.FFT...)
	return f
}

// DominantAverager accumulates the dominant bin of every tick between beats.
type DominantAverager struct {
	sum, n int
}

func (d *DominantAverager) Feed(fft []uint8) {
	if b := DominantBin(fft); b > 0 {
		d.sum += b
	}
	d.n++
}

// Take returns the mean dominant bin since the last Take and restarts the
// accumulation.
func (d *DominantAverager) Take() int {
	if d.n == 0 {
		return 0
	}
	v := d.sum / d.n
	d.sum, d.n = 0, 0
	return v
}

// SpectrumColour maps a dominant bin onto a fractional palette index. The
// lowest quarter of a bins-wide spectrum spans the whole palette, offset by
// one so the first colour is kept for onsets.
func SpectrumColour(bin, bins, colours int) float64 {
	q := max(bins/4, 1)
	return float64(bin*colours/q + 1)
}
