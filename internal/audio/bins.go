package audio

import "math"

const (
	binTriggerRatio = 0.7
	binMinIntensity = 0.2
	binTrail        = 4
)

// BinDetector follows the beat history of a single FFT bin. The running max
// is fed from local maxima of the power curve, so one loud hit raises it
// quickly and a quiet passage lets it relax.
type BinDetector struct {
	Power      int
	LatestMin  int
	RunningMax int
	MaxTrigger int

	prev, prev2 int
}

func NewBinDetector() BinDetector {
	return BinDetector{RunningMax: 3, MaxTrigger: 1}
}

// Feed records power and reports whether it is a beat for this bin.
func (b *BinDetector) Feed(power int) bool {
	b.Power = power
	if power+b.RunningMax/4 < b.prev && b.prev > b.prev2 {
		b.RunningMax = addToRunningMax(b.RunningMax, b.prev, binTrail)
	}

	if power < b.LatestMin {
		b.LatestMin = power
	} else if b.LatestMin > 0 {
		b.LatestMin--
	}

	beat := false
	if float64(power) > float64(b.LatestMin)+float64(b.RunningMax)*binTriggerRatio {
		b.LatestMin = power
		beat = true
		if power > b.MaxTrigger {
			b.MaxTrigger = power
		}
	}
	b.prev2 = b.prev
	b.prev = power
	return beat
}

// Intensity maps the current power onto [0.2, 1] on a log scale relative to
// the running max.
func (b *BinDetector) Intensity() float64 {
	v := 1.0
	if b.Power > 1 && b.RunningMax > 1 {
		v = math.Log(float64(b.Power))/math.Log(float64(b.RunningMax))*(1-binMinIntensity) + binMinIntensity
	}
	return math.Min(v, 1)
}

// addToRunningMax is an exponential moving average that follows rises twice
// as fast as falls.
func addToRunningMax(runningMax, value, trail int) int {
	t := trail
	if value > runningMax && trail > 1 {
		t /= 2
	}
	return int(float64(runningMax) - float64(runningMax)/float64(trail) + float64(value)/float64(t))
}

// BinBank is one detector per bin.
type BinBank []BinDetector

func NewBinBank(n int) BinBank {
	b := make(BinBank, n)
	for i := range b {
		b[i] = NewBinDetector()
	}
	return b
}

// Feed runs every detector against fft and returns the indices that fired.
// Bins beyond len(fft) are fed zero.
func (b BinBank) Feed(fft []uint8, dst []int) []int {
	dst = dst[:0]
	for i := range b {
		p := 0
		if i < len(fft) {
			p = int(fft[i])
		}
		if b[i].Feed(p) {
			dst = append(dst, i)
		}
	}
	return dst
}
