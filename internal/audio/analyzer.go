package audio

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// DefaultWindow is the number of samples analysed per tick.
	DefaultWindow = 2048
	// DefaultBins is the FFT bin count requested by most effects.
	DefaultBins   = 32

	decimation  = 4
	energyGain  = 32
	powerGain   = 8
	onsetFactor = 2.0
)

var ErrStreamEnded = errors.New("audio stream ended")

// Analyzer pulls a fixed window from a streamer every tick and reduces it
// to Features. It is not safe for concurrent use.
type Analyzer struct {
	src    beep.Streamer
	bins   int
	tick   time.Duration
	det    *EnergyDetector
	avg    AveragingFilter
	window [][2]float64
	mono   []float64
	power  []float64
	hann   []float64
	dft    *fourier.FFT
	coeff  []complex128

	ticks    int
	lastBeat int
	tempo    float64
	fft      []uint8
}

// NewAnalyzer reads window samples per call to Next. tick is the wall time
// between calls and only feeds the tempo estimate.
func NewAnalyzer(src beep.Streamer, window, bins int, tick time.Duration) *Analyzer {
	if window < decimation*2 {
		window = DefaultWindow
	}
	if bins < 1 {
		bins = DefaultBins
	}
	n := window / decimation
	a := &Analyzer{
		src:      src,
		bins:     bins,
		tick:     tick,
		det:      NewEnergyDetector(DefaultEnergyThreshold),
		window:   make([][2]float64, window),
		mono:     make([]float64, n),
		power:    make([]float64, n/2),
		hann:     make([]float64, n),
		dft:      fourier.NewFFT(n),
		coeff:    make([]complex128, n/2+1),
		lastBeat: -1,
		fft:      make([]uint8, bins),
	}
	for i := range a.hann {
		a.hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return a
}

// Bins is the number of FFT bins reported per tick.
func (a *Analyzer) Bins() int { return a.bins }

// Next analyses the next window. A short final window is zero padded; a
// stream that is already drained returns ErrStreamEnded. The FFT slice is
// reused on the following call.
func (a *Analyzer) Next() (Features, error) {
	filled := 0
	for filled < len(a.window) {
		n, ok := a.src.Stream(a.window[filled:])
		filled += n
		if !ok {
			break
		}
	}
	if err := a.src.Err(); err != nil {
		return Features{}, fmt.Errorf("audio stream: %w", err)
	}
	if filled == 0 {
		return Features{}, ErrStreamEnded
	}
	for i := filled; i < len(a.window); i++ {
		a.window[i] = [2]float64{}
	}

	energy := a.energy()
	a.spectrum()

	f := Features{Energy: energy, FFT: a.fft}
	avg := a.avg.Average()
	f.IsOnset = avg > 0 && float64(energy) > avg*onsetFactor
	a.avg.Feed(energy)

	f.IsBeat = a.det.Feed(int(energy))
	if f.IsBeat {
		if a.lastBeat >= 0 && a.tick > 0 {
			sec := float64(a.ticks-a.lastBeat) * a.tick.Seconds()
			bpm := 60 / sec
			if a.tempo == 0 {
				a.tempo = bpm
			} else {
				a.tempo = a.tempo*0.8 + bpm*0.2
			}
		}
		a.lastBeat = a.ticks
	}
	f.Tempo = a.tempo
	a.ticks++
	return f, nil
}

func (a *Analyzer) energy() uint16 {
	sum := 0.0
	for _, s := range a.window {
		m := (s[0] + s[1]) / 2
		sum += m * m
	}
	return saturate16(sum * energyGain)
}

// spectrum decimates the window, applies a Hann window and a real FFT, then
// averages the power of the lower half of the spectrum into bins.
func (a *Analyzer) spectrum() {
	for i := range a.mono {
		acc := 0.0
		for j := 0; j < decimation; j++ {
			s := a.window[i*decimation+j]
			acc += (s[0] + s[1]) / 2
		}
		a.mono[i] = acc / decimation * a.hann[i]
	}
	a.coeff = a.dft.Coefficients(a.coeff, a.mono)
	for k := range a.power {
		c := a.coeff[k]
		a.power[k] = (real(c)*real(c) + imag(c)*imag(c)) * powerGain
	}

	step := len(a.power) / a.bins
	if step < 1 {
		step = 1
	}
	for b := range a.fft {
		lo := b * step
		if lo >= len(a.power) {
			a.fft[b] = 0
			continue
		}
		hi := min(lo+step, len(a.power))
		acc := 0.0
		for _, p := range a.power[lo:hi] {
			acc += p
		}
		a.fft[b] = saturate8(acc / float64(step))
	}
}

func saturate16(v float64) uint16 {
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	if v <= 0 {
		return 0
	}
	return uint16(v)
}

func saturate8(v float64) uint8 {
	if v >= math.MaxUint8 {
		return math.MaxUint8
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
