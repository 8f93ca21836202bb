package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runningMaxCases = []struct {
	rm, v, trail int
	expected     int
}{
	{3, 10, 4, 7},
	{100, 20, 4, 80},
	{10, 10, 4, 10},
	{8, 100, 1, 100},
}

var dominantCases = []struct {
	in       []uint8
	expected int
}{
	{nil, -1},
	{[]uint8{0, 0, 0}, 0},
	{[]uint8{1, 9, 3, 9}, 1},
	{[]uint8{0, 0, 255}, 2},
}

type constStreamer struct{ v float64 }

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.v, c.v}
	}
	return len(samples), true
}

func (c constStreamer) Err() error { return nil }

func TestEnergyDetectorFiresOnceAfterQuiet(t *testing.T) {
	d := NewEnergyDetector(0)
	beats := 0
	for i := 0; i < 20; i++ {
		if d.Feed(0) {
			beats++
		}
	}
	assert.Equal(t, 0, beats)
	for i := 0; i < 5; i++ {
		if d.Feed(500) {
			beats++
		}
	}
	assert.Equal(t, 1, beats)
}

func TestEnergyDetectorFirstSampleSetsFloor(t *testing.T) {
	d := NewEnergyDetector(DefaultEnergyThreshold)
	assert.False(t, d.Feed(1000))
	assert.Equal(t, 1000, d.Minimum())
	assert.False(t, d.Feed(1000))
	assert.Equal(t, 999, d.Minimum())
	assert.True(t, d.Feed(1100))
	d.Reset()
	assert.False(t, d.Feed(5000))
}

func TestAddToRunningMax(t *testing.T) {
	for _, c := range runningMaxCases {
		assert.Equal(t, c.expected, addToRunningMax(c.rm, c.v, c.trail), "rm=%d v=%d", c.rm, c.v)
	}
}

func TestBinDetectorTracksLocalMaxima(t *testing.T) {
	b := NewBinDetector()
	assert.False(t, b.Feed(0))
	assert.True(t, b.Feed(10))
	assert.Equal(t, 10, b.MaxTrigger)
	assert.Equal(t, 10, b.LatestMin)
	assert.Equal(t, 1.0, b.Intensity())

	assert.False(t, b.Feed(0))
	assert.Equal(t, 7, b.RunningMax)
	assert.Equal(t, 0, b.LatestMin)
}

func TestBinDetectorIntensity(t *testing.T) {
	b := BinDetector{Power: 10, RunningMax: 100}
	assert.InDelta(t, 0.6, b.Intensity(), 1e-9)
	b.Power = 1
	assert.Equal(t, 1.0, b.Intensity())
	b.Power = 1000
	assert.Equal(t, 1.0, b.Intensity())
}

func TestBinBankFeed(t *testing.T) {
	bank := NewBinBank(3)
	fired := bank.Feed([]uint8{0, 50, 0}, nil)
	assert.Equal(t, []int{1}, fired)
	fired = bank.Feed([]uint8{0}, fired)
	assert.Empty(t, fired)
}

func TestAveragingFilter(t *testing.T) {
	var f AveragingFilter
	assert.Equal(t, 0.0, f.Average())
	f.Feed(10)
	assert.Equal(t, 1.0, f.Average())
	for i := 0; i < FilterTaps; i++ {
		f.Feed(10)
	}
	assert.Equal(t, 10.0, f.Average())
	f.Feed(110)
	assert.Equal(t, 20.0, f.Average())
}

func TestDominantBinAndMean(t *testing.T) {
	for _, c := range dominantCases {
		assert.Equal(t, c.expected, DominantBin(c.in), "%v", c.in)
	}
	assert.Equal(t, 0.0, MeanPower(nil))
	assert.Equal(t, 2.5, MeanPower([]uint8{1, 2, 3, 4}))
}

func TestAnalyzerSilence(t *testing.T) {
	a := NewAnalyzer(beep.Silence(-1), DefaultWindow, DefaultBins, 50*time.Millisecond)
	f, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(0), f.Energy)
	assert.Len(t, f.FFT, DefaultBins)
	assert.Equal(t, 0, DominantBin(f.FFT))
	assert.False(t, f.IsBeat)
	assert.False(t, f.IsOnset)
}

func TestAnalyzerLocatesTone(t *testing.T) {
	sr := beep.SampleRate(44100)
	// centre of the fifth output bin once decimated to 11025Hz over 512 points
	freq := 36 * 11025.0 / 512
	tone, err := generators.SineTone(sr, freq)
	require.NoError(t, err)

	a := NewAnalyzer(tone, DefaultWindow, DefaultBins, 50*time.Millisecond)
	f, err := a.Next()
	require.NoError(t, err)
	assert.Greater(t, f.Energy, uint16(0))
	assert.Equal(t, 4, DominantBin(f.FFT))
	assert.Equal(t, uint8(0), f.FFT[DefaultBins-1])
}

func TestSpectrumPowerMatchesDirectSum(t *testing.T) {
	tone, err := generators.SineTone(beep.SampleRate(44100), 1000)
	require.NoError(t, err)
	a := NewAnalyzer(tone, 256, 8, 0)
	_, err = a.Next()
	require.NoError(t, err)

	n := len(a.mono)
	require.Len(t, a.power, n/2)
	for k := range a.power {
		re, im := 0.0, 0.0
		for i, x := range a.mono {
			ang := 2 * math.Pi * float64(k*i) / float64(n)
			re += x * math.Cos(ang)
			im -= x * math.Sin(ang)
		}
		want := (re*re + im*im) * powerGain
		assert.InDelta(t, want, a.power[k], 1e-9*math.Max(1, want), "bin %d", k)
	}
}

func TestAnalyzerEndsWithStream(t *testing.T) {
	a := NewAnalyzer(beep.Take(100, constStreamer{0.5}), 64, 4, 0)
	f, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(512), f.Energy)
	// the 36 remaining samples are zero padded
	f, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(288), f.Energy)
	_, err = a.Next()
	assert.ErrorIs(t, err, ErrStreamEnded)
}

func TestAnalyzerSaturatesEnergy(t *testing.T) {
	a := NewAnalyzer(constStreamer{1}, DefaultWindow, DefaultBins, 0)
	f, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), f.Energy)
}

func TestSynthProducesBeats(t *testing.T) {
	sr := beep.SampleRate(44100)
	s, err := NewSynth(sr, 120, 220, 880)
	require.NoError(t, err)

	tick := time.Second * DefaultWindow / 44100
	a := NewAnalyzer(s, DefaultWindow, DefaultBins, tick)
	beats := 0
	var last Features
	for i := 0; i < 108; i++ {
		f, err := a.Next()
		require.NoError(t, err)
		if f.IsBeat {
			beats++
		}
		last = f
	}
	assert.GreaterOrEqual(t, beats, 5)
	assert.Greater(t, last.Tempo, 0.0)
}

func TestSynthRejectsAliasedTone(t *testing.T) {
	_, err := NewSynth(beep.SampleRate(1000), 120, 800)
	assert.Error(t, err)
}

func TestPulseEnvelope(t *testing.T) {
	sr := beep.SampleRate(1000)
	p := NewPulse(constStreamer{1}, sr, 100*time.Millisecond, 50*time.Millisecond, 0, 1)
	samples := make([][2]float64, 200)
	n, ok := p.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 200, n)
	assert.Equal(t, 1.0, samples[0][0])
	assert.InDelta(t, 0.5, samples[25][1], 1e-9)
	assert.Equal(t, 0.0, samples[60][0])
	assert.Equal(t, 1.0, samples[100][0])
	assert.NoError(t, p.Err())
}

func TestPulseOffsetDelaysAttack(t *testing.T) {
	sr := beep.SampleRate(1000)
	p := NewPulse(constStreamer{1}, sr, 100*time.Millisecond, 10*time.Millisecond, 30*time.Millisecond, 1)
	samples := make([][2]float64, 100)
	p.Stream(samples)
	assert.Equal(t, 0.0, samples[0][0])
	assert.Equal(t, 1.0, samples[30][0])
}

func TestDominantAverager(t *testing.T) {
	var d DominantAverager
	assert.Equal(t, 0, d.Take())
	d.Feed([]uint8{0, 9, 0, 0})
	d.Feed([]uint8{0, 0, 0, 9})
	d.Feed(nil)
	assert.Equal(t, 1, d.Take())
	d.Feed([]uint8{0, 0, 7})
	assert.Equal(t, 2, d.Take())
}

func TestSpectrumColour(t *testing.T) {
	assert.Equal(t, 1.0, SpectrumColour(0, 32, 4))
	assert.Equal(t, 3.0, SpectrumColour(4, 32, 4))
	assert.Equal(t, 5.0, SpectrumColour(8, 32, 4))
	assert.Equal(t, 3.0, SpectrumColour(1, 2, 2))
}
