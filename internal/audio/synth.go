package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Pulse gates a tone with a decaying envelope once per period, which gives
// the detectors a clean attack to lock onto.
type Pulse struct {
	tone   beep.Streamer
	period int
	decay  int
	pos    int
	gain   float64
}

// NewPulse repeats tone every period with a linear decay of length decay.
// offset shifts the first attack.
func NewPulse(tone beep.Streamer, sr beep.SampleRate, period, decay, offset time.Duration, gain float64) *Pulse {
	p := &Pulse{
		tone:   tone,
		period: max(sr.N(period), 1),
		decay:  max(sr.N(decay), 1),
		gain:   gain,
	}
	p.pos = p.period - sr.N(offset)%p.period
	if p.pos == p.period {
		p.pos = 0
	}
	return p
}

func (p *Pulse) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = p.tone.Stream(samples)
	for i := 0; i < n; i++ {
		phase := p.pos % p.period
		env := 0.0
		if phase < p.decay {
			env = 1 - float64(phase)/float64(p.decay)
		}
		samples[i][0] *= env * p.gain
		samples[i][1] *= env * p.gain
		p.pos++
	}
	return n, ok
}

func (p *Pulse) Err() error { return p.tone.Err() }

// NewSynth mixes one pulsing sine per frequency at the given tempo. Each tone
// is offset by a fraction of the beat so different bins fire on different
// ticks.
func NewSynth(sr beep.SampleRate, bpm float64, freqs ...float64) (beep.Streamer, error) {
	if bpm <= 0 {
		bpm = 120
	}
	beat := time.Duration(float64(time.Minute) / bpm)
	mixer := &beep.Mixer{}
	gain := 0.8
	if len(freqs) > 0 {
		gain /= float64(len(freqs))
	}
	for i, f := range freqs {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			return nil, fmt.Errorf("tone %.1fHz: %w", f, err)
		}
		offset := beat * time.Duration(i) / time.Duration(len(freqs))
		mixer.Add(NewPulse(tone, sr, beat, beat/4, offset, gain))
	}
	return mixer, nil
}
