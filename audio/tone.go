package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// Waveform selects the oscillator shape of a tone.
type Waveform uint8

const (
	Square Waveform = iota
	Sine
)

// Cue describes one sound effect.
type Cue struct {
	Freq     float64
	Duration float64 // seconds
	Wave     Waveform
}

// tone is a fixed-length oscillator with a linear fade-out.
type tone struct {
	wave   Waveform
	step   float64 // phase advance per sample, in cycles
	phase  float64
	pos    int
	total  int
	volume float64
}

// NewTone creates a streamer playing cue at the given volume.
func NewTone(sr beep.SampleRate, cue Cue, volume float64) beep.Streamer {
	return &tone{
		wave:   cue.Wave,
		step:   cue.Freq / float64(sr),
		total:  sr.N(seconds(cue.Duration)),
		volume: volume,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		env := 1 - float64(t.pos)/float64(t.total)
		v := t.sample() * env * t.volume
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) sample() float64 {
	if t.wave == Sine {
		return math.Sin(2 * math.Pi * t.phase)
	}
	if t.phase < 0.5 {
		return 1
	}
	return -1
}

func (t *tone) Err() error { return nil }
