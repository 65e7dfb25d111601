// Package audio plays the match sound effects through beep.
package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
)

// Cues returns the sounds for a frame's events, most important first.
func Cues(ev game.Event) []Cue {
	var cues []Cue
	if ev.Has(game.EventMiss) {
		cues = append(cues, Cue{Freq: 220, Duration: 0.35, Wave: Square})
	} else if ev.Has(game.EventPoint) {
		cues = append(cues, Cue{Freq: 660, Duration: 0.12, Wave: Sine})
	}
	if ev.Has(game.EventPaddleHit) {
		cues = append(cues, Cue{Freq: 480, Duration: 0.06, Wave: Square})
	}
	if ev.Has(game.EventWallBounce) {
		cues = append(cues, Cue{Freq: 240, Duration: 0.05, Wave: Square})
	}
	if ev.Has(game.EventServe) {
		cues = append(cues, Cue{Freq: 880, Duration: 0.08, Wave: Sine})
	}
	return cues
}

// SoundManager mixes effect tones into the speaker. The zero value and a
// nil manager are silent.
type SoundManager struct {
	sr     beep.SampleRate
	volume float64
	mixer  *beep.Mixer
}

// NewSoundManager opens the speaker when audio is enabled.
func NewSoundManager(cfg config.AudioConfig) (*SoundManager, error) {
	if !cfg.Enabled {
		return &SoundManager{}, nil
	}
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	slog.Debug("audio ready", "sample_rate", cfg.SampleRate)
	return &SoundManager{sr: sr, volume: cfg.Volume, mixer: mixer}, nil
}

// Enabled reports whether sounds reach the speaker.
func (s *SoundManager) Enabled() bool {
	return s != nil && s.mixer != nil
}

// Play queues the sounds for ev.
func (s *SoundManager) Play(ev game.Event) {
	if !s.Enabled() || ev == 0 {
		return
	}
	cues := Cues(ev)
	if len(cues) == 0 {
		return
	}
	speaker.Lock()
	for _, c := range cues {
		s.mixer.Add(NewTone(s.sr, c, s.volume))
	}
	speaker.Unlock()
}

// Close releases the speaker.
func (s *SoundManager) Close() {
	if !s.Enabled() {
		return
	}
	speaker.Clear()
	speaker.Close()
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
