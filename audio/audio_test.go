package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
)

func TestCues(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want []float64
	}{
		{"none", 0, nil},
		{"paddle", game.EventPaddleHit, []float64{480}},
		{"solo hit scores", game.EventPaddleHit | game.EventPoint, []float64{660, 480}},
		{"miss", game.EventPoint | game.EventMiss, []float64{220}},
		{"bounce and serve", game.EventWallBounce | game.EventServe, []float64{240, 880}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cues := Cues(tc.ev)
			if len(cues) != len(tc.want) {
				t.Fatalf("got %d cues, want %d", len(cues), len(tc.want))
			}
			for i, c := range cues {
				if c.Freq != tc.want[i] {
					t.Errorf("cue %d freq = %v, want %v", i, c.Freq, tc.want[i])
				}
			}
		})
	}
}

func TestToneLengthAndFade(t *testing.T) {
	sr := beep.SampleRate(1000)
	s := NewTone(sr, Cue{Freq: 100, Duration: 0.1, Wave: Square}, 0.5)

	buf := make([][2]float64, 64)
	total := 0
	first := math.NaN()
	for {
		n, ok := s.Stream(buf)
		if !ok {
			break
		}
		if math.IsNaN(first) && n > 0 {
			first = buf[0][0]
		}
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 0.5 {
				t.Fatalf("sample %d exceeds volume: %v", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d channels differ", total+i)
			}
		}
		total += n
	}
	if total != 100 {
		t.Errorf("streamed %d samples, want 100", total)
	}
	if first != 0.5 {
		t.Errorf("first sample = %v, want 0.5", first)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestDisabledManagerIsSilent(t *testing.T) {
	s, err := NewSoundManager(config.AudioConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewSoundManager: %v", err)
	}
	if s.Enabled() {
		t.Error("disabled manager reports enabled")
	}
	s.Play(game.EventPaddleHit)
	s.Close()

	var nilManager *SoundManager
	nilManager.Play(game.EventMiss)
	nilManager.Close()
}
