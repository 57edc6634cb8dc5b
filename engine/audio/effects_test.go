package audio

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	n, peak := drain(NewOscillator(440, 250*time.Millisecond, rate))
	if n != rate.N(250*time.Millisecond) {
		t.Fatalf("oscillator produced %d samples, want %d", n, rate.N(250*time.Millisecond))
	}
	if peak > 1 || peak < 0.9 {
		t.Fatalf("oscillator peak %v, want close to 1", peak)
	}
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	env := NewEnvelope(NewOscillator(100, time.Second, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)
	buf := make([][2]float64, rate.N(time.Second))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("envelope streamed %d samples, want %d", n, len(buf))
	}
	if math.Abs(buf[0][0]) > 1e-9 || math.Abs(buf[n-1][0]) > 0.01 {
		t.Fatalf("envelope edges not silent: first %v last %v", buf[0][0], buf[n-1][0])
	}
}

func TestChimeVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		volume  float64
		maxPeak float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 1},
	}
	for _, tt := range tests {
		n, peak := drain(CreateMatchChime(rate, tt.volume))
		if n != rate.N(chimeDuration) {
			t.Errorf("volume %v: %d samples, want %d", tt.volume, n, rate.N(chimeDuration))
		}
		if peak > tt.maxPeak+1e-9 {
			t.Errorf("volume %v: peak %v exceeds %v", tt.volume, peak, tt.maxPeak)
		}
	}
}

func TestDisabledManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(config.Audio{Enabled: false, Volume: 1})
	if err := sm.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	sm.PlayMatch()
	sm.PlayReset()
	sm.Cleanup()
	if sm.initialized {
		t.Fatal("disabled manager should never initialize the speaker")
	}
}
