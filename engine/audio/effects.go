package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	chimeDuration = 900 * time.Millisecond
	chimeAttack   = 10 * time.Millisecond
	chimeRelease  = 700 * time.Millisecond

	resetDuration = 350 * time.Millisecond
	resetAttack   = 40 * time.Millisecond
	resetRelease  = 250 * time.Millisecond
)

// oscillator generates a sine wave of fixed length.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine oscillator that ends after duration.
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol; math.Log2(0) is -Inf so zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateMatchChime builds the two-note chime played when the stones line up:
// a fifth (E5 over A4) with a slow release.
func CreateMatchChime(rate beep.SampleRate, volume float64) beep.Streamer {
	low := NewEnvelope(NewOscillator(440, chimeDuration, rate), chimeDuration, chimeAttack, chimeRelease, rate)
	high := NewEnvelope(NewOscillator(659.25, chimeDuration, rate), chimeDuration, chimeAttack, chimeRelease, rate)
	return newVolume(beep.Mix(newVolume(low, 0.6), newVolume(high, 0.4)), volume)
}

// CreateResetSound builds the low swell played when a new puzzle is dealt.
func CreateResetSound(rate beep.SampleRate, volume float64) beep.Streamer {
	tone := NewEnvelope(NewOscillator(220, resetDuration, rate), resetDuration, resetAttack, resetRelease, rate)
	return newVolume(tone, 0.5*volume)
}
