// Package audio plays the game's synthesized sound effects through beep.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager owns the speaker and mixes one-shot effects into it.
// When audio is disabled or the speaker fails to start every Play call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
}

// NewSoundManager creates a sound manager for the given settings. Call Initialize before playing.
func NewSoundManager(cfg config.Audio) *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
	}
}

// Initialize starts the speaker. A failure disables audio and is returned for logging.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		sm.enabled = false
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[Audio] speaker started at %d Hz", sampleRate)
	return nil
}

// PlayMatch plays the match chime.
func (sm *SoundManager) PlayMatch() {
	sm.play(CreateMatchChime(sampleRate, sm.volume))
}

// PlayReset plays the new-puzzle swell.
func (sm *SoundManager) PlayReset() {
	sm.play(CreateResetSound(sampleRate, sm.volume))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
