package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// SoundManager plays playback cues through a mixer on the speaker.
// All methods are safe to call when initialization failed; they do nothing.
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	log         zerolog.Logger
	initialized bool
	muted       bool
}

// NewSoundManager creates a manager; nil cfg selects defaults
func NewSoundManager(cfg *AudioConfig, logger zerolog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	cfg.Clamp()
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info().Int("sample_rate", sm.cfg.SampleRate).Float64("volume", sm.cfg.MasterVolume).Msg("audio initialized")
	return nil
}

// Cleanup drops queued sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues a cue unless muted
func (sm *SoundManager) Play(s SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	streamer := GetSoundEffect(s, sm.cfg)
	if streamer == nil {
		return
	}
	// The speaker goroutine reads the mixer; it must be locked while adding
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}
