package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue timings
const (
	loopNote1Duration = 70 * time.Millisecond
	loopNote2Duration = 140 * time.Millisecond
	loopAttack        = 4 * time.Millisecond
	loopNote1Release  = 30 * time.Millisecond
	loopNote2Release  = 110 * time.Millisecond

	stepDuration = 25 * time.Millisecond

	impactDuration = 60 * time.Millisecond
	impactAttack   = 1 * time.Millisecond
	impactRelease  = 50 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave streamer that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear fade in over attack and fade out over
// the final release of duration
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

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateLoopSound is a rising two-note chime played when the shot restarts
func CreateLoopSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// G5 then D6
	n1 := NewEnvelope(NewOscillator(783.99, loopNote1Duration, WaveSine, rate),
		loopNote1Duration, loopAttack, loopNote1Release, rate)
	n2 := NewEnvelope(NewOscillator(1174.66, loopNote2Duration, WaveSine, rate),
		loopNote2Duration, loopAttack, loopNote2Release, rate)

	return newVolume(beep.Seq(n1, n2), cfg.EffectVolumes[SoundLoop]*cfg.MasterVolume)
}

// CreateStepSound is a short tick for each manual frame step
func CreateStepSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	tone, err := generators.SineTone(rate, 1800)
	if err != nil {
		// Rate too low for 1800Hz, fall back to a quarter-rate square
		tone = NewOscillator(float64(rate)/4, stepDuration, WaveSquare, rate)
	}
	shaped := NewEnvelope(beep.Take(rate.N(stepDuration), tone), stepDuration, 0, stepDuration, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundStep]*cfg.MasterVolume)
}

// CreateImpactSound is a dull knock: filtered noise over a low thump
func CreateImpactSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewEnvelope(NewOscillator(0, impactDuration, WaveNoise, rate),
		impactDuration, impactAttack, impactRelease, rate)
	thump := NewEnvelope(NewOscillator(140, impactDuration, WaveSine, rate),
		impactDuration, impactAttack, impactRelease, rate)

	mixed := beep.Mix(newVolume(noise, 0.35), newVolume(thump, 0.8))
	return newVolume(beep.Take(rate.N(impactDuration), mixed), cfg.EffectVolumes[SoundImpact]*cfg.MasterVolume)
}

// GetSoundEffect returns a fresh streamer for the given cue, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundLoop:
		return CreateLoopSound(cfg)
	case SoundStep:
		return CreateStepSound(cfg)
	case SoundImpact:
		return CreateImpactSound(cfg)
	default:
		return nil
	}
}
