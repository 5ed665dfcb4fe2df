package audio

// DefaultSampleRate is the speaker rate in Hz
const DefaultSampleRate = 48000

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 - 1.0
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
}

// DefaultAudioConfig returns default settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:       true,
		MasterVolume:  0.5,
		EffectVolumes: [soundTypeCount]float64{0.6, 0.4, 0.5},
		SampleRate:    DefaultSampleRate,
	}
}

// Clamp keeps volumes within [0, 1] and the sample rate positive
func (c *AudioConfig) Clamp() {
	c.MasterVolume = clamp01(c.MasterVolume)
	for i := range c.EffectVolumes {
		c.EffectVolumes[i] = clamp01(c.EffectVolumes[i])
	}
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
