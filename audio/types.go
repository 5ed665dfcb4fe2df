package audio

// SoundType identifies a playback cue
type SoundType int

const (
	SoundLoop   SoundType = iota // shot restarted from frame 0
	SoundStep                    // manual frame step
	SoundImpact                  // a ball changed course abruptly
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"loop", "step", "impact"}

// String returns the cue name used in config and logs
func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}
