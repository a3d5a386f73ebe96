package quality

import "fmt"

// Channels is fixed at mono; voice notes never need more.
const Channels = 1

// MaxFileSizeBytes is the target ceiling for a saved note (20 MiB), chosen to
// stay under common speech-to-text upload limits.
const MaxFileSizeBytes = 20 * 1024 * 1024

// Preset identifies one of the fixed quality profiles.
type Preset string

const (
	PresetStandard Preset = "standard"
	PresetExtended Preset = "extended"
	PresetMaximum  Preset = "maximum"
)

// DefaultPreset is used when no preset is configured.
const DefaultPreset = PresetExtended

// Profile describes the capture format and output encoding of a preset.
type Profile struct {
	Preset      Preset `json:"preset" yaml:"preset"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	SampleRate  int    `json:"sample_rate" yaml:"sample_rate"`
	SampleWidth int    `json:"sample_width" yaml:"sample_width"` // bytes per sample, 1 or 2
	MaxDuration string `json:"max_duration" yaml:"max_duration"` // human-readable estimate
}

// BitDepth returns the output PCM bit depth.
func (p Profile) BitDepth() int {
	return p.SampleWidth * 8
}

// BytesPerSecond returns the output data rate of the encoded file.
func (p Profile) BytesPerSecond() int {
	return p.SampleRate * p.SampleWidth * Channels
}

// MaxDurationSeconds returns the longest recording that fits under
// MaxFileSizeBytes. Integer floor so the estimate never exceeds the cap.
func (p Profile) MaxDurationSeconds() int {
	return MaxFileSizeBytes / p.BytesPerSecond()
}

var profiles = map[Preset]Profile{
	PresetStandard: {
		Preset:      PresetStandard,
		Name:        "Standard",
		Description: "Best clarity for voice. Native format for STT models.",
		SampleRate:  16000,
		SampleWidth: 2,
		MaxDuration: "~10 minutes",
	},
	PresetExtended: {
		Preset:      PresetExtended,
		Name:        "Extended",
		Description: "Good quality for longer recordings. Still very clear.",
		SampleRate:  16000,
		SampleWidth: 1,
		MaxDuration: "~21 minutes",
	},
	PresetMaximum: {
		Preset:      PresetMaximum,
		Name:        "Maximum Duration",
		Description: "Telephone quality. Use for very long voice notes.",
		SampleRate:  8000,
		SampleWidth: 1,
		MaxDuration: "~43 minutes",
	},
}

// presetOrder keeps listing output stable.
var presetOrder = []Preset{PresetStandard, PresetExtended, PresetMaximum}

// ForPreset returns the profile for the given preset.
func ForPreset(p Preset) (Profile, error) {
	profile, ok := profiles[p]
	if !ok {
		return Profile{}, fmt.Errorf("unknown quality preset: %q", p)
	}
	return profile, nil
}

// ParsePreset maps a stored preset identifier to a Preset, falling back to the
// default for anything unrecognized (matches the settings fallback policy).
func ParsePreset(s string) Preset {
	p := Preset(s)
	if _, ok := profiles[p]; !ok {
		return DefaultPreset
	}
	return p
}

// Default returns the profile for the default preset.
func Default() Profile {
	return profiles[DefaultPreset]
}

// All returns the profiles in display order.
func All() []Profile {
	out := make([]Profile, 0, len(presetOrder))
	for _, p := range presetOrder {
		out = append(out, profiles[p])
	}
	return out
}
