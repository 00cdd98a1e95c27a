package audio

import "github.com/gopxl/beep"

// Cue identifies a navigation sound
type Cue int

const (
	CueDrill Cue = iota
	CueFly
	CueOpen
	CueReject
)

func (c Cue) String() string {
	switch c {
	case CueDrill:
		return "drill"
	case CueFly:
		return "fly"
	case CueOpen:
		return "open"
	case CueReject:
		return "reject"
	}
	return "unknown"
}

// Config holds audio settings
type Config struct {
	Enabled      bool
	SampleRate   beep.SampleRate
	MasterVolume float64
	CueVolumes   map[Cue]float64
}

// DefaultConfig returns enabled audio at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		SampleRate:   beep.SampleRate(44100),
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueDrill:  0.6,
			CueFly:    0.3,
			CueOpen:   0.8,
			CueReject: 0.5,
		},
	}
}

func (c *Config) volume(cue Cue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
