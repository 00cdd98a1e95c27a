package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	drillDuration  = 450 * time.Millisecond
	drillAttack    = 60 * time.Millisecond
	drillRelease   = 300 * time.Millisecond
	flyDuration    = 220 * time.Millisecond
	flyAttack      = 40 * time.Millisecond
	flyRelease     = 150 * time.Millisecond
	openNote1      = 90 * time.Millisecond
	openNote2      = 220 * time.Millisecond
	openAttack     = 5 * time.Millisecond
	openRelease1   = 60 * time.Millisecond
	openRelease2   = 180 * time.Millisecond
	rejectDuration = 150 * time.Millisecond
	rejectAttack   = 10 * time.Millisecond
	rejectRelease  = 80 * time.Millisecond
)

// oscillator generates raw audio waves, optionally sweeping frequency
type oscillator struct {
	freq, sweep float64 // start frequency and Hz per second
	phase       float64
	duration    int
	position    int
	wave        WaveType
	rate        beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding linearly from one frequency to another
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		sweep:    (to - from) / duration.Seconds(),
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
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
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
	if releaseStart < e.attackSamples {
		releaseStart = e.attackSamples
	}
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly, math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateDrillSound is a falling noise whoosh over a low sweep for entering a level
func CreateDrillSound(cfg *Config) beep.Streamer {
	rate := cfg.SampleRate

	noise := NewEnvelope(NewOscillator(0, drillDuration, WaveNoise, rate), drillDuration, drillAttack, drillRelease, rate)
	sweep := NewEnvelope(NewSweep(220, 70, drillDuration, WaveSine, rate), drillDuration, drillAttack, drillRelease, rate)

	mixed := beep.Mix(newVolume(noise, 0.35), newVolume(sweep, 0.65))
	return newVolume(mixed, cfg.volume(CueDrill))
}

// CreateFlySound is a soft rising glide for camera fly-to
func CreateFlySound(cfg *Config) beep.Streamer {
	rate := cfg.SampleRate

	glide := NewEnvelope(NewSweep(180, 320, flyDuration, WaveSine, rate), flyDuration, flyAttack, flyRelease, rate)
	return newVolume(glide, cfg.volume(CueFly))
}

// CreateOpenSound is a two-note chime for opening a file
func CreateOpenSound(cfg *Config) beep.Streamer {
	rate := cfg.SampleRate

	// E5 then A5
	n1 := NewEnvelope(NewOscillator(659.25, openNote1, WaveSine, rate), openNote1, openAttack, openRelease1, rate)
	n2 := NewEnvelope(NewOscillator(880.0, openNote2, WaveSine, rate), openNote2, openAttack, openRelease2, rate)

	return newVolume(beep.Seq(n1, n2), cfg.volume(CueOpen))
}

// CreateRejectSound is a short harsh buzz for commands ignored during a transition
func CreateRejectSound(cfg *Config) beep.Streamer {
	rate := cfg.SampleRate

	buzz := NewEnvelope(NewOscillator(110, rejectDuration, WaveSaw, rate), rejectDuration, rejectAttack, rejectRelease, rate)
	return newVolume(buzz, cfg.volume(CueReject))
}

// GetSoundEffect returns the streamer for cue, nil for an unknown cue
func GetSoundEffect(cue Cue, cfg *Config) beep.Streamer {
	switch cue {
	case CueDrill:
		return CreateDrillSound(cfg)
	case CueFly:
		return CreateFlySound(cfg)
	case CueOpen:
		return CreateOpenSound(cfg)
	case CueReject:
		return CreateRejectSound(cfg)
	}
	return nil
}
