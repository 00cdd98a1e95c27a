// Package audio plays short synthesized cues for navigation events
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/tree"
)

// SoundManager mixes navigation cues onto the speaker
// A nil or uninitialized manager is silent
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	log         logrus.FieldLogger
	initialized bool
	played      map[Cue]int
}

// NewSoundManager creates a manager, nil cfg uses DefaultConfig
func NewSoundManager(cfg *Config, log logrus.FieldLogger) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SoundManager{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		log:    log.WithField("component", "audio"),
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker, a disabled config leaves the manager silent
func (sm *SoundManager) Initialize() error {
	if sm == nil {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	err := speaker.Init(sm.cfg.SampleRate, sm.cfg.SampleRate.N(100*time.Millisecond))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.WithField("rate", int(sm.cfg.SampleRate)).Debug("speaker initialized")
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	if sm == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues cue on the mixer
func (sm *SoundManager) Play(cue Cue) {
	if sm == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := GetSoundEffect(cue, sm.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[cue]++
}

// Played reports how many times cue reached the mixer
func (sm *SoundManager) Played(cue Cue) int {
	if sm == nil {
		return 0
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[cue]
}

// FileOpened implements nav.Listener
func (sm *SoundManager) FileOpened(tree.Node) {
	sm.Play(CueOpen)
}

// TransitionStarted implements nav.Listener
func (sm *SoundManager) TransitionStarted(t nav.Transition) {
	switch t {
	case nav.TransitionDrillDown, nav.TransitionDrillOut:
		sm.Play(CueDrill)
	case nav.TransitionFlyTo:
		sm.Play(CueFly)
	}
}

// CommandRejected implements nav.Listener
func (sm *SoundManager) CommandRejected(string) {
	sm.Play(CueReject)
}
