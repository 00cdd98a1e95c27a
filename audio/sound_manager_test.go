package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/tree"
)

// TestSoundManagerGracefulDegradation verifies cues are safe without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil, nil)

	assert.NotPanics(t, func() {
		sm.Play(CueDrill)
		sm.FileOpened(tree.Node{Name: "a"})
		sm.TransitionStarted(nav.TransitionDrillDown)
		sm.CommandRejected("locked")
		sm.Cleanup()
	})
	assert.Zero(t, sm.Played(CueOpen))
}

func TestNilSoundManager(t *testing.T) {
	var sm *SoundManager

	assert.NotPanics(t, func() {
		assert.NoError(t, sm.Initialize())
		sm.Play(CueOpen)
		sm.TransitionStarted(nav.TransitionFlyTo)
		sm.Cleanup()
	})
	assert.Zero(t, sm.Played(CueOpen))
}

func TestDisabledSkipsSpeaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg, nil)

	assert.NoError(t, sm.Initialize())
	sm.Play(CueOpen)
	assert.Zero(t, sm.Played(CueOpen))
}

// TestSoundManagerInitialization tolerates machines without audio devices
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil, nil)

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	defer sm.Cleanup()

	assert.NoError(t, sm.Initialize())
	sm.TransitionStarted(nav.TransitionDrillOut)
	sm.TransitionStarted(nav.TransitionNone)
	assert.Equal(t, 1, sm.Played(CueDrill))
	assert.Zero(t, sm.Played(CueFly))
}
