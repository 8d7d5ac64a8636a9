package main

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/config"
	"github.com/Faultbox/midgard-xr/internal/engine/audio"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
)

// newFeedback opens the audio device and loads configured cues. A failed
// device leaves the simulator silent rather than stopping it.
func newFeedback(cfg config.AudioConfig, m *assets.Manager, log *zap.Logger) *audio.Manager {
	log = log.Named("audio")
	sound, err := audio.New()
	if err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return nil
	}
	sound.SetVolume(cfg.Volume)

	for name, path := range cfg.Cues {
		cue, err := audio.ParseCue(name)
		if err != nil {
			log.Warn("skipping cue", zap.Error(err))
			continue
		}
		data, err := m.Load(path)
		if err == nil {
			err = sound.LoadCue(cue, data)
		}
		if err != nil {
			log.Warn("keeping built-in cue", zap.String("cue", name), zap.Error(err))
		}
	}

	if err := sound.Init(); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return nil
	}
	return sound
}

// attachFeedback plays cues for clicks, grabs and releases in s.
func attachFeedback(sound *audio.Manager, s *scene.Scene, log *zap.Logger) {
	play := func(cue audio.Cue) {
		if err := sound.Play(cue); err != nil {
			log.Debug("cue not played", zap.Stringer("cue", cue), zap.Error(err))
		}
	}
	s.Walk(func(o *scene.Object) bool {
		o.OnClick(func(_ int, clicked bool) {
			if clicked {
				play(audio.CueClick)
			}
		})
		o.OnGrab(func(int) { play(audio.CueGrab) })
		o.OnRelease(func(int) { play(audio.CueRelease) })
		return true
	})
}
