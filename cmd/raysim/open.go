package main

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/app"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
)

// openSceneDialog shows a native file dialog. The choice is picked up by
// the main loop, which owns the scenes and the GL context.
func (s *simulator) openSceneDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Scene files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scene").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				s.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case s.pendingScene <- path:
		default:
			// A scene is already queued
		}
	}()
}

// replaceScene swaps every loaded scene for the one at path. On failure
// the current scenes stay.
func (s *simulator) replaceScene(path string) {
	pool := s.app.Pool()
	next, err := s.assets.LoadScene(path, pool)
	if err != nil {
		s.log.Error("failed to open scene", zap.String("path", path), zap.Error(err))
		return
	}

	for _, old := range append([]*scene.Scene(nil), s.app.Scenes()...) {
		s.app.RemoveScene(old.Name)
	}
	if err := s.app.AddScene(next); err != nil {
		next.Clear()
		s.log.Error("failed to add scene", zap.Error(err))
		return
	}

	s.setupScene(next)
	s.log.Info("scene opened", zap.String("path", path))
}

// setupScene attaches logging, feedback and panel surfaces to a new scene.
func (s *simulator) setupScene(sc *scene.Scene) {
	app.LogEvents(s.log, sc)
	if s.sound != nil {
		attachFeedback(s.sound, sc, s.log)
	}
	s.panels = s.panels[:0]
	s.attachPanels()
	s.cam.FitToBounds(sceneBounds(s.app.Scenes()))
}
