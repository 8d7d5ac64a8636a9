// Package main is the desktop ray interaction simulator. The mouse drives the
// left pointer through the camera; a configured track drives the right one.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/app"
	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/config"
	"github.com/Faultbox/midgard-xr/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("simulator failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	log.Info("simulator closed normally")
	logger.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("=== Midgard XR Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m := assets.NewManager()
	defer m.Close()
	if err := m.AddDir(filepath.Dir(cfg.Scene.Path)); err != nil {
		return err
	}

	opts := app.DefaultOptions()
	opts.Detector.TriggerThreshold = cfg.Interaction.TriggerThreshold
	a := app.New(log, opts)

	s, err := a.LoadScene(m, filepath.Base(cfg.Scene.Path))
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	sim, err := newSimulator(cfg, log, a, m)
	if err != nil {
		return err
	}
	defer sim.Close()

	if cfg.Audio.Enabled {
		sim.sound = newFeedback(cfg.Audio, m, log)
	}
	sim.setupScene(s)

	if cfg.Scene.Track != "" {
		track, err := m.LoadTrack(cfg.Scene.Track)
		if err != nil {
			return fmt.Errorf("loading track: %w", err)
		}
		track.Loop = track.Loop || cfg.Scene.LoopTrack
		sim.track = track
	}

	sim.Run()
	return nil
}
