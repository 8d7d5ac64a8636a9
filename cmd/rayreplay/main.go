// Package main replays a pointer track against a scene without a window and
// logs the resulting interaction events.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

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
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("replay failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Scene.Track == "" {
		return errors.New("no track given, use -track or scene.track")
	}

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
		return err
	}
	app.LogEvents(log, s)

	track, err := m.LoadTrack(cfg.Scene.Track)
	if err != nil {
		return err
	}
	track.Loop = track.Loop || cfg.Scene.LoopTrack
	log.Info("replaying",
		zap.String("track", track.Name),
		zap.Int("frames", track.Len()),
		zap.Bool("loop", track.Loop),
	)

	hits := 0
	n, err := a.Run(ctx, track, func(r app.Result) {
		for side, ok := range r.OK {
			if !ok {
				continue
			}
			hits++
			log.Debug("hit",
				zap.Uint64("frame", r.Frame),
				zap.Int("side", side),
				zap.String("object", r.Hits[side].Object.Name()),
				zap.Float32("distance", r.Hits[side].Distance),
			)
		}
	})
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted", zap.Int("frames", n))
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("replay finished", zap.Int("frames", n), zap.Int("hits", hits))
	return nil
}
