// Package app drives the per-frame interaction loop: it owns the scenes and
// the collision detector and feeds them pointer frames.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/collision"
	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
)

// Options configures an App.
type Options struct {
	Detector collision.Options
	// FrameInterval paces Run; zero runs frames back to back.
	FrameInterval time.Duration
}

// DefaultOptions returns the default app options.
func DefaultOptions() Options {
	return Options{Detector: collision.DefaultOptions()}
}

// Result is the outcome of one Step.
type Result struct {
	Frame uint64
	Hits  [scene.SideCount]collision.Hit
	OK    [scene.SideCount]bool
}

// App is the interaction loop. It is driven from a single goroutine.
type App struct {
	log      *zap.Logger
	opts     Options
	pool     *scene.IDPool
	scenes   []*scene.Scene
	detector *collision.Detector
	frame    uint64
}

// New creates an app with an empty scene list.
func New(log *zap.Logger, opts Options) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		log:      log.Named("app"),
		opts:     opts,
		pool:     scene.NewIDPool(),
		detector: collision.New(log, opts.Detector),
	}
}

// Pool returns the id pool shared by the app's scenes.
func (a *App) Pool() *scene.IDPool {
	return a.pool
}

// Detector returns the app's collision detector.
func (a *App) Detector() *collision.Detector {
	return a.detector
}

// Scenes returns the scenes in draw and hit-test order.
func (a *App) Scenes() []*scene.Scene {
	return a.scenes
}

// Scene returns the scene named name, or nil.
func (a *App) Scene(name string) *scene.Scene {
	for _, s := range a.scenes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddScene appends s. Scene names must be unique.
func (a *App) AddScene(s *scene.Scene) error {
	if a.Scene(s.Name) != nil {
		return fmt.Errorf("scene %q already added", s.Name)
	}
	a.scenes = append(a.scenes, s)
	a.log.Info("scene added", zap.String("scene", s.Name), zap.Int("objects", s.Len()))
	return nil
}

// LoadScene loads a scene file through m and adds it.
func (a *App) LoadScene(m *assets.Manager, path string) (*scene.Scene, error) {
	s, err := m.LoadScene(path, a.pool)
	if err != nil {
		return nil, err
	}
	if err := a.AddScene(s); err != nil {
		s.Clear()
		return nil, err
	}
	return s, nil
}

// RemoveScene removes the scene named name and releases its objects.
func (a *App) RemoveScene(name string) bool {
	for i, s := range a.scenes {
		if s.Name != name {
			continue
		}
		s.Walk(func(o *scene.Object) bool {
			a.detector.Forget(o)
			return true
		})
		s.Clear()
		a.scenes = append(a.scenes[:i], a.scenes[i+1:]...)
		a.log.Info("scene removed", zap.String("scene", name))
		return true
	}
	return false
}

// Frame returns the number of completed steps.
func (a *App) Frame() uint64 {
	return a.frame
}

// Step runs one frame: the left side is resolved before the right.
func (a *App) Step(f input.Frame) Result {
	r := Result{Frame: a.frame}
	for side := range scene.SideCount {
		r.Hits[side], r.OK[side] = a.detector.Update(a.scenes, side, f.Pointers[side])
	}
	a.frame++
	return r
}

// Run steps frames from src until it is exhausted or ctx is done. onFrame,
// if not nil, sees each result. It returns the number of frames run.
func (a *App) Run(ctx context.Context, src input.Source, onFrame func(Result)) (int, error) {
	var tick <-chan time.Time
	if a.opts.FrameInterval > 0 {
		ticker := time.NewTicker(a.opts.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		f, ok := src.Next()
		if !ok {
			break
		}
		r := a.Step(f)
		if onFrame != nil {
			onFrame(r)
		}
		n++

		if tick != nil {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-tick:
			}
		}
	}

	a.log.Info("source exhausted",
		zap.Int("frames", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return n, nil
}
