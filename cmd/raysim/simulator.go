package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/app"
	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/config"
	"github.com/Faultbox/midgard-xr/internal/engine/audio"
	"github.com/Faultbox/midgard-xr/internal/engine/camera"
	"github.com/Faultbox/midgard-xr/internal/engine/debug"
	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/picking"
	"github.com/Faultbox/midgard-xr/internal/engine/renderer"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/internal/engine/ui2d"
	"github.com/Faultbox/midgard-xr/internal/engine/window"
	"github.com/Faultbox/midgard-xr/pkg/geom"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

const (
	moveSpeed = 3.0 // meters per second
	rayLength = 20
)

var (
	colorGrid   = renderer.Color{0.25, 0.25, 0.3, 1}
	colorBounds = renderer.Color{0.9, 0.8, 0.2, 1}
	colorRay    = renderer.Color{0.2, 0.9, 0.9, 1}
	colorIdle   = renderer.Color{0.7, 0.7, 0.75, 1}
	colorHover  = renderer.Color{0.4, 0.7, 1, 1}
	colorPress  = renderer.Color{1, 0.5, 0.2, 1}
	colorBound  = renderer.Color{0.3, 1, 0.4, 1}
)

// panelUI is a surface shown on a panel object.
type panelUI struct {
	panel   *scene.Object
	surface *ui2d.Surface
}

type simulator struct {
	cfg    *config.Config
	log    *zap.Logger
	app    *app.App
	assets *assets.Manager
	sound  *audio.Manager // nil when muted
	win    *window.Window
	rend   *renderer.Renderer
	cam    *camera.OrbitCamera

	mouse       *input.Mouse
	events      []input.Event
	track       *input.Track
	panels      []panelUI
	shots       *debug.Screenshots
	showBounds  bool
	lastPointer input.Frame

	pendingScene chan string

	grid []float32
}

func newSimulator(cfg *config.Config, log *zap.Logger, a *app.App, m *assets.Manager) (*simulator, error) {
	win, err := window.New(window.Config{
		Title:      "Midgard XR",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created
	rend, err := renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, log)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &simulator{
		cfg:          cfg,
		log:          log.Named("sim"),
		app:          a,
		assets:       m,
		win:          win,
		rend:         rend,
		cam:          camera.NewOrbitCamera(),
		mouse:        input.NewMouse(),
		shots:        debug.NewScreenshots(".", "raysim"),
		showBounds:   cfg.Interaction.ShowBounds,
		pendingScene: make(chan string, 1),
		grid:         debug.FloorGrid(10, 1),
	}
	return s, nil
}

// attachPanels gives every clickable panel a surface with one button.
func (s *simulator) attachPanels() {
	for _, sc := range s.app.Scenes() {
		sc.Walk(func(o *scene.Object) bool {
			if o.Kind() != scene.KindPanel || !o.Clickable() {
				return true
			}
			surface := ui2d.NewSurface(256, 256)
			name := o.Name()
			surface.AddButton(&ui2d.Button{
				ID:     name + "/ok",
				Label:  "OK",
				Bounds: ui2d.Rect{X: 64, Y: 160, W: 128, H: 48},
				OnClick: func(side int) {
					s.log.Info("panel button", zap.String("panel", name), zap.Int("side", side))
				},
			})
			surface.Attach(o)
			s.panels = append(s.panels, panelUI{panel: o, surface: surface})
			return true
		})
	}
}

// Close releases audio, GL and window resources.
func (s *simulator) Close() {
	if s.sound != nil {
		s.sound.Close()
	}
	s.rend.Close()
	s.win.Close()
}

// Run loops until the window closes or escape is pressed.
func (s *simulator) Run() {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	s.log.Info("starting main loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		s.events = window.Events(s.events[:0])
		if s.mouse.Apply(s.events) || !s.handleEvents() {
			return
		}
		select {
		case path := <-s.pendingScene:
			s.replaceScene(path)
		default:
		}
		s.updateCamera(dt)

		width, height := s.win.Size()
		viewProj := s.cam.ViewProjection(float32(width) / float32(max(height, 1)))

		frame := s.pointerFrame(viewProj, width, height)
		s.app.Step(frame)
		s.lastPointer = frame

		s.draw(viewProj)
		s.win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			s.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// handleEvents applies window and key events. It returns false on escape.
func (s *simulator) handleEvents() bool {
	for _, e := range s.events {
		switch e.Type {
		case input.EventWindowResize:
			s.rend.Resize(e.Width, e.Height)
		case input.EventKeyDown:
			switch e.Key {
			case window.KeyEscape:
				return false
			case window.KeyTab:
				s.showBounds = !s.showBounds
			case window.KeyR:
				s.cam.FitToBounds(sceneBounds(s.app.Scenes()))
				if s.track != nil {
					s.track.Reset()
				}
			case window.KeyO:
				s.openSceneDialog()
			case window.KeyF12:
				s.screenshot()
			}
		}
	}
	return true
}

func (s *simulator) updateCamera(dt float32) {
	if s.mouse.Down(input.ButtonRight) {
		s.cam.HandleDrag(s.mouse.DeltaX, s.mouse.DeltaY)
	}
	if s.mouse.Wheel != 0 {
		s.cam.HandleZoom(s.mouse.Wheel)
	}

	var forward, right float32
	if s.mouse.KeyDown(window.KeyW) {
		forward++
	}
	if s.mouse.KeyDown(window.KeyS) {
		forward--
	}
	if s.mouse.KeyDown(window.KeyD) {
		right++
	}
	if s.mouse.KeyDown(window.KeyA) {
		right--
	}
	speed := float32(moveSpeed)
	if s.mouse.KeyDown(window.KeyShift) {
		speed *= 3
	}
	if forward != 0 || right != 0 {
		s.cam.HandleMovement(forward*speed*dt, right*speed*dt, 0)
	}
}

// pointerFrame builds this frame's input: the track, if any, with the left
// side replaced by the mouse ray.
func (s *simulator) pointerFrame(viewProj math.Mat4, width, height int) input.Frame {
	var f input.Frame
	if s.track != nil {
		f, _ = s.track.Next()
	}
	ray := picking.ScreenToRay(s.mouse.X, s.mouse.Y, float32(width), float32(height), viewProj.Inverse())
	f.Pointers[input.Left] = input.Pointer{
		Pose:    picking.PoseFromRay(ray),
		Active:  true,
		Trigger: s.mouse.Trigger(input.ButtonLeft),
	}
	return f
}

func (s *simulator) draw(viewProj math.Mat4) {
	s.rend.Begin(viewProj)
	s.rend.DrawLines(s.grid, colorGrid)

	for _, sc := range s.app.Scenes() {
		if !sc.Visible {
			continue
		}
		sc.Walk(func(o *scene.Object) bool {
			s.drawObject(o)
			return true
		})
	}

	for _, p := range s.panels {
		s.drawPanelUI(p)
	}

	// The mouse ray starts at the eye, so only the track side is visible.
	if right := s.lastPointer.Pointers[input.Right]; s.cfg.Interaction.ShowRays && right.Active {
		s.rend.DrawLines(debug.RayLine(geom.RayFromPose(right.Pose), rayLength), colorRay)
	}
}

func (s *simulator) drawObject(o *scene.Object) {
	var lines []float32
	switch o.Kind() {
	case scene.KindMesh:
		if o.Mesh() != nil {
			lines = debug.MeshLines(o.Mesh(), o.Scale(), o.Pose())
		}
	case scene.KindPanel:
		lines = debug.RectLines(o.Pose(), o.Scale().XY())
	}
	s.rend.DrawLines(lines, objectColor(o))

	if s.showBounds {
		s.rend.DrawLines(debug.BoxLines(o.Bounds(), debug.DefaultBoxPadding), colorBounds)
	}
}

func (s *simulator) drawPanelUI(p panelUI) {
	pose := p.panel.Pose()
	for _, b := range p.surface.Buttons() {
		center, half := p.surface.LocalRect(b.Bounds, p.panel.Scale().XY())
		// Lifted off the panel so the outlines do not z-fight.
		offset := math.NewPose(math.Vec3{X: center.X, Y: center.Y, Z: 0.005}, math.QuatIdentity())
		s.rend.DrawLines(debug.RectLines(pose.Mul(offset), half), renderer.Color(b.Color().Array()))
	}
}

func (s *simulator) screenshot() {
	pixels, w, h := s.rend.ReadPixels()
	path, err := s.shots.SavePixels(pixels, w, h)
	if err != nil {
		s.log.Error("screenshot failed", zap.Error(err))
		return
	}
	s.log.Info("screenshot saved", zap.String("path", path))
}

// objectColor picks the outline color from the interaction state.
func objectColor(o *scene.Object) renderer.Color {
	if o.BoundSide() != scene.NoSide {
		return colorBound
	}
	hover := false
	for side := range scene.SideCount {
		st := o.State(side)
		if st.Pressing {
			return colorPress
		}
		hover = hover || st.Hovering
	}
	if hover {
		return colorHover
	}
	return colorIdle
}

// sceneBounds returns the box around every object of the visible scenes.
func sceneBounds(scenes []*scene.Scene) geom.AABB {
	box := geom.EmptyMinMaxAABB()
	for _, sc := range scenes {
		if !sc.Visible {
			continue
		}
		sc.Walk(func(o *scene.Object) bool {
			box.EncapsulateBox(o.Bounds().ToMinMax())
			return true
		})
	}
	if box.IsEmpty() {
		return geom.ZeroAABB
	}
	return box.ToAABB()
}
