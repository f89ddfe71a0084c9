// Package game wires the plane scene to the window and runs the frame loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/config"
	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
	"github.com/Faultbox/hoverplane/internal/engine/input"
	"github.com/Faultbox/hoverplane/internal/engine/panel"
	"github.com/Faultbox/hoverplane/internal/engine/renderer"
	"github.com/Faultbox/hoverplane/internal/engine/tween"
	"github.com/Faultbox/hoverplane/internal/engine/ui"
	"github.com/Faultbox/hoverplane/internal/game/world"
	"github.com/Faultbox/hoverplane/internal/logger"
)

// Longest step fed to the tweens, so a stalled frame does not skip a whole
// transition.
const maxFrameStep = 100 * time.Millisecond

// Game is the application instance.
type Game struct {
	config *config.Config

	backend  *ui.Backend
	renderer *renderer.PlaneRenderer
	camera   *camera.OrbitCamera
	tracker  *input.Tracker
	pointer  *ui.Pointer

	state  *world.State
	driver *world.Driver
	panel  *panel.Adapter

	viewW, viewH float32
	panelHovered bool

	lastFrame  time.Time
	frameCount int
	fpsTimer   time.Time
}

// New creates the window, the renderer and the scene.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config: cfg,
		viewW:  float32(cfg.Window.Width),
		viewH:  float32(cfg.Window.Height),
	}

	// Create window (this also creates the OpenGL context)
	var err error
	g.backend, err = ui.NewBackend(cfg.Window.Title, int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	g.renderer, err = renderer.New(renderer.Config{
		Width:      int32(cfg.Window.Width),
		Height:     int32(cfg.Window.Height),
		ClearColor: [3]float32(cfg.Render.ClearColor),
		Roughness:  cfg.Render.Roughness,
		Metalness:  cfg.Render.Metalness,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	tweens := tween.NewEngine()
	animator, err := highlight.NewAnimator(cfg.HighlightConfig(), tweens)
	if err != nil {
		g.renderer.Close()
		return nil, fmt.Errorf("creating highlight animator: %w", err)
	}

	g.camera = camera.NewOrbitCamera(cfg.CameraConfig(), g.viewW/g.viewH)
	g.tracker = input.NewTracker(g.viewW, g.viewH)
	g.pointer = ui.NewPointer(g.tracker)

	g.state = world.NewState(grid.NewBuilder(cfg.BuilderConfig()), cfg.Plane.Params)
	g.driver = world.NewDriver(world.DriverConfig{
		State:    g.state,
		Tweens:   tweens,
		Animator: animator,
		Camera:   g.camera,
		Pointer:  g.tracker,
		Drawer:   g.renderer,
	})

	g.panel = panel.NewAdapter(g.state, g.driver)
	g.panel.OnSave(g.saveParams)

	logger.Info("initialized",
		zap.Int("vertices", len(g.state.Mesh().Vertices)),
		zap.Int("faces", len(g.state.Mesh().Faces)),
		zap.String("highlight_mode", string(animator.Mode())),
	)
	return g, nil
}

// Run starts the frame loop and returns when the window closes.
func (g *Game) Run() error {
	g.lastFrame = time.Now()
	g.fpsTimer = g.lastFrame

	logger.Info("starting frame loop")
	g.backend.Run(g.frame)
	return nil
}

// frame runs once per display refresh.
func (g *Game) frame() {
	now := time.Now()
	dt := min(now.Sub(g.lastFrame), maxFrameStep)
	g.lastFrame = now

	w, h := ui.DisplaySize()
	if w > 0 && h > 0 && (w != g.viewW || h != g.viewH) {
		g.resize(w, h)
	}

	gesture := g.pointer.Poll(g.viewW, g.viewH, !g.panelHovered)
	if gesture.DragX != 0 || gesture.DragY != 0 {
		g.camera.HandleDrag(gesture.DragX, gesture.DragY)
	}
	if gesture.Wheel != 0 {
		g.camera.HandleZoom(gesture.Wheel)
	}

	g.driver.Tick(dt)

	ui.DrawSceneTexture(g.viewW, g.viewH, g.renderer.TextureID())
	g.panelHovered = ui.PanelWindow(g.viewW, func() {
		g.panel.Draw(ui.ImGuiControls{})
	})

	g.frameCount++
	if time.Since(g.fpsTimer) >= time.Second {
		stats := g.driver.Stats()
		g.backend.SetWindowTitle(stats.Title(g.config.Window.Title, g.frameCount))
		logger.Debug("fps",
			zap.Int("count", g.frameCount),
			zap.Uint64("frame", g.driver.Frames()),
			zap.Duration("dt", dt),
			zap.Int("transitions", stats.Transitions),
		)
		g.frameCount = 0
		g.fpsTimer = now
	}
}

func (g *Game) resize(w, h float32) {
	g.viewW, g.viewH = w, h
	g.renderer.Resize(int32(w), int32(h))
	g.camera.SetAspect(w, h)
	g.tracker.Handle(input.Event{Type: input.EventWindowResize, Width: w, Height: h})
}

// saveParams stores the current plane in the user config file.
func (g *Game) saveParams(p grid.Params) error {
	path, err := g.config.SaveParams(p)
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Info("config saved", zap.String("path", path))
	return nil
}

// Close releases GPU resources.
func (g *Game) Close() {
	logger.Info("closing")

	if g.renderer != nil {
		g.renderer.Close()
	}
}
