package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
	"github.com/Faultbox/hoverplane/internal/engine/input"
	"github.com/Faultbox/hoverplane/internal/engine/panel"
	"github.com/Faultbox/hoverplane/internal/engine/picking"
	"github.com/Faultbox/hoverplane/internal/engine/tween"
	"github.com/Faultbox/hoverplane/internal/logger"
	"github.com/Faultbox/hoverplane/pkg/math"
)

// Drawer submits the plane to the GPU.
type Drawer interface {
	Draw(mesh *grid.Mesh, colors *colorbuf.Buffer, viewProj math.Mat4)
}

// PointerSource reports the latest pointer position.
type PointerSource interface {
	Pointer() input.Pointer
}

// Driver runs one frame of the scene per Tick.
type Driver struct {
	state    *State
	tweens   *tween.Engine
	picker   *picking.Picker
	animator *highlight.Animator
	camera   picking.Camera
	pointer  PointerSource
	drawer   Drawer
	log      *zap.Logger

	frames uint64
}

// DriverConfig wires a Driver to its collaborators.
type DriverConfig struct {
	State    *State
	Tweens   *tween.Engine
	Animator *highlight.Animator
	Camera   picking.Camera
	Pointer  PointerSource
	Drawer   Drawer
}

// NewDriver creates a frame driver.
func NewDriver(cfg DriverConfig) *Driver {
	return &Driver{
		state:    cfg.State,
		tweens:   cfg.Tweens,
		picker:   picking.NewPicker(),
		animator: cfg.Animator,
		camera:   cfg.Camera,
		pointer:  cfg.Pointer,
		drawer:   cfg.Drawer,
		log:      logger.Named("world"),
	}
}

// Tick draws the plane, advances running transitions by dt, then picks the
// face under the pointer and highlights it. A hot write made during one tick
// is what the next tick draws.
func (d *Driver) Tick(dt time.Duration) {
	d.frames++

	mesh := d.state.Mesh()
	colors := d.state.Colors()
	viewProj := d.camera.ViewProjection()

	if d.drawer != nil {
		d.drawer.Draw(mesh, colors, viewProj)
	}

	d.tweens.Update(dt)

	prev := d.state.LastPick()
	res := d.picker.Pick(d.pointer.Pointer(), d.camera, mesh)
	d.state.pick = res

	if res.FaceIndex != prev.FaceIndex {
		d.log.Debug("hovered face changed",
			zap.Int("face", res.FaceIndex),
			zap.Uint64("frame", d.frames),
		)
	}

	if res.Hit {
		d.animator.OnPick(res.Face, colors)
	}
}

// Frames returns the number of ticks run so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Stats summarizes the scene for the panel.
func (d *Driver) Stats() panel.Stats {
	p := d.state.Mesh().Params
	return panel.Stats{
		Vertices:    p.VertexCount(),
		Faces:       p.FaceCount(),
		Transitions: d.animator.Active(),
		HoveredFace: d.state.LastPick().FaceIndex,
	}
}
