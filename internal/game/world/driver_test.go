package world

import (
	"testing"
	"time"

	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
	"github.com/Faultbox/hoverplane/internal/engine/input"
	"github.com/Faultbox/hoverplane/internal/engine/tween"
	"github.com/Faultbox/hoverplane/pkg/math"
)

const frame = 16 * time.Millisecond

type drawCall struct {
	mesh   *grid.Mesh
	colors *colorbuf.Buffer
	vertex colorbuf.Color // vertex 0 at draw time
}

type recordingDrawer struct {
	calls []drawCall
}

func (r *recordingDrawer) Draw(mesh *grid.Mesh, colors *colorbuf.Buffer, _ math.Mat4) {
	r.calls = append(r.calls, drawCall{mesh: mesh, colors: colors, vertex: colors.At(0)})
}

type fixedPointer struct {
	ptr input.Pointer
}

func (f *fixedPointer) Pointer() input.Pointer { return f.ptr }

type fixture struct {
	state   *State
	driver  *Driver
	drawer  *recordingDrawer
	pointer *fixedPointer
}

// newFixture builds a flat 10x10 plane with one segment, seen head-on from
// the default camera.
func newFixture(t *testing.T, mode highlight.Mode) *fixture {
	t.Helper()

	builder := grid.NewBuilder(grid.BuilderConfig{Seed: 7, Baseline: colorbuf.Baseline})
	state := NewState(builder, grid.Params{Width: 10, Height: 10, WidthSegments: 1, HeightSegments: 1})

	tweens := tween.NewEngine()
	cfg := highlight.DefaultConfig()
	cfg.Mode = mode
	animator, err := highlight.NewAnimator(cfg, tweens)
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}

	f := &fixture{
		state:   state,
		drawer:  &recordingDrawer{},
		pointer: &fixedPointer{},
	}
	f.driver = NewDriver(DriverConfig{
		State:    state,
		Tweens:   tweens,
		Animator: animator,
		Camera:   camera.NewOrbitCamera(camera.DefaultConfig(), 1),
		Pointer:  f.pointer,
		Drawer:   f.drawer,
	})
	return f
}

func (f *fixture) pointAt(x, y float32) {
	f.pointer.ptr = input.Pointer{NDC: math.Vec2{X: x, Y: y}, Valid: true}
}

func TestTickWithoutPointer(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)

	for i := 0; i < 10; i++ {
		f.driver.Tick(frame)
	}

	if len(f.drawer.calls) != 10 {
		t.Errorf("draw calls = %d, want 10", len(f.drawer.calls))
	}
	if f.state.LastPick().Hit {
		t.Error("no pointer movement should never hit")
	}
	if !f.state.Colors().IsUniform(colorbuf.Baseline) {
		t.Error("colors changed without a pick")
	}
	if f.driver.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", f.driver.Frames())
	}
}

func TestTickDrawsHotWhileHovering(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)
	f.pointAt(0, 0)
	hot := highlight.DefaultConfig().Hot

	f.driver.Tick(frame)

	if got := f.drawer.calls[0].vertex; got != colorbuf.Baseline {
		t.Errorf("first draw saw %v, want baseline", got)
	}
	res := f.state.LastPick()
	if !res.Hit || res.FaceIndex != 0 {
		t.Fatalf("LastPick() = %+v, want face 0", res)
	}
	if got := f.state.Colors().At(0); got != hot {
		t.Errorf("after tick vertex 0 = %v, want hot", got)
	}

	for i := 1; i < 6; i++ {
		f.driver.Tick(frame)
		if got := f.drawer.calls[i].vertex; got != hot {
			t.Errorf("draw %d while hovering = %v, want hot %v", i, got, hot)
		}
	}
	if got := f.state.Colors().At(0); got != hot {
		t.Errorf("hovering keeps the face hot after the tick, got %v", got)
	}
}

func TestTickShowsFlashAfterLeaving(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)
	f.pointAt(0, 0)
	f.driver.Tick(frame)

	f.pointer.ptr = input.Pointer{}
	f.driver.Tick(frame)
	f.driver.Tick(frame)

	// First draw after leaving still shows hot; the next one shows the
	// transition, which starts from the saturated flash color.
	if got := f.drawer.calls[1].vertex; got != highlight.DefaultConfig().Hot {
		t.Errorf("draw 1 = %v, want hot", got)
	}
	drawn := f.drawer.calls[2].vertex
	if drawn.G != 1 || drawn.B != 1 {
		t.Errorf("draw 2 = %v, want saturated flash", drawn)
	}
}

func TestHighlightDecaysAfterLeaving(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)
	f.pointAt(0, 0)
	f.driver.Tick(frame)

	// Move off the plane
	f.pointAt(0.99, 0.99)
	f.state.Rebuild(grid.Params{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1})
	old := f.drawer.calls[0].colors
	for i := 0; i < 40; i++ {
		f.driver.Tick(frame)
	}

	if !old.IsUniform(colorbuf.Baseline) {
		t.Error("old buffer did not fade back to baseline")
	}
	if f.driver.Stats().Transitions != 0 {
		t.Errorf("Transitions = %d, want 0", f.driver.Stats().Transitions)
	}
}

func TestRebuildDuringTransition(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)
	f.pointAt(0, 0)
	f.driver.Tick(frame)
	f.driver.Tick(frame)
	oldColors := f.state.Colors()

	f.pointer.ptr = input.Pointer{}
	mesh := f.state.Rebuild(grid.Params{Width: 10, Height: 10, WidthSegments: 20, HeightSegments: 20})

	if f.state.Colors() == oldColors {
		t.Fatal("rebuild kept the old color buffer")
	}
	if !f.state.Colors().IsUniform(colorbuf.Baseline) {
		t.Fatal("new buffer not at baseline right after rebuild")
	}

	for i := 0; i < 10; i++ {
		f.driver.Tick(frame)
		if !f.state.Colors().IsUniform(colorbuf.Baseline) {
			t.Fatalf("tick %d: stale transition wrote into the new buffer", i)
		}
	}

	last := f.drawer.calls[len(f.drawer.calls)-1]
	if last.mesh != mesh || last.colors != f.state.Colors() {
		t.Error("drawer did not receive the rebuilt mesh and buffer")
	}
	if oldColors.IsUniform(colorbuf.Baseline) {
		t.Error("old buffer should still be mid-transition")
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t, highlight.ModeReplace)

	s := f.driver.Stats()
	if s.Vertices != 4 || s.Faces != 2 || s.HoveredFace != -1 {
		t.Errorf("Stats() = %+v", s)
	}

	f.pointAt(0.5, -0.5)
	f.driver.Tick(frame)
	f.driver.Tick(frame)

	s = f.driver.Stats()
	if s.HoveredFace != 1 {
		t.Errorf("HoveredFace = %d, want 1", s.HoveredFace)
	}
	if s.Transitions != 1 {
		t.Errorf("Transitions = %d, want 1 in replace mode", s.Transitions)
	}
}

func TestStateRebuildResetsPick(t *testing.T) {
	f := newFixture(t, highlight.ModeStack)
	f.pointAt(0, 0)
	f.driver.Tick(frame)

	f.state.Rebuild(f.state.Params())
	if f.state.LastPick().Hit {
		t.Error("rebuild should clear the last pick")
	}
	if got := f.state.Params(); got.WidthSegments != 1 || got.Width != 10 {
		t.Errorf("Params() = %+v", got)
	}
}
