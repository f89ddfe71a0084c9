package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/hoverplane/internal/engine/input"
)

// DrawSceneTexture draws the rendered scene behind every other window.
func DrawSceneTexture(w, h float32, textureID uint32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1), // UV flipped
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// PanelWindow draws the parameter panel in the top right corner.
// Returns whether the pointer is over the panel.
func PanelWindow(displayW float32, body func()) (hovered bool) {
	const width = 260

	imgui.SetNextWindowPos(imgui.NewVec2(displayW-width-10, 10))
	imgui.SetNextWindowSize(imgui.NewVec2(width, 0))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoCollapse | imgui.WindowFlagsAlwaysAutoResize |
		imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("Plane", nil, flags) {
		body()
		hovered = imgui.IsWindowHovered()
	}
	imgui.End()
	return hovered
}

// Pointer forwards ImGui mouse state to a tracker and reports camera gestures.
type Pointer struct {
	tracker *input.Tracker
	last    imgui.Vec2
	seen    bool
}

// NewPointer creates a pointer feed for tracker.
func NewPointer(tracker *input.Tracker) *Pointer {
	return &Pointer{tracker: tracker}
}

// Gesture is the camera input observed this frame.
type Gesture struct {
	DragX, DragY float32
	Wheel        float32
}

// Poll reads the mouse. Movement anywhere in the window updates the
// tracker. Drag and wheel are reported only when allowGesture is set.
func (p *Pointer) Poll(displayW, displayH float32, allowGesture bool) Gesture {
	var g Gesture

	pos := imgui.MousePos()
	// ImGui reports -FLT_MAX when the mouse is outside the window
	if pos.X <= -1e30 || pos.Y <= -1e30 {
		p.seen = false
		return g
	}

	moved := !p.seen || pos.X != p.last.X || pos.Y != p.last.Y
	if moved {
		p.tracker.Handle(input.Event{
			Type:   input.EventMouseMove,
			MouseX: pos.X,
			MouseY: pos.Y,
			Width:  displayW,
			Height: displayH,
		})
	}

	if allowGesture && p.seen && !imgui.IsAnyItemActive() {
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			g.DragX = pos.X - p.last.X
			g.DragY = pos.Y - p.last.Y
		}
		g.Wheel = imgui.CurrentIO().MouseWheel()
	}

	p.last = pos
	p.seen = true
	return g
}
