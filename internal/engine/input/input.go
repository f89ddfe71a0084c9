// Package input tracks the pointer position in normalized device coordinates.
package input

import "github.com/Faultbox/hoverplane/pkg/math"

// EventType identifies a pointer-related window event.
type EventType int

const (
	EventNone EventType = iota
	EventMouseMove
	EventWindowResize
)

// Event is a raw window event in pixel coordinates. A mouse move may carry
// the viewport size it was measured in; zero keeps the current size.
type Event struct {
	Type   EventType
	MouseX float32
	MouseY float32
	Width  float32
	Height float32
}

// Pointer is the last observed pointer position.
// Valid stays false until the first movement is seen.
type Pointer struct {
	NDC   math.Vec2
	Valid bool
}

// Tracker converts pixel positions into a Pointer.
type Tracker struct {
	pointer Pointer
	width   float32
	height  float32
	pixelX  float32
	pixelY  float32
}

// NewTracker creates a tracker for a viewport of the given size.
func NewTracker(width, height float32) *Tracker {
	return &Tracker{width: width, height: height}
}

// Handle applies a window event.
func (t *Tracker) Handle(ev Event) {
	switch ev.Type {
	case EventMouseMove:
		w, h := ev.Width, ev.Height
		if w <= 0 || h <= 0 {
			w, h = t.width, t.height
		}
		t.move(ev.MouseX, ev.MouseY, w, h)
	case EventWindowResize:
		t.resize(ev.Width, ev.Height)
	}
}

// move records a pointer position px, py inside a w by h viewport.
// x maps to [-1, 1] left to right, y to [-1, 1] bottom to top.
func (t *Tracker) move(px, py, w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	t.width, t.height = w, h
	t.pixelX, t.pixelY = px, py
	t.pointer = Pointer{
		NDC: math.Vec2{
			X: px/w*2 - 1,
			Y: -(py/h)*2 + 1,
		},
		Valid: true,
	}
}

// resize updates the viewport size and re-normalizes the last position.
func (t *Tracker) resize(w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	if t.pointer.Valid {
		t.move(t.pixelX, t.pixelY, w, h)
		return
	}
	t.width, t.height = w, h
}

// Pointer returns the current pointer state.
func (t *Tracker) Pointer() Pointer {
	return t.pointer
}
