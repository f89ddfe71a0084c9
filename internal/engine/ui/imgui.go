// Package ui owns the window, the frame loop and the ImGui widgets.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window and its OpenGL context.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.05, 0.05, 0.08, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main loop. frame is called once per display refresh
// until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the current logical size of the window.
func DisplaySize() (width, height float32) {
	size := imgui.CurrentIO().DisplaySize()
	return size.X, size.Y
}
