// Package world holds the plane scene and drives it once per frame.
package world

import (
	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/picking"
)

// State is the scene shared by the panel, the picker and the renderer.
// The mesh and its color buffer are always replaced together.
type State struct {
	builder *grid.Builder
	params  grid.Params
	mesh    *grid.Mesh
	colors  *colorbuf.Buffer
	pick    picking.Result
}

// NewState builds the initial plane.
func NewState(builder *grid.Builder, params grid.Params) *State {
	s := &State{
		builder: builder,
		pick:    picking.Miss,
	}
	s.Rebuild(params)
	return s
}

// Params returns the parameters of the current mesh.
func (s *State) Params() grid.Params {
	return s.params
}

// Mesh returns the current mesh.
func (s *State) Mesh() *grid.Mesh {
	return s.mesh
}

// Colors returns the color buffer of the current mesh.
func (s *State) Colors() *colorbuf.Buffer {
	return s.colors
}

// LastPick returns the result of the most recent tick.
func (s *State) LastPick() picking.Result {
	return s.pick
}

// Rebuild replaces the mesh and color buffer. Transitions still holding the
// old buffer keep writing to it; the new one starts at baseline.
func (s *State) Rebuild(p grid.Params) *grid.Mesh {
	s.mesh, s.colors = s.builder.Rebuild(p)
	s.params = s.mesh.Params
	s.pick = picking.Miss
	return s.mesh
}
