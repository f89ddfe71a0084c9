// Package panel maps the parameter sliders onto plane rebuilds.
package panel

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/logger"
)

// Field identifies one plane parameter.
type Field int

const (
	FieldWidth Field = iota
	FieldHeight
	FieldWidthSegments
	FieldHeightSegments
)

// Fields lists every field in display order.
var Fields = []Field{FieldWidth, FieldHeight, FieldWidthSegments, FieldHeightSegments}

// String returns the slider label.
func (f Field) String() string {
	switch f {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	case FieldWidthSegments:
		return "widthSegments"
	case FieldHeightSegments:
		return "heightSegments"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Integer reports whether the field holds a segment count.
func (f Field) Integer() bool {
	return f == FieldWidthSegments || f == FieldHeightSegments
}

// Range returns the allowed slider range of a field.
func Range(f Field) (min, max float64) {
	if f.Integer() {
		return grid.MinSegments, grid.MaxSegments
	}
	return grid.MinSize, grid.MaxSize
}

func fieldValue(p grid.Params, f Field) float64 {
	switch f {
	case FieldWidth:
		return float64(p.Width)
	case FieldHeight:
		return float64(p.Height)
	case FieldWidthSegments:
		return float64(p.WidthSegments)
	case FieldHeightSegments:
		return float64(p.HeightSegments)
	}
	return 0
}

// Controls draws slider widgets. Each call returns true when the user
// changed the value this frame.
type Controls interface {
	SliderFloat(label string, value *float32, min, max float32) bool
	SliderInt(label string, value *int32, min, max int32) bool
	Button(label string) bool
	Text(text string)
}

// Scene owns the current parameters and rebuilds the plane.
type Scene interface {
	Params() grid.Params
	Mesh() *grid.Mesh
	Rebuild(p grid.Params) *grid.Mesh
}

// Stats is the read-only line under the sliders.
type Stats struct {
	Vertices    int
	Faces       int
	Transitions int
	HoveredFace int // -1 when nothing is under the pointer
}

// Title appends the frame rate and hovered face to a window title.
func (s Stats) Title(base string, fps int) string {
	if s.HoveredFace < 0 {
		return fmt.Sprintf("%s | %d fps", base, fps)
	}
	return fmt.Sprintf("%s | %d fps | face %d", base, fps, s.HoveredFace)
}

// StatsSource supplies Stats once per frame.
type StatsSource interface {
	Stats() Stats
}

// Adapter turns slider changes into synchronous rebuilds.
type Adapter struct {
	scene Scene
	stats StatsSource
	save  func(grid.Params) error
}

// NewAdapter creates a panel adapter. stats may be nil.
func NewAdapter(scene Scene, stats StatsSource) *Adapter {
	return &Adapter{scene: scene, stats: stats}
}

// OnSave shows a save button that hands the current parameters to fn.
func (a *Adapter) OnSave(fn func(grid.Params) error) {
	a.save = fn
}

// SetParameter clamps value into the field range, rebuilds the plane and
// returns the new mesh. Segment counts are floored.
func (a *Adapter) SetParameter(field Field, value float64) *grid.Mesh {
	lo, hi := Range(field)
	value = gomath.Max(lo, gomath.Min(hi, value))

	p := a.scene.Params()
	switch field {
	case FieldWidth:
		p.Width = float32(value)
	case FieldHeight:
		p.Height = float32(value)
	case FieldWidthSegments:
		p.WidthSegments = int(gomath.Floor(value))
	case FieldHeightSegments:
		p.HeightSegments = int(gomath.Floor(value))
	default:
		logger.Warn("unknown panel field", zap.Int("field", int(field)))
		return a.scene.Mesh()
	}

	logger.Debug("parameter changed",
		zap.Stringer("field", field),
		zap.Float64("value", value),
	)
	return a.scene.Rebuild(p)
}

// Draw renders the sliders and applies any change.
func (a *Adapter) Draw(c Controls) {
	p := a.scene.Params()

	for _, f := range Fields {
		lo, hi := Range(f)
		if f.Integer() {
			v := int32(fieldValue(p, f))
			if c.SliderInt(f.String(), &v, int32(lo), int32(hi)) {
				a.SetParameter(f, float64(v))
			}
			continue
		}
		v := float32(fieldValue(p, f))
		if c.SliderFloat(f.String(), &v, float32(lo), float32(hi)) {
			a.SetParameter(f, float64(v))
		}
	}

	if a.save != nil && c.Button("Save") {
		if err := a.save(a.scene.Params()); err != nil {
			logger.Error("saving parameters failed", zap.Error(err))
		}
	}

	if a.stats == nil {
		return
	}
	s := a.stats.Stats()
	hovered := "-"
	if s.HoveredFace >= 0 {
		hovered = fmt.Sprintf("%d", s.HoveredFace)
	}
	c.Text(fmt.Sprintf("vertices %d  faces %d  transitions %d  face %s",
		s.Vertices, s.Faces, s.Transitions, hovered))
}
