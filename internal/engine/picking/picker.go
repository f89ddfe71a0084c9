package picking

import (
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/input"
	"github.com/Faultbox/hoverplane/pkg/math"
)

// Camera supplies the transform used to unproject the pointer.
type Camera interface {
	ViewProjection() math.Mat4
}

// Result is the outcome of a pick. Hit is false when nothing was hit.
type Result struct {
	Hit       bool
	FaceIndex int
	Face      grid.Face
	Distance  float32
	Point     math.Vec3
}

// Miss is the empty pick result.
var Miss = Result{FaceIndex: -1}

// Distances closer than this are treated as equal so the lower face wins.
const distanceEpsilon = 1e-4

// Picker finds the face under the pointer.
type Picker struct{}

// NewPicker creates a picker.
func NewPicker() *Picker {
	return &Picker{}
}

// Pick returns the nearest face of mesh under the pointer. Every call
// recomputes from scratch. A pointer outside the viewport never hits.
func (p *Picker) Pick(ptr input.Pointer, cam Camera, mesh *grid.Mesh) Result {
	if !ptr.Valid || !ptr.NDC.InUnitSquare() {
		return Miss
	}
	if cam == nil || mesh == nil || len(mesh.Faces) == 0 {
		return Miss
	}

	ray := NDCToRay(ptr.NDC, cam.ViewProjection().Inverse())

	box := NewAABB(mesh.Bounds.Min, mesh.Bounds.Max).Expand(triangleEpsilon)
	if _, ok := ray.IntersectAABB(box); !ok {
		return Miss
	}

	best := Miss
	for i, f := range mesh.Faces {
		var tri [3]math.Vec3
		for k, idx := range f.Corners() {
			tri[k] = math.V3(mesh.Corner(idx))
		}

		t, ok := ray.IntersectTriangle(tri[0], tri[1], tri[2])
		if !ok {
			continue
		}
		if best.Hit && t >= best.Distance-distanceEpsilon {
			continue
		}
		best = Result{
			Hit:       true,
			FaceIndex: i,
			Face:      f,
			Distance:  t,
		}
	}

	if best.Hit {
		best.Point = ray.At(best.Distance)
	}
	return best
}
