// Package picking casts rays from the pointer into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/hoverplane/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// NDCToRay converts normalized device coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func NDCToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	// Unproject near and far points
	nearWorld := unproject(math.Vec4{ndc.X, ndc.Y, -1.0, 1.0}, invViewProj)
	farWorld := unproject(math.Vec4{ndc.X, ndc.Y, 1.0, 1.0}, invViewProj)

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

func unproject(p math.Vec4, invViewProj math.Mat4) math.Vec3 {
	w := invViewProj.MulVec4(p)
	// Perspective divide
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Barycentric tolerance. Points on a shared edge count for both faces.
const triangleEpsilon = 1e-5

// IntersectTriangle tests the ray against triangle (a, b, c) from either side.
// Returns the distance along the ray and whether the triangle was hit in
// front of the origin.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if gomath.Abs(float64(det)) < 1e-10 {
		return 0, false // Ray parallel to triangle
	}
	invDet := 1 / det

	tvec := r.Origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < -triangleEpsilon || u > 1+triangleEpsilon {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < -triangleEpsilon || u+v > 1+triangleEpsilon {
		return 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t <= 0 {
		return 0, false // Behind ray origin
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (box.Min[axis] - origin[axis]) / dir[axis]
			t2 := (box.Max[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from min and max corners, handling swapped corners.
func NewAABB(min, max [3]float32) AABB {
	box := AABB{Min: min, Max: max}
	for i := 0; i < 3; i++ {
		if box.Min[i] > box.Max[i] {
			box.Min[i], box.Max[i] = box.Max[i], box.Min[i]
		}
	}
	return box
}

// Expand grows the box by margin on every side.
func (b AABB) Expand(margin float32) AABB {
	return AABB{
		Min: [3]float32{b.Min[0] - margin, b.Min[1] - margin, b.Min[2] - margin},
		Max: [3]float32{b.Max[0] + margin, b.Max[1] + margin, b.Max[2] + margin},
	}
}
