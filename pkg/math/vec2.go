package math

// Vec2 is a 2D vector. Pointer positions in normalized device
// coordinates are carried as Vec2.
type Vec2 struct {
	X, Y float32
}

// InUnitSquare reports whether v lies inside [-1,1] on both axes.
func (v Vec2) InUnitSquare() bool {
	return v.X >= -1 && v.X <= 1 && v.Y >= -1 && v.Y <= 1
}
