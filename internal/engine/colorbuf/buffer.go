// Package colorbuf holds the per-vertex RGB color attribute of the plane.
//
// The buffer is a plain value shared by the geometry builder, the highlight
// animator and the renderer. The renderer never owns it; it checks Dirty on
// every draw and re-uploads the floats when set.
package colorbuf

// Color is an RGB color with float components.
type Color struct {
	R, G, B float32
}

// Baseline is the color every vertex gets on a geometry rebuild.
var Baseline = Color{R: 0.0, G: 0.15, B: 0.32}

// FromArray converts a config triple to a Color.
func FromArray(c [3]float32) Color {
	return Color{R: c[0], G: c[1], B: c[2]}
}

// Clamp limits every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Buffer stores one RGB triple per mesh vertex, index-aligned with the mesh.
type Buffer struct {
	data     []float32
	baseline Color
	dirty    bool
}

// New creates a buffer for count vertices filled with the baseline color.
func New(count int, baseline Color) *Buffer {
	if count < 0 {
		count = 0
	}
	b := &Buffer{
		data:     make([]float32, count*3),
		baseline: baseline.Clamp(),
	}
	b.Reset()
	return b
}

// Len returns the number of vertices covered by the buffer.
func (b *Buffer) Len() int {
	return len(b.data) / 3
}

// Baseline returns the color the buffer was initialised with.
func (b *Buffer) Baseline() Color {
	return b.baseline
}

// Reset fills every vertex with the baseline color.
func (b *Buffer) Reset() {
	for i := 0; i < len(b.data); i += 3 {
		b.data[i] = b.baseline.R
		b.data[i+1] = b.baseline.G
		b.data[i+2] = b.baseline.B
	}
	b.dirty = true
}

// Set writes the color of vertex i, clamped to [0, 1].
// Out-of-range indices are ignored.
func (b *Buffer) Set(i int, c Color) {
	if i < 0 || i >= b.Len() {
		return
	}
	c = c.Clamp()
	b.data[i*3] = c.R
	b.data[i*3+1] = c.G
	b.data[i*3+2] = c.B
	b.dirty = true
}

// SetFace writes the same color to the three corners of a face.
func (b *Buffer) SetFace(a, bb, c uint32, col Color) {
	b.Set(int(a), col)
	b.Set(int(bb), col)
	b.Set(int(c), col)
}

// At returns the color of vertex i. Out-of-range indices return the zero color.
func (b *Buffer) At(i int) Color {
	if i < 0 || i >= b.Len() {
		return Color{}
	}
	return Color{R: b.data[i*3], G: b.data[i*3+1], B: b.data[i*3+2]}
}

// Floats exposes the packed RGB data for GPU upload. Callers must not
// retain or modify the slice.
func (b *Buffer) Floats() []float32 {
	return b.data
}

// Dirty reports whether the buffer changed since the last MarkClean.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag after an upload.
func (b *Buffer) MarkClean() {
	b.dirty = false
}

// IsUniform reports whether every vertex holds color c.
func (b *Buffer) IsUniform(c Color) bool {
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != c {
			return false
		}
	}
	return true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
