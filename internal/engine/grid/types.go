// Package grid builds the displaced rectangular plane mesh.
package grid

// Parameter limits enforced by the control panel.
const (
	MinSize     = 1
	MaxSize     = 20
	MinSegments = 1
	MaxSegments = 20
)

// Params describes the plane to build.
type Params struct {
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// DefaultParams returns the plane shown on startup: a 16:9 sheet.
func DefaultParams() Params {
	return Params{
		Width:          16,
		Height:         9,
		WidthSegments:  20,
		HeightSegments: 12,
	}
}

// ClampParams returns p with every field limited to the panel ranges.
func ClampParams(p Params) Params {
	return Params{
		Width:          clampf(p.Width, MinSize, MaxSize),
		Height:         clampf(p.Height, MinSize, MaxSize),
		WidthSegments:  clampi(p.WidthSegments, MinSegments, MaxSegments),
		HeightSegments: clampi(p.HeightSegments, MinSegments, MaxSegments),
	}
}

// VertexCount returns the number of vertices a mesh built from p has.
func (p Params) VertexCount() int {
	return (p.WidthSegments + 1) * (p.HeightSegments + 1)
}

// FaceCount returns the number of triangles a mesh built from p has.
func (p Params) FaceCount() int {
	return 2 * p.WidthSegments * p.HeightSegments
}

// Vertex is a mesh vertex. ColorIndex addresses the vertex color buffer.
type Vertex struct {
	Position   [3]float32
	ColorIndex int
}

// Face is a triangle given by its three corner vertex indices.
type Face struct {
	A, B, C uint32
}

// Corners returns the corner indices in order.
func (f Face) Corners() [3]uint32 {
	return [3]uint32{f.A, f.B, f.C}
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh holds the plane geometry ready for picking and GPU upload.
type Mesh struct {
	Params   Params
	Vertices []Vertex
	Faces    []Face
	Bounds   Bounds
}

// Corner returns the position of one face corner.
func (m *Mesh) Corner(idx uint32) [3]float32 {
	return m.Vertices[idx].Position
}

// Positions returns the packed xyz positions for the vertex buffer.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// Indices returns the faces flattened for the index buffer.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, f.A, f.B, f.C)
	}
	return out
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
