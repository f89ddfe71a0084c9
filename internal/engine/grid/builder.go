package grid

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/logger"
)

// Builder produces plane meshes with a random depth offset per vertex.
type Builder struct {
	rng      *rand.Rand
	jitter   float32
	baseline colorbuf.Color
}

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// DepthJitter is the exclusive upper bound of the z offset added to
	// every vertex. Zero builds a flat plane.
	DepthJitter float32
	// Seed for the depth offsets. Zero seeds from the clock.
	Seed int64
	// Baseline is the color of every vertex after a rebuild.
	Baseline colorbuf.Color
}

// NewBuilder creates a geometry builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	jitter := cfg.DepthJitter
	if jitter < 0 {
		jitter = 0
	}
	return &Builder{
		rng:      rand.New(rand.NewSource(seed)),
		jitter:   jitter,
		baseline: cfg.Baseline,
	}
}

// Rebuild builds a new mesh for p and a fresh color buffer at baseline.
// Nothing from a previous build is reused.
func (b *Builder) Rebuild(p Params) (*Mesh, *colorbuf.Buffer) {
	p = ClampParams(p)
	mesh := BuildPlane(p)

	for i := range mesh.Vertices {
		mesh.Vertices[i].Position[2] += b.rng.Float32() * b.jitter
	}
	mesh.Bounds = computeBounds(mesh.Vertices)

	colors := colorbuf.New(len(mesh.Vertices), b.baseline)

	logger.Debug("plane rebuilt",
		zap.Float32("width", p.Width),
		zap.Float32("height", p.Height),
		zap.Int("width_segments", p.WidthSegments),
		zap.Int("height_segments", p.HeightSegments),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
	)
	return mesh, colors
}

// BuildPlane creates a flat plane in the XY plane centered on the origin.
// Rows run from +height/2 down to -height/2, columns from -width/2 to
// +width/2, and vertex (ix, iy) has index ix + (widthSegments+1)*iy.
func BuildPlane(p Params) *Mesh {
	gridX := p.WidthSegments
	gridY := p.HeightSegments
	gridX1 := gridX + 1
	gridY1 := gridY + 1

	halfW := p.Width / 2
	halfH := p.Height / 2
	segW := p.Width / float32(gridX)
	segH := p.Height / float32(gridY)

	vertices := make([]Vertex, 0, p.VertexCount())
	for iy := range gridY1 {
		y := float32(iy)*segH - halfH
		for ix := range gridX1 {
			x := float32(ix)*segW - halfW
			vertices = append(vertices, Vertex{
				Position:   [3]float32{x, -y, 0},
				ColorIndex: len(vertices),
			})
		}
	}

	// Two triangles per cell, sharing the b-d diagonal
	faces := make([]Face, 0, p.FaceCount())
	for iy := range gridY {
		for ix := range gridX {
			a := uint32(ix + gridX1*iy)
			b := uint32(ix + gridX1*(iy+1))
			c := uint32((ix + 1) + gridX1*(iy+1))
			d := uint32((ix + 1) + gridX1*iy)
			faces = append(faces, Face{a, b, d}, Face{b, c, d})
		}
	}

	return &Mesh{
		Params:   p,
		Vertices: vertices,
		Faces:    faces,
		Bounds:   computeBounds(vertices),
	}
}

func computeBounds(vertices []Vertex) Bounds {
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < bounds.Min[i] {
				bounds.Min[i] = v.Position[i]
			}
			if v.Position[i] > bounds.Max[i] {
				bounds.Max[i] = v.Position[i]
			}
		}
	}
	return bounds
}
