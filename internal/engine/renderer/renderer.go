// Package renderer draws the plane mesh with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/framebuffer"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/shader"
	"github.com/Faultbox/hoverplane/internal/logger"
	"github.com/Faultbox/hoverplane/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int32
	Height     int32
	ClearColor [3]float32
	// Surface response, 0..1
	Roughness float32
	Metalness float32
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vColor;

void main() {
	vWorldPos = aPos;
	vColor = aColor;
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vWorldPos;
in vec3 vColor;

uniform vec3 uLightDirs[2];
uniform float uRoughness;
uniform float uMetalness;

out vec4 FragColor;

void main() {
	// Flat shading: one normal per triangle from screen-space derivatives
	vec3 n = normalize(cross(dFdx(vWorldPos), dFdy(vWorldPos)));

	float diffuse = 0.0;
	float spec = 0.0;
	float shininess = mix(128.0, 4.0, uRoughness);
	for (int i = 0; i < 2; i++) {
		vec3 l = normalize(uLightDirs[i]);
		// Double-sided surface
		float ndl = abs(dot(n, l));
		diffuse += ndl;
		spec += pow(ndl, shininess);
	}

	vec3 albedo = vColor * (1.0 - 0.5 * uMetalness);
	vec3 specColor = mix(vec3(0.04), vColor, uMetalness);
	FragColor = vec4(albedo * diffuse + specColor * spec * (1.0 - uRoughness), 1.0);
}
`

// Front and back directional lights.
var lightDirs = []math.Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
}

// PlaneRenderer draws one plane mesh into an offscreen framebuffer.
type PlaneRenderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program
	target  *framebuffer.Framebuffer

	vao      uint32
	posVBO   uint32
	colorVBO uint32
	ebo      uint32

	// What is currently on the GPU
	mesh       *grid.Mesh
	colors     *colorbuf.Buffer
	indexCount int32
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*PlaneRenderer, error) {
	r := &PlaneRenderer{config: cfg, log: logger.Named("renderer")}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	r.program, err = shader.CompileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating shader program: %w", err)
	}

	r.target, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("creating render target: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.posVBO)
	gl.GenBuffers(1, &r.colorVBO)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)

	// Position attribute (location = 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("plane renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Uint32("vao", r.vao),
	)
	return r, nil
}

// Draw renders mesh with its colors into the offscreen target. Geometry is
// uploaded again only when the mesh changes; colors when they are dirty.
func (r *PlaneRenderer) Draw(mesh *grid.Mesh, colors *colorbuf.Buffer, viewProj math.Mat4) {
	if mesh != r.mesh {
		r.uploadMesh(mesh)
	}
	if colors != r.colors {
		r.colors = colors
		r.uploadColors(true)
	} else if colors != nil && colors.Dirty() {
		r.uploadColors(false)
	}

	restore := r.target.Bind()
	defer restore()

	c := r.config.ClearColor
	r.target.Clear(c[0], c[1], c[2], 1)

	if r.indexCount == 0 {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetVec3Array("uLightDirs", lightDirs)
	r.program.SetFloat("uRoughness", r.config.Roughness)
	r.program.SetFloat("uMetalness", r.config.Metalness)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// uploadMesh replaces the GPU geometry with mesh.
func (r *PlaneRenderer) uploadMesh(mesh *grid.Mesh) {
	r.mesh = mesh
	r.indexCount = 0
	if mesh == nil || len(mesh.Faces) == 0 {
		return
	}

	positions := mesh.Positions()
	indices := mesh.Indices()

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(len(indices))

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(indices)),
	)
}

// uploadColors sends the color buffer to the GPU. realloc is set when the
// buffer itself was replaced.
func (r *PlaneRenderer) uploadColors(realloc bool) {
	if r.colors == nil || r.colors.Len() == 0 {
		return
	}
	data := r.colors.Floats()

	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	if realloc {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.colors.MarkClean()
}

// Resize changes the offscreen target size.
func (r *PlaneRenderer) Resize(width, height int32) {
	r.target.Resize(width, height)
	w, h := r.target.Size()
	r.log.Debug("renderer resized",
		zap.Int32("width", w),
		zap.Int32("height", h),
	)
}

// TextureID returns the color texture holding the last drawn frame.
func (r *PlaneRenderer) TextureID() uint32 {
	return r.target.ColorTexture()
}

// Close releases GPU resources.
func (r *PlaneRenderer) Close() {
	r.log.Info("closing")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	buffers := []uint32{r.posVBO, r.colorVBO, r.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	r.target.Destroy()
	r.program.Delete()
}
