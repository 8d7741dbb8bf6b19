package libscn

import (
	"gl-quads/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	UniformProjection = "u_projection_mat"
	UniformModelView  = "u_model_view_mat"

	AttribPosition = 0
	AttribColor    = 1
)

type VertexBuffer interface {
	libutil.Deleter
	Components() int
	// number of vertices
	Count() int
}

type IndexBuffer interface {
	libutil.Deleter
	Count() int
}

type Program interface {
	libutil.Deleter
	Name() string
}

// GpuBufferHost is everything mesh construction needs from a graphics api.
type GpuBufferHost interface {
	UploadVertexBuffer(label string, data []float32, components int) (VertexBuffer, error)
	UploadIndexBuffer(label string, indices []uint16) (IndexBuffer, error)
	CompileProgram(name, vertexSrc, fragmentSrc string) (Program, error)
}

type DrawCall struct {
	Program    Program
	Positions  VertexBuffer
	Colors     VertexBuffer
	Indices    IndexBuffer
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
}

type Renderer interface {
	GpuBufferHost
	BeginFrame(clear mgl32.Vec4)
	Draw(call DrawCall)
}
