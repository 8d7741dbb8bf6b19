package libgl

import (
	"fmt"
	"gl-quads/libscn"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type vertexBuffer struct {
	UnboundBuffer
	host       *Host
	components int
	count      int
}

func (vbo *vertexBuffer) Components() int { return vbo.components }
func (vbo *vertexBuffer) Count() int      { return vbo.count }

func (vbo *vertexBuffer) Delete() {
	vbo.host.evict(vbo.Id())
	vbo.UnboundBuffer.Delete()
}

type indexBuffer struct {
	UnboundBuffer
	host  *Host
	count int
}

func (ebo *indexBuffer) Count() int { return ebo.count }

func (ebo *indexBuffer) Delete() {
	ebo.host.evict(ebo.Id())
	ebo.UnboundBuffer.Delete()
}

// vertex arrays are shared by all draws with the same buffers
type vertexArrayKey struct {
	positions, colors, indices uint32
}

// Host uploads meshes and draws them with OpenGL 4.5.
// It must only be used on the thread that owns the gl context.
type Host struct {
	vertexArrays map[vertexArrayKey]UnboundVertexArray
	width        int
	height       int
}

var _ libscn.Renderer = &Host{}

func NewHost(width, height int) *Host {
	if State == nil {
		State = NewStateManager()
	}
	return &Host{
		vertexArrays: map[vertexArrayKey]UnboundVertexArray{},
		width:        width,
		height:       height,
	}
}

// Resize sets the framebuffer size used for the viewport.
func (h *Host) Resize(width, height int) {
	h.width = width
	h.height = height
}

func (h *Host) UploadVertexBuffer(label string, data []float32, components int) (libscn.VertexBuffer, error) {
	if components <= 0 || len(data)%components != 0 {
		return nil, fmt.Errorf("could not upload %q: %d values are not a multiple of %d components", label, len(data), components)
	}
	buf := NewBuffer()
	if err := buf.Allocate(data, 0); err != nil {
		buf.Delete()
		return nil, fmt.Errorf("could not upload %q: %w", label, err)
	}
	buf.SetDebugLabel(label)
	return &vertexBuffer{
		UnboundBuffer: buf,
		host:          h,
		components:    components,
		count:         len(data) / components,
	}, nil
}

func (h *Host) UploadIndexBuffer(label string, indices []uint16) (libscn.IndexBuffer, error) {
	buf := NewBuffer()
	if err := buf.Allocate(indices, 0); err != nil {
		buf.Delete()
		return nil, fmt.Errorf("could not upload %q: %w", label, err)
	}
	buf.SetDebugLabel(label)
	return &indexBuffer{
		UnboundBuffer: buf,
		host:          h,
		count:         len(indices),
	}, nil
}

func (h *Host) CompileProgram(name, vertexSrc, fragmentSrc string) (libscn.Program, error) {
	return NewProgram(name, vertexSrc, fragmentSrc)
}

func (h *Host) BeginFrame(clear mgl32.Vec4) {
	State.Viewport(0, 0, h.width, h.height)
	State.SetEnabled(DepthTest)
	State.DepthFunc(DepthFuncLEqual)
	State.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (h *Host) Draw(call libscn.DrawCall) {
	prog, ok := call.Program.(ShaderProgram)
	if !ok {
		log.Panicf("program %T was not created by this host", call.Program)
	}
	positions, ok := call.Positions.(*vertexBuffer)
	if !ok {
		log.Panicf("positions %T were not created by this host", call.Positions)
	}
	colors, ok := call.Colors.(*vertexBuffer)
	if !ok {
		log.Panicf("colors %T were not created by this host", call.Colors)
	}
	indices, ok := call.Indices.(*indexBuffer)
	if !ok {
		log.Panicf("indices %T were not created by this host", call.Indices)
	}
	h.vertexArray(positions, colors, indices).Bind()
	prog.Bind()
	prog.SetUniform(libscn.UniformProjection, call.Projection)
	prog.SetUniform(libscn.UniformModelView, call.ModelView)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(indices.count), gl.UNSIGNED_SHORT, 0)
}

func (h *Host) vertexArray(positions, colors *vertexBuffer, indices *indexBuffer) UnboundVertexArray {
	key := vertexArrayKey{positions.Id(), colors.Id(), indices.Id()}
	if vao, ok := h.vertexArrays[key]; ok {
		return vao
	}

	vao := NewVertexArray()
	vao.Layout(0, libscn.AttribPosition, positions.components, gl.FLOAT, false, 0)
	vao.Layout(1, libscn.AttribColor, colors.components, gl.FLOAT, false, 0)
	vao.BindBuffer(0, positions, 0, positions.components*4)
	vao.BindBuffer(1, colors, 0, colors.components*4)
	vao.BindElementBuffer(indices)
	vao.SetDebugLabel(fmt.Sprintf("vao %d/%d/%d", key.positions, key.colors, key.indices))
	h.vertexArrays[key] = vao
	return vao
}

// evict deletes every vertex array that references the buffer, gl reuses the names of deleted buffers.
func (h *Host) evict(buffer uint32) {
	for key, vao := range h.vertexArrays {
		if key.positions == buffer || key.colors == buffer || key.indices == buffer {
			vao.Delete()
			delete(h.vertexArrays, key)
		}
	}
}

// Release deletes the cached vertex arrays, the buffers and programs are owned by their callers.
func (h *Host) Release() {
	for key, vao := range h.vertexArrays {
		vao.Delete()
		delete(h.vertexArrays, key)
	}
}
