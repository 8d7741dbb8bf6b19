package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int) error
	AllocateEmpty(size int, flags int) error
	WriteRange(offset int, size int, data any)
	Size() int
	Delete()
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) Size() int {
	return vbo.size
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) AllocateEmpty(size int, flags int) error {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	if size <= 0 {
		return fmt.Errorf("could not allocate buffer %d: invalid size %d", vbo.glId, size)
	}
	gl.NamedBufferStorage(vbo.glId, size, nil, uint32(flags))
	vbo.size = size
	vbo.immutable = true
	return nil
}

// Allocate creates the immutable storage of the buffer, initialized with data.
func (vbo *buffer) Allocate(data any, flags int) error {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if size == 0 {
		return fmt.Errorf("could not allocate buffer %d: no data", vbo.glId)
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.immutable = true
	return nil
}

func (vbo *buffer) WriteRange(offset int, size int, data any) {
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

type vertexArray struct {
	glId uint32
}

type UnboundVertexArray interface {
	LabeledGlObject
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	BindElementBuffer(ebo UnboundBuffer)
	Id() uint32
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{
		glId: id,
	}
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(attributeIndex))
	gl.VertexArrayAttribFormat(vao.glId, uint32(attributeIndex), int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(attributeIndex), uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	if State != nil && State.VertexArray == vao.glId {
		State.BindVertexArray(0)
	}
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
