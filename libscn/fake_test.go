package libscn

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var errUploadRejected = errors.New("upload rejected")

type fakeBuffer struct {
	host       *fakeHost
	label      string
	components int
	count      int
	floats     []float32
	indices    []uint16
	deleted    bool
}

func (b *fakeBuffer) Components() int { return b.components }
func (b *fakeBuffer) Count() int      { return b.count }
func (b *fakeBuffer) Delete() {
	if b.deleted {
		b.host.doubleDeletes++
		return
	}
	b.deleted = true
	b.host.live--
}

type fakeProgram struct {
	host    *fakeHost
	name    string
	deleted bool
}

func (p *fakeProgram) Name() string { return p.name }
func (p *fakeProgram) Delete() {
	if p.deleted {
		p.host.doubleDeletes++
		return
	}
	p.deleted = true
	p.host.live--
}

// fakeHost records uploads and draws instead of talking to a gpu
type fakeHost struct {
	live          int
	doubleDeletes int
	uploads       []*fakeBuffer
	// the upload with this index fails, -1 disables
	failAt      int
	failCompile bool
	frames      []mgl32.Vec4
	draws       []DrawCall
}

func newFakeHost() *fakeHost {
	return &fakeHost{failAt: -1}
}

func (h *fakeHost) upload(buf *fakeBuffer) (*fakeBuffer, error) {
	if h.failAt == len(h.uploads) {
		h.failAt = -1
		return nil, errUploadRejected
	}
	buf.host = h
	h.uploads = append(h.uploads, buf)
	h.live++
	return buf, nil
}

// empty uploads fail like they do on a gl host
var errEmptyUpload = errors.New("no data")

func (h *fakeHost) UploadVertexBuffer(label string, data []float32, components int) (VertexBuffer, error) {
	if len(data) == 0 {
		return nil, errEmptyUpload
	}
	buf, err := h.upload(&fakeBuffer{
		label:      label,
		components: components,
		count:      len(data) / components,
		floats:     append([]float32(nil), data...),
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (h *fakeHost) UploadIndexBuffer(label string, indices []uint16) (IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, errEmptyUpload
	}
	buf, err := h.upload(&fakeBuffer{
		label:   label,
		count:   len(indices),
		indices: append([]uint16(nil), indices...),
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (h *fakeHost) CompileProgram(name, vertexSrc, fragmentSrc string) (Program, error) {
	if h.failCompile {
		return nil, errors.New("compile error")
	}
	h.live++
	return &fakeProgram{host: h, name: name}, nil
}

func (h *fakeHost) BeginFrame(clear mgl32.Vec4) {
	h.frames = append(h.frames, clear)
}

func (h *fakeHost) Draw(call DrawCall) {
	h.draws = append(h.draws, call)
}

func (h *fakeHost) byLabel(label string) *fakeBuffer {
	var last *fakeBuffer
	for _, buf := range h.uploads {
		if buf.label == label {
			last = buf
		}
	}
	return last
}
