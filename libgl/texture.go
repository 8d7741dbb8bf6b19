package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type texture struct {
	glId   uint32
	width  int32
	height int32
}

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Load(format uint32, dataType uint32, data any) error
	Delete()
}

// NewTexture2D allocates a single level two dimensional texture.
func NewTexture2D(internalFormat uint32, width, height int) (UnboundTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("could not create texture: invalid size %dx%d", width, height)
	}
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	gl.TextureStorage2D(id, 1, internalFormat, int32(width), int32(height))
	gl.TextureParameteri(id, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TextureParameteri(id, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return &texture{
		glId:   id,
		width:  int32(width),
		height: int32(height),
	}, nil
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

// Load replaces the whole image.
func (tex *texture) Load(format uint32, dataType uint32, data any) error {
	if data == nil {
		return fmt.Errorf("could not load texture %d: no data", tex.glId)
	}
	gl.TextureSubImage2D(tex.glId, 0, 0, 0, tex.width, tex.height, format, dataType, Pointer(data))
	return nil
}

func (tex *texture) Delete() {
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}
