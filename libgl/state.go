package libgl

import (
	"github.com/go-gl/gl/v4.5-core/gl"
)

type GlCapability uint32

const (
	DepthTest   GlCapability = gl.DEPTH_TEST
	Blend       GlCapability = gl.BLEND
	ScissorTest GlCapability = gl.SCISSOR_TEST
)

type GlBlendFactor uint32

const (
	BlendSrcAlpha         GlBlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha GlBlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type GlBlendEquation uint32

const (
	BlendFuncAdd GlBlendEquation = gl.FUNC_ADD
)

type GlDepthFunc uint32

const (
	DepthFuncLEqual GlDepthFunc = gl.LEQUAL
)

// GlStateManager remembers the bound objects and enabled capabilities to skip redundant gl calls.
type GlStateManager struct {
	Caps                           map[GlCapability]bool
	TextureUnits                   []uint32
	VertexArray, Program           uint32
	ViewportRect, ScissorRect      [4]int
	BlendFactorSrc, BlendFactorDst GlBlendFactor
	BlendEquationMode              GlBlendEquation
	DepthFuncFn                    GlDepthFunc
	ClearColorRGBA                 [4]float32
}

var State *GlStateManager

func NewStateManager() *GlStateManager {
	return &GlStateManager{
		Caps:         map[GlCapability]bool{},
		TextureUnits: make([]uint32, 32),
	}
}

func (s *GlStateManager) Enable(cap GlCapability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *GlStateManager) Disable(cap GlCapability) {
	if enabled, ok := s.Caps[cap]; ok && !enabled {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly the given capabilities and disables every other known one.
func (s *GlStateManager) SetEnabled(caps ...GlCapability) {
	want := map[GlCapability]bool{}
	for _, c := range caps {
		want[c] = true
	}
	for c, v := range s.Caps {
		if v && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *GlStateManager) BlendFunc(sfactor, dfactor GlBlendFactor) {
	if s.BlendFactorSrc == sfactor && s.BlendFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendFactorSrc = sfactor
	s.BlendFactorDst = dfactor
}

func (s *GlStateManager) BlendEquation(mode GlBlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *GlStateManager) DepthFunc(fn GlDepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *GlStateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *GlStateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *GlStateManager) UseProgram(program uint32) {
	if s.Program == program {
		return
	}
	gl.UseProgram(program)
	s.Program = program
}

func (s *GlStateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *GlStateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect == [4]int{x, y, w, h} {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *GlStateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}
