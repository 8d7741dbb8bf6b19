package main

import (
	"fmt"
	"gl-quads/libgl"
	"gl-quads/libscn"
	"gl-quads/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// Overlay is the imgui window that inspects and tweaks the running scene.
type Overlay struct {
	IO        imgui.IO
	Visible   bool
	ctx       *imgui.Context
	FrameTime float32
	fps       float32
	win       *glfw.Window
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	program   libgl.ShaderProgram
}

func NewOverlay(win *glfw.Window, src *libscn.ProgramSource) (overlay *Overlay, err error) {
	program, err := libgl.NewProgram(src.Name, src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("could not create overlay program: %w", err)
	}

	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	image := io.Fonts().TextureDataRGBA32()
	atlas, err := libgl.NewTexture2D(gl.RGBA8, image.Width, image.Height)
	if err != nil {
		program.Delete()
		ctx.Destroy()
		return nil, fmt.Errorf("could not create font atlas: %w", err)
	}
	atlas.SetDebugLabel("imgui font atlas")
	if err := atlas.Load(gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels); err != nil {
		libutil.DeleteAll(atlas, program)
		ctx.Destroy()
		return nil, fmt.Errorf("could not load font atlas: %w", err)
	}
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))

	_, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao := libgl.NewVertexArray()
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)
	vao.SetDebugLabel("imgui")

	win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	io.KeyMap(imgui.KeyTab, int(glfw.KeyTab))
	io.KeyMap(imgui.KeyLeftArrow, int(glfw.KeyLeft))
	io.KeyMap(imgui.KeyRightArrow, int(glfw.KeyRight))
	io.KeyMap(imgui.KeyUpArrow, int(glfw.KeyUp))
	io.KeyMap(imgui.KeyDownArrow, int(glfw.KeyDown))
	io.KeyMap(imgui.KeyBackspace, int(glfw.KeyBackspace))
	io.KeyMap(imgui.KeyDelete, int(glfw.KeyDelete))
	io.KeyMap(imgui.KeyEnter, int(glfw.KeyEnter))
	io.KeyMap(imgui.KeyEscape, int(glfw.KeyEscape))

	return &Overlay{
		IO:        io,
		Visible:   true,
		ctx:       ctx,
		FrameTime: float32(glfw.GetTime()),
		win:       win,
		vao:       vao,
		atlas:     atlas,
		program:   program,
	}, nil
}

// Build lays out the overlay window for this frame. It returns the error of a color regeneration requested through it.
func (o *Overlay) Build(driver *libscn.Driver, delta float32) error {
	if delta > 0 {
		o.fps = libutil.Smooth(o.fps, 1/delta, 0.05)
	}
	if !o.Visible {
		return nil
	}
	imgui.NewFrame()

	var err error
	imgui.Begin(driver.Scene().Name)
	imgui.Text(fmt.Sprintf("%.0f fps (%.2f ms)", o.fps, 1000/math32.Max(o.fps, 1)))

	paused := driver.Paused()
	if imgui.Checkbox("Paused", &paused) {
		driver.SetPaused(paused)
	}
	if imgui.Button("Regenerate colors") {
		err = driver.RegenerateColors()
	}

	for _, obj := range driver.Objects() {
		imgui.PushID(obj.Desc.Name)
		if imgui.CollapsingHeader(obj.Desc.Name) {
			degrees := math32.Mod(obj.Animation.Rotation, 2*math32.Pi) * libutil.Rad2Deg
			if imgui.SliderFloat("Rotation", &degrees, -360, 360) {
				obj.Animation.Rotation = degrees * libutil.Deg2Rad
			}
			imgui.SliderFloat("Speed", &obj.Animation.Speed, -5, 5)
			imgui.Text(fmt.Sprintf("%d vertices, %d indices", obj.Mesh.Positions.Count(), obj.Mesh.Indices.Count()))
		}
		imgui.PopID()
	}
	imgui.End()
	return err
}

func (o *Overlay) Draw() {
	if !o.Visible {
		return
	}
	libgl.PushDebugGroup("Draw ImGui")
	defer libgl.PopDebugGroup()

	io := imgui.CurrentIO()
	dispWidth, dispHeight := o.win.GetSize()
	fbWidth, fbHeight := o.win.GetFramebufferSize()
	if dispWidth <= 0 || dispHeight <= 0 {
		imgui.EndFrame()
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	time := float32(glfw.GetTime())
	io.SetDeltaTime(time - o.FrameTime)
	o.FrameTime = time

	o.vao.Bind()
	o.program.Bind()
	o.program.SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	var indexType uint32
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		indexBuffer, indexBufferSize := list.IndexBuffer()
		if vertexBufferSize == 0 || indexBufferSize == 0 {
			continue
		}

		if o.vbo == nil || vertexBufferSize > o.vbo.Size() {
			o.vbo = o.regrow(o.vbo, vertexBufferSize, "imgui vertices")
			o.vao.BindBuffer(0, o.vbo, 0, vertexSize)
		}
		o.vbo.WriteRange(0, vertexBufferSize, vertexBuffer)

		if o.ebo == nil || indexBufferSize > o.ebo.Size() {
			o.ebo = o.regrow(o.ebo, indexBufferSize, "imgui indices")
			o.vao.BindElementBuffer(o.ebo)
		}
		o.ebo.WriteRange(0, indexBufferSize, indexBuffer)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}
}

// regrow replaces buf with a larger dynamic buffer, imgui lists only ever grow in practice
func (o *Overlay) regrow(buf libgl.UnboundBuffer, size int, label string) libgl.UnboundBuffer {
	if buf != nil {
		buf.Delete()
	}
	buf = libgl.NewBuffer()
	// double to avoid reallocating every frame while a window opens
	if err := buf.AllocateEmpty(size*2, gl.DYNAMIC_STORAGE_BIT); err != nil {
		panic(err)
	}
	buf.SetDebugLabel(label)
	return buf
}

func (o *Overlay) Delete() {
	libutil.DeleteAll(o.vao, o.vbo, o.ebo, o.atlas, o.program)
	o.ctx.Destroy()
}
