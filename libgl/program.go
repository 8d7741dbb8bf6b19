package libgl

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type program struct {
	uniformLocations map[string]int32
	glId             uint32
	name             string
}

type ShaderProgram interface {
	LabeledGlObject
	Id() uint32
	Name() string
	Bind()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
	Delete()
}

// NewProgram compiles and links a vertex and a fragment shader into one program.
func NewProgram(name, vertexSrc, fragmentSrc string) (ShaderProgram, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("could not compile vertex shader of %v: %w", name, err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("could not compile fragment shader of %v: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)
	gl.DetachShader(id, vert)
	gl.DetachShader(id, frag)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link %v program, log: %v", name, info)
	}

	prog := &program{
		uniformLocations: map[string]int32{},
		glId:             id,
		name:             name,
	}
	prog.SetDebugLabel(name)
	return prog, nil
}

func compileShader(stage uint32, source string) (uint32, error) {
	id := gl.CreateShader(stage)
	cStrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, cStrs, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		info := readShaderInfoLog(id)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("log: %v", info)
	}
	return id, nil
}

func readShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Bind() {
	State.UseProgram(prog.glId)
}

func (prog *program) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM, prog.glId, label)
}

func (prog *program) Delete() {
	if State != nil && State.Program == prog.glId {
		State.UseProgram(0)
	}
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v program: could not get location of %q\n", prog.name, name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %v", reflect.TypeOf(value))
	}
}
