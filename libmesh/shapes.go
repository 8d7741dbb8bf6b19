package libmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Shape struct {
	Name       string
	Positions  []float32
	Components int
	// optional per vertex colors, RGBA
	Colors []float32
}

func (s *Shape) VertexCount() int {
	if s.Components == 0 {
		return 0
	}
	return len(s.Positions) / s.Components
}

func (s *Shape) Quads() (int, error) {
	return QuadCount(len(s.Positions), s.Components)
}

// DefaultPalette are the face colors of the cube
var DefaultPalette = []mgl32.Vec4{
	{1.0, 1.0, 1.0, 1.0}, // front: white
	{1.0, 0.0, 0.0, 1.0}, // back: red
	{0.0, 1.0, 0.0, 1.0}, // top: green
	{0.0, 0.0, 1.0, 1.0}, // bottom: blue
	{1.0, 1.0, 0.0, 1.0}, // right: yellow
	{1.0, 0.0, 1.0, 1.0}, // left: purple
}

// Square is a flat two dimensional quad spanning [-1, 1] with a white, red, green and blue corner.
// Top right is white, top left red, bottom right green and bottom left blue.
func Square() *Shape {
	return &Shape{
		Name: "square",
		// counter clockwise fan order
		Positions: []float32{
			1.0, 1.0,
			-1.0, 1.0,
			-1.0, -1.0,
			1.0, -1.0,
		},
		Components: 2,
		Colors: []float32{
			1.0, 1.0, 1.0, 1.0,
			1.0, 0.0, 0.0, 1.0,
			0.0, 0.0, 1.0, 1.0,
			0.0, 1.0, 0.0, 1.0,
		},
	}
}

// Cube is an axis aligned cube spanning [-1, 1] with four separate vertices per face.
func Cube() *Shape {
	return &Shape{
		Name: "cube",
		Positions: []float32{
			// Front face
			-1.0, -1.0, 1.0,
			1.0, -1.0, 1.0,
			1.0, 1.0, 1.0,
			-1.0, 1.0, 1.0,

			// Back face
			-1.0, -1.0, -1.0,
			-1.0, 1.0, -1.0,
			1.0, 1.0, -1.0,
			1.0, -1.0, -1.0,

			// Top face
			-1.0, 1.0, -1.0,
			-1.0, 1.0, 1.0,
			1.0, 1.0, 1.0,
			1.0, 1.0, -1.0,

			// Bottom face
			-1.0, -1.0, -1.0,
			1.0, -1.0, -1.0,
			1.0, -1.0, 1.0,
			-1.0, -1.0, 1.0,

			// Right face
			1.0, -1.0, -1.0,
			1.0, 1.0, -1.0,
			1.0, 1.0, 1.0,
			1.0, -1.0, 1.0,

			// Left face
			-1.0, -1.0, -1.0,
			-1.0, -1.0, 1.0,
			-1.0, 1.0, 1.0,
			-1.0, 1.0, -1.0,
		},
		Components: 3,
	}
}

var shapes = map[string]func() *Shape{
	"square": Square,
	"cube":   Cube,
}

func ShapeByName(name string) (*Shape, error) {
	fn, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidArgument, name)
	}
	return fn(), nil
}
