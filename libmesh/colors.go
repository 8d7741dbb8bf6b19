package libmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

const ColorComponents = 4

// RandomColors returns one opaque RGBA color per vertex with uniformly random rgb channels.
// A nil rng draws from the process-wide source.
func RandomColors(vertexCount int, rng *rand.Rand) ([]float32, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", ErrInvalidArgument, vertexCount)
	}
	random := rand.Float32
	if rng != nil {
		random = rng.Float32
	}

	result := make([]float32, 0, vertexCount*ColorComponents)
	for i := 0; i < vertexCount; i++ {
		result = append(result, random(), random(), random(), 1.0)
	}
	return result, nil
}

// FaceColors gives all four vertices of a quad the same palette entry.
// The palette repeats when there are more quads than colors.
func FaceColors(quadCount int, palette []mgl32.Vec4) ([]float32, error) {
	if quadCount < 0 {
		return nil, fmt.Errorf("%w: negative quad count %d", ErrInvalidArgument, quadCount)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidArgument)
	}

	result := make([]float32, 0, quadCount*VerticesPerQuad*ColorComponents)
	for q := 0; q < quadCount; q++ {
		c := palette[q%len(palette)]
		for v := 0; v < VerticesPerQuad; v++ {
			result = append(result, c[0], c[1], c[2], c[3])
		}
	}
	return result, nil
}

func SolidColors(vertexCount int, color mgl32.Vec4) ([]float32, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", ErrInvalidArgument, vertexCount)
	}
	result := make([]float32, 0, vertexCount*ColorComponents)
	for i := 0; i < vertexCount; i++ {
		result = append(result, color[0], color[1], color[2], color[3])
	}
	return result, nil
}
