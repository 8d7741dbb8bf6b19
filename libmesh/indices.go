package libmesh

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidArgument = errors.New("invalid argument")

const (
	VerticesPerQuad = 4
	IndicesPerQuad  = 6
	// MaxQuads is the largest quad count whose indices still fit an uint16
	MaxQuads = (math.MaxUint16 + 1) / VerticesPerQuad
)

// QuadIndices returns the triangle list for quadCount consecutive quads.
// Quad i occupies the vertices 4i..4i+3 and is split into the triangles
// (c, c+1, c+2) and (c, c+2, c+3).
func QuadIndices(quadCount int) ([]uint16, error) {
	if quadCount < 0 {
		return nil, fmt.Errorf("%w: negative quad count %d", ErrInvalidArgument, quadCount)
	}
	if quadCount > MaxQuads {
		return nil, fmt.Errorf("%w: %d quads exceed the 16 bit index range (max %d)", ErrInvalidArgument, quadCount, MaxQuads)
	}

	result := make([]uint16, 0, quadCount*IndicesPerQuad)
	// each quad is visited twice, once per triangle
	for t := 0; t < quadCount*2; t++ {
		if t%2 == 0 {
			c := uint16((t / 2) * VerticesPerQuad)
			result = append(result, c, c+1, c+2)
		} else {
			c := uint16(((t - 1) / 2) * VerticesPerQuad)
			result = append(result, c, c+2, c+3)
		}
	}
	return result, nil
}

// QuadCount converts the length of a flattened position array into a number of quads.
func QuadCount(componentCount, componentsPerVertex int) (int, error) {
	if componentsPerVertex <= 0 {
		return 0, fmt.Errorf("%w: %d components per vertex", ErrInvalidArgument, componentsPerVertex)
	}
	if componentCount < 0 {
		return 0, fmt.Errorf("%w: negative component count %d", ErrInvalidArgument, componentCount)
	}
	unit := componentsPerVertex * VerticesPerQuad
	if componentCount%unit != 0 {
		return 0, fmt.Errorf("%w: %d components do not form whole quads of %d", ErrInvalidArgument, componentCount, unit)
	}
	return componentCount / unit, nil
}

// SequentialIndices indexes a triangle soup where every three vertices form a triangle.
func SequentialIndices(vertexCount int) ([]uint16, error) {
	if vertexCount < 0 || vertexCount%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices do not form whole triangles", ErrInvalidArgument, vertexCount)
	}
	if vertexCount > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d vertices exceed the 16 bit index range", ErrInvalidArgument, vertexCount)
	}
	result := make([]uint16, vertexCount)
	for i := range result {
		result[i] = uint16(i)
	}
	return result, nil
}
