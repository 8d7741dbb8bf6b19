package libscn

import (
	"fmt"
	"gl-quads/libmesh"
	"gl-quads/libutil"
)

// MeshData is a mesh before it is uploaded.
type MeshData struct {
	Name       string
	Positions  []float32
	Components int
	Indices    []uint16
	// RGBA per vertex
	Colors []float32
}

type GpuMesh struct {
	Name      string
	Positions VertexBuffer
	Colors    VertexBuffer
	Indices   IndexBuffer
}

func (data *MeshData) VertexCount() int {
	if data.Components <= 0 {
		return 0
	}
	return len(data.Positions) / data.Components
}

func (data *MeshData) Validate() error {
	if data.Components < 2 || data.Components > 4 {
		return fmt.Errorf("mesh %q: %d position components are not supported", data.Name, data.Components)
	}
	if len(data.Positions)%data.Components != 0 {
		return fmt.Errorf("mesh %q: %d position values are not a multiple of %d", data.Name, len(data.Positions), data.Components)
	}
	vertices := data.VertexCount()
	if len(data.Colors) != vertices*libmesh.ColorComponents {
		return fmt.Errorf("mesh %q: expected %d color values for %d vertices but got %d", data.Name, vertices*libmesh.ColorComponents, vertices, len(data.Colors))
	}
	if len(data.Indices) == 0 {
		return fmt.Errorf("mesh %q has no triangles", data.Name)
	}
	for i, index := range data.Indices {
		if int(index) >= vertices {
			return fmt.Errorf("mesh %q: index %d at %d is out of range for %d vertices", data.Name, index, i, vertices)
		}
	}
	return nil
}

// BuildMesh uploads the mesh data. Nothing stays allocated on the host when it fails.
func BuildMesh(host GpuBufferHost, data *MeshData) (mesh *GpuMesh, err error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	cleanup := []libutil.Deleter{}
	defer func() {
		if err != nil {
			libutil.DeleteAll(cleanup...)
		}
	}()

	positions, err := host.UploadVertexBuffer(data.Name+" positions", data.Positions, data.Components)
	if err != nil {
		return nil, fmt.Errorf("could not upload positions of mesh %q: %w", data.Name, err)
	}
	cleanup = append(cleanup, positions)

	colors, err := host.UploadVertexBuffer(data.Name+" colors", data.Colors, libmesh.ColorComponents)
	if err != nil {
		return nil, fmt.Errorf("could not upload colors of mesh %q: %w", data.Name, err)
	}
	cleanup = append(cleanup, colors)

	indices, err := host.UploadIndexBuffer(data.Name+" indices", data.Indices)
	if err != nil {
		return nil, fmt.Errorf("could not upload indices of mesh %q: %w", data.Name, err)
	}

	return &GpuMesh{
		Name:      data.Name,
		Positions: positions,
		Colors:    colors,
		Indices:   indices,
	}, nil
}

// ReplaceColors uploads a new color buffer and releases the old one.
func (mesh *GpuMesh) ReplaceColors(host GpuBufferHost, colors []float32) error {
	if len(colors) != mesh.Positions.Count()*libmesh.ColorComponents {
		return fmt.Errorf("mesh %q: expected %d color values but got %d", mesh.Name, mesh.Positions.Count()*libmesh.ColorComponents, len(colors))
	}
	buffer, err := host.UploadVertexBuffer(mesh.Name+" colors", colors, libmesh.ColorComponents)
	if err != nil {
		return fmt.Errorf("could not upload colors of mesh %q: %w", mesh.Name, err)
	}
	mesh.Colors.Delete()
	mesh.Colors = buffer
	return nil
}

func (mesh *GpuMesh) Delete() {
	libutil.DeleteAll(mesh.Positions, mesh.Colors, mesh.Indices)
}
