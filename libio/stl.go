package libio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	StlHeaderSize   = 80
	StlTriangleSize = 50
)

// StlModel is a triangle soup, every three consecutive vertices form one triangle.
type StlModel struct {
	Name string
	// one xyz normal per triangle
	Normals []float32
	// three xyz positions per triangle
	Vertices []float32
}

type stlTriangle struct {
	Normal    mgl32.Vec3
	Vertices  [3]mgl32.Vec3
	Attribute uint16
}

func (m *StlModel) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *StlModel) TriangleCount() int {
	return len(m.Vertices) / 9
}

// Bounds returns the axis aligned bounding box, both corners are zero for an empty model.
func (m *StlModel) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) < 3 {
		return
	}
	min = mgl32.Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	max = mgl32.Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for c := 0; c < 3; c++ {
			min[c] = math32.Min(min[c], m.Vertices[i+c])
			max[c] = math32.Max(max[c], m.Vertices[i+c])
		}
	}
	return
}

// DecodeStl reads a binary or ascii stl model.
func DecodeStl(r io.Reader) (*StlModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read stl data: %w", err)
	}
	if isAsciiStl(data) {
		return decodeAsciiStl(data)
	}
	return decodeBinaryStl(data)
}

// binary files may also start with "solid", so the size has to disagree with the binary layout too
func isAsciiStl(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("solid")) {
		return false
	}
	if len(data) < StlHeaderSize+4 {
		return true
	}
	count := binary.LittleEndian.Uint32(data[StlHeaderSize:])
	return StlHeaderSize+4+int(count)*StlTriangleSize != len(data)
}

func decodeBinaryStl(data []byte) (*StlModel, error) {
	br := &BinaryReader{
		Src:   bytes.NewReader(data),
		Order: binary.LittleEndian,
	}

	if !br.ReadBytes(StlHeaderSize) {
		return nil, fmt.Errorf("expected stl header; byte 0x%08x: %w", br.LastIndex, br.Err)
	}
	name := headerName(br.Bytes())

	var count int
	if !br.ReadUInt32(&count) {
		return nil, fmt.Errorf("expected stl triangle count; byte 0x%08x: %w", br.LastIndex, br.Err)
	}

	remaining := len(data) - br.Index
	if count > remaining/StlTriangleSize {
		return nil, fmt.Errorf("expected %d stl triangles but only %d bytes remain; byte 0x%08x", count, remaining, br.Index)
	}

	triangles := make([]stlTriangle, count)
	if !br.ReadRef(triangles) {
		return nil, fmt.Errorf("expected %d stl triangles; byte 0x%08x: %w", count, br.LastIndex, br.Err)
	}

	model := &StlModel{
		Name:     name,
		Normals:  make([]float32, 0, len(triangles)*3),
		Vertices: make([]float32, 0, len(triangles)*9),
	}
	for _, tri := range triangles {
		model.Normals = append(model.Normals, tri.Normal[:]...)
		for _, v := range tri.Vertices {
			model.Vertices = append(model.Vertices, v[:]...)
		}
	}
	return model, nil
}

func headerName(text []byte) string {
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	name := strings.TrimSpace(string(text))
	name = strings.TrimSpace(strings.TrimPrefix(name, "solid"))
	return name
}

func decodeAsciiStl(data []byte) (*StlModel, error) {
	model := &StlModel{}
	scanner := bufio.NewScanner(bytes.NewReader(data))

	line := 0
	facetVertices := -1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			model.Name = strings.Join(fields[1:], " ")
		case "facet":
			if facetVertices != -1 {
				return nil, fmt.Errorf("unexpected facet inside facet; line %d", line)
			}
			if len(fields) != 5 || !strings.EqualFold(fields[1], "normal") {
				return nil, fmt.Errorf("expected 'facet normal x y z'; line %d", line)
			}
			normal, err := parseVec3(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid facet normal; line %d: %w", line, err)
			}
			model.Normals = append(model.Normals, normal[:]...)
			facetVertices = 0
		case "vertex":
			if facetVertices == -1 {
				return nil, fmt.Errorf("unexpected vertex outside of facet; line %d", line)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("expected 'vertex x y z'; line %d", line)
			}
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("invalid vertex; line %d: %w", line, err)
			}
			model.Vertices = append(model.Vertices, v[:]...)
			facetVertices++
		case "endfacet":
			if facetVertices != 3 {
				return nil, fmt.Errorf("expected 3 vertices per facet but got %d; line %d", facetVertices, line)
			}
			facetVertices = -1
		case "outer", "endloop", "endsolid":
		default:
			return nil, fmt.Errorf("unexpected keyword %q; line %d", fields[0], line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan ascii stl: %w", err)
	}
	if facetVertices != -1 {
		return nil, fmt.Errorf("unterminated facet at end of file; line %d", line)
	}
	return model, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	v := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// EncodeStl writes the model in the binary format.
// Missing normals are written as zero vectors.
func EncodeStl(w io.Writer, model *StlModel) error {
	if len(model.Vertices)%9 != 0 {
		return fmt.Errorf("stl vertices must form whole triangles, got %d components", len(model.Vertices))
	}
	bw := &BinaryWriter{
		Dst:   w,
		Order: binary.LittleEndian,
	}

	header := make([]byte, StlHeaderSize)
	copy(header, model.Name)
	bw.WriteBytes(header)
	bw.WriteUInt32(uint32(model.TriangleCount()))

	triangles := make([]stlTriangle, model.TriangleCount())
	for i := range triangles {
		if len(model.Normals) >= i*3+3 {
			copy(triangles[i].Normal[:], model.Normals[i*3:i*3+3])
		}
		for v := 0; v < 3; v++ {
			offset := i*9 + v*3
			copy(triangles[i].Vertices[v][:], model.Vertices[offset:offset+3])
		}
	}
	bw.WriteRef(triangles)

	if bw.Err != nil {
		return fmt.Errorf("could not write stl: %w", bw.Err)
	}
	return nil
}
