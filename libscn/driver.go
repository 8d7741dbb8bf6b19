package libscn

import (
	"fmt"
	"gl-quads/libmesh"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

type Object struct {
	Desc      ObjectDesc
	Mesh      *GpuMesh
	Animation Animation
	colors    ColorMode
	quads     int
}

// Driver owns the gpu resources of one scene and draws it every frame.
type Driver struct {
	host    Renderer
	rng     *rand.Rand
	scene   *SceneDesc
	program Program
	objects []*Object
	paused  bool
}

// NewDriver creates a driver drawing through host. A nil rng uses the process-wide random source.
func NewDriver(host Renderer, rng *rand.Rand) *Driver {
	return &Driver{
		host: host,
		rng:  rng,
	}
}

// Load compiles the scene program and builds every mesh of the scene.
// The previously loaded scene is released only when loading succeeds.
func (d *Driver) Load(scene *SceneDesc, assets AssetSource) (err error) {
	src, err := assets.LoadProgramSource(scene.Program)
	if err != nil {
		return fmt.Errorf("could not load program of scene %q: %w", scene.Name, err)
	}
	program, err := d.host.CompileProgram(src.Name, src.Vertex, src.Fragment)
	if err != nil {
		return fmt.Errorf("could not compile program of scene %q: %w", scene.Name, err)
	}

	objects := make([]*Object, 0, len(scene.Objects))
	defer func() {
		if err != nil {
			for _, obj := range objects {
				obj.Mesh.Delete()
			}
			program.Delete()
		}
	}()

	for _, desc := range scene.Objects {
		obj, err := d.buildObject(desc, assets)
		if err != nil {
			return fmt.Errorf("could not build object %q of scene %q: %w", desc.Name, scene.Name, err)
		}
		objects = append(objects, obj)
	}

	d.Release()
	d.scene = scene
	d.program = program
	d.objects = objects
	log.Printf("Loaded scene %q with %d objects\n", scene.Name, len(objects))
	return nil
}

func (d *Driver) buildObject(desc ObjectDesc, assets AssetSource) (*Object, error) {
	data := &MeshData{
		Name: desc.Name,
	}
	quads := -1
	var shapeColors []float32

	if desc.Shape != "" {
		shape, err := libmesh.ShapeByName(desc.Shape)
		if err != nil {
			return nil, err
		}
		quads, err = shape.Quads()
		if err != nil {
			return nil, err
		}
		data.Indices, err = libmesh.QuadIndices(quads)
		if err != nil {
			return nil, err
		}
		data.Positions = shape.Positions
		data.Components = shape.Components
		shapeColors = shape.Colors
	} else {
		model, err := assets.LoadModel(desc.Model)
		if err != nil {
			return nil, err
		}
		data.Indices, err = libmesh.SequentialIndices(model.VertexCount())
		if err != nil {
			return nil, err
		}
		data.Positions = model.Vertices
		data.Components = 3
	}

	mode := desc.Colors
	if mode == ColorsDefault {
		if shapeColors != nil {
			mode = ColorsVertex
		} else {
			mode = ColorsRandom
		}
	}

	var err error
	switch mode {
	case ColorsVertex:
		if shapeColors == nil {
			return nil, fmt.Errorf("%q has no vertex colors", desc.Name)
		}
		data.Colors = shapeColors
	case ColorsFaces:
		if quads < 0 {
			return nil, fmt.Errorf("face colors need a quad mesh")
		}
		palette := desc.Palette
		if len(palette) == 0 {
			palette = libmesh.DefaultPalette
		}
		data.Colors, err = libmesh.FaceColors(quads, palette)
	case ColorsSolid:
		color := mgl32.Vec4{1, 1, 1, 1}
		if len(desc.Palette) > 0 {
			color = desc.Palette[0]
		}
		data.Colors, err = libmesh.SolidColors(data.VertexCount(), color)
	default:
		data.Colors, err = libmesh.RandomColors(data.VertexCount(), d.rng)
	}
	if err != nil {
		return nil, err
	}

	mesh, err := BuildMesh(d.host, data)
	if err != nil {
		return nil, err
	}

	speed := float32(1)
	if desc.Speed != nil {
		speed = *desc.Speed
	}
	return &Object{
		Desc: desc,
		Mesh: mesh,
		Animation: Animation{
			Speed:  speed,
			Paused: d.paused,
		},
		colors: mode,
		quads:  quads,
	}, nil
}

// Frame draws every object with its current rotation and then advances its animation by delta seconds.
func (d *Driver) Frame(delta, aspect float32) {
	if d.scene == nil {
		return
	}
	d.host.BeginFrame(d.scene.ClearColor)
	projection := d.scene.Camera.Projection(aspect)

	for _, obj := range d.objects {
		d.host.Draw(DrawCall{
			Program:    d.program,
			Positions:  obj.Mesh.Positions,
			Colors:     obj.Mesh.Colors,
			Indices:    obj.Mesh.Indices,
			Projection: projection,
			ModelView:  ModelView(obj.Desc.Position, obj.Desc.Spins, obj.Animation.Rotation),
		})
		obj.Animation = obj.Animation.Advance(delta)
	}
}

// RegenerateColors draws new random colors for every object using random colors.
func (d *Driver) RegenerateColors() error {
	for _, obj := range d.objects {
		if obj.colors != ColorsRandom {
			continue
		}
		colors, err := libmesh.RandomColors(obj.Mesh.Positions.Count(), d.rng)
		if err != nil {
			return err
		}
		if err := obj.Mesh.ReplaceColors(d.host, colors); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) SetPaused(paused bool) {
	d.paused = paused
	for _, obj := range d.objects {
		obj.Animation.Paused = paused
	}
}

func (d *Driver) Paused() bool {
	return d.paused
}

func (d *Driver) Scene() *SceneDesc {
	return d.scene
}

func (d *Driver) Objects() []*Object {
	return d.objects
}

func (d *Driver) Release() {
	for _, obj := range d.objects {
		obj.Mesh.Delete()
	}
	if d.program != nil {
		d.program.Delete()
	}
	d.objects = nil
	d.program = nil
	d.scene = nil
}
