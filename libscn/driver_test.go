package libscn

import (
	"errors"
	"gl-quads/libio"
	"gl-quads/libmesh"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// memAssets serves assets from memory
type memAssets struct {
	models map[string]*libio.StlModel
}

func (a *memAssets) LoadModel(name string) (*libio.StlModel, error) {
	model, ok := a.models[name]
	if !ok {
		return nil, errors.New("no such model")
	}
	return model, nil
}

func (a *memAssets) LoadProgramSource(name string) (*ProgramSource, error) {
	return &ProgramSource{Name: name, Vertex: "vs", Fragment: "fs"}, nil
}

func triangleModel() *libio.StlModel {
	return &libio.StlModel{
		Name:     "tri",
		Normals:  []float32{0, 0, 1},
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
	}
}

func loadScene(t *testing.T, src string) *SceneDesc {
	t.Helper()
	scene, err := DecodeScene(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestDriverLoad(t *testing.T) {
	host := newFakeHost()
	assets := &memAssets{models: map[string]*libio.StlModel{"tri": triangleModel()}}
	scene := loadScene(t, `
objects:
  - name: square
    shape: square
  - name: cube
    shape: cube
    colors: faces
  - name: tri
    model: tri
`)
	driver := NewDriver(host, rand.New(rand.NewSource(1)))
	if err := driver.Load(scene, assets); err != nil {
		t.Fatal(err)
	}
	if len(driver.Objects()) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(driver.Objects()))
	}
	if driver.Scene() != scene {
		t.Error("driver does not report the loaded scene")
	}

	square := host.byLabel("square colors")
	if !slices.Equal(square.floats, libmesh.Square().Colors) {
		t.Errorf("square should keep its vertex colors, got %v", square.floats)
	}

	cube := host.byLabel("cube indices")
	if cube.count != 36 || !slices.Equal(cube.indices[30:], []uint16{20, 21, 22, 20, 22, 23}) {
		t.Errorf("unexpected cube indices %v", cube.indices)
	}
	cubeColors := host.byLabel("cube colors")
	if !slices.Equal(cubeColors.floats[16:20], []float32{1, 0, 0, 1}) {
		t.Errorf("second face should be red, got %v", cubeColors.floats[16:20])
	}

	tri := host.byLabel("tri indices")
	if !slices.Equal(tri.indices, []uint16{0, 1, 2}) {
		t.Errorf("models are drawn as triangle lists, got %v", tri.indices)
	}

	driver.Release()
	if host.live != 0 || host.doubleDeletes != 0 {
		t.Errorf("release left %d live objects and %d double deletes", host.live, host.doubleDeletes)
	}
}

func TestDriverLoadFailure(t *testing.T) {
	host := newFakeHost()
	assets := &memAssets{}
	good := loadScene(t, "objects: [{shape: square}]")
	driver := NewDriver(host, nil)
	if err := driver.Load(good, assets); err != nil {
		t.Fatal(err)
	}
	live := host.live

	bad := loadScene(t, "objects: [{shape: cube}, {model: missing}]")
	if err := driver.Load(bad, assets); err == nil {
		t.Fatal("expected an error for a missing model")
	}
	if host.live != live {
		t.Errorf("failed load leaked %d objects", host.live-live)
	}
	if driver.Scene() != good {
		t.Error("failed load replaced the current scene")
	}

	host.failCompile = true
	if err := driver.Load(good, assets); err == nil {
		t.Error("expected a compile error")
	}
	if host.live != live {
		t.Errorf("failed compile leaked %d objects", host.live-live)
	}
}

func TestDriverLoadEmptyModel(t *testing.T) {
	host := newFakeHost()
	assets := &memAssets{models: map[string]*libio.StlModel{"empty": {Name: "empty"}}}
	scene := loadScene(t, "objects: [{shape: square}, {model: empty}]")
	driver := NewDriver(host, nil)
	err := driver.Load(scene, assets)
	if err == nil || !strings.Contains(err.Error(), "no triangles") {
		t.Fatalf("expected an empty mesh error, got %v", err)
	}
	if len(host.uploads) != 3 {
		t.Errorf("the empty model should be rejected before it is uploaded, got %d uploads", len(host.uploads))
	}
	if host.live != 0 {
		t.Errorf("failed load leaked %d objects", host.live)
	}
}

func TestDriverFrame(t *testing.T) {
	host := newFakeHost()
	scene := loadScene(t, `
clear_color: [0.1, 0.2, 0.3, 1]
objects:
  - shape: square
    speed: 2
    position: [0, 0, -3]
    spins: [{axis: [0, 0, 1], rate: 1}]
`)
	driver := NewDriver(host, nil)
	driver.Frame(1, 1)
	if len(host.frames) != 0 {
		t.Error("frame without a scene should not draw")
	}
	if err := driver.Load(scene, &memAssets{}); err != nil {
		t.Fatal(err)
	}

	driver.Frame(0.25, 1.5)
	driver.Frame(0.25, 1.5)
	if len(host.frames) != 2 || host.frames[0] != (mgl32.Vec4{0.1, 0.2, 0.3, 1}) {
		t.Errorf("unexpected frames %v", host.frames)
	}
	if len(host.draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(host.draws))
	}

	first, second := host.draws[0], host.draws[1]
	if !first.ModelView.ApproxEqual(ModelView(mgl32.Vec3{0, 0, -3}, scene.Objects[0].Spins, 0)) {
		t.Error("first frame should be drawn before advancing")
	}
	if !second.ModelView.ApproxEqual(ModelView(mgl32.Vec3{0, 0, -3}, scene.Objects[0].Spins, 0.5)) {
		t.Error("second frame should be drawn at rotation 0.5")
	}
	if !first.Projection.ApproxEqual(scene.Camera.Projection(1.5)) {
		t.Error("unexpected projection")
	}
	if first.Program == nil || first.Program.Name() != DefaultProgram {
		t.Error("draw should use the scene program")
	}

	driver.SetPaused(true)
	driver.Frame(1, 1.5)
	if got := driver.Objects()[0].Animation.Rotation; got != 1 {
		t.Errorf("expected rotation 1 after pausing, got %v", got)
	}
	driver.SetPaused(false)
	driver.Frame(1, 1.5)
	if got := driver.Objects()[0].Animation.Rotation; got != 3 {
		t.Errorf("expected rotation 3 after resuming, got %v", got)
	}
}

func TestDriverRegenerateColors(t *testing.T) {
	host := newFakeHost()
	scene := loadScene(t, `
objects:
  - name: random
    shape: cube
    colors: random
  - name: solid
    shape: cube
    colors: solid
    palette: [[0, 1, 0, 1]]
`)
	driver := NewDriver(host, rand.New(rand.NewSource(7)))
	if err := driver.Load(scene, &memAssets{}); err != nil {
		t.Fatal(err)
	}
	solid := driver.Objects()[1].Mesh.Colors
	before := host.byLabel("random colors").floats
	if !slices.Equal(host.byLabel("solid colors").floats[:4], []float32{0, 1, 0, 1}) {
		t.Error("solid colors should use the first palette entry")
	}

	if err := driver.RegenerateColors(); err != nil {
		t.Fatal(err)
	}
	after := host.byLabel("random colors").floats
	if slices.Equal(before, after) {
		t.Error("random colors did not change")
	}
	if driver.Objects()[1].Mesh.Colors != solid {
		t.Error("solid colors should not be regenerated")
	}
	for i := 3; i < len(after); i += 4 {
		if after[i] != 1 {
			t.Fatalf("alpha at %d is %v", i, after[i])
		}
	}
}
