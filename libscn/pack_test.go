package libscn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/exp/slices"
)

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func compress(t *testing.T, name string, data []byte) {
	t.Helper()
	file, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	w := lz4.NewWriter(file)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func setupPack(t *testing.T) *DirPack {
	t.Helper()
	root := t.TempDir()
	cube, err := os.ReadFile("../libio/testdata/cube.stl")
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(root, "index.json"), []byte(`{
		"models": ["models/*"],
		"shaders": ["shaders/*.json"],
		"scenes": ["scenes/*.yaml"]
	}`))
	writeFile(t, filepath.Join(root, "models", "cube.stl"), cube)
	compress(t, filepath.Join(root, "models", "packed.stl.lz4"), cube)
	writeFile(t, filepath.Join(root, "shaders", "color.json"), []byte(`{"vertex": "color.vert", "fragment": "color.frag"}`))
	writeFile(t, filepath.Join(root, "shaders", "color.vert"), []byte("#version 450 core\nvoid main() {}\n"))
	writeFile(t, filepath.Join(root, "shaders", "color.frag"), []byte("#version 450 core\nout vec4 color;\nvoid main() {}\n"))
	writeFile(t, filepath.Join(root, "shaders", "broken.json"), []byte(`{"vertex": "missing.vert", "fragment": "color.frag"}`))
	writeFile(t, filepath.Join(root, "scenes", "spin.yaml"), []byte("objects: [{shape: square}]\n"))
	writeFile(t, filepath.Join(root, "scenes", "model.yaml"), []byte("name: models\nobjects: [{model: cube}, {model: packed}]\n"))

	pack := &DirPack{}
	if err := pack.AddIndexFile(filepath.Join(root, "index.json")); err != nil {
		t.Fatal(err)
	}
	return pack
}

func TestDirPackModels(t *testing.T) {
	pack := setupPack(t)
	plain, err := pack.LoadModel("cube")
	if err != nil {
		t.Fatal(err)
	}
	packed, err := pack.LoadModel("packed")
	if err != nil {
		t.Fatal(err)
	}
	if plain.TriangleCount() != 12 || !slices.Equal(plain.Vertices, packed.Vertices) {
		t.Errorf("compressed model differs: %d vs %d triangles", plain.TriangleCount(), packed.TriangleCount())
	}
	if _, err := pack.LoadModel("sphere"); err == nil {
		t.Error("expected an error for an unregistered model")
	}
}

func TestDirPackPrograms(t *testing.T) {
	pack := setupPack(t)
	src, err := pack.LoadProgramSource("color")
	if err != nil {
		t.Fatal(err)
	}
	if src.Name != "color" || !strings.HasPrefix(src.Vertex, "#version 450") || !strings.Contains(src.Fragment, "out vec4") {
		t.Errorf("unexpected program source %+v", src)
	}
	if _, err := pack.LoadProgramSource("broken"); err == nil {
		t.Error("expected an error for a missing shader file")
	}
}

func TestDirPackScenes(t *testing.T) {
	pack := setupPack(t)
	if names := pack.SceneNames(); !slices.Equal(names, []string{"model", "spin"}) {
		t.Errorf("unexpected scene names %v", names)
	}
	spin, err := pack.LoadScene("spin")
	if err != nil {
		t.Fatal(err)
	}
	if spin.Name != "spin" {
		t.Errorf("scene name should default to its file name, got %q", spin.Name)
	}
	model, err := pack.LoadScene("model")
	if err != nil {
		t.Fatal(err)
	}
	if model.Name != "models" {
		t.Errorf("expected the declared name, got %q", model.Name)
	}

	host := newFakeHost()
	driver := NewDriver(host, nil)
	if err := driver.Load(model, pack); err != nil {
		t.Fatal(err)
	}
	if len(driver.Objects()) != 2 || driver.Objects()[1].Mesh.Indices.Count() != 36 {
		t.Error("unexpected meshes for the model scene")
	}
	driver.Release()
}

func TestDirPackBadIndex(t *testing.T) {
	pack := &DirPack{}
	if err := pack.AddIndex(strings.NewReader("{"), "."); err == nil {
		t.Error("expected an error for malformed json")
	}
	if err := pack.AddIndexFile("does/not/exist.json"); err == nil {
		t.Error("expected an error for a missing index file")
	}
}
