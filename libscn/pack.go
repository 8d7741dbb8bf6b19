package libscn

import (
	"encoding/json"
	"fmt"
	"gl-quads/libio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type AssetIndex struct {
	Models  []string `json:"models"`
	Shaders []string `json:"shaders"`
	Scenes  []string `json:"scenes"`
}

type ProgramDesc struct {
	Vertex   string `json:"vertex"`
	Fragment string `json:"fragment"`
}

type ProgramSource struct {
	Name     string
	Vertex   string
	Fragment string
}

// AssetSource is what the driver loads scene objects from.
type AssetSource interface {
	LoadModel(name string) (*libio.StlModel, error)
	LoadProgramSource(name string) (*ProgramSource, error)
}

// DirPack resolves asset names to files on disk through json index files.
type DirPack struct {
	ModelIndex  map[string]string
	ShaderIndex map[string]string
	SceneIndex  map[string]string
	init        bool
}

func (pack *DirPack) AddIndexFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("could not add index file %q: %w", name, err)
	}
	defer file.Close()

	return pack.AddIndex(file, path.Dir(filepath.ToSlash(name)))
}

func (pack *DirPack) AddIndex(r io.Reader, root string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	index := AssetIndex{}
	err = json.Unmarshal(data, &index)
	if err != nil {
		return fmt.Errorf("could not unmarshal asset index: %w", err)
	}

	if !pack.init {
		pack.ModelIndex = map[string]string{}
		pack.ShaderIndex = map[string]string{}
		pack.SceneIndex = map[string]string{}
		pack.init = true
	}

	root = path.Clean(root)
	err = pack.addAllMatches(root, index.Models, pack.ModelIndex)
	if err != nil {
		return err
	}
	err = pack.addAllMatches(root, index.Shaders, pack.ShaderIndex)
	if err != nil {
		return err
	}
	err = pack.addAllMatches(root, index.Scenes, pack.SceneIndex)
	if err != nil {
		return err
	}

	return nil
}

func (pack *DirPack) addAllMatches(root string, patterns []string, index map[string]string) error {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(path.Join(root, pattern))
		if err != nil {
			return err
		}
		for _, match := range matches {
			match = filepath.ToSlash(match)

			name, _, _ := strings.Cut(path.Base(match), ".")
			index[name] = match
		}
	}
	return nil
}

// LoadModel decodes a stl model, files ending in .lz4 are decompressed first.
func (pack *DirPack) LoadModel(name string) (*libio.StlModel, error) {
	filename, ok := pack.ModelIndex[name]
	if !ok {
		return nil, fmt.Errorf("model %q is not registered in this pack", name)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open model file %q: %w", filename, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, ".lz4") {
		r = lz4.NewReader(file)
	}

	model, err := libio.DecodeStl(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode model file %q: %w", filename, err)
	}
	if model.Name == "" {
		model.Name = name
	}
	return model, nil
}

func (pack *DirPack) LoadProgramSource(name string) (*ProgramSource, error) {
	filename, ok := pack.ShaderIndex[name]
	if !ok {
		return nil, fmt.Errorf("shader program %q is not registered in this pack", name)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read shader program file %q: %w", filename, err)
	}

	desc := &ProgramDesc{}
	err = json.Unmarshal(data, desc)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal shader program file %q: %w", filename, err)
	}

	root := path.Dir(filename)

	vertexSrc, err := os.ReadFile(path.Join(root, desc.Vertex))
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader %q for shader program %q: %w", desc.Vertex, filename, err)
	}
	fragmentSrc, err := os.ReadFile(path.Join(root, desc.Fragment))
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader %q for shader program %q: %w", desc.Fragment, filename, err)
	}

	return &ProgramSource{
		Name:     name,
		Vertex:   string(vertexSrc),
		Fragment: string(fragmentSrc),
	}, nil
}

func (pack *DirPack) LoadScene(name string) (*SceneDesc, error) {
	filename, ok := pack.SceneIndex[name]
	if !ok {
		return nil, fmt.Errorf("scene %q is not registered in this pack", name)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open scene file %q: %w", filename, err)
	}
	defer file.Close()

	scene, err := DecodeScene(file)
	if err != nil {
		return nil, fmt.Errorf("could not load scene file %q: %w", filename, err)
	}
	if scene.Name == "" {
		scene.Name = name
	}
	return scene, nil
}

func (pack *DirPack) SceneNames() []string {
	names := maps.Keys(pack.SceneIndex)
	slices.Sort(names)
	return names
}
