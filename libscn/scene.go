package libscn

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type ColorMode string

const (
	// ColorsDefault picks ColorsVertex for shapes that carry colors and ColorsRandom otherwise
	ColorsDefault ColorMode = ""
	ColorsRandom  ColorMode = "random"
	ColorsFaces   ColorMode = "faces"
	ColorsVertex  ColorMode = "vertex"
	ColorsSolid   ColorMode = "solid"
)

type SceneDesc struct {
	Name       string       `yaml:"name"`
	Program    string       `yaml:"program"`
	ClearColor mgl32.Vec4   `yaml:"clear_color"`
	Camera     *Camera      `yaml:"camera"`
	Objects    []ObjectDesc `yaml:"objects"`
}

type ObjectDesc struct {
	Name string `yaml:"name"`
	// exactly one of Shape and Model is set
	Shape    string       `yaml:"shape"`
	Model    string       `yaml:"model"`
	Colors   ColorMode    `yaml:"colors"`
	Palette  []mgl32.Vec4 `yaml:"palette"`
	Position mgl32.Vec3   `yaml:"position"`
	Spins    []Spin       `yaml:"spins"`
	// Radians per second, defaults to 1
	Speed *float32 `yaml:"speed"`
}

const DefaultProgram = "color"

func DecodeScene(r io.Reader) (*SceneDesc, error) {
	scene := &SceneDesc{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(scene); err != nil {
		return nil, fmt.Errorf("could not decode scene: %w", err)
	}
	if err := scene.validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func (scene *SceneDesc) validate() error {
	if scene.Program == "" {
		scene.Program = DefaultProgram
	}
	if scene.Camera == nil {
		cam := DefaultCamera
		scene.Camera = &cam
	}
	if scene.Camera.Near <= 0 || scene.Camera.Far <= scene.Camera.Near {
		return fmt.Errorf("scene %q: invalid clipping planes %v, %v", scene.Name, scene.Camera.Near, scene.Camera.Far)
	}
	if scene.Camera.Fov <= 0 || scene.Camera.Fov >= 180 {
		return fmt.Errorf("scene %q: invalid field of view %v", scene.Name, scene.Camera.Fov)
	}
	if len(scene.Objects) == 0 {
		return fmt.Errorf("scene %q has no objects", scene.Name)
	}

	names := map[string]bool{}
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		if obj.Name == "" {
			obj.Name = fmt.Sprintf("object%d", i)
		}
		if names[obj.Name] {
			return fmt.Errorf("scene %q: duplicate object name %q", scene.Name, obj.Name)
		}
		names[obj.Name] = true

		if (obj.Shape == "") == (obj.Model == "") {
			return fmt.Errorf("scene %q: object %q needs either a shape or a model", scene.Name, obj.Name)
		}
		switch obj.Colors {
		case ColorsDefault, ColorsRandom, ColorsVertex:
		case ColorsFaces, ColorsSolid:
			if obj.Model != "" && obj.Colors == ColorsFaces {
				return fmt.Errorf("scene %q: object %q: face colors need a quad mesh", scene.Name, obj.Name)
			}
		default:
			return fmt.Errorf("scene %q: object %q: unknown color mode %q", scene.Name, obj.Name, obj.Colors)
		}
		if obj.Speed == nil {
			speed := float32(1)
			obj.Speed = &speed
		}
	}
	return nil
}
