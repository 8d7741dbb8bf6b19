package libscn

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Spin rotates an object around Axis by Rate times the animation rotation.
type Spin struct {
	Axis mgl32.Vec3 `yaml:"axis"`
	Rate float32    `yaml:"rate"`
}

// Animation is the per object state that advances every frame.
type Animation struct {
	// Radians
	Rotation float32
	// Radians per second
	Speed  float32
	Paused bool
}

// Advance returns the state after delta seconds. Negative deltas are ignored.
func (a Animation) Advance(delta float32) Animation {
	if a.Paused || delta <= 0 {
		return a
	}
	a.Rotation += delta * a.Speed
	return a
}

func ModelView(position mgl32.Vec3, spins []Spin, rotation float32) mgl32.Mat4 {
	m := mgl32.Translate3D(position[0], position[1], position[2])
	for _, spin := range spins {
		if spin.Axis.LenSqr() == 0 {
			continue
		}
		m = m.Mul4(mgl32.HomogRotate3D(rotation*spin.Rate, spin.Axis.Normalize()))
	}
	return m
}

type Camera struct {
	// Vertical, in degrees
	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

var DefaultCamera = Camera{
	Fov:  45,
	Near: 0.1,
	Far:  100,
}

func (cam Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(cam.Fov), aspect, cam.Near, cam.Far)
}
