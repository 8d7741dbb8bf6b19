package libscn

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec4, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func TestAnimationAdvance(t *testing.T) {
	a := Animation{Speed: 2}
	a = a.Advance(0.5)
	if a.Rotation != 1 {
		t.Errorf("expected rotation 1, got %v", a.Rotation)
	}
	a = a.Advance(-1)
	if a.Rotation != 1 {
		t.Errorf("negative delta changed rotation to %v", a.Rotation)
	}
	a.Paused = true
	a = a.Advance(10)
	if a.Rotation != 1 {
		t.Errorf("paused animation changed rotation to %v", a.Rotation)
	}
}

func TestAnimationAdvanceIsPure(t *testing.T) {
	a := Animation{Speed: 1}
	b := a.Advance(1)
	if a.Rotation != 0 || b.Rotation != 1 {
		t.Errorf("advance mutated its receiver: %v, %v", a.Rotation, b.Rotation)
	}
}

func TestModelView(t *testing.T) {
	pos := mgl32.Vec3{0, 0, -6}
	m := ModelView(pos, nil, 3)
	if !m.ApproxEqual(mgl32.Translate3D(0, 0, -6)) {
		t.Errorf("without spins the model view is a translation, got %v", m)
	}

	spins := []Spin{{Axis: mgl32.Vec3{0, 0, 2}, Rate: 1}}
	m = ModelView(mgl32.Vec3{}, spins, mgl32.DegToRad(90))
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !vecNear(got, mgl32.Vec4{0, 1, 0, 1}, 1e-5) {
		t.Errorf("expected x to rotate onto y, got %v", got)
	}
	got = ModelView(mgl32.Vec3{}, spins, mgl32.DegToRad(180)).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !vecNear(got, mgl32.Vec4{-1, 0, 0, 1}, 1e-5) {
		t.Errorf("expected x to rotate onto -x, got %v", got)
	}

	zero := []Spin{{Rate: 1}}
	if m := ModelView(pos, zero, 1); !m.ApproxEqual(mgl32.Translate3D(0, 0, -6)) {
		t.Errorf("zero axis should be skipped, got %v", m)
	}
}

func TestProjection(t *testing.T) {
	cam := DefaultCamera
	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	if !cam.Projection(0).ApproxEqual(want) {
		t.Error("non positive aspect should fall back to 1")
	}
	wide := cam.Projection(2)
	if wide.At(0, 0)*2 != want.At(0, 0) {
		t.Errorf("unexpected horizontal scale %v", wide.At(0, 0))
	}
}
