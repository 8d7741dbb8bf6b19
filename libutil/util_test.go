package libutil

import (
	"testing"

	"github.com/chewxy/math32"
)

type countingDeleter struct {
	count *int
}

func (d countingDeleter) Delete() {
	*d.count++
}

func TestDeleteAll(t *testing.T) {
	count := 0
	DeleteAll(countingDeleter{&count}, nil, countingDeleter{&count})
	if count != 2 {
		t.Errorf("expected 2 deletions but got %d", count)
	}
}

func TestSmooth(t *testing.T) {
	if v := Smooth(0, 16, 0.1); v != 16 {
		t.Errorf("first sample should be taken as is, got %v", v)
	}
	if v := Smooth(math32.NaN(), 16, 0.1); v != 16 {
		t.Errorf("NaN should be replaced, got %v", v)
	}
	if v := Smooth(10, 20, 0.5); v != 15 {
		t.Errorf("expected 15 but got %v", v)
	}
}

func TestAngleConversion(t *testing.T) {
	if math32.Abs(180*Deg2Rad-math32.Pi) > 1e-6 {
		t.Errorf("180 degrees should be pi radians")
	}
	if math32.Abs(math32.Pi*Rad2Deg-180) > 1e-4 {
		t.Errorf("pi radians should be 180 degrees")
	}
}
