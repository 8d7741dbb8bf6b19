package libutil

import (
	"github.com/chewxy/math32"
)

const (
	Rad2Deg = float32(180 / math32.Pi)
	Deg2Rad = float32(math32.Pi / 180)
)

type Deleter interface {
	Delete()
}

// DeleteAll releases every non nil deleter, used to unwind partially built gl objects
func DeleteAll(deleters ...Deleter) {
	for _, d := range deleters {
		if d != nil {
			d.Delete()
		}
	}
}

// Smooth is an exponential moving average, used to steady the frame time readout
func Smooth(prev, next, factor float32) float32 {
	if prev == 0 || math32.IsNaN(prev) || math32.IsInf(prev, 0) {
		return next
	}
	return prev + (next-prev)*factor
}
