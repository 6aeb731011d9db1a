package scene

import (
	gomath "math"

	"github.com/Faultbox/curveview/pkg/math"
	"github.com/Faultbox/curveview/pkg/spline"
)

// Follower walks an object along a curve, one sample per step, wrapping at
// the end.
type Follower struct {
	Curve *spline.Curve
	Rate  float32 // Samples per second

	index   int
	pending float32
}

// NewFollower creates a follower at the first curve sample.
func NewFollower(curve *spline.Curve, rate float32) *Follower {
	return &Follower{Curve: curve, Rate: rate}
}

// Index returns the current sample index.
func (f *Follower) Index() int {
	return f.index
}

// SetCurve swaps the curve, keeping the position when it still fits.
func (f *Follower) SetCurve(curve *spline.Curve) {
	f.Curve = curve
	if n := curve.Len(); n > 0 {
		f.index %= n
	} else {
		f.index = 0
	}
}

// Advance moves forward by dt seconds worth of samples and returns the
// number of samples stepped.
func (f *Follower) Advance(dt float32) int {
	n := f.Curve.Len()
	if n == 0 || f.Rate <= 0 || dt <= 0 {
		return 0
	}
	f.pending += dt * f.Rate
	steps := int(f.pending)
	f.pending -= float32(steps)
	f.index = (f.index + steps) % n
	return steps
}

// Step moves forward exactly one sample.
func (f *Follower) Step() {
	if n := f.Curve.Len(); n > 0 {
		f.index = (f.index + 1) % n
	}
}

// Apply places o on the current sample, facing the direction of travel.
// The object's +Z axis is turned toward the tangent. The model transform is
// recomputed with the same order as Object.UpdateModel.
func (f *Follower) Apply(o *Object, angle float32) {
	if f.Curve.Empty() {
		o.UpdateModel(angle)
		return
	}
	p := f.Curve.At(f.index)
	o.Position = math.Vec3{X: p[0], Y: p[1], Z: p[2]}

	t := f.Curve.Tangent(f.index)
	if t[0] != 0 || t[2] != 0 {
		o.Yaw = math.Degrees(float32(gomath.Atan2(float64(t[0]), float64(t[2]))))
	}
	o.UpdateModel(angle)
}
