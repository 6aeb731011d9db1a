// Package spline evaluates piecewise uniform Catmull-Rom curves.
package spline

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/curveview/pkg/formats"
)

// CatmullRomBasis is the uniform Catmull-Rom basis, stored so that
// CatmullRomBasis.Mul4x1(t³, t², t, 1) yields the weights of P0..P3.
// Row k holds the t³, t², t, 1 coefficients of control point k.
var CatmullRomBasis = mgl32.Mat4{
	-1, 3, -3, 1,
	2, -5, 4, -1,
	-1, 0, 1, 0,
	0, 2, 0, 0,
}.Mul(0.5)

// Curve is a dense point sequence sampled from control points.
type Curve struct {
	Control           []mgl32.Vec3
	Points            []mgl32.Vec3
	Basis             mgl32.Mat4
	SamplesPerSegment int
}

// Weights returns the basis weights of the four window points at t.
func Weights(t float32) mgl32.Vec4 {
	return CatmullRomBasis.Mul4x1(mgl32.Vec4{t * t * t, t * t, t, 1})
}

// Evaluate returns the point at parameter t of the segment spanned by p1 and
// p2, with p0 and p3 as tangent anchors.
func Evaluate(p0, p1, p2, p3 mgl32.Vec3, t float32) mgl32.Vec3 {
	return blend(p0, p1, p2, p3, Weights(t))
}

func blend(p0, p1, p2, p3 mgl32.Vec3, w mgl32.Vec4) mgl32.Vec3 {
	return p0.Mul(w[0]).
		Add(p1.Mul(w[1])).
		Add(p2.Mul(w[2])).
		Add(p3.Mul(w[3]))
}

// GenerateCatmullRomCurvePoints samples every 4-point window of ctrl at
// samples+1 uniform parameters t = j/(samples+1), j = 0..samples.
//
// The curve runs from ctrl[1] towards ctrl[n-2]; the first and last control
// points only shape the end tangents. Fewer than 4 control points give an
// empty result.
func GenerateCatmullRomCurvePoints(ctrl []mgl32.Vec3, samples int) []mgl32.Vec3 {
	if samples < 0 {
		samples = 0
	}
	segments := len(ctrl) - 3
	if segments <= 0 {
		return nil
	}

	// Weights depend only on t, so compute them once for all windows.
	weights := make([]mgl32.Vec4, samples+1)
	step := 1 / float32(samples+1)
	for j := range weights {
		weights[j] = Weights(float32(j) * step)
	}

	points := make([]mgl32.Vec3, 0, segments*(samples+1))
	for i := 0; i < segments; i++ {
		p0, p1, p2, p3 := ctrl[i], ctrl[i+1], ctrl[i+2], ctrl[i+3]
		for _, w := range weights {
			points = append(points, blend(p0, p1, p2, p3, w))
		}
	}
	return points
}

// New samples a curve through ctrl.
func New(ctrl []mgl32.Vec3, samples int) *Curve {
	if samples < 0 {
		samples = 0
	}
	return &Curve{
		Control:           ctrl,
		Points:            GenerateCatmullRomCurvePoints(ctrl, samples),
		Basis:             CatmullRomBasis,
		SamplesPerSegment: samples,
	}
}

// FromArrays converts parsed control points to vectors.
func FromArrays(points [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(points))
	for i, p := range points {
		out[i] = mgl32.Vec3(p)
	}
	return out
}

// Load reads a control-point file from src and samples a curve through it.
// Malformed lines are returned as warnings; an unreadable file is an error.
func Load(src formats.Source, path string, samples int) (*Curve, []error, error) {
	points, warnings, err := formats.LoadControlPoints(src, path)
	if err != nil {
		return New(nil, samples), nil, err
	}
	return New(FromArrays(points), samples), warnings, nil
}

// Len returns the number of sampled points.
func (c *Curve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Points)
}

// Empty reports whether the curve has no samples.
func (c *Curve) Empty() bool {
	return c.Len() == 0
}

// At returns sample i, wrapping around both ends.
func (c *Curve) At(i int) mgl32.Vec3 {
	n := c.Len()
	if n == 0 {
		return mgl32.Vec3{}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return c.Points[i]
}

// Tangent returns the unit direction from sample i to the next sample,
// wrapping at the end. Degenerate steps yield the zero vector.
func (c *Curve) Tangent(i int) mgl32.Vec3 {
	if c.Len() < 2 {
		return mgl32.Vec3{}
	}
	d := c.At(i + 1).Sub(c.At(i))
	if d.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return d.Normalize()
}
