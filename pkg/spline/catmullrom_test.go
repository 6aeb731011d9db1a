package spline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/curveview/pkg/formats"
)

const epsilon = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, epsilon)
}

func TestWeights_Endpoints(t *testing.T) {
	w0 := Weights(0)
	if !w0.ApproxEqualThreshold(mgl32.Vec4{0, 1, 0, 0}, epsilon) {
		t.Errorf("Weights(0) = %v, want [0 1 0 0]", w0)
	}
	w1 := Weights(1)
	if !w1.ApproxEqualThreshold(mgl32.Vec4{0, 0, 1, 0}, epsilon) {
		t.Errorf("Weights(1) = %v, want [0 0 1 0]", w1)
	}
}

func TestWeights_PartitionOfUnity(t *testing.T) {
	for _, tt := range []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		w := Weights(tt)
		sum := w[0] + w[1] + w[2] + w[3]
		if math.Abs(float64(sum-1)) > epsilon {
			t.Errorf("Weights(%v) sum = %v, want 1", tt, sum)
		}
	}
}

func TestGenerateCatmullRomCurvePoints_Count(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		samples int
		want    int
	}{
		{"three points", 3, 10, 0},
		{"no points", 0, 10, 0},
		{"four points", 4, 10, 11},
		{"five points", 5, 10, 22},
		{"ten points", 10, 4, 35},
		{"zero samples", 6, 0, 3},
		{"negative samples", 6, -2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := make([]mgl32.Vec3, tt.n)
			for i := range ctrl {
				ctrl[i] = mgl32.Vec3{float32(i), float32(i * i), 0}
			}
			got := GenerateCatmullRomCurvePoints(ctrl, tt.samples)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGenerateCatmullRomCurvePoints_StartsAtSecondPoint(t *testing.T) {
	ctrl := []mgl32.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{4, 0, -1},
		{5, 5, 5},
		{7, 1, 0},
	}
	pts := GenerateCatmullRomCurvePoints(ctrl, 10)

	if !vecNear(pts[0], ctrl[1]) {
		t.Errorf("first sample = %v, want P1 %v", pts[0], ctrl[1])
	}
	// Second window starts at its own P1, which is ctrl[2].
	if !vecNear(pts[11], ctrl[2]) {
		t.Errorf("sample 11 = %v, want %v", pts[11], ctrl[2])
	}
	for _, p := range pts {
		if vecNear(p, ctrl[0]) {
			t.Errorf("curve must not visit the first control point")
		}
	}
}

func TestGenerateCatmullRomCurvePoints_Colinear(t *testing.T) {
	origin := mgl32.Vec3{1, 2, 3}
	dir := mgl32.Vec3{1, -2, 0.5}.Normalize()
	ctrl := []mgl32.Vec3{
		origin,
		origin.Add(dir.Mul(1)),
		origin.Add(dir.Mul(3)),
		origin.Add(dir.Mul(4)),
	}

	for _, p := range GenerateCatmullRomCurvePoints(ctrl, 10) {
		// Distance from the line through origin along dir.
		rel := p.Sub(origin)
		off := rel.Sub(dir.Mul(rel.Dot(dir)))
		if off.Len() > epsilon {
			t.Errorf("point %v is %v away from the line", p, off.Len())
		}
	}
}

func TestGenerateCatmullRomCurvePoints_Deterministic(t *testing.T) {
	ctrl := []mgl32.Vec3{{0, 0, 0}, {1, 1, 0}, {2, 0, 1}, {3, 1, 1}, {4, 0, 0}}
	a := GenerateCatmullRomCurvePoints(ctrl, 7)
	b := GenerateCatmullRomCurvePoints(ctrl, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEvaluate_MatchesGenerated(t *testing.T) {
	ctrl := []mgl32.Vec3{{0, 0, 0}, {1, 1, 0}, {2, 0, 1}, {3, 1, 1}}
	pts := GenerateCatmullRomCurvePoints(ctrl, 3)
	for j, p := range pts {
		want := Evaluate(ctrl[0], ctrl[1], ctrl[2], ctrl[3], float32(j)/4)
		if !vecNear(p, want) {
			t.Errorf("sample %d = %v, Evaluate = %v", j, p, want)
		}
	}
}

func TestCurve_AtWraps(t *testing.T) {
	c := &Curve{Points: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}

	tests := []struct {
		i    int
		want float32
	}{
		{0, 0},
		{2, 2},
		{3, 0},
		{4, 1},
		{-1, 2},
	}
	for _, tt := range tests {
		if got := c.At(tt.i); got.X() != tt.want {
			t.Errorf("At(%d).X = %v, want %v", tt.i, got.X(), tt.want)
		}
	}

	var empty *Curve
	if empty.Len() != 0 || !empty.Empty() {
		t.Error("nil curve should be empty")
	}
	if empty.At(5) != (mgl32.Vec3{}) {
		t.Error("At on empty curve should be zero")
	}
}

func TestCurve_Tangent(t *testing.T) {
	c := &Curve{Points: []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 0, 0}, {2, 3, 0}}}

	if got := c.Tangent(0); !vecNear(got, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Tangent(0) = %v, want +X", got)
	}
	if got := c.Tangent(1); got != (mgl32.Vec3{}) {
		t.Errorf("degenerate tangent = %v, want zero", got)
	}
	if got := c.Tangent(2); !vecNear(got, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Tangent(2) = %v, want +Y", got)
	}
	// Wraps from the last sample back to the first.
	if got := c.Tangent(3); !vecNear(got, mgl32.Vec3{-2, -3, 0}.Normalize()) {
		t.Errorf("Tangent(3) = %v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := "# path\n0 0 0\n1 0 0\n2 1 0\nbad line\n3 1 1\n4 0 0\n"
	if err := os.WriteFile(filepath.Join(dir, "points.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, warnings, err := Load(formats.DirSource(dir), "points.txt", 10)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(warnings))
	}
	if len(c.Control) != 5 {
		t.Errorf("expected 5 control points, got %d", len(c.Control))
	}
	if c.Len() != 22 {
		t.Errorf("expected 22 samples, got %d", c.Len())
	}
	if c.Basis != CatmullRomBasis {
		t.Error("curve should carry the basis matrix")
	}
}

func TestLoad_Missing(t *testing.T) {
	c, _, err := Load(formats.DirSource(t.TempDir()), "none.txt", 10)
	if !errors.Is(err, formats.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	if c == nil || !c.Empty() {
		t.Error("missing file should give an empty curve")
	}
}
