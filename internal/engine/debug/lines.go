package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/pkg/math"
)

// LineVertex is one endpoint of a debug line segment.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// LineVertexStride is the number of floats per flattened LineVertex.
const LineVertexStride = 6

// Debug colors.
var (
	CurveColor   = [3]float32{1, 0.8, 0.1}
	ControlColor = [3]float32{1, 0.2, 0.2}
	SelectColor  = [3]float32{0.2, 1, 0.4}
)

// DefaultMarkerSize is the half-length of a control point marker arm.
const DefaultMarkerSize = 0.1

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

func vertex(p mgl32.Vec3, c [3]float32) LineVertex {
	return LineVertex{X: p[0], Y: p[1], Z: p[2], R: c[0], G: c[1], B: c[2]}
}

// CurveLines returns segment pairs joining consecutive curve samples.
// A closed curve also joins the last sample back to the first.
func CurveLines(points []mgl32.Vec3, color [3]float32, closed bool) []LineVertex {
	if len(points) < 2 {
		return nil
	}
	out := make([]LineVertex, 0, len(points)*2)
	for i := 0; i+1 < len(points); i++ {
		out = append(out, vertex(points[i], color), vertex(points[i+1], color))
	}
	if closed {
		out = append(out, vertex(points[len(points)-1], color), vertex(points[0], color))
	}
	return out
}

// CrossMarkers returns three axis-aligned segments centered on every point.
func CrossMarkers(points []mgl32.Vec3, size float32, color [3]float32) []LineVertex {
	out := make([]LineVertex, 0, len(points)*6)
	axes := [3]mgl32.Vec3{{size, 0, 0}, {0, size, 0}, {0, 0, size}}
	for _, p := range points {
		for _, a := range axes {
			out = append(out, vertex(p.Sub(a), color), vertex(p.Add(a), color))
		}
	}
	return out
}

// BBoxWireframe returns the 12 edges of a mesh bounding box after transforming
// its corners by model.
func BBoxWireframe(b mesh.Bounds, model math.Mat4, color [3]float32) []LineVertex {
	lo, hi := b.Min, b.Max
	corners := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	edges := [12][2]int{
		// Bottom face
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Top face
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Vertical edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	out := make([]LineVertex, 0, BBoxWireframeVertexCount)
	for _, e := range edges {
		for _, i := range e {
			p := model.TransformVec3(corners[i])
			out = append(out, LineVertex{X: p.X, Y: p.Y, Z: p.Z, R: color[0], G: color[1], B: color[2]})
		}
	}
	return out
}

// Flatten converts line vertices into an interleaved float buffer.
func Flatten(vertices []LineVertex) []float32 {
	out := make([]float32, 0, len(vertices)*LineVertexStride)
	for _, v := range vertices {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}
