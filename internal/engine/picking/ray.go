// Package picking provides ray casting against object bounding boxes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords (-1 to 1), screen Y grows downward
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// CenterRay returns the ray through the middle of the viewport, which is
// where the camera looks while the mouse is captured.
func CenterRay(view, projection math.Mat4) Ray {
	inv := projection.Mul(view).Inverse()
	return ScreenToRay(0.5, 0.5, 1, 1, inv)
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBounds tests ray intersection with an axis-aligned box using the
// slab method. Returns the distance to the hit. If the ray starts inside the
// box, the exit distance is returned.
func (r Ray) IntersectBounds(box mesh.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// WorldBounds returns the axis-aligned box enclosing local after it is
// transformed by model. Rotation grows the box to fit the turned corners.
func WorldBounds(local mesh.Bounds, model math.Mat4) mesh.Bounds {
	lo, hi := local.Min, local.Max
	var out mesh.Bounds
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: lo.X, Y: lo.Y, Z: lo.Z}
		if i&1 != 0 {
			corner.X = hi.X
		}
		if i&2 != 0 {
			corner.Y = hi.Y
		}
		if i&4 != 0 {
			corner.Z = hi.Z
		}
		p := model.TransformVec3(corner)
		if i == 0 {
			out = mesh.Bounds{Min: p, Max: p}
			continue
		}
		out.Min = math.Vec3{X: min(out.Min.X, p.X), Y: min(out.Min.Y, p.Y), Z: min(out.Min.Z, p.Z)}
		out.Max = math.Vec3{X: max(out.Max.X, p.X), Y: max(out.Max.Y, p.Y), Z: max(out.Max.Z, p.Z)}
	}
	return out
}

// Nearest returns the index of the closest box hit by the ray.
func Nearest(r Ray, boxes []mesh.Bounds) (int, bool) {
	best := -1
	bestT := float32(gomath.MaxFloat32)
	for i, box := range boxes {
		if t, ok := r.IntersectBounds(box); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}
