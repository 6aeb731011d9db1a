// Package scene holds the placed objects of a viewer scene and builds them
// from scene configuration files.
package scene

import (
	"path"

	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/pkg/formats"
	"github.com/Faultbox/curveview/pkg/math"
)

// RotationAxis selects the axis an object spins about. A single field keeps
// the choices mutually exclusive.
type RotationAxis int

const (
	AxisNone RotationAxis = iota
	AxisX
	AxisY
	AxisZ
)

func (a RotationAxis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Vector returns the unit axis, or zero for AxisNone.
func (a RotationAxis) Vector() math.Vec3 {
	switch a {
	case AxisX:
		return math.Vec3{X: 1}
	case AxisY:
		return math.Vec3{Y: 1}
	case AxisZ:
		return math.Vec3{Z: 1}
	default:
		return math.Vec3{}
	}
}

// Placement limits.
const (
	NudgeStep = 0.1
	ScaleStep = 0.1
	MinScale  = 0.1
)

// Object is a placed, renderable mesh instance.
type Object struct {
	Name     string
	Mesh     *mesh.Mesh
	Material formats.Material
	Texture  uint32 // 0 when the material has no loadable texture
	Model    math.Mat4

	Position math.Vec3
	Scale    float32
	Yaw      float32 // Initial placement angle about Y, degrees
	Axis     RotationAxis
}

// NewObject creates an object placed as described by spec.
func NewObject(spec formats.ObjectSpec) *Object {
	o := &Object{
		Name:     path.Base(spec.Mesh),
		Position: math.Vec3FromArray(spec.Translation),
		Scale:    spec.Scale,
		Yaw:      spec.Rotation,
	}
	o.Model = o.PlacementModel()
	return o
}

// PlacementModel composes scale, then rotation about Y by Yaw, then translation.
func (o *Object) PlacementModel() math.Mat4 {
	return math.TRS(o.Position, math.Radians(o.Yaw), o.Scale)
}

// UpdateModel recomputes the model transform for the current frame. angle is
// the spin about the active axis in radians. The spin is applied after the
// placement yaw and before translation: M = T * Raxis * Ry * S.
func (o *Object) UpdateModel(angle float32) {
	if o.Axis == AxisNone {
		o.Model = o.PlacementModel()
		return
	}
	p := o.Position
	o.Model = math.Translate(p.X, p.Y, p.Z).
		Mul(math.RotateAxis(o.Axis.Vector(), angle)).
		Mul(math.RotateY(math.Radians(o.Yaw))).
		Mul(math.Scale(o.Scale, o.Scale, o.Scale))
}

// SetRotationAxis selects the spin axis, clearing any previous one.
func (o *Object) SetRotationAxis(axis RotationAxis) {
	o.Axis = axis
}

// Nudge moves the object.
func (o *Object) Nudge(dx, dy, dz float32) {
	o.Position = o.Position.Add(math.Vec3{X: dx, Y: dy, Z: dz})
}

// Grow changes the uniform scale, never going below MinScale.
func (o *Object) Grow(delta float32) {
	o.Scale = max(o.Scale+delta, MinScale)
}

// VertexCount returns the number of uploaded vertices.
func (o *Object) VertexCount() int {
	if o.Mesh == nil {
		return 0
	}
	return int(o.Mesh.Count)
}
