// Package camera provides a first-person fly camera.
package camera

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/curveview/internal/config"
	"github.com/Faultbox/curveview/pkg/formats"
	"github.com/Faultbox/curveview/pkg/math"
)

// FOV limits in degrees.
const (
	MinFOV = 1.0
	MaxFOV = 45.0
)

// MaxPitch keeps the camera from flipping over.
const MaxPitch = 89.0

// zoomStep is the FOV change per wheel notch, in degrees.
const zoomStep = 0.1

// FlyCamera moves freely and looks around with yaw/pitch angles.
type FlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3

	// Angles in degrees
	Yaw   float32
	Pitch float32
	FOV   float32

	Near, Far float32

	Speed       float32 // Units per tick
	Sensitivity float32 // Degrees per pixel

	worldUp math.Vec3
}

// NewFlyCamera creates a camera at (0, 0, 5) looking down -Z.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:    math.Vec3{X: 0, Y: 0, Z: 5},
		Yaw:         -90,
		Pitch:       0,
		FOV:         MaxFOV,
		Near:        0.1,
		Far:         100,
		Speed:       0.05,
		Sensitivity: 0.05,
		worldUp:     math.Vec3{X: 0, Y: 1, Z: 0},
	}
	c.UpdateVectors()
	return c
}

// Configure applies camera settings.
func (c *FlyCamera) Configure(cfg config.CameraConfig) {
	c.FOV = math.Clamp(cfg.FOV, MinFOV, MaxFOV)
	c.Speed = cfg.Speed
	c.Sensitivity = cfg.Sensitivity
	c.Near = cfg.Near
	c.Far = cfg.Far
}

// SetPose places the camera from a scene file camera block.
// Front and up are recomputed from the angles.
func (c *FlyCamera) SetPose(spec formats.CameraSpec) {
	c.Position = math.Vec3FromArray(spec.Position)
	c.Yaw = spec.Yaw
	c.Pitch = math.Clamp(spec.Pitch, -MaxPitch, MaxPitch)
	c.UpdateVectors()
}

// Pose returns the current pose in scene file form.
func (c *FlyCamera) Pose() formats.CameraSpec {
	return formats.CameraSpec{
		Position: c.Position.Array(),
		Front:    c.Front.Array(),
		Up:       c.Up.Array(),
		Yaw:      c.Yaw,
		Pitch:    c.Pitch,
	}
}

// UpdateVectors recomputes front, right and up from yaw and pitch.
func (c *FlyCamera) UpdateVectors() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	c.Front = math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
	}.Normalize()
	c.Up = c.Right().Cross(c.Front).Normalize()
}

// Right returns the normalized right vector.
func (c *FlyCamera) Right() math.Vec3 {
	up := c.worldUp
	if up == (math.Vec3{}) {
		up = math.Vec3{X: 0, Y: 1, Z: 0}
	}
	return c.Front.Cross(up).Normalize()
}

// HandleMouse turns the camera by a mouse delta in pixels.
// Screen Y grows downward, so dy is inverted.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.UpdateVectors()
}

// HandleZoom narrows the field of view by wheel notches.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.FOV = math.Clamp(c.FOV-delta*zoomStep, MinFOV, MaxFOV)
}

// HandleMovement moves along front and right. Arguments are -1, 0 or 1.
func (c *FlyCamera) HandleMovement(forward, right float32) {
	if forward != 0 {
		c.Position = c.Position.Add(c.Front.Scale(forward * c.Speed))
	}
	if right != 0 {
		c.Position = c.Position.Add(c.Right().Scale(right * c.Speed))
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport.
func (c *FlyCamera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// LogPose writes the current pose so it can be pasted into a scene file.
func (c *FlyCamera) LogPose(log *zap.Logger) {
	pos, front, up := c.Position.Array(), c.Front.Array(), c.Up.Array()
	log.Info("camera pose",
		zap.Float32s("pos", pos[:]),
		zap.Float32s("front", front[:]),
		zap.Float32s("up", up[:]),
		zap.Float32("yaw", c.Yaw),
		zap.Float32("pitch", c.Pitch),
		zap.Float32("fov", c.FOV),
	)
}
