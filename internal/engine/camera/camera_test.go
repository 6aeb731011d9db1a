package camera

import (
	gomath "math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/curveview/internal/config"
	"github.com/Faultbox/curveview/pkg/formats"
	"github.com/Faultbox/curveview/pkg/math"
)

const eps = 1e-4

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < eps
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNewFlyCamera(t *testing.T) {
	c := NewFlyCamera()

	if !nearVec(c.Front, math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("Front = %v, want (0,0,-1)", c.Front)
	}
	if !nearVec(c.Up, math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("Up = %v, want (0,1,0)", c.Up)
	}
	if c.FOV != 45 {
		t.Errorf("FOV = %v, want 45", c.FOV)
	}
}

func TestHandleMouse_PitchClamp(t *testing.T) {
	c := NewFlyCamera()

	c.HandleMouse(0, -10000)
	if c.Pitch != MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, MaxPitch)
	}

	c.HandleMouse(0, 10000)
	if c.Pitch != -MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -MaxPitch)
	}
}

func TestHandleMouse_Yaw(t *testing.T) {
	c := NewFlyCamera()
	c.Sensitivity = 1

	// Yaw 0 looks down +X.
	c.HandleMouse(90, 0)
	if !near(c.Yaw, 0) {
		t.Fatalf("Yaw = %v, want 0", c.Yaw)
	}
	if !nearVec(c.Front, math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Front = %v, want (1,0,0)", c.Front)
	}
}

func TestHandleZoom(t *testing.T) {
	tests := []struct {
		name  string
		start float32
		delta float32
		want  float32
	}{
		{"zoom in", 45, 10, 44},
		{"clamp low", 1.05, 10, 1},
		{"clamp high", 45, -10, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera()
			c.FOV = tt.start
			c.HandleZoom(tt.delta)
			if !near(c.FOV, tt.want) {
				t.Errorf("FOV = %v, want %v", c.FOV, tt.want)
			}
		})
	}
}

func TestHandleMovement(t *testing.T) {
	c := NewFlyCamera()
	c.Speed = 1

	c.HandleMovement(1, 0)
	if !nearVec(c.Position, math.Vec3{X: 0, Y: 0, Z: 4}) {
		t.Errorf("after forward: %v", c.Position)
	}

	c.HandleMovement(0, 1)
	if !nearVec(c.Position, math.Vec3{X: 1, Y: 0, Z: 4}) {
		t.Errorf("after strafe right: %v", c.Position)
	}

	c.HandleMovement(-1, -1)
	if !nearVec(c.Position, math.Vec3{X: 0, Y: 0, Z: 5}) {
		t.Errorf("after back/left: %v", c.Position)
	}
}

func TestSetPose(t *testing.T) {
	c := NewFlyCamera()
	c.SetPose(formats.CameraSpec{
		Position: [3]float32{-50.8586, 19.1345, 30.2106},
		Yaw:      -37.45,
		Pitch:    -0.85,
	})

	if c.Position != (math.Vec3{X: -50.8586, Y: 19.1345, Z: 30.2106}) {
		t.Errorf("Position = %v", c.Position)
	}
	// Front derived from the angles.
	want := math.Vec3{X: 0.79380, Y: -0.014835, Z: -0.60800}
	if !nearVec(c.Front, want) {
		t.Errorf("Front = %v, want %v", c.Front, want)
	}
	if !near(c.Front.Length(), 1) || !near(c.Up.Length(), 1) {
		t.Errorf("basis not normalized: front %v up %v", c.Front, c.Up)
	}
	if !near(c.Front.Dot(c.Up), 0) {
		t.Errorf("front and up not orthogonal")
	}

	pose := c.Pose()
	if pose.Yaw != -37.45 || pose.Pitch != -0.85 {
		t.Errorf("Pose angles = %v, %v", pose.Yaw, pose.Pitch)
	}
}

func TestConfigure(t *testing.T) {
	c := NewFlyCamera()
	c.Configure(config.CameraConfig{FOV: 90, Speed: 2, Sensitivity: 0.5, Near: 1, Far: 50})

	if c.FOV != MaxFOV {
		t.Errorf("FOV = %v, want clamp to %v", c.FOV, MaxFOV)
	}
	if c.Speed != 2 || c.Sensitivity != 0.5 || c.Near != 1 || c.Far != 50 {
		t.Errorf("unexpected settings: %+v", c)
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewFlyCamera()
	view := c.ViewMatrix()

	// The camera position maps to the origin in view space.
	p := view.TransformVec3(c.Position)
	if !nearVec(p, math.Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", p)
	}

	// A point in front of the camera lies on -Z.
	p = view.TransformVec3(math.Vec3{X: 0, Y: 0, Z: 0})
	if !nearVec(p, math.Vec3{X: 0, Y: 0, Z: -5}) {
		t.Errorf("origin in view space = %v, want (0,0,-5)", p)
	}
}

func TestProjectionMatrix_ZeroHeight(t *testing.T) {
	c := NewFlyCamera()
	a := c.ProjectionMatrix(800, 0)
	b := c.ProjectionMatrix(1, 1)
	if a != b {
		t.Errorf("zero height should use aspect 1")
	}
}

func TestLogPose(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := NewFlyCamera()
	c.LogPose(zap.New(core))

	entries := logs.FilterMessage("camera pose").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["yaw"] != float32(-90) {
		t.Errorf("yaw field = %v", fields["yaw"])
	}
}
