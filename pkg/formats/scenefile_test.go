package formats

import (
	"errors"
	"testing"
)

func TestParseSceneFile(t *testing.T) {
	src := `<OBJECT>
nomeObj models/cube.obj
rot 45
trans 1 2 3
escala 0.5
</OBJECT>

<OBJECT>
trans -1 0 0
mesh models/ball.obj
colour red
</OBJECT>
`
	plan, err := ParseSceneFile([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", plan.Warnings)
	}
	if len(plan.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(plan.Objects))
	}

	cube := plan.Objects[0]
	if cube.Mesh != "models/cube.obj" {
		t.Errorf("mesh = %q", cube.Mesh)
	}
	if cube.Rotation != 45 {
		t.Errorf("rot = %v, want 45", cube.Rotation)
	}
	if cube.Translation != [3]float32{1, 2, 3} {
		t.Errorf("trans = %v", cube.Translation)
	}
	if cube.Scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", cube.Scale)
	}
	if cube.Line != 1 {
		t.Errorf("line = %d, want 1", cube.Line)
	}

	ball := plan.Objects[1]
	if ball.Mesh != "models/ball.obj" {
		t.Errorf("mesh = %q", ball.Mesh)
	}
	if ball.Scale != 1 {
		t.Errorf("default scale = %v, want 1", ball.Scale)
	}
	if ball.Rotation != 0 {
		t.Errorf("default rot = %v, want 0", ball.Rotation)
	}

	if plan.HasCamera {
		t.Error("HasCamera should be false without a <CAMERA> block")
	}
	if plan.Camera != DefaultCamera() {
		t.Errorf("camera = %+v, want default", plan.Camera)
	}
}

func TestParseSceneFile_MissingMesh(t *testing.T) {
	plan, err := ParseSceneFile([]byte("<OBJECT>\nrot 10\n</OBJECT>\n"))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Objects) != 0 {
		t.Errorf("expected 0 objects, got %d", len(plan.Objects))
	}
	if len(plan.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(plan.Warnings))
	}
	if !errors.Is(plan.Warnings[0], ErrMissingMesh) {
		t.Errorf("expected ErrMissingMesh, got %v", plan.Warnings[0])
	}
}

func TestParseSceneFile_Camera(t *testing.T) {
	src := `<CAMERA>
pos -50.8586 19.1345 30.2106
yaw -37.45
pitch -0.85
front 1 0 0
</CAMERA>
`
	plan, err := ParseSceneFile([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if !plan.HasCamera {
		t.Fatal("expected HasCamera")
	}
	cam := plan.Camera
	if cam.Position != [3]float32{-50.8586, 19.1345, 30.2106} {
		t.Errorf("pos = %v", cam.Position)
	}
	if cam.Yaw != -37.45 || cam.Pitch != -0.85 {
		t.Errorf("yaw/pitch = %v/%v", cam.Yaw, cam.Pitch)
	}
	if cam.Front != [3]float32{1, 0, 0} {
		t.Errorf("front = %v", cam.Front)
	}
	if cam.Up != [3]float32{0, 1, 0} {
		t.Errorf("up should keep default, got %v", cam.Up)
	}
}

func TestParseSceneFile_MalformedValueKeepsPrevious(t *testing.T) {
	src := "<OBJECT>\nmesh a.obj\ntrans 1 2\nescala big\n</OBJECT>\n<CAMERA>\npos 1 x 3\n</CAMERA>\n"
	plan, err := ParseSceneFile([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(plan.Warnings), plan.Warnings)
	}
	obj := plan.Objects[0]
	if obj.Translation != [3]float32{} || obj.Scale != 1 {
		t.Errorf("malformed values should leave defaults, got %+v", obj)
	}
	if plan.Camera.Position != DefaultCamera().Position {
		t.Errorf("malformed pos should leave default, got %v", plan.Camera.Position)
	}
}

func TestParseSceneFile_UnclosedBlocks(t *testing.T) {
	src := "<OBJECT>\nmesh a.obj\n<OBJECT>\nmesh b.obj\n"
	plan, err := ParseSceneFile([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Objects) != 2 {
		t.Fatalf("expected both objects to be kept, got %d", len(plan.Objects))
	}
	if plan.Objects[0].Mesh != "a.obj" || plan.Objects[1].Mesh != "b.obj" {
		t.Errorf("objects = %+v", plan.Objects)
	}
	if len(plan.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(plan.Warnings), plan.Warnings)
	}
}

func TestParseSceneFile_StrayClose(t *testing.T) {
	plan, err := ParseSceneFile([]byte("</OBJECT>\n</CAMERA>\nnomeObj x.obj\n"))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Objects) != 0 {
		t.Errorf("keys outside a block must be ignored, got %d objects", len(plan.Objects))
	}
	if len(plan.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d", len(plan.Warnings))
	}
}

func TestParseSceneFile_Empty(t *testing.T) {
	plan, err := ParseSceneFile(nil)
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	if len(plan.Objects) != 0 || len(plan.Warnings) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}
