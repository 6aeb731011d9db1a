package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectSpec is one <OBJECT> block of a scene file.
type ObjectSpec struct {
	Mesh        string     // nomeObj
	Rotation    float32    // rot, degrees about Y
	Translation [3]float32 // trans
	Scale       float32    // escala
	Line        int        // Line of the opening tag
}

// CameraSpec is the <CAMERA> block of a scene file.
type CameraSpec struct {
	Position [3]float32
	Front    [3]float32
	Up       [3]float32
	Yaw      float32 // degrees
	Pitch    float32 // degrees
}

// DefaultCamera returns the camera pose used when a scene file has no <CAMERA> block.
func DefaultCamera() CameraSpec {
	return CameraSpec{
		Position: [3]float32{0, 0, 5},
		Front:    [3]float32{0, 0, -1},
		Up:       [3]float32{0, 1, 0},
		Yaw:      -90,
		Pitch:    0,
	}
}

// ScenePlan is a parsed scene configuration file.
type ScenePlan struct {
	Objects   []ObjectSpec
	Camera    CameraSpec
	HasCamera bool
	Warnings  []error
}

// Scene file block tags.
const (
	tagObjectOpen  = "<OBJECT>"
	tagObjectClose = "</OBJECT>"
	tagCameraOpen  = "<CAMERA>"
	tagCameraClose = "</CAMERA>"
)

type sceneBlock int

const (
	blockNone sceneBlock = iota
	blockObject
	blockCamera
)

// ParseSceneFile parses a tagged block scene configuration.
//
// Object blocks accept nomeObj (alias mesh), rot, trans and escala (alias
// scale) in any order. The camera block accepts pos, front, up, yaw and
// pitch. Unknown keys are ignored. An object block without a mesh file is
// dropped with an ErrMissingMesh warning.
func ParseSceneFile(data []byte) (*ScenePlan, error) {
	plan := &ScenePlan{Camera: DefaultCamera()}

	block := blockNone
	var obj ObjectSpec
	var hasMesh bool

	closeObject := func() {
		if !hasMesh {
			plan.Warnings = append(plan.Warnings, &LineError{Line: obj.Line, Record: tagObjectOpen, Err: ErrMissingMesh})
			return
		}
		plan.Objects = append(plan.Objects, obj)
	}

	for i, raw := range lines(data) {
		lineNo := i + 1
		fields := strings.Fields(raw)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key := fields[0]

		switch key {
		case tagObjectOpen, tagCameraOpen:
			if block == blockObject {
				plan.Warnings = append(plan.Warnings, malformed(lineNo, key, "previous <OBJECT> block not closed"))
				closeObject()
			}
			if key == tagObjectOpen {
				block = blockObject
				obj = ObjectSpec{Scale: 1, Line: lineNo}
				hasMesh = false
			} else {
				block = blockCamera
				plan.HasCamera = true
			}
			continue

		case tagObjectClose:
			if block != blockObject {
				plan.Warnings = append(plan.Warnings, malformed(lineNo, key, "no open <OBJECT> block"))
				continue
			}
			closeObject()
			block = blockNone
			continue

		case tagCameraClose:
			if block != blockCamera {
				plan.Warnings = append(plan.Warnings, malformed(lineNo, key, "no open <CAMERA> block"))
				continue
			}
			block = blockNone
			continue
		}

		var err error
		switch block {
		case blockObject:
			err = parseObjectField(&obj, &hasMesh, key, fields[1:])
		case blockCamera:
			err = parseCameraField(&plan.Camera, key, fields[1:])
		}
		if err != nil {
			plan.Warnings = append(plan.Warnings, malformed(lineNo, key, err.Error()))
		}
	}

	switch block {
	case blockObject:
		plan.Warnings = append(plan.Warnings, malformed(obj.Line, tagObjectOpen, "block not closed before end of file"))
		closeObject()
	case blockCamera:
		plan.Warnings = append(plan.Warnings, malformed(0, tagCameraOpen, "block not closed before end of file"))
	}

	return plan, nil
}

func parseObjectField(obj *ObjectSpec, hasMesh *bool, key string, args []string) error {
	switch key {
	case "nomeObj", "mesh":
		if len(args) < 1 {
			return fmt.Errorf("missing mesh file")
		}
		obj.Mesh = args[0]
		*hasMesh = true
	case "rot":
		v, err := parseScalar(args)
		if err != nil {
			return err
		}
		obj.Rotation = v
	case "trans":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		obj.Translation = v
	case "escala", "scale":
		v, err := parseScalar(args)
		if err != nil {
			return err
		}
		obj.Scale = v
	}
	return nil
}

func parseCameraField(cam *CameraSpec, key string, args []string) error {
	switch key {
	case "pos", "front", "up":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		switch key {
		case "pos":
			cam.Position = v
		case "front":
			cam.Front = v
		case "up":
			cam.Up = v
		}
	case "yaw", "pitch":
		v, err := parseScalar(args)
		if err != nil {
			return err
		}
		if key == "yaw" {
			cam.Yaw = v
		} else {
			cam.Pitch = v
		}
	}
	return nil
}

func parseScalar(args []string) (float32, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
