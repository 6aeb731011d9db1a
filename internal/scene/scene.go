package scene

import (
	"github.com/Faultbox/curveview/pkg/formats"
)

// Scene is a loaded set of objects plus the initial camera pose.
type Scene struct {
	Objects   []*Object
	Camera    formats.CameraSpec
	HasCamera bool
	Warnings  []error

	releaser  Releaser
	destroyed bool
}

// Object returns the i-th object.
func (s *Scene) Object(i int) (*Object, bool) {
	if s == nil || i < 0 || i >= len(s.Objects) {
		return nil, false
	}
	return s.Objects[i], true
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Objects)
}

// UpdateModels recomputes every object's transform for a frame.
func (s *Scene) UpdateModels(angle float32) {
	for _, o := range s.Objects {
		o.UpdateModel(angle)
	}
}

// Destroy releases the GPU resources of every object. Calling it again is a no-op.
func (s *Scene) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true
	if s.releaser == nil {
		return
	}
	for _, o := range s.Objects {
		s.releaser.Release(o)
	}
}
