package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/curveview/internal/logger"
	"github.com/Faultbox/curveview/pkg/formats"
)

// Loader materializes scene configuration files into Scenes.
// It owns the material table that every loaded mesh merges into.
type Loader struct {
	Source    formats.Source
	Uploader  Uploader
	Materials formats.MaterialTable

	log *zap.Logger
}

// NewLoader creates a loader reading from src and uploading through up.
func NewLoader(src formats.Source, up Uploader) *Loader {
	return &Loader{
		Source:    src,
		Uploader:  up,
		Materials: make(formats.MaterialTable),
		log:       logger.Named("scene"),
	}
}

// Load reads and materializes a scene file. A missing file yields an empty
// scene with the default camera together with the read error.
func (l *Loader) Load(path string) (*Scene, error) {
	data, err := l.Source.Load(path)
	if err != nil {
		return &Scene{Camera: formats.DefaultCamera(), releaser: l.Uploader}, fmt.Errorf("loading scene %s: %w", path, err)
	}

	plan, err := formats.ParseSceneFile(data)
	if err != nil {
		return &Scene{Camera: formats.DefaultCamera(), releaser: l.Uploader}, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	logger.Warnings(l.log, path, plan.Warnings)

	return l.Build(path, plan), nil
}

// Build creates objects for every block of plan. Mesh paths are relative to
// scenePath. Objects whose mesh cannot be loaded or uploaded are dropped.
func (l *Loader) Build(scenePath string, plan *formats.ScenePlan) *Scene {
	s := &Scene{
		Camera:    plan.Camera,
		HasCamera: plan.HasCamera,
		Warnings:  append([]error(nil), plan.Warnings...),
		releaser:  l.Uploader,
	}

	for _, spec := range plan.Objects {
		obj, err := l.loadObject(formats.RelativeTo(scenePath, spec.Mesh), spec)
		if err != nil {
			l.log.Warn("object dropped",
				zap.String("mesh", spec.Mesh),
				zap.Int("line", spec.Line),
				zap.Error(err),
			)
			s.Warnings = append(s.Warnings, fmt.Errorf("line %d: %w", spec.Line, err))
			continue
		}
		s.Objects = append(s.Objects, obj)
	}

	l.log.Info("scene loaded",
		zap.String("file", scenePath),
		zap.Int("objects", len(s.Objects)),
		zap.Bool("camera", s.HasCamera),
	)
	return s
}

func (l *Loader) loadObject(meshPath string, spec formats.ObjectSpec) (*Object, error) {
	data, err := formats.LoadMesh(l.Source, meshPath)
	if err != nil {
		return nil, err
	}
	logger.Warnings(l.log, meshPath, data.Warnings)
	if data.Empty() {
		return nil, fmt.Errorf("mesh %s has no vertices", meshPath)
	}

	l.Materials.Merge(data.Materials)

	obj := NewObject(spec)
	obj.Material = l.Materials.Lookup(data.MaterialName)

	obj.Mesh, err = l.Uploader.UploadMesh(data)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", meshPath, err)
	}

	if obj.Material.TextureFile != "" {
		texPath := formats.RelativeTo(formats.RelativeTo(meshPath, data.MaterialLib), obj.Material.TextureFile)
		obj.Texture, err = l.Uploader.UploadTexture(texPath)
		if err != nil {
			l.log.Warn("texture not loaded", zap.String("texture", texPath), zap.Error(err))
			obj.Texture = 0
		}
	}

	l.log.Debug("object loaded",
		zap.String("mesh", meshPath),
		zap.Int("vertices", data.VertexCount),
		zap.String("material", data.MaterialName),
		zap.String("texture", obj.Material.TextureFile),
	)
	return obj, nil
}
