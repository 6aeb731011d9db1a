// Package viewer implements the interactive frame loop: scene objects with
// Phong shading, an optional skybox and an optional object following the
// control-point curve.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/curveview/internal/assets"
	"github.com/Faultbox/curveview/internal/config"
	"github.com/Faultbox/curveview/internal/engine/camera"
	"github.com/Faultbox/curveview/internal/engine/debug"
	"github.com/Faultbox/curveview/internal/engine/framebuffer"
	"github.com/Faultbox/curveview/internal/engine/input"
	"github.com/Faultbox/curveview/internal/engine/lighting"
	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/internal/engine/picking"
	"github.com/Faultbox/curveview/internal/engine/renderer"
	"github.com/Faultbox/curveview/internal/engine/texture"
	"github.com/Faultbox/curveview/internal/engine/window"
	"github.com/Faultbox/curveview/internal/logger"
	"github.com/Faultbox/curveview/internal/scene"
	"github.com/Faultbox/curveview/internal/watch"
	"github.com/Faultbox/curveview/pkg/spline"
)

// Watch keys.
const (
	keyScene  = "scene"
	keyPoints = "points"
)

// Options selects the optional rendering features.
type Options struct {
	Skybox      bool
	FollowCurve bool
}

// OptionsFromConfig returns the options enabled in cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Skybox:      cfg.Scene.Skybox,
		FollowCurve: cfg.Scene.FollowCurve,
	}
}

// Viewer owns the window, renderer and scene.
type Viewer struct {
	cfg     *config.Config
	opts    Options
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	watcher  *watch.Watcher
	shots    *debug.ScreenshotCapture

	loader   *scene.Loader
	scene    *scene.Scene
	camera   *camera.FlyCamera
	light    lighting.PointLight
	controls *Controls

	curve      *spline.Curve
	follower   *scene.Follower
	curveLines []debug.LineVertex

	pendingShot bool
}

// New creates the window and GL context and loads the scene.
func New(cfg *config.Config, opts Options) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		opts:  opts,
		log:   logger.Named("viewer"),
		input: input.New(),
		shots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, "curveview"),
		light: lighting.NewPointLight(cfg.Lighting),
	}

	v.assets = assets.NewManager()
	for _, root := range cfg.Assets.Roots {
		if err := v.assets.AddRoot(root); err != nil {
			v.log.Warn("asset root skipped", zap.String("root", root), zap.Error(err))
		}
	}

	var err error
	v.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.camera = camera.NewFlyCamera()
	v.camera.Configure(cfg.Camera)

	v.loader = scene.NewLoader(v.assets, scene.GLUploader{Source: v.assets})
	v.loadScene()
	v.controls = NewControls(v.scene, v.camera, v.log)

	v.loadCurve()
	if opts.FollowCurve {
		v.follower = scene.NewFollower(v.curve, cfg.Scene.FollowRate)
	}

	if opts.Skybox {
		v.loadSkybox()
	}

	if cfg.Scene.Watch {
		v.startWatcher()
	}

	v.window.CaptureMouse(true)
	v.log.Info("viewer initialized",
		zap.Bool("skybox", v.renderer.Sky != nil),
		zap.Bool("follow", v.follower != nil),
		zap.Int("objects", v.scene.Len()),
		zap.Int("curve_points", v.curve.Len()),
	)
	return v, nil
}

func (v *Viewer) loadScene() {
	s, err := v.loader.Load(v.cfg.Scene.File)
	if err != nil {
		v.log.Warn("scene not loaded", zap.String("file", v.cfg.Scene.File), zap.Error(err))
	}
	v.scene = s
	if s.HasCamera {
		v.camera.SetPose(s.Camera)
	}
}

func (v *Viewer) loadCurve() {
	path := v.cfg.Scene.ControlPoints
	curve, warnings, err := spline.Load(v.assets, path, v.cfg.Scene.SamplesPerSegment)
	if err != nil {
		v.log.Warn("control points not loaded", zap.String("file", path), zap.Error(err))
	}
	logger.Warnings(v.log, path, warnings)
	if len(curve.Control) > 0 && curve.Empty() {
		v.log.Warn("curve needs at least 4 control points", zap.Int("points", len(curve.Control)))
	}

	v.curve = curve
	v.curveLines = append(
		debug.CurveLines(curve.Points, debug.CurveColor, true),
		debug.CrossMarkers(curve.Control, debug.DefaultMarkerSize, debug.ControlColor)...,
	)
	if v.follower != nil {
		v.follower.SetCurve(curve)
	}
	v.log.Info("curve generated",
		zap.String("file", path),
		zap.Int("control_points", len(curve.Control)),
		zap.Int("samples", curve.Len()),
	)
}

func (v *Viewer) loadSkybox() {
	faces, err := texture.LoadCubemapFaces(v.assets, v.cfg.Scene.SkyboxDir)
	if err == nil {
		v.renderer.Sky, err = renderer.NewSkyboxRenderer(faces)
	}
	if err != nil {
		v.log.Warn("skybox disabled", zap.String("dir", v.cfg.Scene.SkyboxDir), zap.Error(err))
	}
}

func (v *Viewer) startWatcher() {
	w, err := watch.New(v.cfg.Scene.WatchDebounce, logger.Named("watch"))
	if err != nil {
		v.log.Warn("file watching disabled", zap.Error(err))
		return
	}

	for key, path := range map[string]string{keyScene: v.cfg.Scene.File, keyPoints: v.cfg.Scene.ControlPoints} {
		full, err := v.assets.Resolve(path)
		if err == nil {
			err = w.Watch(key, full)
		}
		if err != nil {
			v.log.Warn("not watching file", zap.String("file", path), zap.Error(err))
		}
	}

	w.Start()
	v.watcher = w
}

// Run starts the frame loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.drainChanges()

		v.update(dt, float32(now.Sub(start).Seconds()))

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.pendingShot {
			v.pendingShot = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
		case input.EventMouseButton:
			if event.Button == sdl.BUTTON_LEFT {
				v.pick()
			}
		case input.EventKeyDown:
			binding, ok := DefaultBindings[event.Key]
			if !ok {
				continue
			}
			switch v.controls.Handle(binding) {
			case ActionQuit:
				v.running = false
			case ActionScreenshot:
				v.pendingShot = true
			case ActionReloadPoints:
				v.assets.Invalidate(v.cfg.Scene.ControlPoints)
				v.loadCurve()
			}
		}
	}

	dx, dy := v.input.MouseDelta()
	if dx != 0 || dy != 0 {
		v.camera.HandleMouse(dx, dy)
	}
	if w := v.input.WheelDelta(); w != 0 {
		v.camera.HandleZoom(w)
	}
	v.camera.HandleMovement(Movement(v.input.IsKeyHeld))
}

// pick selects the nearest object under the screen centre.
func (v *Viewer) pick() {
	width, height := v.renderer.Size()
	ray := picking.CenterRay(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(width, height))

	boxes := make([]mesh.Bounds, 0, v.scene.Len())
	slots := make([]int, 0, v.scene.Len())
	for i, obj := range v.scene.Objects {
		if obj.Mesh == nil {
			continue
		}
		boxes = append(boxes, picking.WorldBounds(obj.Mesh.Bounds, obj.Model))
		slots = append(slots, i)
	}

	if hit, ok := picking.Nearest(ray, boxes); ok {
		v.controls.Select(slots[hit])
	}
}

// drainChanges applies file changes reported by the watcher.
func (v *Viewer) drainChanges() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case key := <-v.watcher.Changes():
			v.reload(key)
		default:
			return
		}
	}
}

func (v *Viewer) reload(key string) {
	v.log.Info("file changed", zap.String("key", key))
	switch key {
	case keyPoints:
		v.assets.Invalidate(v.cfg.Scene.ControlPoints)
		v.loadCurve()
	case keyScene:
		v.assets.InvalidateAll()
		v.scene.Destroy()
		v.loadScene()
		v.controls.Scene = v.scene
		if v.controls.Selected >= v.scene.Len() {
			v.controls.Selected = 0
		}
	}
}

func (v *Viewer) update(dt, elapsed float32) {
	v.scene.UpdateModels(elapsed)

	if v.follower != nil {
		if obj, ok := v.scene.Object(v.cfg.Scene.FollowObject); ok {
			v.follower.Advance(dt)
			v.follower.Apply(obj, elapsed)
		}
	}
}

func (v *Viewer) render() error {
	width, height := v.renderer.Size()
	v.draw(width, height)
	return nil
}

// draw renders one frame into the bound target with the given aspect.
func (v *Viewer) draw(width, height int) {
	v.renderer.Begin()

	view := v.camera.ViewMatrix()
	projection := v.camera.ProjectionMatrix(width, height)

	v.renderer.Phong.Begin(view, projection, v.camera.Position, v.light)
	for _, obj := range v.scene.Objects {
		v.renderer.Phong.Draw(renderer.DrawItem{
			Mesh:        obj.Mesh,
			Texture:     obj.Texture,
			Model:       obj.Model,
			Reflectance: v.light.ReflectanceOf(obj.Material),
		})
	}

	lines := v.curveLines
	if obj, ok := v.scene.Object(v.controls.Selected); ok && obj.Mesh != nil {
		lines = append(lines[:len(lines):len(lines)], debug.BBoxWireframe(obj.Mesh.Bounds, obj.Model, debug.SelectColor)...)
	}
	v.renderer.Lines.Set(lines)
	v.renderer.Lines.Draw(view, projection)

	// Drawn last so that depth testing hides covered sky.
	if v.renderer.Sky != nil {
		v.renderer.Sky.Draw(view, projection)
	}

	v.renderer.End()
}

// screenshot renders the current frame offscreen and saves it as PNG.
func (v *Viewer) screenshot() {
	width, height := v.cfg.Screenshots.ScreenshotSize(v.renderer.Size())
	if width <= 0 || height <= 0 {
		return
	}

	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	restore := fb.Bind()
	v.draw(width, height)
	pixels := fb.ReadPixels()
	restore()

	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", path), zap.Int("width", width), zap.Int("height", height))
}

// Close releases every resource in reverse creation order.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("closing watcher", zap.Error(err))
		}
	}
	v.scene.Destroy()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
	v.assets.Close()
}
