// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Scene       SceneConfig      `yaml:"scene"`
	Lighting    LightingConfig   `yaml:"lighting"`
	Camera      CameraConfig     `yaml:"camera"`
	Assets      AssetsConfig     `yaml:"assets"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig selects what is loaded and how it is animated.
type SceneConfig struct {
	File              string        `yaml:"file"`
	ControlPoints     string        `yaml:"control_points"`
	SamplesPerSegment int           `yaml:"samples_per_segment"`
	Skybox            bool          `yaml:"skybox"`
	SkyboxDir         string        `yaml:"skybox_dir"`
	FollowCurve       bool          `yaml:"follow_curve"`
	FollowObject      int           `yaml:"follow_object"`
	FollowRate        float32       `yaml:"follow_rate"` // Curve samples per second
	Watch             bool          `yaml:"watch"`
	WatchDebounce     time.Duration `yaml:"watch_debounce"`
}

// LightingConfig holds the point light used for Phong shading.
type LightingConfig struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Shininess float32    `yaml:"shininess"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"` // Degrees
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

// AssetsConfig holds asset search roots.
type AssetsConfig struct {
	Roots []string `yaml:"roots"` // Searched in order
}

// ScreenshotConfig holds screenshot settings.
// Width and height of 0 use the window's drawable size.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "curveview",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			File:              "scene.txt",
			ControlPoints:     "points.txt",
			SamplesPerSegment: 10,
			Skybox:            false,
			SkyboxDir:         "skybox",
			FollowCurve:       false,
			FollowObject:      0,
			FollowRate:        30,
			Watch:             false,
			WatchDebounce:     200 * time.Millisecond,
		},
		Lighting: LightingConfig{
			Position:  [3]float32{0.6, 1.2, -0.5},
			Color:     [3]float32{1, 1, 1},
			Shininess: 10,
		},
		Camera: CameraConfig{
			FOV:         45,
			Speed:       0.05,
			Sensitivity: 0.05,
			Near:        0.1,
			Far:         100,
		},
		Assets: AssetsConfig{
			Roots: []string{"assets", "."},
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Normalize repairs values that would break the viewer.
func (c *Config) Normalize() {
	if c.Scene.SamplesPerSegment < 0 {
		c.Scene.SamplesPerSegment = 0
	}
	if c.Scene.FollowRate <= 0 {
		c.Scene.FollowRate = 30
	}
	if c.Camera.FOV < 1 {
		c.Camera.FOV = 1
	}
	if c.Camera.FOV > 45 {
		c.Camera.FOV = 45
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 800
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 600
	}
	if c.Screenshots.Width < 0 {
		c.Screenshots.Width = 0
	}
	if c.Screenshots.Height < 0 {
		c.Screenshots.Height = 0
	}
}

// ScreenshotSize returns the screenshot resolution for a window of the
// given drawable size.
func (c ScreenshotConfig) ScreenshotSize(windowW, windowH int) (int, int) {
	if c.Width > 0 && c.Height > 0 {
		return c.Width, c.Height
	}
	return windowW, windowH
}
