package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Scene configuration file")
	flagPoints     = flag.String("points", "", "Spline control-point file")
	flagSamples    = flag.Int("samples", -1, "Curve samples per segment")
	flagSkybox     = flag.Bool("skybox", false, "Draw the skybox")
	flagFollow     = flag.Bool("follow", false, "Move an object along the curve")
	flagWatch      = flag.Bool("watch", false, "Reload scene and control points on change")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
// Boolean feature flags only switch features on; the file decides otherwise.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.File = *flagScene
	}
	if *flagPoints != "" {
		cfg.Scene.ControlPoints = *flagPoints
	}
	if *flagSamples >= 0 {
		cfg.Scene.SamplesPerSegment = *flagSamples
	}
	if *flagSkybox {
		cfg.Scene.Skybox = true
	}
	if *flagFollow {
		cfg.Scene.FollowCurve = true
	}
	if *flagWatch {
		cfg.Scene.Watch = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
