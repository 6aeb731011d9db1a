// Package lighting provides the point light and material terms used for
// Phong shading.
package lighting

import (
	"github.com/Faultbox/curveview/internal/config"
	"github.com/Faultbox/curveview/pkg/formats"
	"github.com/Faultbox/curveview/pkg/math"
)

// DefaultShininess is the specular exponent used when a material has none.
const DefaultShininess = 10.0

// PointLight is a single white-ish point light.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3 // RGB, 0-1 range
	Shininess float32   // Fallback specular exponent
}

// NewPointLight creates a light from configuration.
// Color components are clamped to 0-1 and a non-positive shininess falls
// back to DefaultShininess.
func NewPointLight(cfg config.LightingConfig) PointLight {
	l := PointLight{
		Position:  math.Vec3FromArray(cfg.Position),
		Color:     math.Vec3FromArray(cfg.Color),
		Shininess: cfg.Shininess,
	}
	l.Color.X = math.Clamp(l.Color.X, 0, 1)
	l.Color.Y = math.Clamp(l.Color.Y, 0, 1)
	l.Color.Z = math.Clamp(l.Color.Z, 0, 1)
	if l.Shininess <= 0 {
		l.Shininess = DefaultShininess
	}
	return l
}

// Reflectance holds the scalar Phong terms uploaded per object.
type Reflectance struct {
	Ambient   float32 // ka
	Diffuse   float32 // kd
	Specular  float32 // ks
	Shininess float32 // q
}

// ReflectanceOf extracts shader terms from a material. Only the red channel
// of each coefficient is used. A material without Ns takes the light's
// shininess.
func (l PointLight) ReflectanceOf(m formats.Material) Reflectance {
	r := Reflectance{
		Ambient:   m.Ka[0],
		Diffuse:   m.Kd[0],
		Specular:  m.Ks[0],
		Shininess: m.Shininess,
	}
	if r.Shininess <= 0 {
		r.Shininess = l.Shininess
	}
	return r
}
