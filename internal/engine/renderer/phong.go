package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/curveview/internal/engine/lighting"
	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/internal/engine/shader"
	"github.com/Faultbox/curveview/internal/engine/shaders"
	"github.com/Faultbox/curveview/pkg/math"
)

// DrawItem is one lit mesh submitted to the Phong pass.
type DrawItem struct {
	Mesh        *mesh.Mesh
	Texture     uint32 // 0 draws with the vertex color
	Model       math.Mat4
	Reflectance lighting.Reflectance
}

// PhongRenderer draws textured meshes with ambient, diffuse and specular terms.
type PhongRenderer struct {
	program *shader.Program
}

// NewPhongRenderer compiles the Phong program.
func NewPhongRenderer() (*PhongRenderer, error) {
	p, err := shader.NewProgram(shaders.PhongVertexShader, shaders.PhongFragmentShader)
	if err != nil {
		return nil, err
	}
	return &PhongRenderer{program: p}, nil
}

// Begin binds the program and sets per-frame uniforms.
func (pr *PhongRenderer) Begin(view, projection math.Mat4, camPos math.Vec3, light lighting.PointLight) {
	p := pr.program
	p.Use()
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)
	p.SetVec3("camPos", camPos)
	p.SetVec3("lightPos", light.Position)
	p.SetVec3("lightColor", light.Color)
	p.SetInt("uTexture", 0)
}

// Draw renders one item. Begin must have been called this frame.
func (pr *PhongRenderer) Draw(item DrawItem) {
	if item.Mesh == nil {
		return
	}
	p := pr.program
	p.SetMat4("model", item.Model)
	p.SetMat3("normalMatrix", item.Model.NormalMatrix())
	p.SetFloat("ka", item.Reflectance.Ambient)
	p.SetFloat("kd", item.Reflectance.Diffuse)
	p.SetFloat("ks", item.Reflectance.Specular)
	p.SetFloat("q", item.Reflectance.Shininess)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, item.Texture)
	if item.Texture != 0 {
		p.SetInt("uHasTexture", 1)
	} else {
		p.SetInt("uHasTexture", 0)
	}

	item.Mesh.Draw()
}

// Close releases the program.
func (pr *PhongRenderer) Close() {
	pr.program.Delete()
}
