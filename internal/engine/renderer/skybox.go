package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/curveview/internal/engine/shader"
	"github.com/Faultbox/curveview/internal/engine/shaders"
	"github.com/Faultbox/curveview/internal/engine/texture"
	"github.com/Faultbox/curveview/pkg/math"
)

// skyboxVertices is a unit cube as 36 triangle corners.
var skyboxVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyboxVertexCount is the number of cube corners drawn.
const SkyboxVertexCount = 36

// SkyboxRenderer draws a cubemap behind the scene.
type SkyboxRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubemap uint32
}

// NewSkyboxRenderer uploads the cube and the six faces.
func NewSkyboxRenderer(faces [6]*texture.Image) (*SkyboxRenderer, error) {
	cubemap, err := texture.UploadCubemap(faces)
	if err != nil {
		return nil, err
	}

	p, err := shader.NewProgram(shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		texture.Delete(cubemap)
		return nil, err
	}

	sr := &SkyboxRenderer{program: p, cubemap: cubemap}

	gl.GenVertexArrays(1, &sr.vao)
	gl.BindVertexArray(sr.vao)
	gl.GenBuffers(1, &sr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, unsafe.Pointer(&skyboxVertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return sr, nil
}

// Draw renders the sky. The view's translation is dropped so the sky stays
// centered on the camera. Depth test passes at the far plane.
func (sr *SkyboxRenderer) Draw(view, projection math.Mat4) {
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	sr.program.Use()
	sr.program.SetMat4("view", view.WithoutTranslation())
	sr.program.SetMat4("projection", projection)
	sr.program.SetInt("uSkybox", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sr.cubemap)
	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, SkyboxVertexCount)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Close releases the cube, the cubemap and the program.
func (sr *SkyboxRenderer) Close() {
	if sr.vbo != 0 {
		gl.DeleteBuffers(1, &sr.vbo)
		sr.vbo = 0
	}
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
		sr.vao = 0
	}
	texture.Delete(sr.cubemap)
	sr.cubemap = 0
	sr.program.Delete()
}
