package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/curveview/internal/engine/debug"
	"github.com/Faultbox/curveview/internal/engine/shader"
	"github.com/Faultbox/curveview/internal/engine/shaders"
	"github.com/Faultbox/curveview/pkg/math"
)

// LineRenderer draws colored line segments from a dynamic buffer.
type LineRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	count    int32
	capacity int
}

// NewLineRenderer compiles the line program and creates an empty buffer.
func NewLineRenderer() (*LineRenderer, error) {
	p, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, err
	}
	lr := &LineRenderer{program: p}

	stride := int32(debug.LineVertexStride * 4)
	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return lr, nil
}

// Set replaces the line segments. Vertices come in pairs.
func (lr *LineRenderer) Set(vertices []debug.LineVertex) {
	lr.count = int32(len(vertices))
	if len(vertices) == 0 {
		return
	}
	data := debug.Flatten(vertices)

	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if len(data) > lr.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
		lr.capacity = len(data)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw renders the current segments.
func (lr *LineRenderer) Draw(view, projection math.Mat4) {
	if lr.count == 0 {
		return
	}
	lr.program.Use()
	lr.program.SetMat4("view", view)
	lr.program.SetMat4("projection", projection)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.count)
	gl.BindVertexArray(0)
}

// Close releases the buffer and program.
func (lr *LineRenderer) Close() {
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	lr.program.Delete()
}
