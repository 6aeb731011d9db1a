// Package mesh uploads parsed vertex buffers to the GPU.
package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/curveview/pkg/formats"
	"github.com/Faultbox/curveview/pkg/math"
)

// Attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribColor    = 1
	AttribTexCoord = 2
	AttribNormal   = 3
)

const floatSize = 4

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds returns the bounding box of the positions in an interleaved
// vertex buffer. An empty buffer yields a zero box.
func ComputeBounds(vertices []float32) Bounds {
	n := len(vertices) / formats.VertexStride
	if n == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: math.Vec3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: math.Vec3{X: -1e30, Y: -1e30, Z: -1e30},
	}
	for i := 0; i < n; i++ {
		p := vertices[i*formats.VertexStride+formats.PositionOffset:]
		b.Min.X = min(b.Min.X, p[0])
		b.Min.Y = min(b.Min.Y, p[1])
		b.Min.Z = min(b.Min.Z, p[2])
		b.Max.X = max(b.Max.X, p[0])
		b.Max.Y = max(b.Max.Y, p[1])
		b.Max.Z = max(b.Max.Z, p[2])
	}
	return b
}

// Mesh is a vertex array uploaded to the GPU. It owns its buffers.
type Mesh struct {
	VAO    uint32
	VBO    uint32
	Count  int32
	Bounds Bounds
}

// Upload creates a vertex array from parsed mesh data.
// The attribute layout is derived from the formats stride and offsets.
// Returns nil for an empty mesh.
func Upload(data *formats.MeshData) *Mesh {
	if data.Empty() {
		return nil
	}

	m := &Mesh{
		Count:  int32(data.VertexCount),
		Bounds: ComputeBounds(data.Vertices),
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*floatSize, unsafe.Pointer(&data.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(formats.VertexStride * floatSize)
	attrib(AttribPosition, 3, stride, formats.PositionOffset)
	attrib(AttribColor, 3, stride, formats.ColorOffset)
	attrib(AttribTexCoord, 2, stride, formats.TexCoordOffset)
	attrib(AttribNormal, 3, stride, formats.NormalOffset)

	gl.BindVertexArray(0)
	return m
}

func attrib(index uint32, size, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset*floatSize))
	gl.EnableVertexAttribArray(index)
}

// Draw issues the draw call. Faces are drawn as triangles.
func (m *Mesh) Draw() {
	if m == nil || m.VAO == 0 {
		return
	}
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.Count)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers. Safe to call more than once.
func (m *Mesh) Destroy() {
	if m == nil {
		return
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
