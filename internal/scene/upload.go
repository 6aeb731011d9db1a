package scene

import (
	"fmt"

	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/internal/engine/texture"
	"github.com/Faultbox/curveview/pkg/formats"
)

// Releaser frees the GPU resources held by an object.
type Releaser interface {
	Release(o *Object)
}

// Uploader creates GPU resources for parsed meshes and textures.
type Uploader interface {
	Releaser
	UploadMesh(data *formats.MeshData) (*mesh.Mesh, error)
	UploadTexture(path string) (uint32, error)
}

// GLUploader uploads through OpenGL. It must be used on the GL thread.
type GLUploader struct {
	Source formats.Source
}

// UploadMesh creates a vertex array for data.
func (u GLUploader) UploadMesh(data *formats.MeshData) (*mesh.Mesh, error) {
	m := mesh.Upload(data)
	if m == nil {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	return m, nil
}

// UploadTexture decodes an image and creates a 2D texture.
func (u GLUploader) UploadTexture(path string) (uint32, error) {
	img, err := texture.Load(u.Source, path)
	if err != nil {
		return 0, err
	}
	return texture.Upload2D(img), nil
}

// Release deletes the object's buffers and texture.
func (u GLUploader) Release(o *Object) {
	o.Mesh.Destroy()
	o.Mesh = nil
	if o.Texture != 0 {
		texture.Delete(o.Texture)
		o.Texture = 0
	}
}
