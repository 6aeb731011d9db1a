package texture

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CubemapFaces are the skybox face names in GL_TEXTURE_CUBE_MAP_POSITIVE_X order.
var CubemapFaces = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

func glFormat(channels int) int32 {
	if channels == 3 {
		return gl.RGB
	}
	return gl.RGBA
}

// MaxSize returns GL_MAX_TEXTURE_SIZE. Requires a current context.
func MaxSize() int {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return int(size)
}

// Upload2D creates a mipmapped, repeating 2D texture from img.
func Upload2D(img *Image) uint32 {
	img = Fit(img, MaxSize())
	format := glFormat(img.Channels)

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	// RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(img.Width), int32(img.Height), 0, uint32(format), gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// UploadCubemap creates a cube map from six faces ordered as CubemapFaces.
func UploadCubemap(faces [6]*Image) (uint32, error) {
	for i, face := range faces {
		if face == nil || len(face.Pix) == 0 {
			return 0, fmt.Errorf("cubemap face %s missing", CubemapFaces[i])
		}
		if face.Width != face.Height {
			return 0, fmt.Errorf("cubemap face %s is %dx%d, faces must be square", CubemapFaces[i], face.Width, face.Height)
		}
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, face := range faces {
		format := glFormat(face.Channels)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, format,
			int32(face.Width), int32(face.Height), 0, uint32(format), gl.UNSIGNED_BYTE, unsafe.Pointer(&face.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return texID, nil
}

// Delete releases a texture. Zero IDs are ignored.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
