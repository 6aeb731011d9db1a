package texture

import (
	"errors"
	"fmt"

	"github.com/Faultbox/curveview/pkg/formats"
)

// faceExtensions are tried in order for each cubemap face.
var faceExtensions = []string{".jpg", ".png", ".bmp", ".tga"}

// LoadCubemapFaces loads the six faces named in CubemapFaces from dir.
// Each face may use any supported extension.
func LoadCubemapFaces(src formats.Source, dir string) ([6]*Image, error) {
	var faces [6]*Image
	prefix := dir
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}

	for i, face := range CubemapFaces {
		img, err := loadFace(src, prefix+face)
		if err != nil {
			return faces, fmt.Errorf("cubemap face %s: %w", face, err)
		}
		faces[i] = img
	}
	return faces, nil
}

func loadFace(src formats.Source, base string) (*Image, error) {
	for _, ext := range faceExtensions {
		img, err := Load(src, base+ext)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, formats.ErrFileNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", base, formats.ErrFileNotFound)
}
