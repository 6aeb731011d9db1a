// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/curveview/pkg/formats"
)

// ErrUnsupportedFormat is returned for image files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image is decoded pixel data, tightly packed, rows top to bottom.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int // 3 (RGB) or 4 (RGBA)
}

// Decode decodes image data, choosing the decoder from the file extension of
// name. Supported: .png, .jpg/.jpeg, .bmp, .tga.
func Decode(name string, data []byte) (*Image, error) {
	img, err := decodeImage(name, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(img), nil
}

func decodeImage(name string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".tga":
		return tga.Decode(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Load reads and decodes an image from src.
func Load(src formats.Source, name string) (*Image, error) {
	data, err := src.Load(name)
	if err != nil {
		return nil, err
	}
	return Decode(name, data)
}

// FromImage packs img into RGB when every pixel is opaque, straight-alpha
// RGBA otherwise.
func FromImage(img image.Image) *Image {
	rgba := ImageToNRGBA(img)
	b := rgba.Bounds()
	out := &Image{Width: b.Dx(), Height: b.Dy(), Channels: 4}

	if !rgba.Opaque() {
		out.Pix = rgba.Pix
		return out
	}

	out.Channels = 3
	out.Pix = make([]byte, 0, out.Width*out.Height*3)
	for i := 0; i < len(rgba.Pix); i += 4 {
		out.Pix = append(out.Pix, rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2])
	}
	return out
}

// ImageToNRGBA converts any image.Image to a tightly packed *image.NRGBA
// anchored at the origin.
func ImageToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return n
}

// Fit scales img down so that neither side exceeds limit, keeping the aspect
// ratio. Images already within bounds are returned unchanged.
func Fit(img *Image, limit int) *Image {
	if limit <= 0 || (img.Width <= limit && img.Height <= limit) {
		return img
	}

	w, h := img.Width, img.Height
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img.toNRGBA(), image.Rect(0, 0, img.Width, img.Height), draw.Src, nil)

	out := FromImage(dst)
	if img.Channels == 4 {
		out.Channels = 4
		out.Pix = dst.Pix
	}
	return out
}

func (img *Image) toNRGBA() *image.NRGBA {
	rgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	if img.Channels == 4 {
		copy(rgba.Pix, img.Pix)
		return rgba
	}
	for i, j := 0, 0; i < len(img.Pix); i, j = i+3, j+4 {
		rgba.Pix[j] = img.Pix[i]
		rgba.Pix[j+1] = img.Pix[i+1]
		rgba.Pix[j+2] = img.Pix[i+2]
		rgba.Pix[j+3] = 255
	}
	return rgba
}
