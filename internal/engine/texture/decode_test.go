package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/curveview/pkg/formats"
)

func checker(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, A: alpha}
			if (x+y)%2 == 1 {
				c = color.NRGBA{B: 255, A: alpha}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecode_PNGOpaqueIsRGB(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(4, 2, 255)); err != nil {
		t.Fatal(err)
	}

	img, err := Decode("tex.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 4 || img.Height != 2 {
		t.Errorf("size = %dx%d, want 4x2", img.Width, img.Height)
	}
	if img.Channels != 3 {
		t.Errorf("channels = %d, want 3", img.Channels)
	}
	if len(img.Pix) != 4*2*3 {
		t.Errorf("pix len = %d, want 24", len(img.Pix))
	}
	// First pixel red, second blue
	if img.Pix[0] != 255 || img.Pix[2] != 0 || img.Pix[3] != 0 || img.Pix[5] != 255 {
		t.Errorf("unexpected pixel data %v", img.Pix[:6])
	}
}

func TestDecode_PNGTranslucentIsRGBA(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(2, 2, 128)); err != nil {
		t.Fatal(err)
	}

	img, err := Decode("TEX.PNG", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Channels != 4 {
		t.Errorf("channels = %d, want 4", img.Channels)
	}
	if len(img.Pix) != 2*2*4 {
		t.Errorf("pix len = %d, want 16", len(img.Pix))
	}
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, checker(8, 8, 255), nil); err != nil {
		t.Fatal(err)
	}

	img, err := Decode("sky/posx.jpg", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Channels != 3 || img.Width != 8 || img.Height != 8 {
		t.Errorf("got %dx%d with %d channels", img.Width, img.Height, img.Channels)
	}
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, checker(3, 3, 255)); err != nil {
		t.Fatal(err)
	}

	img, err := Decode("wall.bmp", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 3 || img.Height != 3 {
		t.Errorf("size = %dx%d, want 3x3", img.Width, img.Height)
	}
	if img.Pix[0] != 255 || img.Pix[1] != 0 || img.Pix[2] != 0 {
		t.Errorf("first pixel = %v, want red", img.Pix[:3])
	}
}

// tgaFile builds an uncompressed 24-bit top-to-bottom TGA.
func tgaFile(w, h int, bgr [3]byte) []byte {
	header := []byte{
		0, 0, 2, // no id, no color map, true-color
		0, 0, 0, 0, 0,
		0, 0, 0, 0, // origin
		byte(w), byte(w >> 8),
		byte(h), byte(h >> 8),
		24, 0x20, // 24 bpp, top-left origin
	}
	data := append([]byte(nil), header...)
	for i := 0; i < w*h; i++ {
		data = append(data, bgr[0], bgr[1], bgr[2])
	}
	return data
}

func TestDecode_TGA(t *testing.T) {
	img, err := Decode("stone.tga", tgaFile(2, 2, [3]byte{0, 255, 0}))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if img.Pix[0] != 0 || img.Pix[1] != 255 || img.Pix[2] != 0 {
		t.Errorf("first pixel = %v, want green", img.Pix[:3])
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := Decode("tex.webp", []byte("RIFF"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	if _, err := Decode("tex.png", []byte("not a png")); err == nil {
		t.Error("expected error for corrupt data")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(formats.DirSource(t.TempDir()), "missing.png")
	if !errors.Is(err, formats.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestFit(t *testing.T) {
	src := FromImage(checker(64, 32, 255))

	same := Fit(src, 128)
	if same != src {
		t.Error("image within bounds should be returned unchanged")
	}

	small := Fit(src, 16)
	if small.Width != 16 || small.Height != 8 {
		t.Errorf("Fit size = %dx%d, want 16x8", small.Width, small.Height)
	}
	if small.Channels != 3 || len(small.Pix) != 16*8*3 {
		t.Errorf("Fit channels = %d, pix = %d", small.Channels, len(small.Pix))
	}

	rgba := FromImage(checker(10, 40, 100))
	fitted := Fit(rgba, 20)
	if fitted.Width != 5 || fitted.Height != 20 || fitted.Channels != 4 {
		t.Errorf("Fit RGBA = %dx%d/%d", fitted.Width, fitted.Height, fitted.Channels)
	}
}

func TestImageToNRGBA_Offset(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})

	out := ImageToNRGBA(src)
	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("expected origin-anchored result, got %v", out.Bounds())
	}
	if out.Pix[0] != 9 {
		t.Errorf("first pixel R = %d, want 9", out.Pix[0])
	}
}
