package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/curveview/internal/engine/mesh"
	"github.com/Faultbox/curveview/pkg/math"
)

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "curveview")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (GL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if want := filepath.Join(dir, "curveview_2024-05-01_12-30-00.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Image rows are top-down, so blue comes first.
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red")
	}
}

func TestCaptureFromPixels_SizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := sc.CaptureFromPixels(nil, 0, 0); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestGenerateFilename_NoDir(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	name := sc.GenerateFilename()
	if !strings.HasPrefix(name, "shot_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("unexpected filename %q", name)
	}
	if strings.ContainsRune(name, filepath.Separator) {
		t.Errorf("filename should have no directory: %q", name)
	}
}

func TestCurveLines(t *testing.T) {
	pts := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}

	open := CurveLines(pts, CurveColor, false)
	if len(open) != 4 {
		t.Fatalf("open curve: expected 4 vertices, got %d", len(open))
	}
	if open[2].X != 1 || open[3].Y != 1 {
		t.Errorf("unexpected second segment: %+v %+v", open[2], open[3])
	}

	closed := CurveLines(pts, CurveColor, true)
	if len(closed) != 6 {
		t.Fatalf("closed curve: expected 6 vertices, got %d", len(closed))
	}
	if last := closed[5]; last.X != 0 || last.Y != 0 {
		t.Errorf("closing segment should end at the first point, got %+v", last)
	}

	if CurveLines(pts[:1], CurveColor, true) != nil {
		t.Error("single point should give no lines")
	}
}

func TestCrossMarkers(t *testing.T) {
	got := CrossMarkers([]mgl32.Vec3{{1, 2, 3}}, 0.5, ControlColor)
	if len(got) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(got))
	}
	if got[0].X != 0.5 || got[1].X != 1.5 {
		t.Errorf("X arm = %v..%v, want 0.5..1.5", got[0].X, got[1].X)
	}
	if got[4].Z != 2.5 || got[5].Z != 3.5 {
		t.Errorf("Z arm = %v..%v, want 2.5..3.5", got[4].Z, got[5].Z)
	}
	if got[0].R != ControlColor[0] {
		t.Errorf("color not applied")
	}
}

func TestBBoxWireframe(t *testing.T) {
	b := mesh.Bounds{
		Min: math.Vec3{X: -1, Y: -1, Z: -1},
		Max: math.Vec3{X: 1, Y: 1, Z: 1},
	}
	model := math.TRS(math.Vec3{X: 10, Y: 0, Z: 0}, 0, 2)

	got := BBoxWireframe(b, model, SelectColor)
	if len(got) != BBoxWireframeVertexCount {
		t.Fatalf("expected %d vertices, got %d", BBoxWireframeVertexCount, len(got))
	}
	for _, v := range got {
		if v.X != 8 && v.X != 12 {
			t.Errorf("X = %v, want 8 or 12", v.X)
		}
		if v.Y != -2 && v.Y != 2 {
			t.Errorf("Y = %v, want -2 or 2", v.Y)
		}
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]LineVertex{{X: 1, Y: 2, Z: 3, R: 4, G: 5, B: 6}})
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
