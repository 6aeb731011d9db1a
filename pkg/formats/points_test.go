package formats

import (
	"errors"
	"testing"
)

func TestParseControlPoints(t *testing.T) {
	src := `# track
0 0 0
1 0 0

1 1 0
1 1 0
2.5 -1 3e1
`
	points, warnings := ParseControlPoints([]byte(src))
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	want := [][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{1, 1, 0},
		{2.5, -1, 30},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, points[i], want[i])
		}
	}
}

func TestParseControlPoints_Malformed(t *testing.T) {
	src := "0 0 0\n1 2\n1 2 3 4\na b c\n5 5 5\n"
	points, warnings := ParseControlPoints([]byte(src))

	if len(points) != 2 {
		t.Errorf("expected 2 valid points, got %d", len(points))
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d", len(warnings))
	}

	var lineErr *LineError
	if !errors.As(warnings[0], &lineErr) || lineErr.Line != 2 {
		t.Errorf("first warning should be on line 2, got %v", warnings[0])
	}
}

func TestLoadControlPoints_Missing(t *testing.T) {
	_, _, err := LoadControlPoints(DirSource(t.TempDir()), "points.txt")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadControlPoints(t *testing.T) {
	dir := writeFiles(t, map[string]string{"p.txt": "1 2 3\n4 5 6\n"})
	points, warnings, err := LoadControlPoints(DirSource(dir), "p.txt")
	if err != nil {
		t.Fatalf("LoadControlPoints failed: %v", err)
	}
	if len(warnings) != 0 || len(points) != 2 {
		t.Errorf("got %d points, %d warnings", len(points), len(warnings))
	}
}
