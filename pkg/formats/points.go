package formats

import (
	"fmt"
	"strings"
)

// ParseControlPoints parses one "x y z" triple per line.
// Blank lines and lines starting with '#' are ignored; malformed lines are
// reported and skipped. Order is preserved and duplicates are kept.
func ParseControlPoints(data []byte) ([][3]float32, []error) {
	var points [][3]float32
	var warnings []error

	for i, raw := range lines(data) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			warnings = append(warnings, malformed(i+1, "point", fmt.Sprintf("expected 3 values, got %d", len(fields))))
			continue
		}
		p, err := parseVec3(fields)
		if err != nil {
			warnings = append(warnings, malformed(i+1, "point", err.Error()))
			continue
		}
		points = append(points, p)
	}

	return points, warnings
}

// LoadControlPoints reads and parses a control-point file from src.
func LoadControlPoints(src Source, path string) ([][3]float32, []error, error) {
	data, err := src.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading control points %s: %w", path, err)
	}
	points, warnings := ParseControlPoints(data)
	return points, warnings, nil
}
