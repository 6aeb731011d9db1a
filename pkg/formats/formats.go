// Package formats provides parsers for the viewer's text file formats:
// Wavefront-style geometry (.obj), materials (.mtl), scene configuration
// files and spline control-point lists.
package formats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format errors.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingMesh     = errors.New("object block has no mesh file")
)

// LineError reports a problem with a single line of a text file.
// The line is skipped; parsing continues.
type LineError struct {
	Line   int
	Record string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Record, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// malformed builds a LineError wrapping ErrMalformedRecord.
func malformed(line int, record, detail string) *LineError {
	return &LineError{
		Line:   line,
		Record: record,
		Err:    fmt.Errorf("%w: %s", ErrMalformedRecord, detail),
	}
}

// Source reads files by slash-separated path.
// internal/assets.Manager implements it with search roots and a cache.
type Source interface {
	Load(path string) ([]byte, error)
}

// DirSource reads files relative to a directory on disk.
type DirSource string

// Load reads path relative to the directory. Missing files are reported as ErrFileNotFound.
func (d DirSource) Load(path string) ([]byte, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(string(d), filepath.FromSlash(path))
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// lines splits data into lines, tolerating CRLF endings.
func lines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n")
}

// parseFloats parses every field as a float32.
func parseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseVec3 parses exactly the first three fields as a vector.
func parseVec3(fields []string) ([3]float32, error) {
	if len(fields) < 3 {
		return [3]float32{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	v, err := parseFloats(fields[:3])
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}

// dirOf returns the slash-separated directory prefix of path, including the
// trailing separator, or "" when path has no directory part.
// RelativeTo resolves name against the directory of base.
// Absolute names are returned unchanged.
func RelativeTo(base, name string) string {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return name
	}
	return dirOf(base) + name
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	if i < 0 {
		return ""
	}
	return path[:i+1]
}
