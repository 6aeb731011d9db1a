package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Interleaved vertex layout, in float32 units.
// The GPU attribute setup is derived from these constants only.
const (
	VertexStride   = 11
	PositionOffset = 0
	ColorOffset    = 3
	TexCoordOffset = 6
	NormalOffset   = 8
)

// DefaultVertexColor is written into the color slot of every vertex.
var DefaultVertexColor = [3]float32{1, 1, 1}

// Vertex is one expanded face corner.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// AppendTo appends the vertex to buf in interleaved layout.
func (v Vertex) AppendTo(buf []float32) []float32 {
	return append(buf,
		v.Position[0], v.Position[1], v.Position[2],
		v.Color[0], v.Color[1], v.Color[2],
		v.TexCoord[0], v.TexCoord[1],
		v.Normal[0], v.Normal[1], v.Normal[2],
	)
}

// VertexAt decodes vertex i from an interleaved buffer.
func VertexAt(buf []float32, i int) Vertex {
	b := buf[i*VertexStride : (i+1)*VertexStride]
	return Vertex{
		Position: [3]float32{b[PositionOffset], b[PositionOffset+1], b[PositionOffset+2]},
		Color:    [3]float32{b[ColorOffset], b[ColorOffset+1], b[ColorOffset+2]},
		TexCoord: [2]float32{b[TexCoordOffset], b[TexCoordOffset+1]},
		Normal:   [3]float32{b[NormalOffset], b[NormalOffset+1], b[NormalOffset+2]},
	}
}

// MeshData is the result of parsing a geometry file and its material file.
type MeshData struct {
	Vertices     []float32 // Interleaved, VertexStride floats per vertex
	VertexCount  int
	Faces        int
	MaterialLib  string        // mtllib value, relative to the geometry file
	MaterialName string        // usemtl, or the last newmtl of the material file
	Materials    MaterialTable // Owned by the caller; merge explicitly
	Warnings     []error

	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32
	usemtl    string
}

// Empty reports whether the mesh has no vertices.
func (m *MeshData) Empty() bool {
	return m == nil || m.VertexCount == 0
}

// Material returns the material the mesh references.
// A name missing from the table yields a zero Material.
func (m *MeshData) Material() Material {
	return m.Materials.Lookup(m.MaterialName)
}

// faceCorner holds resolved 0-based indices for one face token.
type faceCorner struct {
	pos, tex, norm int
}

// ParseOBJ parses the geometry records of an OBJ file.
// The material file is not read; see LoadMesh.
func ParseOBJ(data []byte) (*MeshData, error) {
	mesh := &MeshData{Materials: make(MaterialTable)}

	for i, raw := range lines(data) {
		lineNo := i + 1
		fields := strings.Fields(raw)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "mtllib":
			if len(fields) < 2 {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "mtllib", "missing file name"))
				continue
			}
			mesh.MaterialLib = fields[1]

		case "usemtl":
			if len(fields) < 2 {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "usemtl", "missing material name"))
				continue
			}
			mesh.usemtl = fields[1]

		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "v", err.Error()))
				continue
			}
			mesh.positions = append(mesh.positions, p)

		case "vt":
			if len(fields) < 3 {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "vt", "expected 2 values"))
				continue
			}
			st, err := parseFloats(fields[1:3])
			if err != nil {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "vt", err.Error()))
				continue
			}
			mesh.texCoords = append(mesh.texCoords, [2]float32{st[0], st[1]})

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				mesh.Warnings = append(mesh.Warnings, malformed(lineNo, "vn", err.Error()))
				continue
			}
			mesh.normals = append(mesh.normals, n)

		case "f":
			mesh.addFace(lineNo, fields[1:])
		}
	}

	mesh.MaterialName = mesh.usemtl
	return mesh, nil
}

// addFace resolves every token of a face record and appends one vertex per
// token. Faces are emitted as-is, without triangulation. A token that does
// not parse drops the whole line.
func (m *MeshData) addFace(lineNo int, tokens []string) {
	if len(tokens) == 0 {
		m.Warnings = append(m.Warnings, malformed(lineNo, "f", "face has no vertices"))
		return
	}

	corners := make([]faceCorner, 0, len(tokens))
	for _, tok := range tokens {
		c, err := parseFaceToken(tok)
		if err != nil {
			m.Warnings = append(m.Warnings, malformed(lineNo, "f", err.Error()))
			return
		}
		corners = append(corners, c)
	}

	for _, c := range corners {
		v := Vertex{Color: DefaultVertexColor}

		if c.pos >= 0 && c.pos < len(m.positions) {
			v.Position = m.positions[c.pos]
		} else {
			m.Warnings = append(m.Warnings, &LineError{
				Line:   lineNo,
				Record: "f",
				Err:    fmt.Errorf("position index %d out of range (%d positions)", c.pos+1, len(m.positions)),
			})
		}
		if c.tex >= 0 && c.tex < len(m.texCoords) {
			v.TexCoord = m.texCoords[c.tex]
		}
		if c.norm >= 0 && c.norm < len(m.normals) {
			v.Normal = m.normals[c.norm]
		}

		m.Vertices = v.AppendTo(m.Vertices)
		m.VertexCount++
	}
	m.Faces++
}

// parseFaceToken splits "p/t/n" into 0-based indices.
// An empty or absent component resolves to index 0, which aliases the first
// recorded value when the attribute is actually missing.
func parseFaceToken(tok string) (faceCorner, error) {
	parts := strings.SplitN(tok, "/", 3)
	var idx [3]int
	for i := range idx {
		if i >= len(parts) || parts[i] == "" {
			continue
		}
		k, err := strconv.Atoi(parts[i])
		if err != nil {
			return faceCorner{}, fmt.Errorf("bad index %q in %q", parts[i], tok)
		}
		idx[i] = k - 1
	}
	return faceCorner{pos: idx[0], tex: idx[1], norm: idx[2]}, nil
}

// LoadMesh reads a geometry file from src, then the material file it
// references (resolved relative to the geometry file's directory).
//
// A geometry file that cannot be read yields an empty, non-nil MeshData
// together with an error wrapping ErrFileNotFound. A missing material file
// only adds a warning.
func LoadMesh(src Source, path string) (*MeshData, error) {
	data, err := src.Load(path)
	if err != nil {
		empty := &MeshData{Materials: make(MaterialTable)}
		if errors.Is(err, ErrFileNotFound) {
			return empty, fmt.Errorf("loading mesh %s: %w", path, err)
		}
		return empty, fmt.Errorf("loading mesh %s: %w: %w", path, ErrFileNotFound, err)
	}

	mesh, err := ParseOBJ(data)
	if err != nil {
		return mesh, fmt.Errorf("parsing mesh %s: %w", path, err)
	}

	if mesh.MaterialLib == "" {
		return mesh, nil
	}

	mtlPath := RelativeTo(path, mesh.MaterialLib)
	mtlData, err := src.Load(mtlPath)
	if err != nil {
		mesh.Warnings = append(mesh.Warnings, fmt.Errorf("material file %s: %w", mtlPath, err))
		return mesh, nil
	}

	table, last, warnings := ParseMTL(mtlData)
	mesh.Materials = table
	for _, w := range warnings {
		mesh.Warnings = append(mesh.Warnings, fmt.Errorf("%s: %w", mtlPath, w))
	}
	if mesh.MaterialName == "" {
		mesh.MaterialName = last
	}

	return mesh, nil
}

// TextureDir returns the directory that texture references of the mesh
// at path are relative to.
func TextureDir(path string) string {
	return dirOf(path)
}
