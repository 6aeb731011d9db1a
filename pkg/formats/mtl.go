package formats

import (
	"strconv"
	"strings"
)

// Material holds Phong reflectance coefficients and a diffuse texture reference.
// Only the red channel of each coefficient is consumed by the shader.
type Material struct {
	Name        string
	Ka          [3]float32 // Ambient
	Kd          [3]float32 // Diffuse
	Ks          [3]float32 // Specular
	Shininess   float32    // Ns; zero means "use the renderer default"
	TextureFile string     // map_Kd, relative to the material file
}

// MaterialTable maps material names to materials.
type MaterialTable map[string]Material

// Lookup returns the named material.
// A missing name yields a zero Material, never an error.
func (t MaterialTable) Lookup(name string) Material {
	return t[name]
}

// Has reports whether the table contains name.
func (t MaterialTable) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Merge copies every entry of other into t, overwriting entries with the same name.
func (t MaterialTable) Merge(other MaterialTable) {
	for name, m := range other {
		t[name] = m
	}
}

// ParseMTL parses a material file.
// It returns the table, the name of the last material declared, and
// per-line warnings. Records that appear before any newmtl have no material
// to write into and are dropped.
func ParseMTL(data []byte) (MaterialTable, string, []error) {
	table := make(MaterialTable)
	var warnings []error
	var current string
	var hasCurrent bool

	for i, raw := range lines(data) {
		lineNo := i + 1
		fields := strings.Fields(raw)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				warnings = append(warnings, malformed(lineNo, "newmtl", "missing material name"))
				continue
			}
			current = fields[1]
			hasCurrent = true
			table[current] = Material{Name: current}

		case "Ka", "Kd", "Ks":
			if !hasCurrent {
				continue
			}
			rgb, err := parseVec3(fields[1:])
			if err != nil {
				warnings = append(warnings, malformed(lineNo, fields[0], err.Error()))
				continue
			}
			m := table[current]
			switch fields[0] {
			case "Ka":
				m.Ka = rgb
			case "Kd":
				m.Kd = rgb
			case "Ks":
				m.Ks = rgb
			}
			table[current] = m

		case "Ns":
			if !hasCurrent {
				continue
			}
			if len(fields) < 2 {
				warnings = append(warnings, malformed(lineNo, "Ns", "missing exponent"))
				continue
			}
			ns, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				warnings = append(warnings, malformed(lineNo, "Ns", err.Error()))
				continue
			}
			m := table[current]
			m.Shininess = float32(ns)
			table[current] = m

		case "map_Kd":
			if !hasCurrent {
				continue
			}
			if len(fields) < 2 {
				warnings = append(warnings, malformed(lineNo, "map_Kd", "missing texture file"))
				continue
			}
			m := table[current]
			m.TextureFile = fields[len(fields)-1]
			table[current] = m
		}
	}

	return table, current, warnings
}
