// Wavefront OBJ reader producing source meshes.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/tower-tmf/pkg/encoding"
	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// ErrInvalidOBJ is returned for OBJ data that cannot be parsed.
var ErrInvalidOBJ = errors.New("invalid OBJ data")

// OBJOptions controls OBJ parsing.
type OBJOptions struct {
	// NameEncoding is the charset of object names ("" or "utf-8" for UTF-8).
	NameEncoding string
}

// objObject collects the faces of one "o" section. Groups ("g") do not
// start a new object.
type objObject struct {
	name     string
	polygons [][]objCorner
}

type objCorner struct {
	v  int // Global position index
	vt int // Global texcoord index, -1 if absent
}

// ParseOBJ parses OBJ data into one source mesh per object.
//
// Each object gets its own vertex table holding only the positions its faces
// use, in first-use order. Texture coordinates become the per-corner UV layer;
// an object with no texture coordinates at all has no UV layer. Normals ("vn")
// are ignored since the exporter computes its own after splitting.
// Without any faces the file yields a single mesh of isolated vertices.
func ParseOBJ(data []byte, opts OBJOptions) ([]NamedMesh, error) {
	var (
		positions []math.Vec3
		texCoords []math.Vec2
		objects   []*objObject
		current   *objObject
	)

	newObject := func(rawName string) error {
		name, err := encoding.ToUTF8([]byte(rawName), opts.NameEncoding)
		if err != nil {
			return err
		}
		current = &objObject{name: name}
		objects = append(objects, current)
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			positions = append(positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			texCoords = append(texCoords, math.Vec2{X: v[0], Y: v[1]})

		case "o":
			name := strings.TrimSpace(line[len(fields[0]):])
			if err := newObject(name); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidOBJ, lineNo, err)
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners", ErrInvalidOBJ, lineNo)
			}
			poly := make([]objCorner, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				c, err := parseFaceCorner(ref, len(positions), len(texCoords))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
				}
				poly = append(poly, c)
			}
			if current == nil {
				if err := newObject(""); err != nil {
					return nil, err
				}
			}
			current.polygons = append(current.polygons, poly)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	var result []NamedMesh
	for _, obj := range objects {
		if len(obj.polygons) == 0 {
			continue
		}
		result = append(result, NamedMesh{Name: obj.name, Mesh: obj.build(positions, texCoords)})
	}

	if len(result) == 0 {
		name := ""
		if current != nil {
			name = current.name
		}
		result = append(result, NamedMesh{Name: name, Mesh: &mesh.SourceMesh{Positions: positions}})
	}

	return result, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) ([]NamedMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data, opts)
}

func (o *objObject) build(positions []math.Vec3, texCoords []math.Vec2) *mesh.SourceMesh {
	m := &mesh.SourceMesh{}
	local := make(map[int]int)

	hasUVs := false
	for _, poly := range o.polygons {
		for _, c := range poly {
			if c.vt >= 0 {
				hasUVs = true
			}
		}
	}

	for _, poly := range o.polygons {
		p := mesh.Polygon{Vertices: make([]int, len(poly))}
		for j, c := range poly {
			idx, ok := local[c.v]
			if !ok {
				idx = len(m.Positions)
				local[c.v] = idx
				m.Positions = append(m.Positions, positions[c.v])
			}
			p.Vertices[j] = idx

			if hasUVs {
				var uv math.Vec2
				if c.vt >= 0 {
					uv = texCoords[c.vt]
				}
				m.UVs = append(m.UVs, uv)
			}
		}
		m.Polygons = append(m.Polygons, p)
	}

	return m
}

// parseFaceCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" with 1-based or
// negative (relative) indices.
func parseFaceCorner(ref string, numV, numVT int) (objCorner, error) {
	parts := strings.Split(ref, "/")

	v, err := resolveOBJIndex(parts[0], numV)
	if err != nil {
		return objCorner{}, fmt.Errorf("vertex %q: %w", ref, err)
	}

	c := objCorner{v: v, vt: -1}
	if len(parts) > 1 && parts[1] != "" {
		vt, err := resolveOBJIndex(parts[1], numVT)
		if err != nil {
			return objCorner{}, fmt.Errorf("texcoord %q: %w", ref, err)
		}
		c.vt = vt
	}
	return c, nil
}

func resolveOBJIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, errors.New("index 0 is not allowed")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index out of range (have %d)", count)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
