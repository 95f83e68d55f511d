// glTF 2.0 reader producing source meshes.
package formats

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/tower-tmf/pkg/encoding"
	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// ErrNoMeshData is returned when a glTF document holds no triangle meshes.
var ErrNoMeshData = errors.New("no triangle mesh data")

// ParseGLTFFile reads a .gltf or .glb file and returns one source mesh per
// glTF mesh. Triangle primitives of a mesh are merged into a single vertex
// table; other primitive modes are skipped. glTF is Y-up, so the results are
// flagged YUp. Names are NFC-normalized.
func ParseGLTFFile(path string) ([]NamedMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}
	return ParseGLTF(doc)
}

// ParseGLTF converts the meshes of a decoded glTF document.
func ParseGLTF(doc *gltf.Document) ([]NamedMesh, error) {
	var result []NamedMesh
	for i, gm := range doc.Meshes {
		src, err := convertGLTFMesh(doc, gm)
		if err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, gm.Name, err)
		}
		if src == nil {
			continue
		}
		result = append(result, NamedMesh{Name: encoding.SanitizeName(gm.Name), Mesh: src, YUp: true})
	}
	if len(result) == 0 {
		return nil, ErrNoMeshData
	}
	return result, nil
}

func convertGLTFMesh(doc *gltf.Document, gm *gltf.Mesh) (*mesh.SourceMesh, error) {
	src := &mesh.SourceMesh{}
	allNormals, anyUVs := true, false
	var uvs []math.Vec2
	prims := 0

	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return nil, fmt.Errorf("reading normals: %w", err)
			}
		}

		var texCoords [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return nil, fmt.Errorf("reading texcoords: %w", err)
			}
			anyUVs = true
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return nil, fmt.Errorf("reading indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%w: %d indices in a triangle list", mesh.ErrMalformedMesh, len(indices))
		}

		base := len(src.Positions)
		for _, p := range positions {
			src.Positions = append(src.Positions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		}
		if len(normals) == len(positions) {
			for _, n := range normals {
				src.Normals = append(src.Normals, math.Vec3{X: n[0], Y: n[1], Z: n[2]})
			}
		} else {
			allNormals = false
		}

		for i := 0; i < len(indices); i += 3 {
			poly := mesh.Polygon{Vertices: make([]int, 3)}
			for k := 0; k < 3; k++ {
				v := int(indices[i+k])
				if v >= len(positions) {
					return nil, fmt.Errorf("%w: index %d past %d positions", mesh.ErrMalformedMesh, v, len(positions))
				}
				poly.Vertices[k] = base + v

				// glTF puts V=0 at the top of the image; the engine expects it at the bottom.
				var uv math.Vec2
				if v < len(texCoords) {
					uv = math.Vec2{X: texCoords[v][0], Y: 1 - texCoords[v][1]}
				}
				uvs = append(uvs, uv)
			}
			src.Polygons = append(src.Polygons, poly)
		}
		prims++
	}

	if prims == 0 {
		return nil, nil
	}
	if !allNormals {
		src.Normals = nil
	}
	if anyUVs {
		src.UVs = uvs
	}
	return src, nil
}
