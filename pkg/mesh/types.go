// Package mesh defines the source and flattened mesh representations used by
// the Tower Mesh Format exporter.
package mesh

import "github.com/Faultbox/tower-tmf/pkg/math"

// Polygon is a face of the source mesh. Vertices lists indices into
// SourceMesh.Positions in winding order; at least 3 are required.
type Polygon struct {
	Vertices []int
}

// Edge is an undirected mesh edge between two vertex indices.
// Use NewEdge so that A <= B and edges compare equal regardless of direction.
type Edge struct {
	A, B int
}

// NewEdge returns the canonical edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// SourceMesh is the read-only input of the export pipeline.
type SourceMesh struct {
	Positions []math.Vec3 // One per topological vertex
	Normals   []math.Vec3 // Smooth vertex normals, one per vertex (optional)
	Polygons  []Polygon   // Faces, 3+ corners each
	UVs       []math.Vec2 // One per polygon corner in flattened order (optional)

	// SharpEdges are always split regardless of the split angle.
	SharpEdges []Edge
}

// CornerCount returns the number of polygon corners summed over all polygons.
func (m *SourceMesh) CornerCount() int {
	n := 0
	for _, p := range m.Polygons {
		n += len(p.Vertices)
	}
	return n
}

// HasUVs reports whether the mesh carries a UV layer.
func (m *SourceMesh) HasUVs() bool {
	return len(m.UVs) > 0
}

// HasNormals reports whether the mesh carries vertex normals.
func (m *SourceMesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// FlattenedMesh is the engine-ready output of the normalizer.
//
// Positions are indexed by Indices. Normals and UVs have one entry per
// triangle corner and line up with Indices by position in the array, not by
// index value: Normals[i] and UVs[i] describe the corner that Indices[i]
// points from.
type FlattenedMesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Indices   []int32
}

// TriangleCount returns the number of triangles described by Indices.
func (m *FlattenedMesh) TriangleCount() int {
	return len(m.Indices) / 3
}
