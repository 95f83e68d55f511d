package meshprep

import "github.com/Faultbox/tower-tmf/pkg/math"

// FaceNormals returns the unit normal of each triangle. Degenerate triangles
// get a zero normal.
func FaceNormals(positions []math.Vec3, tris []Triangle) []math.Vec3 {
	normals := make([]math.Vec3, len(tris))
	for i, t := range tris {
		p0 := positions[t[0].Vertex]
		p1 := positions[t[1].Vertex]
		p2 := positions[t[2].Vertex]
		normals[i] = p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}
	return normals
}

// VertexNormals averages face normals around each vertex, weighted by the
// corner angle. Vertices with no usable face get +Y.
func VertexNormals(positions []math.Vec3, tris []Triangle) []math.Vec3 {
	sums := make([]math.Vec3, len(positions))
	faceNormals := FaceNormals(positions, tris)

	for i, t := range tris {
		n := faceNormals[i]
		if n.IsZero() {
			continue
		}
		for k := 0; k < 3; k++ {
			p := positions[t[k].Vertex]
			prev := positions[t[(k+2)%3].Vertex]
			next := positions[t[(k+1)%3].Vertex]
			weight := next.Sub(p).Angle(prev.Sub(p))
			sums[t[k].Vertex] = sums[t[k].Vertex].Add(n.Scale(weight))
		}
	}

	normals := make([]math.Vec3, len(positions))
	for i, s := range sums {
		if s.IsZero() {
			normals[i] = math.Vec3{Y: 1}
			continue
		}
		normals[i] = s.Normalize()
	}
	return normals
}
