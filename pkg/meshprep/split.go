package meshprep

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// SplitResult describes the vertex table after hard-edge splitting.
type SplitResult struct {
	// Positions holds the original vertices followed by the duplicates.
	Positions []math.Vec3
	// Source maps every vertex in Positions to the vertex it was copied from.
	Source []int
	// Split is indexed by original vertex and is true when that vertex was
	// duplicated.
	Split []bool
}

// SplitHardEdges duplicates vertices across hard edges so that no vertex is
// shared by faces on both sides of one. An edge is hard when it is listed in
// sharp, when more than two triangles use it, or when the angle between its
// two faces exceeds splitAngleDeg degrees.
//
// Around each vertex the incident triangles are grouped into fans joined by
// soft edges. Fans that touch no hard edge at the vertex, such as the wings
// of a bowtie, keep the vertex. Of the fans that do, the first keeps the
// vertex and each further one gets a new vertex appended to Positions. Corners in tris are rewritten in place; the
// number of corners does not change.
func SplitHardEdges(positions []math.Vec3, tris []Triangle, sharp []mesh.Edge, splitAngleDeg float32) *SplitResult {
	numVerts := len(positions)
	res := &SplitResult{
		Positions: append(make([]math.Vec3, 0, numVerts), positions...),
		Source:    make([]int, numVerts),
		Split:     make([]bool, numVerts),
	}
	for i := range res.Source {
		res.Source[i] = i
	}
	if len(tris) == 0 {
		return res
	}

	// Topology lookups use the original vertex ids throughout.
	orig := make([][3]int, len(tris))
	for i, t := range tris {
		orig[i] = [3]int{t[0].Vertex, t[1].Vertex, t[2].Vertex}
	}

	faceNormals := FaceNormals(positions, tris)
	edgeFaces := make(map[mesh.Edge][]int)
	vertFaces := make([][]int, numVerts)
	for f, t := range orig {
		for k := 0; k < 3; k++ {
			e := mesh.NewEdge(t[k], t[(k+1)%3])
			edgeFaces[e] = append(edgeFaces[e], f)
			vertFaces[t[k]] = append(vertFaces[t[k]], f)
		}
	}

	hard := hardEdges(edgeFaces, faceNormals, sharp, splitAngleDeg)

	for v, faces := range vertFaces {
		if len(faces) < 2 {
			continue
		}

		fans := groupFans(v, faces, orig, edgeFaces, hard)
		if len(fans) < 2 {
			continue
		}

		// Only fans bounded by a hard edge at v are separated from each
		// other. Fans that meet v through open edges alone stay on v.
		var separated [][]int
		for _, fan := range fans {
			if touchesHardEdge(v, fan, orig, hard) {
				separated = append(separated, fan)
			}
		}
		if len(separated) < 2 {
			continue
		}
		res.Split[v] = true

		for _, fan := range separated[1:] {
			nv := len(res.Positions)
			res.Positions = append(res.Positions, positions[v])
			res.Source = append(res.Source, v)
			for _, f := range fan {
				for k := 0; k < 3; k++ {
					if orig[f][k] == v {
						tris[f][k].Vertex = nv
					}
				}
			}
		}
	}

	return res
}

func hardEdges(edgeFaces map[mesh.Edge][]int, faceNormals []math.Vec3, sharp []mesh.Edge, splitAngleDeg float32) map[mesh.Edge]bool {
	threshold := splitAngleDeg * math32.Pi / 180
	if threshold < 0 {
		threshold = 0
	}

	hard := make(map[mesh.Edge]bool)
	for _, e := range sharp {
		hard[mesh.NewEdge(e.A, e.B)] = true
	}
	for e, faces := range edgeFaces {
		switch {
		case len(faces) > 2:
			hard[e] = true
		case len(faces) == 2:
			if faceNormals[faces[0]].Angle(faceNormals[faces[1]]) > threshold+angleEpsilon {
				hard[e] = true
			}
		}
	}
	return hard
}

// touchesHardEdge reports whether any face of fan has a hard edge at v.
func touchesHardEdge(v int, fan []int, orig [][3]int, hard map[mesh.Edge]bool) bool {
	for _, f := range fan {
		for _, w := range orig[f] {
			if w != v && hard[mesh.NewEdge(v, w)] {
				return true
			}
		}
	}
	return false
}

// groupFans partitions the faces around vertex v into sets connected through
// soft edges. Fans are ordered by their first face.
func groupFans(v int, faces []int, orig [][3]int, edgeFaces map[mesh.Edge][]int, hard map[mesh.Edge]bool) [][]int {
	parent := make(map[int]int, len(faces))
	for _, f := range faces {
		parent[f] = f
	}
	find := func(f int) int {
		for parent[f] != f {
			parent[f] = parent[parent[f]]
			f = parent[f]
		}
		return f
	}

	for _, f := range faces {
		for _, w := range orig[f] {
			if w == v {
				continue
			}
			e := mesh.NewEdge(v, w)
			if hard[e] {
				continue
			}
			for _, g := range edgeFaces[e] {
				if rf, rg := find(f), find(g); rf != rg {
					parent[rg] = rf
				}
			}
		}
	}

	var fans [][]int
	fanOf := make(map[int]int)
	for _, f := range faces {
		root := find(f)
		i, ok := fanOf[root]
		if !ok {
			i = len(fans)
			fanOf[root] = i
			fans = append(fans, nil)
		}
		if n := len(fans[i]); n == 0 || fans[i][n-1] != f {
			fans[i] = append(fans[i], f)
		}
	}
	return fans
}
