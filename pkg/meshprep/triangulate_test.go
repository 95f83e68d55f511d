package meshprep

import (
	"testing"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

func TestTriangulate_TrianglesPassThrough(t *testing.T) {
	m := makeHinge(0)
	tris := Triangulate(m)
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	want := [][3]int{{0, 1, 2}, {1, 0, 3}}
	for i, tri := range tris {
		for k := 0; k < 3; k++ {
			if tri[k].Vertex != want[i][k] {
				t.Errorf("triangle %d corner %d = vertex %d, want %d", i, k, tri[k].Vertex, want[i][k])
			}
			if tri[k].UV != m.UVs[i*3+k] {
				t.Errorf("triangle %d corner %d uv = %v, want %v", i, k, tri[k].UV, m.UVs[i*3+k])
			}
		}
	}
}

func TestTriangulate_Polygons(t *testing.T) {
	tests := []struct {
		name string
		pts  []math.Vec3
	}{
		{"square", []math.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}},
		{"hexagon", []math.Vec3{{2, 0, 0}, {1, 1.7, 0}, {-1, 1.7, 0}, {-2, 0, 0}, {-1, -1.7, 0}, {1, -1.7, 0}}},
		{"concave L", []math.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 1, 0}, {1, 1, 0}, {1, 2, 0}, {0, 2, 0}}},
		{"arrow", []math.Vec3{{0, 0, 0}, {4, 2, 0}, {0, 4, 0}, {1, 2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts := make([]int, len(tt.pts))
			uvs := make([]math.Vec2, len(tt.pts))
			for i, p := range tt.pts {
				verts[i] = i
				uvs[i] = math.Vec2{X: p.X, Y: p.Y}
			}
			m := &mesh.SourceMesh{
				Positions: tt.pts,
				Polygons:  []mesh.Polygon{{Vertices: verts}},
				UVs:       uvs,
			}

			tris := Triangulate(m)
			if len(tris) != len(tt.pts)-2 {
				t.Fatalf("got %d triangles, want %d", len(tris), len(tt.pts)-2)
			}

			var sum float32
			for i, tri := range tris {
				area := triangleArea2D(m.Positions, tri)
				if area <= 0 {
					t.Errorf("triangle %d has non-positive area %v (winding flipped or outside)", i, area)
				}
				sum += area
				for k, c := range tri {
					if c.UV != uvs[c.Vertex] {
						t.Errorf("triangle %d corner %d uv %v does not belong to vertex %d", i, k, c.UV, c.Vertex)
					}
				}
			}

			want := polygonArea2D(tt.pts)
			if d := sum - want; d > eps || d < -eps {
				t.Errorf("triangles cover area %v, polygon area %v", sum, want)
			}
		})
	}
}

func TestTriangulate_BeautyPicksShortDiagonal(t *testing.T) {
	// Flat rhombus starting at a sharp corner; a plain ear clip would cut
	// along the long diagonal 1-3.
	m := &mesh.SourceMesh{
		Positions: []math.Vec3{{0, -1, 0}, {3, 0, 0}, {0, 1, 0}, {-3, 0, 0}},
		Polygons:  []mesh.Polygon{{Vertices: []int{0, 1, 2, 3}}},
	}

	tris := Triangulate(m)
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	for i, tri := range tris {
		has0, has2 := false, false
		for _, c := range tri {
			has0 = has0 || c.Vertex == 0
			has2 = has2 || c.Vertex == 2
		}
		if !has0 || !has2 {
			t.Errorf("triangle %d = %v, want it to use the short diagonal 0-2", i, tri)
		}
	}
}

func TestTriangulate_CornerUVsFollowPolygonOffsets(t *testing.T) {
	m := makeCube()
	tris := Triangulate(m)
	if len(tris) != 12 {
		t.Fatalf("got %d triangles, want 12", len(tris))
	}

	// Triangles come out in polygon order, two per quad.
	base := 0
	for p, poly := range m.Polygons {
		uvOf := make(map[int]math.Vec2)
		for j, v := range poly.Vertices {
			uvOf[v] = m.UVs[base+j]
		}
		base += len(poly.Vertices)

		for _, tri := range tris[p*2 : p*2+2] {
			for _, c := range tri {
				want, ok := uvOf[c.Vertex]
				if !ok {
					t.Fatalf("polygon %d emitted foreign vertex %d", p, c.Vertex)
				}
				if c.UV != want {
					t.Errorf("polygon %d vertex %d uv = %v, want %v", p, c.Vertex, c.UV, want)
				}
			}
		}
	}
}

func TestTriangulate_NonPlanarQuadKeepsWinding(t *testing.T) {
	m := &mesh.SourceMesh{
		Positions: []math.Vec3{{0, 0, 0}, {1, 0, 0.2}, {1, 1, 0}, {0, 1, 0.2}},
		Polygons:  []mesh.Polygon{{Vertices: []int{0, 1, 2, 3}}},
	}
	tris := Triangulate(m)
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	for i, n := range FaceNormals(m.Positions, tris) {
		if n.Z <= 0 {
			t.Errorf("triangle %d normal %v faces away from the polygon normal", i, n)
		}
	}
}
