package meshprep

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// Corner is one triangle corner: the vertex it sits on and its UV.
type Corner struct {
	Vertex int
	UV     math.Vec2
}

// Triangle is three corners in winding order.
type Triangle [3]Corner

const (
	areaEpsilon  float32 = 1e-12
	angleEpsilon float32 = 1e-5
)

// Triangulate converts every polygon of m into triangles, in polygon order.
// Triangles pass through unchanged; larger polygons are ear-clipped in their
// own plane and then beautified by edge flips. Every corner keeps the vertex
// and UV of the polygon corner it came from.
func Triangulate(m *mesh.SourceMesh) []Triangle {
	tris := make([]Triangle, 0, m.CornerCount())
	hasUVs := m.HasUVs()

	base := 0
	for _, poly := range m.Polygons {
		n := len(poly.Vertices)
		corners := make([]Corner, n)
		for j, v := range poly.Vertices {
			corners[j].Vertex = v
			if hasUVs {
				corners[j].UV = m.UVs[base+j]
			}
		}
		base += n

		if n == 3 {
			tris = append(tris, Triangle{corners[0], corners[1], corners[2]})
			continue
		}

		pts := make([]math.Vec3, n)
		for j, v := range poly.Vertices {
			pts[j] = m.Positions[v]
		}
		for _, t := range triangulatePolygon(pts) {
			tris = append(tris, Triangle{corners[t[0]], corners[t[1]], corners[t[2]]})
		}
	}

	return tris
}

// triangulatePolygon returns n-2 triangles as local corner indices.
func triangulatePolygon(pts []math.Vec3) [][3]int {
	normal := newellNormal(pts)
	if normal.IsZero() {
		return fan(len(pts))
	}

	u, v := planeBasis(normal)
	flat := make([]math.Vec2, len(pts))
	for i, p := range pts {
		flat[i] = math.Vec2{X: p.Dot(u), Y: p.Dot(v)}
	}

	tris := earClip(flat)
	beautify(flat, tris)
	return tris
}

// newellNormal returns the unit normal of a possibly non-planar polygon,
// oriented by its winding. Zero for degenerate polygons.
func newellNormal(pts []math.Vec3) math.Vec3 {
	var n math.Vec3
	for i, cur := range pts {
		next := pts[(i+1)%len(pts)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

// planeBasis returns u, v such that u x v = n, so counter-clockwise winding
// around n stays counter-clockwise in (u, v).
func planeBasis(n math.Vec3) (math.Vec3, math.Vec3) {
	axis := math.Vec3{X: 1}
	if math32.Abs(n.X) > 0.9 {
		axis = math.Vec3{Y: 1}
	}
	u := axis.Sub(n.Scale(axis.Dot(n))).Normalize()
	return u, n.Cross(u)
}

func fan(n int) [][3]int {
	tris := make([][3]int, 0, n-2)
	for i := 1; i < n-1; i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris
}

// earClip triangulates a simple counter-clockwise polygon.
func earClip(p []math.Vec2) [][3]int {
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = i
	}

	tris := make([][3]int, 0, len(p)-2)
	for len(idx) > 3 {
		n := len(idx)
		clipped := false
		for i := 0; i < n; i++ {
			prev, cur, next := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if !isEar(p, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Self-intersecting or collinear outline: clip the first corner anyway.
			tris = append(tris, [3]int{idx[n-1], idx[0], idx[1]})
			idx = idx[1:]
		}
	}
	return append(tris, [3]int{idx[0], idx[1], idx[2]})
}

func isEar(p []math.Vec2, idx []int, prev, cur, next int) bool {
	a, b, c := p[prev], p[cur], p[next]
	if math.Orient2D(a, b, c) <= areaEpsilon {
		return false
	}
	for _, j := range idx {
		if j == prev || j == cur || j == next {
			continue
		}
		q := p[j]
		if math.Orient2D(a, b, q) >= 0 && math.Orient2D(b, c, q) >= 0 && math.Orient2D(c, a, q) >= 0 {
			return false
		}
	}
	return true
}

// beautify flips interior diagonals until no pair of triangles has opposite
// angles summing past pi, which removes long thin triangles the ear clipper
// tends to leave behind.
func beautify(p []math.Vec2, tris [][3]int) {
	maxPasses := len(tris) * len(tris)
	for pass := 0; pass <= maxPasses; pass++ {
		flipped := false
		for i := range tris {
			for j := i + 1; j < len(tris); j++ {
				a, b, c, d, ok := sharedEdge(tris[i], tris[j])
				if !ok || !shouldFlip(p, a, b, c, d) {
					continue
				}
				tris[i] = [3]int{c, a, d}
				tris[j] = [3]int{d, b, c}
				flipped = true
			}
		}
		if !flipped {
			return
		}
	}
}

// sharedEdge finds an edge a->b of t1 that t2 holds as b->a, with t1 = (a, b, c)
// and t2 = (b, a, d) up to rotation.
func sharedEdge(t1, t2 [3]int) (a, b, c, d int, ok bool) {
	for k := 0; k < 3; k++ {
		a, b, c = t1[k], t1[(k+1)%3], t1[(k+2)%3]
		for m := 0; m < 3; m++ {
			if t2[m] == b && t2[(m+1)%3] == a {
				return a, b, c, t2[(m+2)%3], true
			}
		}
	}
	return 0, 0, 0, 0, false
}

func shouldFlip(p []math.Vec2, a, b, c, d int) bool {
	// The replacement triangles (c, a, d) and (d, b, c) must both be valid.
	if math.Orient2D(p[c], p[a], p[d]) <= areaEpsilon || math.Orient2D(p[d], p[b], p[c]) <= areaEpsilon {
		return false
	}
	atC := p[a].Sub(p[c]).Angle(p[b].Sub(p[c]))
	atD := p[a].Sub(p[d]).Angle(p[b].Sub(p[d]))
	return atC+atD > math32.Pi+angleEpsilon
}
