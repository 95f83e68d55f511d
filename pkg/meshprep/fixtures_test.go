package meshprep

import (
	gomath "math"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

const eps = 1e-4

func near(a, b math.Vec3) bool {
	return a.Sub(b).Length() <= eps
}

// makeCube returns a 2x2x2 cube of six outward-facing quads with per-corner UVs.
func makeCube() *mesh.SourceMesh {
	m := &mesh.SourceMesh{
		Positions: []math.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Polygons: []mesh.Polygon{
			{Vertices: []int{0, 3, 2, 1}}, // -Z
			{Vertices: []int{4, 5, 6, 7}}, // +Z
			{Vertices: []int{0, 1, 5, 4}}, // -Y
			{Vertices: []int{2, 3, 7, 6}}, // +Y
			{Vertices: []int{0, 4, 7, 3}}, // -X
			{Vertices: []int{1, 2, 6, 5}}, // +X
		},
	}
	for range m.Polygons {
		m.UVs = append(m.UVs, math.Vec2{X: 0, Y: 0}, math.Vec2{X: 1, Y: 0}, math.Vec2{X: 1, Y: 1}, math.Vec2{X: 0, Y: 1})
	}
	return m
}

// makeHinge returns two triangles sharing edge 0-1, folded by foldDeg degrees.
// Triangle A lies in the XY plane; triangle B is rotated about the X axis.
func makeHinge(foldDeg float64) *mesh.SourceMesh {
	rad := foldDeg * gomath.Pi / 180
	c, s := float32(gomath.Cos(rad)), float32(gomath.Sin(rad))
	return &mesh.SourceMesh{
		Positions: []math.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0.5, 1, 0},
			{0.5, -c, s},
		},
		Polygons: []mesh.Polygon{
			{Vertices: []int{0, 1, 2}},
			{Vertices: []int{1, 0, 3}},
		},
		UVs: []math.Vec2{{0, 0}, {1, 0}, {0.5, 1}, {1, 0}, {0, 0}, {0.5, -1}},
	}
}

// makeBowtie returns two coplanar triangles that touch only at vertex 0.
func makeBowtie() *mesh.SourceMesh {
	return &mesh.SourceMesh{
		Positions: []math.Vec3{
			{0, 0, 0},
			{1, 1, 0}, {-1, 1, 0},
			{-1, -1, 0}, {1, -1, 0},
		},
		Polygons: []mesh.Polygon{
			{Vertices: []int{0, 1, 2}},
			{Vertices: []int{0, 3, 4}},
		},
		UVs: []math.Vec2{{0.5, 0.5}, {1, 1}, {0, 1}, {0.5, 0.5}, {0, 0}, {1, 0}},
	}
}

// makeFins returns three triangles sharing edge 0-1, fanned 120 degrees
// apart around the X axis.
func makeFins() *mesh.SourceMesh {
	return &mesh.SourceMesh{
		Positions: []math.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0.5, 1, 0},
			{0.5, -0.5, 0.8660254},
			{0.5, -0.5, -0.8660254},
		},
		Polygons: []mesh.Polygon{
			{Vertices: []int{0, 1, 2}},
			{Vertices: []int{1, 0, 3}},
			{Vertices: []int{0, 1, 4}},
		},
	}
}

func noRotation() Options {
	opts := DefaultOptions()
	opts.AxisUpConversion = false
	return opts
}

// polygonArea2D returns the signed area of a polygon projected to XY.
func polygonArea2D(pts []math.Vec3) float32 {
	var a float32
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func triangleArea2D(positions []math.Vec3, t Triangle) float32 {
	a, b, c := positions[t[0].Vertex], positions[t[1].Vertex], positions[t[2].Vertex]
	return math.Orient2D(math.Vec2{X: a.X, Y: a.Y}, math.Vec2{X: b.X, Y: b.Y}, math.Vec2{X: c.X, Y: c.Y}) / 2
}
