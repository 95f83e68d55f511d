package meshprep

import (
	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// RotateZUpToYUp rotates every position and normal of m by -90 degrees about
// the X axis, in place.
func RotateZUpToYUp(m *mesh.SourceMesh) {
	rotateMesh(m, math.ZUpToYUp())
}

func rotateMesh(m *mesh.SourceMesh, q math.Quat) {
	for i := range m.Positions {
		m.Positions[i] = q.Rotate(m.Positions[i])
	}
	for i := range m.Normals {
		m.Normals[i] = q.Rotate(m.Normals[i])
	}
}
