// Package meshprep turns an arbitrary polygon mesh into the flattened,
// triangulated, hard-edge-split arrays stored in a Tower Mesh Format file.
//
// The pipeline runs in a fixed order on a private copy of the input:
//
//	rotate (Z-up to Y-up) -> triangulate -> split hard edges -> emit
package meshprep

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// DefaultSplitAngle is the default hard-edge threshold in degrees.
const DefaultSplitAngle float32 = 60

// ErrMissingUVs is returned by Normalize when the mesh has no UV layer and
// the UVReject policy is in effect.
var ErrMissingUVs = errors.New("mesh has no uv layer")

// UVPolicy selects how meshes without a UV layer are handled.
type UVPolicy string

const (
	UVZeroFill UVPolicy = "zero"   // Emit (0, 0) for every corner
	UVReject   UVPolicy = "reject" // Fail with ErrMissingUVs
)

// ParseUVPolicy converts a config or flag value to a UVPolicy.
// An empty string selects UVZeroFill.
func ParseUVPolicy(s string) (UVPolicy, error) {
	switch UVPolicy(s) {
	case "", UVZeroFill:
		return UVZeroFill, nil
	case UVReject:
		return UVReject, nil
	default:
		return "", fmt.Errorf("unknown uv policy %q (want %q or %q)", s, UVZeroFill, UVReject)
	}
}

// Options controls the normalizer.
type Options struct {
	// SplitAngleDegrees is the dihedral angle above which an edge is hard.
	SplitAngleDegrees float32
	// AxisUpConversion rotates the mesh from Z-up to Y-up before processing.
	AxisUpConversion bool
	// MissingUV selects the behaviour for meshes without UVs.
	MissingUV UVPolicy
}

// DefaultOptions returns the exporter defaults: 60 degree split angle,
// axis conversion on, zero-filled UVs.
func DefaultOptions() Options {
	return Options{
		SplitAngleDegrees: DefaultSplitAngle,
		AxisUpConversion:  true,
		MissingUV:         UVZeroFill,
	}
}

// Normalize prepares src for serialization under the given name.
//
// src is never modified. A mesh without vertices yields an empty result and
// no error. Structural problems in src are reported as mesh.ErrMalformedMesh.
func Normalize(src *mesh.SourceMesh, name string, opts Options) (*mesh.FlattenedMesh, error) {
	out := &mesh.FlattenedMesh{
		Name:      name,
		Positions: []math.Vec3{},
		Normals:   []math.Vec3{},
		UVs:       []math.Vec2{},
		Indices:   []int32{},
	}
	if src == nil {
		return out, nil
	}

	if err := src.Validate(); err != nil {
		return nil, err
	}
	if len(src.Positions) == 0 {
		return out, nil
	}
	if !src.HasUVs() && src.CornerCount() > 0 && opts.MissingUV == UVReject {
		return nil, ErrMissingUVs
	}

	work := src.Clone()

	if opts.AxisUpConversion {
		RotateZUpToYUp(work)
	}

	tris := Triangulate(work)

	split := SplitHardEdges(work.Positions, tris, work.SharpEdges, opts.SplitAngleDegrees)

	normals := VertexNormals(split.Positions, tris)
	if work.HasNormals() {
		// Vertices that kept a single fan keep the authored normal.
		for v, sv := range split.Source {
			if !split.Split[sv] {
				normals[v] = work.Normals[sv]
			}
		}
	}

	out.Positions = split.Positions
	emitCorners(out, tris, normals)

	return out, nil
}

// emitCorners writes the per-corner UV and normal streams, then the index
// stream, all in triangle order.
func emitCorners(out *mesh.FlattenedMesh, tris []Triangle, normals []math.Vec3) {
	corners := len(tris) * 3
	out.UVs = make([]math.Vec2, 0, corners)
	out.Normals = make([]math.Vec3, 0, corners)
	out.Indices = make([]int32, 0, corners)

	for _, t := range tris {
		for _, c := range t {
			out.UVs = append(out.UVs, c.UV)
		}
		for _, c := range t {
			out.Normals = append(out.Normals, normals[c.Vertex])
		}
	}

	for _, t := range tris {
		for _, c := range t {
			out.Indices = append(out.Indices, int32(c.Vertex))
		}
	}
}
